package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortKeys maps the public product sort keys to ORDER BY clauses.
// Every clause ends on id so pages are stable.
var ProductSortKeys = map[string]string{
	"newest":     "products.created_at DESC, products.id",
	"oldest":     "products.created_at ASC, products.id",
	"price_asc":  "products.price ASC, products.id",
	"price_desc": "products.price DESC, products.id",
	"rating":     "products.rating DESC, products.review_count DESC, products.id",
	"popular":    "(products.view_count + products.inquiry_count + products.order_count) DESC, products.id",
	"stock_asc":  "products.stock ASC, products.id",
	"name":       "products.name ASC, products.id",
}

// DefaultProductSortKey is used when no or an unknown key is supplied
const DefaultProductSortKey = "newest"

// ProductOrderClause resolves a product sort key to its ORDER BY clause
func ProductOrderClause(key string) string {
	if clause, ok := ProductSortKeys[strings.ToLower(strings.TrimSpace(key))]; ok {
		return clause
	}
	return ProductSortKeys[DefaultProductSortKey]
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"created_at":   true,
	"order_date":   true,
	"total_amount": true,
	"status":       true,
}

// SellerSortFields contains allowed sort fields for seller listings
var SellerSortFields = map[string]bool{
	"created_at":   true,
	"store_name":   true,
	"success_rate": true,
	"last_active":  true,
}
