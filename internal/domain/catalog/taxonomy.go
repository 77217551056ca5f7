package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// Category is the top level of the catalog taxonomy
type Category struct {
	shared.BaseEntity
	Name        string
	Description string
}

// NewCategory creates a category
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.InvalidInput("Category name cannot be empty")
	}
	if len(name) > 120 {
		return nil, shared.InvalidInput("Category name cannot exceed 120 characters")
	}
	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// ProductType groups products inside a category
type ProductType struct {
	shared.BaseEntity
	Name        string
	CategoryID  uuid.UUID
	Description string
}

// NewProductType creates a product type under a category
func NewProductType(name string, categoryID uuid.UUID, description string) (*ProductType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.InvalidInput("Product type name cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.InvalidInput("Product type requires a category")
	}
	return &ProductType{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		CategoryID:  categoryID,
		Description: description,
	}, nil
}

// Brand is a manufacturer label attached to products
type Brand struct {
	shared.BaseEntity
	Name        string
	Description string
	LogoURL     string
}

// NewBrand creates a brand
func NewBrand(name string) (*Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.InvalidInput("Brand name cannot be empty")
	}
	return &Brand{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// Tag is a free-form product label
type Tag struct {
	shared.BaseEntity
	Name string
}

// NormalizeTags trims tag names and drops blanks and duplicates, keeping order
func NormalizeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
