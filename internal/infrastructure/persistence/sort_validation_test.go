package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("; DROP TABLE users"))
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "total_amount", ValidateSortField("total_amount", OrderSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", OrderSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("password_hash", OrderSortFields, "created_at"))
	assert.Equal(t, "store_name", ValidateSortField(" store_name ", SellerSortFields, "created_at"))
}

func TestProductOrderClause(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"price_asc", "products.price ASC, products.id"},
		{"PRICE_DESC", "products.price DESC, products.id"},
		{"", ProductSortKeys[DefaultProductSortKey]},
		{"id; DELETE FROM products", ProductSortKeys[DefaultProductSortKey]},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductOrderClause(tt.key))
		})
	}
}
