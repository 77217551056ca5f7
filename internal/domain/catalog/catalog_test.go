package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, stock int, images ...string) *Product {
	t.Helper()
	p, err := NewProduct(NewProductInput{
		SellerID:    uuid.New(),
		Name:        "Steel Bolts",
		Description: "M8 bolts",
		Price:       decimal.NewFromFloat(12.5),
		Stock:       stock,
		Images:      images,
		Tags:        []string{"steel", " steel ", "", "hardware"},
	})
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("derives in stock and defaults", func(t *testing.T) {
		p := newTestProduct(t, 0, "a.png", "b.png")

		assert.False(t, p.InStock)
		assert.True(t, p.IsActive)
		assert.Equal(t, 1, p.MinOrderQty)
		assert.Equal(t, []string{"steel", "hardware"}, p.Tags)
		assert.NotNil(t, p.Specifications)
		require.Len(t, p.Images, 2)
		assert.True(t, p.Images[0].IsPrimary)
		assert.False(t, p.Images[1].IsPrimary)
		assert.Equal(t, "a.png", p.PrimaryImage())

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*ProductCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("in stock when stock positive", func(t *testing.T) {
		p := newTestProduct(t, 3)
		assert.True(t, p.InStock)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewProduct(NewProductInput{SellerID: uuid.New(), Name: "x", Price: decimal.NewFromInt(1), Stock: -1})
		assert.EqualError(t, err, "Stock cannot be negative")
	})

	t.Run("rejects more than five images", func(t *testing.T) {
		_, err := NewProduct(NewProductInput{
			SellerID: uuid.New(), Name: "x", Price: decimal.NewFromInt(1),
			Images: []string{"1", "2", "3", "4", "5", "6"},
		})
		assert.Equal(t, ErrTooManyImages, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct(NewProductInput{SellerID: uuid.New(), Name: "  ", Price: decimal.NewFromInt(1)})
		assert.Error(t, err)
	})
}

func TestProduct_SetStock(t *testing.T) {
	p := newTestProduct(t, 5)
	p.ClearDomainEvents()

	change, err := p.SetStock(12)
	require.NoError(t, err)
	assert.Equal(t, 7, change)
	assert.True(t, p.InStock)

	change, err = p.SetStock(0)
	require.NoError(t, err)
	assert.Equal(t, -12, change)
	assert.False(t, p.InStock)

	_, err = p.SetStock(-3)
	assert.Error(t, err)
	assert.Equal(t, 0, p.Stock)

	assert.Len(t, p.GetDomainEvents(), 2)
}

func TestProduct_AdjustStock(t *testing.T) {
	p := newTestProduct(t, 2)

	require.NoError(t, p.AdjustStock(-2))
	assert.False(t, p.InStock)

	err := p.AdjustStock(-1)
	assert.Error(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestProduct_ApplyUpdate(t *testing.T) {
	t.Run("reports stock change and removed images", func(t *testing.T) {
		p := newTestProduct(t, 10, "a.png", "b.png", "c.png")
		keptID := p.Images[1].ID

		stock := 4
		name := "Brass Bolts"
		changes, err := p.ApplyUpdate(ProductUpdate{
			Name:          &name,
			Stock:         &stock,
			Images:        []string{"b.png", "d.png"},
			ReplaceImages: true,
		})
		require.NoError(t, err)

		assert.Equal(t, 10, changes.OldStock)
		assert.Equal(t, -6, changes.StockChange)
		assert.ElementsMatch(t, []string{"a.png", "c.png"}, changes.RemovedImages)
		assert.Equal(t, "Brass Bolts", p.Name)
		assert.True(t, p.InStock)
		assert.Equal(t, []string{"b.png", "d.png"}, p.ImageURLs())
		assert.Equal(t, keptID, p.Images[0].ID)
		assert.True(t, p.Images[0].IsPrimary)
		assert.False(t, p.Images[1].IsPrimary)
	})

	t.Run("leaves images untouched when not replaced", func(t *testing.T) {
		p := newTestProduct(t, 10, "a.png")
		changes, err := p.ApplyUpdate(ProductUpdate{})
		require.NoError(t, err)
		assert.Empty(t, changes.RemovedImages)
		assert.Equal(t, []string{"a.png"}, p.ImageURLs())
		assert.Equal(t, 0, changes.StockChange)
	})

	t.Run("validates before mutating", func(t *testing.T) {
		p := newTestProduct(t, 10)
		neg := -1
		name := "Changed"
		_, err := p.ApplyUpdate(ProductUpdate{Name: &name, Stock: &neg})
		assert.Error(t, err)
		assert.Equal(t, "Steel Bolts", p.Name)
		assert.Equal(t, 10, p.Stock)
	})

	t.Run("replaces tags", func(t *testing.T) {
		p := newTestProduct(t, 1)
		_, err := p.ApplyUpdate(ProductUpdate{Tags: []string{"new"}, ReplaceTags: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"new"}, p.Tags)
	})
}

func TestProduct_Deactivate(t *testing.T) {
	p := newTestProduct(t, 1)
	p.ClearDomainEvents()

	p.Deactivate()
	p.Deactivate()

	assert.False(t, p.IsActive)
	assert.Len(t, p.GetDomainEvents(), 1)
}

func TestProduct_Revenue(t *testing.T) {
	p := newTestProduct(t, 1)
	p.OrderCount = 3
	assert.True(t, decimal.NewFromFloat(37.5).Equal(p.Revenue()))
}

func TestStockStatusFor(t *testing.T) {
	assert.Equal(t, StockStatusOutOfStock, StockStatusFor(0))
	assert.Equal(t, StockStatusLowStock, StockStatusFor(1))
	assert.Equal(t, StockStatusLowStock, StockStatusFor(10))
	assert.Equal(t, StockStatusInStock, StockStatusFor(11))
}

func TestAlertLevelFor(t *testing.T) {
	assert.Equal(t, AlertLevelCritical, AlertLevelFor(0))
	assert.Equal(t, AlertLevelWarning, AlertLevelFor(5))
	assert.Equal(t, AlertLevelLow, AlertLevelFor(6))
}

func TestNewProductReview(t *testing.T) {
	_, err := NewProductReview(uuid.New(), uuid.New(), 0, "")
	assert.Error(t, err)

	r, err := NewProductReview(uuid.New(), uuid.New(), 5, " great ")
	require.NoError(t, err)
	assert.Equal(t, "great", r.Comment)
}

func TestTaxonomyConstructors(t *testing.T) {
	_, err := NewCategory(" ", "")
	assert.Error(t, err)

	c, err := NewCategory(" Electronics ", "")
	require.NoError(t, err)
	assert.Equal(t, "Electronics", c.Name)

	_, err = NewProductType("Phones", uuid.Nil, "")
	assert.Error(t, err)

	pt, err := NewProductType("Phones", c.ID, "")
	require.NoError(t, err)
	assert.Equal(t, c.ID, pt.CategoryID)

	_, err = NewBrand("")
	assert.Error(t, err)
}
