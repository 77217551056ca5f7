package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"gorm.io/gorm"
)

func createTestProduct(t *testing.T, db *gorm.DB, sellerID uuid.UUID, name string, stock int, categoryID *uuid.UUID) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.NewProductInput{
		SellerID:    sellerID,
		CategoryID:  categoryID,
		Name:        name,
		Description: name + " description",
		Price:       decimal.NewFromFloat(12.5),
		Stock:       stock,
		Images:      []string{"/images/a.png", "/images/b.png"},
		Tags:        []string{"Steel", "bulk"},
		Attributes:  []catalog.ProductAttribute{{Key: "color", Value: "grey"}},
	})
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Create(context.Background(), p))
	return p
}

func TestGormProductRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	sellerID := uuid.New()

	p := createTestProduct(t, db, sellerID, "Steel Pipe", 25, nil)

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Steel Pipe", found.Name)
	assert.True(t, found.Price.Equal(decimal.NewFromFloat(12.5)))
	assert.Equal(t, []string{"/images/a.png", "/images/b.png"}, found.ImageURLs())
	assert.ElementsMatch(t, []string{"Steel", "bulk"}, found.Tags)
	require.Len(t, found.Attributes, 1)
	assert.Equal(t, "grey", found.Attributes[0].Value)

	_, err = repo.FindBySellerAndID(ctx, uuid.New(), p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	t.Run("a second product reuses existing tags", func(t *testing.T) {
		other := createTestProduct(t, db, sellerID, "Steel Beam", 5, nil)
		found, err := repo.FindByID(ctx, other.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Steel", "bulk"}, found.Tags)
	})
}

func TestGormProductRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := createTestProduct(t, db, uuid.New(), "Copper Wire", 3, nil)
	name := "Copper Wire 2mm"
	_, err := p.ApplyUpdate(catalog.ProductUpdate{Name: &name})
	require.NoError(t, err)
	_, err = p.SetImages([]string{"/images/c.png"})
	require.NoError(t, err)
	p.Tags = []string{"copper"}
	require.NoError(t, repo.Update(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Copper Wire 2mm", found.Name)
	assert.Equal(t, []string{"/images/c.png"}, found.ImageURLs())
	assert.Equal(t, []string{"copper"}, found.Tags)
}

func TestGormProductRepository_UpdateKeepsCounters(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := createTestProduct(t, db, uuid.New(), "Hex Bolts", 40, nil)
	loaded, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)

	// counters move after the product was loaded for editing
	require.NoError(t, repo.IncrementViewCount(ctx, p.ID))
	require.NoError(t, repo.IncrementOrderCount(ctx, p.ID, 1))
	require.NoError(t, repo.IncrementInquiryCount(ctx, p.ID))

	name := "Hex Bolts M8"
	_, err = loaded.ApplyUpdate(catalog.ProductUpdate{Name: &name})
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, loaded))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hex Bolts M8", found.Name)
	assert.Equal(t, 1, found.ViewCount)
	assert.Equal(t, 1, found.OrderCount)
	assert.Equal(t, 1, found.InquiryCount)
	assert.Equal(t, 40, found.Stock)

	t.Run("unknown product", func(t *testing.T) {
		ghost := *loaded
		ghost.ID = uuid.New()
		assert.ErrorIs(t, repo.Update(ctx, &ghost), shared.ErrNotFound)
	})
}

func TestGormProductRepository_List(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	tax := NewGormTaxonomyRepository(db)
	ctx := context.Background()

	category, err := catalog.NewCategory("Metals", "")
	require.NoError(t, err)
	require.NoError(t, tax.SaveCategory(ctx, category))

	sellerID := uuid.New()
	createTestProduct(t, db, sellerID, "Steel Pipe", 25, &category.ID)
	createTestProduct(t, db, sellerID, "Aluminium Sheet", 4, &category.ID)
	inactive := createTestProduct(t, db, sellerID, "Old Stock", 1, nil)
	inactive.Deactivate()
	require.NoError(t, repo.Update(ctx, inactive))
	createTestProduct(t, db, uuid.New(), "Foreign Pipe", 50, nil)

	t.Run("active products in a category", func(t *testing.T) {
		listings, total, err := repo.List(ctx, catalog.ProductFilter{
			Pagination:   shared.NewPagination(1, 10, 10),
			CategoryName: "Metals",
			ActiveOnly:   true,
			OrderBy:      "name",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, listings, 2)
		assert.Equal(t, "Aluminium Sheet", listings[0].Name)
		assert.Equal(t, "Metals", listings[0].CategoryName)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		listings, total, err := repo.List(ctx, catalog.ProductFilter{
			Pagination: shared.NewPagination(1, 10, 10),
			Search:     "PIPE",
			ActiveOnly: true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, listings, 2)
	})

	t.Run("seller low stock", func(t *testing.T) {
		listings, total, err := repo.List(ctx, catalog.ProductFilter{
			Pagination: shared.NewPagination(1, 10, 10),
			SellerID:   &sellerID,
			ActiveOnly: true,
			MaxStock:   catalog.LowStockThreshold,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, listings, 1)
		assert.Equal(t, "Aluminium Sheet", listings[0].Name)
	})

	t.Run("pagination", func(t *testing.T) {
		listings, total, err := repo.List(ctx, catalog.ProductFilter{
			Pagination: shared.NewPagination(2, 2, 2),
			ActiveOnly: true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, listings, 1)
	})
}

func TestGormProductRepository_DeductStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := createTestProduct(t, db, uuid.New(), "Bolts", 5, nil)

	ok, err := repo.DeductStock(ctx, p.ID, 6)
	require.NoError(t, err)
	assert.False(t, ok, "cannot deduct more than available")

	ok, err = repo.DeductStock(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.Stock)
	assert.False(t, found.InStock)

	require.NoError(t, repo.RestoreStock(ctx, p.ID, 2))
	found, err = repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Stock)
	assert.True(t, found.InStock)

	assert.ErrorIs(t, repo.RestoreStock(ctx, uuid.New(), 1), shared.ErrNotFound)
}

func TestGormProductRepository_DeductStockGuard(t *testing.T) {
	db, mock, _ := newMockDatabase(t)
	repo := NewGormProductRepository(db.DB)
	id := uuid.New()

	mock.ExpectExec(`UPDATE "products" SET .* WHERE \(id = \$4 AND stock >= \$5\)`).
		WithArgs(sqlmock.AnyArg(), 3, sqlmock.AnyArg(), id, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.DeductStock(context.Background(), id, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectExec(`UPDATE "products" SET .* WHERE \(id = \$4 AND stock >= \$5\)`).
		WithArgs(sqlmock.AnyArg(), 2, sqlmock.AnyArg(), id, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err = repo.DeductStock(context.Background(), id, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_Counters(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := createTestProduct(t, db, uuid.New(), "Nuts", 100, nil)
	require.NoError(t, repo.IncrementViewCount(ctx, p.ID))
	require.NoError(t, repo.IncrementViewCount(ctx, p.ID))
	require.NoError(t, repo.IncrementInquiryCount(ctx, p.ID))
	require.NoError(t, repo.IncrementOrderCount(ctx, p.ID, 3))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.ViewCount)
	assert.Equal(t, 1, found.InquiryCount)
	assert.Equal(t, 3, found.OrderCount)

	assert.ErrorIs(t, repo.IncrementViewCount(ctx, uuid.New()), shared.ErrNotFound)
}

func TestGormProductRepository_SaveStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := createTestProduct(t, db, uuid.New(), "Washers", 10, nil)
	_, err := p.SetStock(0)
	require.NoError(t, err)
	require.NoError(t, repo.SaveStock(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.Stock)
	assert.False(t, found.InStock)
}

func TestGormReviewRepository(t *testing.T) {
	db := newTestDB(t)
	products := NewGormProductRepository(db)
	repo := NewGormReviewRepository(db)
	ctx := context.Background()

	p := createTestProduct(t, db, uuid.New(), "Rivets", 10, nil)
	for _, rating := range []int{5, 4, 4} {
		review, err := catalog.NewProductReview(p.ID, uuid.New(), rating, "ok")
		require.NoError(t, err)
		require.NoError(t, repo.CreateReview(ctx, review))
	}
	require.NoError(t, repo.RefreshRating(ctx, p.ID))

	found, err := products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.3, found.Rating, 0.001)
	assert.Equal(t, 3, found.ReviewCount)

	t.Run("favorites are idempotent", func(t *testing.T) {
		userID := uuid.New()
		require.NoError(t, repo.AddFavorite(ctx, catalog.NewFavorite(userID, p.ID)))
		require.NoError(t, repo.AddFavorite(ctx, catalog.NewFavorite(userID, p.ID)))

		ids, err := repo.ListFavoriteProductIDs(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{p.ID}, ids)

		require.NoError(t, repo.RemoveFavorite(ctx, userID, p.ID))
		assert.ErrorIs(t, repo.RemoveFavorite(ctx, userID, p.ID), shared.ErrNotFound)
	})
}

func TestGormTaxonomyRepository_GetOrCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTaxonomyRepository(db)
	ctx := context.Background()

	category, err := catalog.NewCategory("Tools", "Hand tools")
	require.NoError(t, err)
	require.NoError(t, repo.SaveCategory(ctx, category))

	first, err := repo.GetOrCreateProductType(ctx, "Hammers", category.ID)
	require.NoError(t, err)
	second, err := repo.GetOrCreateProductType(ctx, "Hammers", category.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	brand, err := repo.GetOrCreateBrand(ctx, "Stanley")
	require.NoError(t, err)
	require.NoError(t, repo.LinkBrandToProductType(ctx, brand.ID, first.ID))
	require.NoError(t, repo.LinkBrandToProductType(ctx, brand.ID, first.ID))

	brands, err := repo.ListBrandsByProductType(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "Stanley", brands[0].Name)

	types, err := repo.ListProductTypesByCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Len(t, types, 1)
}
