package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/swiftsupply/backend/internal/application/txn"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/tests/testutil"
	"go.uber.org/zap"
)

type queryFixture struct {
	svc      *ProductQueryService
	products *testutil.MockProductRepository
	reviews  *testutil.MockReviewRepository
	views    *testutil.MockProductViewRepository
	events   *testutil.MockEventPublisher
}

func newQueryFixture() *queryFixture {
	f := &queryFixture{
		products: new(testutil.MockProductRepository),
		reviews:  new(testutil.MockReviewRepository),
		views:    new(testutil.MockProductViewRepository),
		events:   new(testutil.MockEventPublisher),
	}
	scope := txn.NewNoOpTransactionScope(&txn.StaticRepositories{
		ProductRepo:     f.products,
		ReviewRepo:      f.reviews,
		ProductViewRepo: f.views,
	})
	f.svc = NewProductQueryService(f.products, f.reviews, scope, f.events, zap.NewNop())
	return f
}

func newListing(t *testing.T, name string) *catalog.ProductListing {
	t.Helper()
	p, err := catalog.NewProduct(catalog.NewProductInput{
		SellerID: uuid.New(),
		Name:     name,
		Price:    decimal.NewFromFloat(9.99),
		Stock:    5,
		Images:   []string{"/images/p.png"},
	})
	require.NoError(t, err)
	return &catalog.ProductListing{
		Product:      p,
		CategoryName: "Hardware",
		Seller: &catalog.SellerSummary{
			ID:         p.SellerID,
			StoreName:  "Acme",
			Location:   "Lagos",
			IsVerified: true,
			Rating:     4.5,
		},
	}
}

func TestProductQueryService_List(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()
	listing := newListing(t, "Bolts")

	f.products.On("List", ctx, catalog.ProductFilter{
		Pagination:   shared.Pagination{Page: 2, Limit: DefaultProductPageSize},
		CategoryName: "Hardware",
		ActiveOnly:   true,
	}).Return([]*catalog.ProductListing{listing}, int64(25), nil)

	result, err := f.svc.List(ctx, ProductListQuery{Page: 2, Category: "Hardware"})
	require.NoError(t, err)

	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 2, result.Page)
	require.Len(t, result.Products, 1)

	got := result.Products[0]
	assert.Equal(t, "Bolts", got.Name)
	assert.Equal(t, "Hardware", got.Category)
	assert.Equal(t, []string{"/images/p.png"}, got.Images)
	require.NotNil(t, got.Supplier)
	assert.Equal(t, "Acme", got.Supplier.Name)
	assert.True(t, got.Supplier.Verified)
	assert.NotNil(t, got.Specifications)
	assert.NotNil(t, got.Tags)
}

func TestProductQueryService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("records the view", func(t *testing.T) {
		f := newQueryFixture()
		listing := newListing(t, "Bolts")
		viewer := uuid.New()

		f.products.On("FindListing", ctx, listing.ID).Return(listing, nil)
		f.views.On("Create", ctx, mock.MatchedBy(func(v *engagement.ProductView) bool {
			return v.ProductID == listing.ID && *v.UserID == viewer && v.IPAddress == "10.0.0.1"
		})).Return(nil)
		f.products.On("IncrementViewCount", ctx, listing.ID).Return(nil)
		f.events.On("Publish", ctx, mock.MatchedBy(func(evts []shared.DomainEvent) bool {
			return len(evts) == 1 && evts[0].EventType() == catalog.EventTypeProductViewed
		})).Return(nil)

		result, err := f.svc.Get(ctx, listing.ID, ViewContext{UserID: &viewer, IP: "10.0.0.1", UserAgent: "test"})
		require.NoError(t, err)
		assert.Equal(t, listing.ID, result.ID)
		assert.Equal(t, 1, listing.ViewCount)
		f.views.AssertExpectations(t)
		f.events.AssertExpectations(t)
	})

	t.Run("a failed counter update fails the view", func(t *testing.T) {
		f := newQueryFixture()
		listing := newListing(t, "Bolts")
		f.products.On("FindListing", ctx, listing.ID).Return(listing, nil)
		f.views.On("Create", ctx, mock.AnythingOfType("*engagement.ProductView")).Return(nil)
		f.products.On("IncrementViewCount", ctx, listing.ID).Return(errors.New("db down"))

		_, err := f.svc.Get(ctx, listing.ID, ViewContext{IP: "10.0.0.1"})
		assert.ErrorContains(t, err, "failed to count product view")
		assert.Zero(t, listing.ViewCount)
		f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("deactivated products are hidden", func(t *testing.T) {
		f := newQueryFixture()
		listing := newListing(t, "Bolts")
		listing.Deactivate()
		f.products.On("FindListing", ctx, listing.ID).Return(listing, nil)

		_, err := f.svc.Get(ctx, listing.ID, ViewContext{})
		assert.Equal(t, ErrProductNotFound, err)
		f.views.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newQueryFixture()
		id := uuid.New()
		f.products.On("FindListing", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Get(ctx, id, ViewContext{})
		assert.EqualError(t, err, "Product not found")
	})
}

func TestProductQueryService_Related(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()
	listing := newListing(t, "Bolts")
	other := newListing(t, "Nuts")

	f.products.On("FindListing", ctx, listing.ID).Return(listing, nil)
	f.products.On("Related", ctx, listing.Product, RelatedProductsLimit).Return([]*catalog.ProductListing{other}, nil)

	result, err := f.svc.Related(ctx, listing.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Nuts", result[0].Name)
}

func TestProductQueryService_AddReview(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and refreshes the rating", func(t *testing.T) {
		f := newQueryFixture()
		listing := newListing(t, "Bolts")
		f.products.On("FindListing", ctx, listing.ID).Return(listing, nil)
		f.reviews.On("CreateReview", ctx, mock.AnythingOfType("*catalog.ProductReview")).Return(nil)
		f.reviews.On("RefreshRating", ctx, listing.ID).Return(nil)

		result, err := f.svc.AddReview(ctx, uuid.New(), listing.ID, CreateReviewRequest{Rating: 4, Comment: " solid "})
		require.NoError(t, err)
		assert.Equal(t, 4, result.Rating)
		assert.Equal(t, "solid", result.Comment)
		f.reviews.AssertExpectations(t)
	})

	t.Run("rating out of range", func(t *testing.T) {
		f := newQueryFixture()
		listing := newListing(t, "Bolts")
		f.products.On("FindListing", ctx, listing.ID).Return(listing, nil)

		_, err := f.svc.AddReview(ctx, uuid.New(), listing.ID, CreateReviewRequest{Rating: 6})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		f.reviews.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
	})
}

func TestProductQueryService_Favorites(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()
	user := uuid.New()
	first := newListing(t, "First")
	second := newListing(t, "Second")
	gone := newListing(t, "Gone")
	gone.Deactivate()

	ids := []uuid.UUID{second.ID, first.ID, gone.ID}
	f.reviews.On("ListFavoriteProductIDs", ctx, user).Return(ids, nil)
	f.products.On("FindListingsByIDs", ctx, ids).Return([]*catalog.ProductListing{first, second, gone}, nil)

	result, err := f.svc.ListFavorites(ctx, user)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Second", result[0].Name)
	assert.Equal(t, "First", result[1].Name)

	t.Run("empty", func(t *testing.T) {
		f := newQueryFixture()
		f.reviews.On("ListFavoriteProductIDs", ctx, user).Return([]uuid.UUID{}, nil)
		result, err := f.svc.ListFavorites(ctx, user)
		require.NoError(t, err)
		assert.Empty(t, result)
		f.products.AssertNotCalled(t, "FindListingsByIDs", mock.Anything, mock.Anything)
	})

	t.Run("add checks the product", func(t *testing.T) {
		f := newQueryFixture()
		f.products.On("FindListing", ctx, first.ID).Return(first, nil)
		f.reviews.On("AddFavorite", ctx, mock.MatchedBy(func(fav *catalog.Favorite) bool {
			return fav.UserID == user && fav.ProductID == first.ID
		})).Return(nil)
		require.NoError(t, f.svc.AddFavorite(ctx, user, first.ID))
	})
}
