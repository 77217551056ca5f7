package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/application/txn"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Listing sizes of the public catalog
const (
	DefaultProductPageSize = 12
	RelatedProductsLimit   = 3
)

// ErrProductNotFound is returned for unknown or deactivated products
var ErrProductNotFound = shared.NotFound("Product not found")

// ProductQueryService serves the public product routes and buyer interactions
// (reviews, favorites) with products
type ProductQueryService struct {
	products catalog.ProductRepository
	reviews  catalog.ReviewRepository
	txScope  txn.TransactionScope
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewProductQueryService creates a new ProductQueryService
func NewProductQueryService(
	products catalog.ProductRepository,
	reviews catalog.ReviewRepository,
	txScope txn.TransactionScope,
	events shared.EventPublisher,
	logger *zap.Logger,
) *ProductQueryService {
	return &ProductQueryService{
		products: products,
		reviews:  reviews,
		txScope:  txScope,
		events:   events,
		logger:   logger,
	}
}

// List returns a page of active products
func (s *ProductQueryService) List(ctx context.Context, q ProductListQuery) (*ProductListResponse, error) {
	page := shared.NewPagination(q.Page, q.Limit, DefaultProductPageSize)
	listings, total, err := s.products.List(ctx, catalog.ProductFilter{
		Pagination:   page,
		CategoryName: q.Category,
		Search:       q.Search,
		ActiveOnly:   true,
		OrderBy:      q.SortBy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return &ProductListResponse{
		Products:   ToProductResponses(listings),
		Total:      total,
		TotalPages: shared.TotalPages(total, page.Limit),
		Page:       page.Page,
		Limit:      page.Limit,
	}, nil
}

// Get returns one product and records the view. The view row and the
// view counter are written in one transaction.
func (s *ProductQueryService) Get(ctx context.Context, id uuid.UUID, viewer ViewContext) (*ProductResponse, error) {
	listing, err := s.activeListing(ctx, id)
	if err != nil {
		return nil, err
	}

	view := engagement.NewProductView(id, viewer.UserID, viewer.IP, viewer.UserAgent)
	err = s.txScope.Execute(ctx, func(repos txn.Repositories) error {
		if err := repos.ProductViews().Create(ctx, view); err != nil {
			return fmt.Errorf("failed to record product view: %w", err)
		}
		if err := repos.Products().IncrementViewCount(ctx, id); err != nil {
			return fmt.Errorf("failed to count product view: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	listing.ViewCount++

	if s.events != nil {
		if err := s.events.Publish(ctx, catalog.NewProductViewedEvent(listing.Product, viewer.UserID, "")); err != nil {
			s.logger.Warn("Failed to publish product view", zap.Error(err))
		}
	}

	resp := ToProductResponse(listing)
	return &resp, nil
}

// Related returns other active products of the same category
func (s *ProductQueryService) Related(ctx context.Context, id uuid.UUID) ([]ProductResponse, error) {
	listing, err := s.activeListing(ctx, id)
	if err != nil {
		return nil, err
	}
	related, err := s.products.Related(ctx, listing.Product, RelatedProductsLimit)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(related), nil
}

// AddReview stores a buyer's review and refreshes the product rating
func (s *ProductQueryService) AddReview(ctx context.Context, buyerID, productID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	if _, err := s.activeListing(ctx, productID); err != nil {
		return nil, err
	}
	review, err := catalog.NewProductReview(productID, buyerID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos txn.Repositories) error {
		if err := repos.Reviews().CreateReview(ctx, review); err != nil {
			return err
		}
		return repos.Reviews().RefreshRating(ctx, productID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	s.logger.Info("Product review added",
		zap.String("product_id", productID.String()),
		zap.Int("rating", review.Rating))

	return &ReviewResponse{
		ID:        review.ID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}, nil
}

// AddFavorite saves a product for the user. Adding twice is not an error.
func (s *ProductQueryService) AddFavorite(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.activeListing(ctx, productID); err != nil {
		return err
	}
	return s.reviews.AddFavorite(ctx, catalog.NewFavorite(userID, productID))
}

// RemoveFavorite removes a saved product
func (s *ProductQueryService) RemoveFavorite(ctx context.Context, userID, productID uuid.UUID) error {
	return s.reviews.RemoveFavorite(ctx, userID, productID)
}

// ListFavorites returns the user's saved products, newest first
func (s *ProductQueryService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]ProductResponse, error) {
	ids, err := s.reviews.ListFavoriteProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []ProductResponse{}, nil
	}
	listings, err := s.products.FindListingsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// keep the favorite order, which the id list carries
	byID := make(map[uuid.UUID]*catalog.ProductListing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	out := make([]ProductResponse, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok && l.IsActive {
			out = append(out, ToProductResponse(l))
		}
	}
	return out, nil
}

func (s *ProductQueryService) activeListing(ctx context.Context, id uuid.UUID) (*catalog.ProductListing, error) {
	listing, err := s.products.FindListing(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !listing.IsActive {
		return nil, ErrProductNotFound
	}
	return listing, nil
}
