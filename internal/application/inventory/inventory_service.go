package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/application/txn"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/inventory"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrUpdatesRequired is returned when a stock update carries no updates field
var ErrUpdatesRequired = shared.InvalidInput("Stock updates data is required")

// SellerResolver resolves the seller profile a user acts as
type SellerResolver interface {
	VerifiedSeller(ctx context.Context, userID uuid.UUID) (*partner.SellerProfile, error)
	OwnedSeller(ctx context.Context, userID, sellerID uuid.UUID) (*partner.SellerProfile, error)
}

// InventoryService handles seller stock levels and the stock ledger
type InventoryService struct {
	sellers  SellerResolver
	products catalog.ProductRepository
	logs     inventory.LogRepository
	txScope  txn.TransactionScope
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	sellers SellerResolver,
	products catalog.ProductRepository,
	logs inventory.LogRepository,
	txScope txn.TransactionScope,
	events shared.EventPublisher,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		sellers:  sellers,
		products: products,
		logs:     logs,
		txScope:  txScope,
		events:   events,
		logger:   logger,
	}
}

// UpdateOwnStock applies a batch update to the products of the caller's verified seller profile
func (s *InventoryService) UpdateOwnStock(ctx context.Context, userID uuid.UUID, req StockUpdateRequest) (*StockUpdateResult, error) {
	seller, err := s.sellers.VerifiedSeller(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.updateStock(ctx, seller, req)
}

// UpdateStock applies a batch update to the products of a seller the user owns
func (s *InventoryService) UpdateStock(ctx context.Context, userID, sellerID uuid.UUID, req StockUpdateRequest) (*StockUpdateResult, error) {
	seller, err := s.sellers.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	return s.updateStock(ctx, seller, req)
}

// updateStock writes every valid entry and one ledger row per applied entry in a single transaction.
// Entries that cannot be applied are reported instead of failing the batch.
func (s *InventoryService) updateStock(ctx context.Context, seller *partner.SellerProfile, req StockUpdateRequest) (*StockUpdateResult, error) {
	if req.Updates == nil {
		return nil, ErrUpdatesRequired
	}

	updated := make([]UpdatedProduct, 0, len(req.Updates))
	skipped := make([]SkippedUpdate, 0)
	var touched []*catalog.Product

	err := s.txScope.Execute(ctx, func(repos txn.Repositories) error {
		ids := make([]uuid.UUID, 0, len(req.Updates))
		parsed := make([]uuid.UUID, len(req.Updates))
		requested := make(map[uuid.UUID]bool, len(req.Updates))
		for i, u := range req.Updates {
			id, err := uuid.Parse(strings.TrimSpace(u.ProductID))
			if err != nil {
				continue
			}
			parsed[i] = id
			if !requested[id] {
				requested[id] = true
				ids = append(ids, id)
			}
		}
		owned := make(map[uuid.UUID]*catalog.Product)
		if len(ids) > 0 {
			products, err := repos.Products().FindByIDsForSeller(ctx, seller.ID, ids)
			if err != nil {
				return err
			}
			for _, p := range products {
				owned[p.ID] = p
			}
		}

		var logs []*inventory.Log
		seen := make(map[uuid.UUID]bool)
		for i, u := range req.Updates {
			if strings.TrimSpace(u.ProductID) == "" || u.Stock == nil {
				skipped = append(skipped, SkippedUpdate{ProductID: u.ProductID, Reason: SkipMissingFields})
				continue
			}
			product, ok := owned[parsed[i]]
			if !ok {
				skipped = append(skipped, SkippedUpdate{ProductID: u.ProductID, Reason: SkipNotFound})
				continue
			}
			if *u.Stock < 0 {
				skipped = append(skipped, SkippedUpdate{ProductID: u.ProductID, Reason: SkipInvalidStock})
				continue
			}

			oldStock := product.Stock
			change, err := product.SetStock(*u.Stock)
			if err != nil {
				return err
			}
			if err := repos.Products().SaveStock(ctx, product); err != nil {
				return err
			}
			log, err := inventory.NewLog(product.ID, change, u.Reason)
			if err != nil {
				return err
			}
			logs = append(logs, log)
			if !seen[product.ID] {
				seen[product.ID] = true
				touched = append(touched, product)
			}

			updated = append(updated, UpdatedProduct{
				ID:       product.ID,
				Name:     product.Name,
				OldStock: oldStock,
				NewStock: product.Stock,
				Change:   change,
			})
		}

		if len(logs) == 0 {
			return nil
		}
		return repos.InventoryLogs().Append(ctx, logs...)
	})
	if err != nil {
		return nil, err
	}

	for _, p := range touched {
		s.publish(ctx, p)
	}

	s.logger.Info("Stock updated",
		zap.String("seller_id", seller.ID.String()),
		zap.Int("updated", len(updated)),
		zap.Int("skipped", len(skipped)),
	)
	return newStockUpdateResult(updated, skipped), nil
}

// Summary returns the stock position of a seller the user owns
func (s *InventoryService) Summary(ctx context.Context, userID, sellerID uuid.UUID) (*SummaryResponse, error) {
	seller, err := s.sellers.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	summary, err := s.logs.Summary(ctx, seller.ID)
	if err != nil {
		return nil, err
	}
	resp := toSummaryResponse(summary)
	return &resp, nil
}

// Alerts lists active products at or below threshold, emptiest first
func (s *InventoryService) Alerts(ctx context.Context, userID, sellerID uuid.UUID, threshold int) ([]AlertResponse, error) {
	seller, err := s.sellers.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	if threshold < 0 {
		threshold = DefaultAlertThreshold
	}

	listings, _, err := s.products.List(ctx, catalog.ProductFilter{
		SellerID:   &seller.ID,
		ActiveOnly: true,
		MaxStock:   threshold + 1,
		OrderBy:    "stock_asc",
	})
	if err != nil {
		return nil, err
	}

	alerts := make([]AlertResponse, 0, len(listings))
	for _, l := range listings {
		alerts = append(alerts, toAlertResponse(l.Product, threshold))
	}
	return alerts, nil
}

// Logs returns the newest ledger rows of a seller the user owns
func (s *InventoryService) Logs(ctx context.Context, userID, sellerID uuid.UUID, q LogQuery) ([]LogResponse, error) {
	seller, err := s.sellers.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	limit := shared.NewPagination(1, q.Limit, DefaultLogLimit).Limit

	entries, err := s.logs.ListBySeller(ctx, seller.ID, q.ProductID, limit)
	if err != nil {
		return nil, err
	}
	return toLogResponses(entries), nil
}

func (s *InventoryService) publish(ctx context.Context, p *catalog.Product) {
	events := p.GetDomainEvents()
	p.ClearDomainEvents()
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish stock events", zap.Error(err))
	}
}
