package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/application/txn"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/inventory"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// Order errors
var (
	ErrOrderNotFound    = shared.NotFound("Order not found")
	ErrProductNotFound  = shared.NotFound("Product not found")
	ErrNotOrderParty    = shared.Forbidden("Unauthorized access")
	ErrBuyersOnly       = shared.Forbidden("Only buyers can place orders")
	ErrOrderItemsNeeded = shared.InvalidInput("Order must contain at least one item")
)

// SellerResolver resolves seller profiles for order routes
type SellerResolver interface {
	Seller(ctx context.Context, sellerID uuid.UUID) (*partner.SellerProfile, error)
	OwnedSeller(ctx context.Context, userID, sellerID uuid.UUID) (*partner.SellerProfile, error)
}

// OrderService places orders and moves them through their lifecycle
type OrderService struct {
	access   SellerResolver
	sellers  partner.SellerProfileRepository
	users    identity.UserRepository
	products catalog.ProductRepository
	orders   trade.OrderRepository
	txScope  txn.TransactionScope
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	access SellerResolver,
	sellers partner.SellerProfileRepository,
	users identity.UserRepository,
	products catalog.ProductRepository,
	orders trade.OrderRepository,
	txScope txn.TransactionScope,
	events shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		access:   access,
		sellers:  sellers,
		users:    users,
		products: products,
		orders:   orders,
		txScope:  txScope,
		events:   events,
		logger:   logger,
	}
}

// Place creates a pending order priced at the current product prices
func (s *OrderService) Place(ctx context.Context, buyerID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	buyer, err := s.users.FindByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.Unauthorized("User not found")
		}
		return nil, err
	}
	if buyer.Role != identity.RoleBuyer {
		return nil, ErrBuyersOnly
	}
	if len(req.Items) == 0 {
		return nil, ErrOrderItemsNeeded
	}

	seller, err := s.access.Seller(ctx, req.SellerID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDsForSeller(ctx, seller.ID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	order, err := trade.NewOrder(buyer.ID, seller.ID, req.Notes)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		p, ok := byID[item.ProductID]
		if !ok || !p.IsActive {
			return nil, ErrProductNotFound
		}
		if item.Quantity < p.MinOrderQty {
			return nil, shared.InvalidInput(fmt.Sprintf("Minimum order quantity for %s is %d", p.Name, p.MinOrderQty))
		}
		if err := order.AddItem(p.ID, p.Name, item.Quantity, p.Price); err != nil {
			return nil, err
		}
	}
	if err := order.Place(buyer.FullName()); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos txn.Repositories) error {
		if err := repos.Orders().Create(ctx, order); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := repos.Products().IncrementOrderCount(ctx, item.ProductID, 1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	s.logger.Info("Order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("seller_id", seller.ID.String()),
		zap.String("total_amount", order.TotalAmount.String()),
	)
	resp := ToOrderResponse(order, buyer.FullName())
	return &resp, nil
}

// ListForBuyer returns the buyer's orders, newest first
func (s *OrderService) ListForBuyer(ctx context.Context, buyerID uuid.UUID, page, limit int) (*OrderListResponse, error) {
	p := shared.NewPagination(page, limit, DefaultOrderPageSize)
	orders, total, err := s.orders.ListByBuyer(ctx, buyerID, p)
	if err != nil {
		return nil, err
	}

	buyerName := ""
	if user, err := s.users.FindByID(ctx, buyerID); err == nil {
		buyerName = user.FullName()
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o, buyerName))
	}
	return &OrderListResponse{
		Orders:     out,
		Total:      total,
		TotalPages: shared.TotalPages(total, p.Limit),
		Page:       p.Page,
		Limit:      p.Limit,
	}, nil
}

// Get returns an order visible to its buyer or to the owner of its seller
func (s *OrderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.findOrder(ctx, s.orders, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsBuyer(userID) {
		seller, err := s.sellers.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, ErrNotOrderParty
			}
			return nil, err
		}
		if seller.ID != order.SellerID {
			return nil, ErrNotOrderParty
		}
	}
	resp := ToOrderResponse(order, s.buyerName(ctx, order.BuyerID))
	return &resp, nil
}

// UpdateStatus moves a seller's order to a new status. Confirming deducts
// stock and cancelling an order that holds stock restores it, both with ledger rows.
func (s *OrderService) UpdateStatus(ctx context.Context, userID, sellerID, orderID uuid.UUID, status string) (*OrderResponse, error) {
	seller, err := s.access.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	target, err := trade.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var order *trade.Order
	var stockEvents []shared.DomainEvent
	err = s.txScope.Execute(ctx, func(repos txn.Repositories) error {
		order, err = s.findOrder(ctx, repos.Orders(), orderID)
		if err != nil {
			return err
		}
		if order.SellerID != seller.ID {
			return ErrOrderNotFound
		}

		from := order.Status
		if err := order.TransitionTo(target); err != nil {
			return err
		}

		switch {
		case target == trade.OrderStatusConfirmed:
			stockEvents, err = s.deductStock(ctx, repos, order)
		case target == trade.OrderStatusCancelled && from.HoldsStock():
			stockEvents, err = s.restoreStock(ctx, repos, order)
		}
		if err != nil {
			return err
		}

		return repos.Orders().UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, append(order.GetDomainEvents(), stockEvents...))
	order.ClearDomainEvents()

	s.logger.Info("Order status changed",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", string(order.Status)),
	)
	resp := ToOrderResponse(order, s.buyerName(ctx, order.BuyerID))
	return &resp, nil
}

func (s *OrderService) deductStock(ctx context.Context, repos txn.Repositories, order *trade.Order) ([]shared.DomainEvent, error) {
	reason := inventory.OrderConfirmedReason(order.OrderNumber)
	logs := make([]*inventory.Log, 0, len(order.Items))
	events := make([]shared.DomainEvent, 0, len(order.Items))
	for _, item := range order.Items {
		ok, err := repos.Products().DeductStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", fmt.Sprintf("Insufficient stock for %s", item.ProductName))
		}
		log, err := inventory.NewLog(item.ProductID, -item.Quantity, reason)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)

		event, err := s.stockChanged(ctx, repos, item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := repos.InventoryLogs().Append(ctx, logs...); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *OrderService) restoreStock(ctx context.Context, repos txn.Repositories, order *trade.Order) ([]shared.DomainEvent, error) {
	reason := inventory.OrderCancelledReason(order.OrderNumber)
	logs := make([]*inventory.Log, 0, len(order.Items))
	events := make([]shared.DomainEvent, 0, len(order.Items))
	for _, item := range order.Items {
		if err := repos.Products().RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
		log, err := inventory.NewLog(item.ProductID, item.Quantity, reason)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)

		event, err := s.stockChanged(ctx, repos, item.ProductID, -item.Quantity)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := repos.InventoryLogs().Append(ctx, logs...); err != nil {
		return nil, err
	}
	return events, nil
}

// stockChanged reloads a product after an atomic stock update. removed is the
// number of units taken out, negative when units were put back.
func (s *OrderService) stockChanged(ctx context.Context, repos txn.Repositories, productID uuid.UUID, removed int) (shared.DomainEvent, error) {
	p, err := repos.Products().FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return catalog.NewProductStockChangedEvent(p, p.Stock+removed), nil
}

func (s *OrderService) findOrder(ctx context.Context, orders trade.OrderRepository, id uuid.UUID) (*trade.Order, error) {
	order, err := orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) buyerName(ctx context.Context, buyerID uuid.UUID) string {
	user, err := s.users.FindByID(ctx, buyerID)
	if err != nil {
		return ""
	}
	return user.FullName()
}

func (s *OrderService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish order events", zap.Error(err))
	}
}
