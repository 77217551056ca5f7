package trade

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// allowedTransitions is the order state machine. COMPLETED and CANCELLED are terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusCompleted, OrderStatusCancelled},
}

// ParseOrderStatus parses a case-insensitive status
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", shared.InvalidInput("Invalid order status")
	}
	return st, nil
}

// IsValid reports whether s is a known status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows moving to target
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s
func (s OrderStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// HoldsStock reports whether stock has been deducted for orders in this state
func (s OrderStatus) HoldsStock() bool {
	return s == OrderStatusConfirmed || s == OrderStatusReady || s == OrderStatusCompleted
}

// OrderItem is one line of an order
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
}

// Order is the aggregate root for a buyer's purchase from one seller.
// TotalAmount always equals the sum of the items' TotalPrice.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber string
	BuyerID     uuid.UUID
	SellerID    uuid.UUID
	Status      OrderStatus
	TotalAmount decimal.Decimal
	Notes       string
	OrderDate   time.Time
	Items       []OrderItem
}

// NewOrder creates a pending order without items
func NewOrder(buyerID, sellerID uuid.UUID, notes string) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.InvalidInput("Order requires a buyer")
	}
	if sellerID == uuid.Nil {
		return nil, shared.InvalidInput("Order requires a seller")
	}
	number, err := GenerateOrderNumber(time.Now())
	if err != nil {
		return nil, err
	}
	root := shared.NewBaseAggregateRoot()
	return &Order{
		BaseAggregateRoot: root,
		OrderNumber:       number,
		BuyerID:           buyerID,
		SellerID:          sellerID,
		Status:            OrderStatusPending,
		TotalAmount:       decimal.Zero,
		Notes:             strings.TrimSpace(notes),
		OrderDate:         root.CreatedAt,
		Items:             make([]OrderItem, 0),
	}, nil
}

// AddItem appends a line priced at unitPrice and recalculates the total
func (o *Order) AddItem(productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return shared.InvalidState("Items can only be added to pending orders")
	}
	if quantity <= 0 {
		return shared.InvalidInput("Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.InvalidInput("Unit price cannot be negative")
	}
	for _, item := range o.Items {
		if item.ProductID == productID {
			return shared.InvalidInput("Each product may appear only once per order")
		}
	}

	unitPrice = unitPrice.Round(2)
	o.Items = append(o.Items, OrderItem{
		ID:          uuid.New(),
		OrderID:     o.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
		CreatedAt:   time.Now(),
	})
	o.recalculateTotal()
	return nil
}

// Place finalizes a new order and records the OrderPlaced event
func (o *Order) Place(buyerName string) error {
	if len(o.Items) == 0 {
		return shared.InvalidInput("Order must contain at least one item")
	}
	o.AddDomainEvent(NewOrderPlacedEvent(o, buyerName))
	return nil
}

// TransitionTo moves the order along the state machine
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.InvalidInput("Invalid order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.InvalidState(fmt.Sprintf("Cannot change order status from %s to %s", o.Status, target))
	}
	from := o.Status
	o.Status = target
	o.Touch()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))

	return nil
}

// ItemCount returns the total number of units ordered
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// IsBuyer reports whether the user is the buyer of the order
func (o *Order) IsBuyer(userID uuid.UUID) bool {
	return o.BuyerID == userID
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice)
	}
	o.TotalAmount = total.Round(2)
}

// GenerateOrderNumber returns SO-YYYYMMDD-XXXXXX with a random upper-case suffix
func GenerateOrderNumber(at time.Time) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	var b strings.Builder
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return fmt.Sprintf("SO-%s-%s", at.Format("20060102"), b.String()), nil
}
