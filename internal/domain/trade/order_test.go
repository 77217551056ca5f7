package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(uuid.New(), uuid.New(), " deliver by friday ")
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t)

	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Regexp(t, `^SO-\d{8}-[A-Z0-9]{6}$`, o.OrderNumber)
	assert.Equal(t, "deliver by friday", o.Notes)
	assert.True(t, o.TotalAmount.IsZero())

	_, err := NewOrder(uuid.Nil, uuid.New(), "")
	assert.Error(t, err)
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("total equals sum of item totals", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AddItem(uuid.New(), "Bolts", 3, decimal.NewFromFloat(1.10)))
		require.NoError(t, o.AddItem(uuid.New(), "Nuts", 7, decimal.NewFromFloat(0.35)))

		sum := decimal.Zero
		for _, item := range o.Items {
			assert.True(t, item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Equal(item.TotalPrice))
			sum = sum.Add(item.TotalPrice)
		}
		assert.True(t, sum.Equal(o.TotalAmount))
		assert.Equal(t, "5.75", o.TotalAmount.StringFixed(2))
		assert.Equal(t, 10, o.ItemCount())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Error(t, o.AddItem(uuid.New(), "Bolts", 0, decimal.NewFromInt(1)))
	})

	t.Run("rejects duplicate product", func(t *testing.T) {
		o := newTestOrder(t)
		id := uuid.New()
		require.NoError(t, o.AddItem(id, "Bolts", 1, decimal.NewFromInt(1)))
		assert.Error(t, o.AddItem(id, "Bolts", 1, decimal.NewFromInt(1)))
	})
}

func TestOrder_Place(t *testing.T) {
	o := newTestOrder(t)
	assert.Error(t, o.Place("Ada"))

	require.NoError(t, o.AddItem(uuid.New(), "Bolts", 2, decimal.NewFromInt(5)))
	require.NoError(t, o.Place("Ada"))

	events := o.GetDomainEvents()
	require.Len(t, events, 1)
	placed, ok := events[0].(*OrderPlacedEvent)
	require.True(t, ok)
	assert.Equal(t, "Ada", placed.BuyerName)
	assert.True(t, decimal.NewFromInt(10).Equal(placed.TotalAmount))
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("follows the happy path", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.TransitionTo(OrderStatusConfirmed))
		require.NoError(t, o.TransitionTo(OrderStatusReady))
		require.NoError(t, o.TransitionTo(OrderStatusCompleted))
		assert.True(t, o.Status.IsTerminal())
		assert.Len(t, o.GetDomainEvents(), 3)
	})

	t.Run("rejects skipping states", func(t *testing.T) {
		o := newTestOrder(t)
		err := o.TransitionTo(OrderStatusCompleted)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot change order status from PENDING to COMPLETED")
		assert.Equal(t, OrderStatusPending, o.Status)
	})

	t.Run("terminal states cannot move", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.TransitionTo(OrderStatusCancelled))
		assert.Error(t, o.TransitionTo(OrderStatusPending))
		assert.Error(t, o.TransitionTo(OrderStatusConfirmed))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Error(t, o.TransitionTo("SHIPPED"))
	})
}

func TestOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus("ready")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusReady, st)

	_, err = ParseOrderStatus("lost")
	assert.Error(t, err)

	assert.True(t, OrderStatusConfirmed.HoldsStock())
	assert.False(t, OrderStatusPending.HoldsStock())
	assert.True(t, OrderStatusReady.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusCancelled))
}

func TestGenerateOrderNumber(t *testing.T) {
	n, err := GenerateOrderNumber(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Regexp(t, `^SO-20240309-[A-Z0-9]{6}$`, n)
}
