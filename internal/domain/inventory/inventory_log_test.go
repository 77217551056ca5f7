package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLog(t *testing.T) {
	t.Run("defaults the reason", func(t *testing.T) {
		l, err := NewLog(uuid.New(), -4, "  ")
		require.NoError(t, err)
		assert.Equal(t, ReasonManualUpdate, l.Reason)
		assert.Equal(t, -4, l.Change)
		assert.False(t, l.IsIncrease())
	})

	t.Run("keeps a supplied reason", func(t *testing.T) {
		l, err := NewLog(uuid.New(), 3, "Restock")
		require.NoError(t, err)
		assert.Equal(t, "Restock", l.Reason)
		assert.True(t, l.IsIncrease())
	})

	t.Run("records a zero change", func(t *testing.T) {
		l, err := NewLog(uuid.New(), 0, "Cycle count")
		require.NoError(t, err)
		assert.Zero(t, l.Change)
		assert.False(t, l.IsIncrease())
	})

	t.Run("rejects missing product", func(t *testing.T) {
		_, err := NewLog(uuid.Nil, 1, "")
		assert.Error(t, err)
	})
}

func TestOrderReasons(t *testing.T) {
	assert.Equal(t, "Order SO-1 confirmed", OrderConfirmedReason("SO-1"))
	assert.Equal(t, "Order SO-1 cancelled", OrderCancelledReason("SO-1"))
}
