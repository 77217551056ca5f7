package throttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLimiter(t *testing.T) {
	now := time.Now()
	l := New(30*time.Second, 3)
	l.now = func() time.Time { return now }

	t.Run("burst then reject", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			assert.True(t, l.Allow("a@example.com"), "attempt %d", i)
		}
		assert.False(t, l.Allow("a@example.com"))
		assert.Equal(t, 0, l.Remaining("a@example.com"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		assert.True(t, l.Allow("b@example.com"))
		assert.Equal(t, 2, l.Remaining("b@example.com"))
	})

	t.Run("tokens replenish", func(t *testing.T) {
		now = now.Add(31 * time.Second)
		assert.True(t, l.Allow("a@example.com"))
		assert.False(t, l.Allow("a@example.com"))
	})
}

func TestKeyedLimiter_EvictsIdleBuckets(t *testing.T) {
	now := time.Now()
	l := New(time.Second, 1)
	l.now = func() time.Time { return now }

	l.Allow("old")
	now = now.Add(2 * time.Minute)
	l.Allow("new")

	_, ok := l.buckets["old"]
	assert.False(t, ok)
	assert.Len(t, l.buckets, 1)
}
