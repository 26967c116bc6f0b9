package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterSet(t *testing.T) {
	t.Run("increment adds and counts", func(t *testing.T) {
		c := make(counterSet)
		c.increment("a")
		c.increment("a")
		c.increment("b")

		assert.Equal(t, 2, c["a"])
		assert.Equal(t, 1, c["b"])
		assert.Equal(t, 2, c.distinct())
	})

	t.Run("decrement erases at zero", func(t *testing.T) {
		c := counterSet{"a": 2, "b": 1}

		c.decrementOrRemove("a")
		assert.Equal(t, 1, c["a"])
		assert.Equal(t, 2, c.distinct())

		c.decrementOrRemove("a")
		_, present := c["a"]
		assert.False(t, present, "count reached zero, key must be gone")
		assert.Equal(t, 1, c.distinct())
	})

	t.Run("decrement of absent id is a no-op", func(t *testing.T) {
		c := counterSet{"a": 1}
		c.decrementOrRemove("missing")

		assert.Equal(t, 1, c.distinct())
		_, present := c["missing"]
		assert.False(t, present)
	})
}
