package counter

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	numberOfWorkers     = 50
	operationsPerWorker = 1000
)

func TestCreate(t *testing.T) {
	c := Create()
	assert.Equal(t, uint64(0), c.Count())

	_, ok := c.StopAt()
	assert.False(t, ok)
}

func TestFrom(t *testing.T) {
	c := From(10)
	assert.Equal(t, uint64(10), c.Count())
}

func TestIncr(t *testing.T) {
	c := Create()
	n := c.Incr()
	assert.Equal(t, uint64(1), n)
	assert.Equal(t, n, c.Count())
}

func TestDecr(t *testing.T) {
	t.Run("from ten", func(t *testing.T) {
		c := From(10)
		n := c.Decr()
		assert.Equal(t, uint64(9), n)
		assert.Equal(t, n, c.Count())
	})

	t.Run("at zero is a no-op", func(t *testing.T) {
		c := Create()
		assert.Equal(t, uint64(0), c.Decr())
		assert.Equal(t, uint64(0), c.Decr())
		assert.Equal(t, uint64(0), c.Count())
	})
}

func TestIncrSaturates(t *testing.T) {
	c := From(math.MaxUint64)
	assert.Equal(t, uint64(math.MaxUint64), c.Incr())
	assert.Equal(t, uint64(math.MaxUint64-1), c.Decr())
}

func TestClonesShareStorage(t *testing.T) {
	c := Create()
	clone := c

	clone.Incr()
	clone.Incr()
	c.Decr()

	assert.Equal(t, uint64(1), c.Count())
	assert.Equal(t, c.Count(), clone.Count())
}

func TestWithStopIsNotEnforced(t *testing.T) {
	c := From(1).WithStop(2)

	stop, ok := c.StopAt()
	require.True(t, ok)
	assert.Equal(t, uint64(2), stop)

	c.Incr()
	c.Incr()
	assert.Equal(t, uint64(3), c.Count())
}

func TestWithStopSharesStorage(t *testing.T) {
	c := Create()
	bounded := c.WithStop(100)

	bounded.Incr()
	assert.Equal(t, uint64(1), c.Count())

	_, ok := c.StopAt()
	assert.False(t, ok, "original handle keeps its own metadata")
}

func TestString(t *testing.T) {
	assert.Equal(t, "42", From(42).String())
}

func TestConcurrentCounter(t *testing.T) {
	t.Run("thread-safe incrementing across clones", func(t *testing.T) {
		c := Create()

		var wg sync.WaitGroup
		for i := 0; i < numberOfWorkers; i++ {
			wg.Add(1)
			go func(clone Counter) {
				defer wg.Done()
				for n := 0; n < operationsPerWorker; n++ {
					clone.Incr()
				}
			}(c)
		}
		wg.Wait()

		assert.Equal(t, uint64(numberOfWorkers*operationsPerWorker), c.Count())
	})

	t.Run("thread-safe decrementing never underflows", func(t *testing.T) {
		// twice as many decrements as the starting value
		c := From(uint64(numberOfWorkers * operationsPerWorker / 2))

		var wg sync.WaitGroup
		for i := 0; i < numberOfWorkers; i++ {
			wg.Add(1)
			go func(clone Counter) {
				defer wg.Done()
				for n := 0; n < operationsPerWorker; n++ {
					clone.Decr()
				}
			}(c)
		}
		wg.Wait()

		assert.Equal(t, uint64(0), c.Count())
	})

	t.Run("interleaved incr and decr lose no updates", func(t *testing.T) {
		c := From(uint64(numberOfWorkers * operationsPerWorker))

		var wg sync.WaitGroup
		for i := 0; i < numberOfWorkers; i++ {
			wg.Add(2)
			go func(clone Counter) {
				defer wg.Done()
				for n := 0; n < operationsPerWorker; n++ {
					clone.Incr()
				}
			}(c)
			go func(clone Counter) {
				defer wg.Done()
				for n := 0; n < operationsPerWorker; n++ {
					clone.Decr()
				}
			}(c)
		}
		wg.Wait()

		assert.Equal(t, uint64(numberOfWorkers*operationsPerWorker), c.Count())
	})
}

func BenchmarkCounterIncr(b *testing.B) {
	c := Create()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Incr()
		}
	})
}
