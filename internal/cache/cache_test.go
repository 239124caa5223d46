package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "categories", Key("categories"))
	assert.Equal(t, "products|Skincare|2", Key("products", "Skincare", "2"))
}

func TestFetchCachesValue(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	fn := func() (any, error) {
		calls++
		return "value", nil
	}

	v, err := c.Fetch("k", fn)
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = c.Fetch("k", fn)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls, "second read must come from the cache")
}

func TestFetchNeverCachesErrors(t *testing.T) {
	c := New(time.Minute)
	calls := 0

	_, err := c.Fetch("k", func() (any, error) {
		calls++
		return nil, errors.New("backend down")
	})
	require.Error(t, err)

	v, err := c.Fetch("k", func() (any, error) {
		calls++
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
	assert.Equal(t, 2, calls, "a failed fetch must not pin the key")
}

func TestFetchExpiresAfterTTL(t *testing.T) {
	c := New(10 * time.Millisecond)
	calls := 0
	fn := func() (any, error) {
		calls++
		return calls, nil
	}

	_, err := c.Fetch("k", fn)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	v, err := c.Fetch("k", fn)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestInvalidate(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	fn := func() (any, error) {
		calls++
		return calls, nil
	}

	_, _ = c.Fetch("cart|u1", fn)
	c.Invalidate("cart|u1")

	v, err := c.Fetch("cart|u1", fn)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestInvalidatePrefix(t *testing.T) {
	c := New(time.Minute)
	for _, key := range []string{"products", "products|Skincare|1", "products|admin|1", "product|p1", "categories"} {
		k := key
		_, _ = c.Fetch(k, func() (any, error) { return k, nil })
	}

	c.InvalidatePrefix("products")

	c.mu.RLock()
	defer c.mu.RUnlock()
	assert.NotContains(t, c.entries, "products")
	assert.NotContains(t, c.entries, "products|Skincare|1")
	assert.NotContains(t, c.entries, "products|admin|1")
	assert.Contains(t, c.entries, "product|p1", "prefix match is per segment, not per byte")
	assert.Contains(t, c.entries, "categories")
}

func TestConcurrentFetchesCollapse(t *testing.T) {
	c := New(time.Minute)
	var calls int32
	fn := func() (any, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(20 * time.Millisecond)
		return "shared", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Fetch("k", fn)
			assert.NoError(t, err)
			assert.Equal(t, "shared", v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent identical fetches share one call")
}
