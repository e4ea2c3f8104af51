package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siteboard/domain/table"
	"siteboard/ports"
)

// countingLoader tracks how often the underlying parse actually runs
type countingLoader struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (l *countingLoader) Load(data []byte, format ports.Format) (*table.Table, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	if l.fail {
		return nil, errors.New("parse failed")
	}
	t := table.New([]string{"a"}, map[string]table.ColumnKind{"a": table.KindString})
	t.Rows = append(t.Rows, table.Row{"a": table.NewStringValue(string(data))})
	return t, nil
}

func (l *countingLoader) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// TestCacheHitOnIdenticalContent tests that identical bytes parse once
func TestCacheHitOnIdenticalContent(t *testing.T) {
	loader := &countingLoader{}
	c := New(loader, 8, time.Minute)
	defer c.Stop()

	first, err := c.Load([]byte("payload"), ports.FormatCSV)
	require.NoError(t, err)

	second, err := c.Load([]byte("payload"), ports.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, 1, loader.count(), "identical content must parse once")
	assert.Same(t, first, second, "cache hit returns the same table")
	assert.Equal(t, 1, c.Len())
}

// TestCacheMissOnDifferentContent tests content identity keying
func TestCacheMissOnDifferentContent(t *testing.T) {
	loader := &countingLoader{}
	c := New(loader, 8, time.Minute)
	defer c.Stop()

	_, err := c.Load([]byte("one"), ports.FormatCSV)
	require.NoError(t, err)
	_, err = c.Load([]byte("two"), ports.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, 2, loader.count())
	assert.Equal(t, 2, c.Len())
}

// TestCacheKeyIncludesFormat tests that the same bytes under another format reparse
func TestCacheKeyIncludesFormat(t *testing.T) {
	loader := &countingLoader{}
	c := New(loader, 8, time.Minute)
	defer c.Stop()

	_, err := c.Load([]byte("payload"), ports.FormatCSV)
	require.NoError(t, err)
	_, err = c.Load([]byte("payload"), ports.FormatXLSX)
	require.NoError(t, err)

	assert.Equal(t, 2, loader.count(), "format is part of the cache key")
}

// TestCacheFailuresNotCached tests that a failed parse retries on re-upload
func TestCacheFailuresNotCached(t *testing.T) {
	loader := &countingLoader{fail: true}
	c := New(loader, 8, time.Minute)
	defer c.Stop()

	_, err := c.Load([]byte("bad"), ports.FormatCSV)
	require.Error(t, err)
	assert.Equal(t, 0, c.Len(), "failures must not occupy cache slots")

	// The corrected upload parses fresh
	loader.fail = false
	tbl, err := c.Load([]byte("bad"), ports.FormatCSV)
	require.NoError(t, err)
	assert.NotNil(t, tbl)
	assert.Equal(t, 2, loader.count())
}

// TestCacheConcurrentSameContent tests request collapsing under concurrency
func TestCacheConcurrentSameContent(t *testing.T) {
	loader := &countingLoader{}
	c := New(loader, 8, time.Minute)
	defer c.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Load([]byte("shared"), ports.FormatCSV)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, loader.count(), "concurrent identical uploads collapse to one parse")
}
