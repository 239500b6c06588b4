package storage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncPager_ConcurrentWriters(t *testing.T) {
	p, path := newTestPager(t, 2*CacheCapacity)
	sp := NewSyncPager(p)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for n := uint32(w); n < sp.NumPages(); n += 8 {
				page, err := sp.GetPage(n)
				if !assert.NoError(t, err) {
					return
				}
				page.Fill(byte(n))
				if !assert.NoError(t, sp.WritePage(page)) {
					return
				}
				assert.NoError(t, sp.Flush(n))
			}
		}(w)
	}
	wg.Wait()

	for n := uint32(0); n < 2*CacheCapacity; n++ {
		assert.True(t, allBytes(filePage(t, path, n), byte(n)), "page %d", n)
	}

	st := sp.Stats()
	assert.Equal(t, uint64(2*CacheCapacity), st.Hits+st.Misses)
	require.NoError(t, sp.Close())
}
