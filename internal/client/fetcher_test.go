package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"guitarcenter/harvester/internal/cache"
	"guitarcenter/harvester/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalogConfig() config.CatalogConfig {
	return config.CatalogConfig{
		PageSize: 30,
		Timeout:  5,
	}
}

func TestFetcherPopulatesCacheOnMiss(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("<html>hello</html>"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "cache.json")
	store := cache.NewFileStore(path)
	fetcher := NewFetcher(testCatalogConfig(), store, nil)

	body, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>hello</html>", body)
	assert.Equal(t, int32(1), hits.Load())

	// Flushed after the write: a fresh store sees the entry.
	cached, ok := cache.NewFileStore(path).Get(server.URL)
	require.True(t, ok)
	assert.Equal(t, body, cached)
}

func TestFetcherIsIdempotentWithWarmCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	store := cache.NewFileStore(filepath.Join(t.TempDir(), "cache.json"))
	fetcher := NewFetcher(testCatalogConfig(), store, nil)

	first, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	second, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load(), "second fetch must not hit the network")
}

func TestFetcherPropagatesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "cache.json")
	store := cache.NewFileStore(path)
	fetcher := NewFetcher(testCatalogConfig(), store, nil)

	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	// Error responses are not cached.
	_, ok := store.Get(server.URL)
	assert.False(t, ok)
}
