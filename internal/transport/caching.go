package transport

import (
	"net/http"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
)

// NewCachingHTTPClient returns a client that caches responses per their
// cache headers. Signed requests never hit the cache because every salt
// is unique, so this only pays off for the public catalog actions whose
// query strings are stable between calls. An empty cacheDir keeps the
// cache in memory; otherwise entries persist under cacheDir across
// process restarts.
func NewCachingHTTPClient(cacheDir string) *http.Client {
	var cache httpcache.Cache = httpcache.NewMemoryCache()
	if cacheDir != "" {
		cache = diskcache.New(cacheDir)
	}
	return &http.Client{Transport: httpcache.NewTransport(cache)}
}
