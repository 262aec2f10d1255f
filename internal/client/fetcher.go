package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"guitarcenter/harvester/internal/cache"
	"guitarcenter/harvester/internal/config"
	"guitarcenter/harvester/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// Fetcher is the cache-through retrieval primitive. A cached body is
// returned as-is; a miss performs a live request and populates the cache
// before returning. Transport failures propagate to the caller.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type cachedFetcher struct {
	rl         ratelimit.Limiter
	store      cache.Store
	httpClient *resty.Client
}

func NewFetcher(cfg config.CatalogConfig, store cache.Store, proxySupplier proxy.Supplier) Fetcher {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(2*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36").
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.5").
		SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: true,
		})

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using initial proxy: %s", proxyURL)
		}
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &cachedFetcher{
		rl:         rl,
		store:      store,
		httpClient: client,
	}
}

func (f *cachedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if body, ok := f.store.Get(url); ok {
		log.Debugf("Using cache for %s", url)
		return body, nil
	}

	f.rl.Take()

	log.Debugf("Fetching %s", url)

	resp, err := f.httpClient.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	body := resp.String()

	f.store.Put(url, body)
	if err := f.store.Flush(); err != nil {
		log.Warnf("⚠️ Failed to flush cache after fetching %s: %v", url, err)
	}

	return body, nil
}
