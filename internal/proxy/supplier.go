package proxy

import (
	"context"
	"crypto/tls"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// Supplier hands out proxy URLs round-robin. An empty string means no
// proxy is available.
type Supplier interface {
	Get() string
}

type supplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewSupplier validates the configured proxies against testURL in parallel
// and keeps only the working ones.
func NewSupplier(ctx context.Context, proxies []string, testURL string) (Supplier, error) {
	if len(proxies) == 0 {
		return &supplier{}, nil
	}

	log.Infof("🔄 Testing %d proxies...", len(proxies))

	valid := make(chan string, len(proxies))
	semaphore := make(chan struct{}, 10)

	var wg sync.WaitGroup
	for _, proxyURL := range proxies {
		wg.Add(1)
		go func(proxyURL string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if isProxyValid(ctx, proxyURL, testURL) {
				valid <- proxyURL
			} else {
				log.Infof("❌ Proxy %s is not working, skipping", proxyURL)
			}
		}(proxyURL)
	}

	wg.Wait()
	close(valid)

	working := make([]string, 0, len(proxies))
	for proxyURL := range valid {
		working = append(working, proxyURL)
	}

	log.Infof("✅ Proxy supplier initialized with %d working proxies out of %d tested", len(working), len(proxies))

	return &supplier{
		proxies: working,
	}, nil
}

func (s *supplier) Get() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.proxies) == 0 {
		return ""
	}

	proxyURL := s.proxies[s.current]
	s.current = (s.current + 1) % len(s.proxies)

	return proxyURL
}

func isProxyValid(ctx context.Context, proxyURL, testURL string) bool {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(0).
		SetProxy(proxyURL).
		SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: true,
		})

	resp, err := client.R().
		SetContext(ctx).
		Get(testURL)

	if err != nil {
		log.Infof("Proxy test failed for %s: %v", proxyURL, err)
		return false
	}

	return !resp.IsError()
}
