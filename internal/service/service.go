package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"guitarcenter/harvester/internal/client"
	"guitarcenter/harvester/internal/domain"
	"guitarcenter/harvester/internal/repository"
	"guitarcenter/harvester/internal/resolver"
	"guitarcenter/harvester/internal/state"

	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

// Service orchestrates the two ingestion passes and serves filtered views
// over the result. Per-item failures are logged and skipped: one bad page
// never halts the rest of the catalog.
type Service struct {
	repository repository.CatalogRepository
	client     client.CatalogClient
	state      state.Manager
	maxWorkers int
}

func NewService(
	repository repository.CatalogRepository,
	client client.CatalogClient,
	stateManager state.Manager,
	maxWorkers int,
) *Service {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Service{
		repository: repository,
		client:     client,
		state:      stateManager,
		maxWorkers: maxWorkers,
	}
}

// Run performs a full harvest: brands first, so the freshly ingested brand
// table is available to the resolver during product ingestion.
func (s *Service) Run(ctx context.Context) error {
	if err := s.IngestBrands(ctx); err != nil {
		return fmt.Errorf("brand ingestion failed: %w", err)
	}
	return s.IngestProducts(ctx)
}

// IngestBrands walks the vendor index page and persists one Brand per
// reference page.
func (s *Service) IngestBrands(ctx context.Context) error {
	links, err := s.client.DiscoverBrands(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover vendor pages: %w", err)
	}

	log.Infof("🔄 Ingesting %d vendor reference pages", len(links))

	saved := 0
	for name, refURL := range links {
		brand, err := s.client.GetBrand(ctx, name, refURL)
		if err != nil {
			log.Errorf("❌ Failed to extract brand %q: %v", name, err)
			continue
		}

		if err := s.repository.SaveBrand(ctx, brand); err != nil {
			log.Errorf("❌ Failed to save brand %q: %v", name, err)
			continue
		}
		saved++
	}

	log.Infof("✅ Ingested %d of %d brands", saved, len(links))
	return nil
}

// IngestProducts discovers the full listing and extracts every detail page
// through a bounded worker pool. The cache store serializes its own
// writes, so concurrent fetches are safe.
func (s *Service) IngestProducts(ctx context.Context) error {
	refs, err := s.repository.ListBrandRefs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load brand table: %w", err)
	}
	brandResolver := resolver.New(refs)

	links, err := s.client.DiscoverListings(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover listings: %w", err)
	}

	log.Infof("🔄 Ingesting %d catalog entries with %d workers", len(links), s.maxWorkers)

	var saved atomic.Int64
	workers := new(errgroup.Group)
	workers.SetLimit(s.maxWorkers)

	for name, detailURL := range links {
		name, detailURL := name, detailURL
		workers.Go(func() error {
			// Per-item failures are swallowed inside ingestOne so one
			// bad item never cancels its siblings.
			if s.ingestOne(ctx, brandResolver, name, detailURL) {
				if n := saved.Add(1); n%100 == 0 {
					log.Infof("Ingested %d of %d catalog entries", n, len(links))
				}
			}
			return nil
		})
	}

	if err := workers.Wait(); err != nil {
		return err
	}

	log.Infof("✅ Ingested %d of %d catalog entries", saved.Load(), len(links))
	return nil
}

func (s *Service) ingestOne(ctx context.Context, brandResolver *resolver.BrandResolver, name, detailURL string) bool {
	if s.state != nil {
		ingested, err := s.state.IsIngested(ctx, detailURL)
		if err != nil {
			log.Warnf("⚠️ Failed to check ingestion state for %s: %v", detailURL, err)
		} else if ingested {
			log.Debugf("Skipping already ingested %s", detailURL)
			return false
		}
	}

	product, err := s.client.GetProduct(ctx, detailURL)
	if err != nil {
		log.Errorf("❌ Failed to extract %q from %s: %v", name, detailURL, err)
		return false
	}
	if product == nil {
		log.Debugf("Skipping non-product page %s", detailURL)
		return false
	}

	product.BrandID, product.OtherBrand = brandResolver.Resolve(product.OtherBrand)

	if err := s.repository.SaveProduct(ctx, product); err != nil {
		log.Errorf("❌ Failed to save product %q: %v", product.Name, err)
		return false
	}

	if s.state != nil {
		if err := s.state.MarkIngested(ctx, detailURL); err != nil {
			log.Warnf("⚠️ Failed to mark %s as ingested: %v", detailURL, err)
		}
	}

	return true
}

// Search executes the caller-supplied criteria against the persisted
// catalog. Empty criteria return the unfiltered result set.
func (s *Service) Search(ctx context.Context, criteria domain.Criteria) ([]domain.ProductView, error) {
	return s.repository.SearchProducts(ctx, criteria)
}
