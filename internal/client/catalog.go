package client

import (
	"context"
	"fmt"

	"guitarcenter/harvester/internal/config"
	"guitarcenter/harvester/internal/domain"

	log "github.com/sirupsen/logrus"
)

type CatalogClient interface {
	GetListingPage(ctx context.Context, offset int) (*domain.ListingPage, error)
	DiscoverListings(ctx context.Context) (map[string]string, error)
	GetProduct(ctx context.Context, detailURL string) (*domain.Product, error)
	DiscoverBrands(ctx context.Context) (map[string]string, error)
	GetBrand(ctx context.Context, brandName, refURL string) (*domain.Brand, error)
}

type catalogClient struct {
	catalogCfg config.CatalogConfig
	brandsCfg  config.BrandsConfig
	fetcher    Fetcher
	listing    *listingParser
	detail     *detailParser
	brand      *brandParser
}

func NewCatalogClient(catalogCfg config.CatalogConfig, brandsCfg config.BrandsConfig, fetcher Fetcher) CatalogClient {
	return &catalogClient{
		catalogCfg: catalogCfg,
		brandsCfg:  brandsCfg,
		fetcher:    fetcher,
		listing:    newListingParser(catalogCfg.BaseURL),
		detail:     newDetailParser(),
		brand:      newBrandParser(brandsCfg.BaseURL),
	}
}

func (c *catalogClient) GetListingPage(ctx context.Context, offset int) (*domain.ListingPage, error) {
	url := fmt.Sprintf("%s%s?Nao=%d", c.catalogCfg.BaseURL, c.catalogCfg.ListingPath, offset)

	html, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page at offset %d: %w", offset, err)
	}

	page, err := c.listing.ParseListingPage(html, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page at offset %d: %w", offset, err)
	}

	return page, nil
}

// DiscoverListings enumerates the whole paginated catalog into a
// name -> detail URL mapping. Distinct items sharing a display name
// collapse to one entry, last write wins.
func (c *catalogClient) DiscoverListings(ctx context.Context) (map[string]string, error) {
	url := c.catalogCfg.BaseURL + c.catalogCfg.ListingPath

	html, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first listing page: %w", err)
	}

	first, err := c.listing.ParseListingPage(html, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse first listing page: %w", err)
	}

	pageCount := first.PageCount(c.catalogCfg.PageSize)
	log.Infof("🔎 Listing reports %d matches across %d pages", first.TotalMatches, pageCount)

	links := make(map[string]string)
	for i := 0; i < pageCount; i++ {
		page, err := c.GetListingPage(ctx, c.catalogCfg.PageSize*i)
		if err != nil {
			return nil, err
		}
		for _, entry := range page.Entries {
			links[entry.Name] = entry.URL
		}
	}

	return links, nil
}

// GetProduct returns (nil, nil) when the page is not a product page.
func (c *catalogClient) GetProduct(ctx context.Context, detailURL string) (*domain.Product, error) {
	html, err := c.fetcher.Fetch(ctx, detailURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch detail page %s: %w", detailURL, err)
	}

	return c.detail.ParseProduct(html, detailURL)
}

func (c *catalogClient) DiscoverBrands(ctx context.Context) (map[string]string, error) {
	html, err := c.fetcher.Fetch(ctx, c.brandsCfg.ListURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vendor index page: %w", err)
	}

	return c.brand.ParseBrandList(html)
}

func (c *catalogClient) GetBrand(ctx context.Context, brandName, refURL string) (*domain.Brand, error) {
	html, err := c.fetcher.Fetch(ctx, refURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reference page for %s: %w", brandName, err)
	}

	return c.brand.ParseBrand(brandName, html, refURL)
}
