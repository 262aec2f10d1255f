package client

import (
	"fmt"
	"strconv"
	"strings"

	"guitarcenter/harvester/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

type listingParser struct {
	baseURL string
}

func newListingParser(baseURL string) *listingParser {
	return &listingParser{
		baseURL: baseURL,
	}
}

func (p *listingParser) ParseListingPage(html string, offset int) (*domain.ListingPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &domain.ListingPage{
		Offset:  offset,
		Entries: make([]domain.ListingEntry, 0),
	}

	matchText := strings.TrimSpace(doc.Find("div[class='results-options--option -matches'] var").First().Text())
	if matchText == "" {
		return nil, fmt.Errorf("no match count found on listing page")
	}

	total, err := strconv.Atoi(strings.ReplaceAll(matchText, ",", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to parse match count %q: %w", matchText, err)
	}
	page.TotalMatches = total

	doc.Find("div#resultsContent div.product").Each(func(i int, tile *goquery.Selection) {
		title := tile.Find("div.productTitle").First()

		name := strings.TrimSpace(title.Text())
		href, exists := title.Find("a").First().Attr("href")
		if name == "" || !exists {
			return
		}

		if !strings.HasPrefix(href, "http") {
			href = p.baseURL + href
		}

		page.Entries = append(page.Entries, domain.ListingEntry{
			Name: name,
			URL:  href,
		})
	})

	log.Debugf("Parsed listing page at offset %d with %d entries", offset, len(page.Entries))
	return page, nil
}
