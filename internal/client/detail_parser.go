package client

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"guitarcenter/harvester/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

type detailParser struct{}

func newDetailParser() *detailParser {
	return &detailParser{}
}

// ParseProduct builds a Product from a detail page. A page without the
// title block is not a product page and yields (nil, nil). Every optional
// field fails soft to its zero value; only the image and the breadcrumb
// category are hard requirements.
func (p *detailParser) ParseProduct(html, sourceURL string) (*domain.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := doc.Find("div.titleWrap").First()
	if title.Length() == 0 {
		return nil, nil
	}

	product := &domain.Product{
		Name: strings.TrimLeftFunc(title.Text(), unicode.IsSpace),
		URL:  sourceURL,
	}

	// Raw vendor text; the caller runs it through the brand resolver.
	product.OtherBrand = strings.TrimSpace(title.Find("span.brand").First().Text())

	picURL, exists := doc.Find("div.product-left img").First().Attr("src")
	if !exists {
		return nil, fmt.Errorf("no product image found on %s", sourceURL)
	}
	product.PicURL = picURL

	product.Price = p.extractPrice(doc)
	product.Description = doc.Find("section#product-overview p.description").First().Text()
	product.Styles = p.extractStyles(doc, title)

	category, err := p.extractCategory(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to extract category from %s: %w", sourceURL, err)
	}
	product.Category = category

	product.Features = p.extractFeatures(doc)

	log.Debugf("Parsed product %q from %s", product.Name, sourceURL)
	return product, nil
}

// extractPrice returns nil on any parse failure, never an error.
func (p *detailParser) extractPrice(doc *goquery.Document) *float64 {
	raw := strings.TrimSpace(doc.Find("span.topAlignedPrice").First().Text())
	raw = strings.Trim(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &price
}

// extractStyles collects the style-option labels, falling back to the
// single SKU-style label from the title block when no style list exists.
func (p *detailParser) extractStyles(doc *goquery.Document, title *goquery.Selection) []string {
	var styles []string
	doc.Find("div#chooseStyleWrap li").Each(func(i int, li *goquery.Selection) {
		if label := strings.TrimSpace(li.Find("div.styleLabel").Text()); label != "" {
			styles = append(styles, label)
		}
	})

	if len(styles) < 1 {
		if sku := strings.TrimSpace(title.Find("span.skuStyle").First().Text()); sku != "" {
			styles = []string{sku}
		}
	}

	return styles
}

// extractCategory reads the third breadcrumb link, falling back to the
// second. Anything less is a hard failure.
func (p *detailParser) extractCategory(doc *goquery.Document) (string, error) {
	categories := doc.Find("a.category")
	switch {
	case categories.Length() > 2:
		return categories.Eq(2).Text(), nil
	case categories.Length() > 1:
		return categories.Eq(1).Text(), nil
	default:
		return "", fmt.Errorf("breadcrumb trail has %d categories", categories.Length())
	}
}

func (p *detailParser) extractFeatures(doc *goquery.Document) []string {
	var features []string
	doc.Find("div.specs ul li").Each(func(i int, li *goquery.Selection) {
		features = append(features, strings.TrimSpace(li.Text()))
	})
	return features
}
