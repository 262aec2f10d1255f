package client

import (
	"fmt"
	"strings"

	"guitarcenter/harvester/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

type brandParser struct {
	baseURL string
}

func newBrandParser(baseURL string) *brandParser {
	return &brandParser{
		baseURL: baseURL,
	}
}

// ParseBrandList extracts vendor name -> reference page URL pairs from the
// manufacturer index page.
func (p *brandParser) ParseBrandList(html string) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	links := make(map[string]string)
	doc.Find("div.div-col.columns.column-width li").Each(func(i int, li *goquery.Selection) {
		anchor := li.Find("a").First()

		name := anchor.Text()
		href, exists := anchor.Attr("href")
		if name == "" || !exists {
			return
		}

		if !strings.HasPrefix(href, "http") {
			href = p.baseURL + href
		}
		links[name] = href
	})

	if len(links) == 0 {
		return nil, fmt.Errorf("no vendor entries found on index page")
	}

	log.Debugf("Parsed %d vendor entries from index page", len(links))
	return links, nil
}

// ParseBrand builds a Brand from a vendor reference page. The structured
// info table may be missing or use either of two layouts; the record
// degrades to country absent and website = refURL rather than failing.
func (p *brandParser) ParseBrand(name, html, refURL string) (*domain.Brand, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	brand := &domain.Brand{
		Name:    name,
		Website: refURL,
	}

	info := p.extractInfoRows(doc)

	if hq, ok := info["headquarters"]; ok {
		brand.Country = hq.Find("div.country-name").Text()
	} else if country, ok := info["country"]; ok {
		brand.Country = country.Text()
	}
	brand.Country = strings.TrimRight(brand.Country, ",. \t\n")

	if website, ok := info["website"]; ok {
		if href, exists := website.Find("a").First().Attr("href"); exists {
			brand.Website = href
		}
	}

	brand.Description = p.extractDescription(doc)

	return brand, nil
}

// extractInfoRows maps lowercased header text to the value cell for each
// row of the structured info table.
func (p *brandParser) extractInfoRows(doc *goquery.Document) map[string]*goquery.Selection {
	info := make(map[string]*goquery.Selection)
	doc.Find("table.infobox.vcard tr").Each(func(i int, row *goquery.Selection) {
		header := row.Find("th").First()
		value := row.Find("td").First()
		if header.Length() == 0 || value.Length() == 0 {
			return
		}
		info[strings.ToLower(strings.TrimSpace(header.Text()))] = value
	})
	return info
}

// extractDescription reads the first body paragraph, skipping to the
// second when the first is a coordinates/geodata marker.
func (p *brandParser) extractDescription(doc *goquery.Document) string {
	paragraphs := doc.Find("div#mw-content-text div.mw-parser-output p")
	if paragraphs.Length() == 0 {
		log.Debug("No body paragraphs found on vendor reference page")
		return ""
	}

	first := paragraphs.Eq(0)
	markup, err := goquery.OuterHtml(first)
	if err == nil && strings.Contains(markup, "coordinates") && paragraphs.Length() > 1 {
		return paragraphs.Eq(1).Text()
	}
	return first.Text()
}
