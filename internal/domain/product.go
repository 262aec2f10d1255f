package domain

import "strings"

// Product is a normalized catalog record built from a single detail page.
// Exactly one of BrandID / OtherBrand is set: BrandID when the vendor text
// resolved to a known brand, OtherBrand with the raw text otherwise.
type Product struct {
	Name        string   `json:"name"`
	BrandID     int64    `json:"brand_id,omitempty"`
	OtherBrand  string   `json:"other_brand,omitempty"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price,omitempty"` // nil when the source price was unparsable
	Styles      []string `json:"styles,omitempty"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	PicURL      string   `json:"pic_url"`
	URL         string   `json:"url"` // detail page URL, natural key
}

// StyleDisplay flattens the style list the way the catalog shows it.
func (p *Product) StyleDisplay() string {
	return strings.Join(p.Styles, ", ")
}

// FeatureDisplay flattens the specs-section items into a single text column.
func (p *Product) FeatureDisplay() string {
	return strings.Join(p.Features, " \n ")
}

// ProductView is a search result row: the product joined against the brand
// table, with Brand falling back to the free-text vendor when unresolved.
type ProductView struct {
	Product
	Brand string `json:"brand"`
}
