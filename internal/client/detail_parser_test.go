package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type detailPage struct {
	title    string
	brand    string
	sku      string
	imageTag string
	price    string
	overview string
	styles   []string
	crumbs   []string
	specs    string
}

func defaultDetailPage() detailPage {
	return detailPage{
		title:    "Fender Player Jazz Bass",
		brand:    "Fender",
		imageTag: `<div class="product-left"><img src="https://img.example/jazz.jpg"/></div>`,
		price:    `<span class="topAlignedPrice"> $1,199.99 </span>`,
		overview: `<section id="product-overview"><p class="description">A classic four string.</p></section>`,
		styles:   []string{"3-Color Sunburst", "Black"},
		crumbs:   []string{"Home", "Bass", "4 String Electric Bass"},
		specs:    `<div class="specs"><ul><li> Alder body </li><li>Maple neck</li></ul><ul><li>20 frets</li></ul></div>`,
	}
}

func (p detailPage) render() string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, crumb := range p.crumbs {
		b.WriteString(`<a class="category" href="#">` + crumb + `</a>`)
	}
	if p.title != "" {
		b.WriteString(`<div class="titleWrap">  ` + p.title)
		if p.brand != "" {
			b.WriteString(`<span class="brand"> ` + p.brand + ` </span>`)
		}
		if p.sku != "" {
			b.WriteString(`<span class="skuStyle">` + p.sku + `</span>`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(p.imageTag)
	b.WriteString(p.price)
	b.WriteString(p.overview)
	if p.styles != nil {
		b.WriteString(`<div id="chooseStyleWrap"><ul>`)
		for _, style := range p.styles {
			b.WriteString(`<li><div class="styleLabel">` + style + `</div></li>`)
		}
		b.WriteString(`</ul></div>`)
	}
	b.WriteString(p.specs)
	b.WriteString("</body></html>")
	return b.String()
}

const detailURL = "https://shop.example/fender-player.gc"

func TestParseProductFullPage(t *testing.T) {
	parser := newDetailParser()

	product, err := parser.ParseProduct(defaultDetailPage().render(), detailURL)
	require.NoError(t, err)
	require.NotNil(t, product)

	// The title block text includes its sub-elements; only leading
	// whitespace is trimmed.
	assert.Equal(t, "Fender Player Jazz Bass Fender ", product.Name)
	assert.Equal(t, "Fender", product.OtherBrand)
	assert.Equal(t, "https://img.example/jazz.jpg", product.PicURL)
	require.NotNil(t, product.Price)
	assert.Equal(t, 1199.99, *product.Price)
	assert.Equal(t, "A classic four string.", product.Description)
	assert.Equal(t, []string{"3-Color Sunburst", "Black"}, product.Styles)
	assert.Equal(t, "3-Color Sunburst, Black", product.StyleDisplay())
	assert.Equal(t, "4 String Electric Bass", product.Category)
	assert.Equal(t, []string{"Alder body", "Maple neck", "20 frets"}, product.Features)
	assert.Equal(t, "Alder body \n Maple neck \n 20 frets", product.FeatureDisplay())
	assert.Equal(t, detailURL, product.URL)
}

func TestParseProductMissingTitleBlockIsNotAProduct(t *testing.T) {
	parser := newDetailParser()

	page := defaultDetailPage()
	page.title = ""
	product, err := parser.ParseProduct(page.render(), detailURL)
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestParseProductStylesFallBackToSKULabel(t *testing.T) {
	parser := newDetailParser()

	page := defaultDetailPage()
	page.styles = nil
	page.sku = "3-Color Sunburst"
	product, err := parser.ParseProduct(page.render(), detailURL)
	require.NoError(t, err)
	require.NotNil(t, product)

	assert.Equal(t, []string{"3-Color Sunburst"}, product.Styles)
}

func TestParseProductEmptyStyleListFallsBackToSKULabel(t *testing.T) {
	parser := newDetailParser()

	page := defaultDetailPage()
	page.styles = []string{}
	page.sku = "Vintage White"
	product, err := parser.ParseProduct(page.render(), detailURL)
	require.NoError(t, err)
	require.NotNil(t, product)

	assert.Equal(t, []string{"Vintage White"}, product.Styles)
}

func TestParseProductUnparsablePriceIsAbsent(t *testing.T) {
	parser := newDetailParser()

	for _, price := range []string{
		`<span class="topAlignedPrice">Call for price</span>`,
		`<span class="topAlignedPrice"></span>`,
		"",
	} {
		page := defaultDetailPage()
		page.price = price
		product, err := parser.ParseProduct(page.render(), detailURL)
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Nil(t, product.Price)
	}
}

func TestParseProductMissingOverviewLeavesDescriptionEmpty(t *testing.T) {
	parser := newDetailParser()

	page := defaultDetailPage()
	page.overview = ""
	product, err := parser.ParseProduct(page.render(), detailURL)
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Empty(t, product.Description)
}

func TestParseProductMissingSpecsLeavesFeaturesEmpty(t *testing.T) {
	parser := newDetailParser()

	page := defaultDetailPage()
	page.specs = ""
	product, err := parser.ParseProduct(page.render(), detailURL)
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Empty(t, product.Features)
}

func TestParseProductCategoryFallsBackToSecondCrumb(t *testing.T) {
	parser := newDetailParser()

	page := defaultDetailPage()
	page.crumbs = []string{"Home", "Bass"}
	product, err := parser.ParseProduct(page.render(), detailURL)
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Bass", product.Category)
}

func TestParseProductMissingCategoryTrailFails(t *testing.T) {
	parser := newDetailParser()

	page := defaultDetailPage()
	page.crumbs = []string{"Home"}
	_, err := parser.ParseProduct(page.render(), detailURL)
	assert.Error(t, err)
}

func TestParseProductMissingImageFails(t *testing.T) {
	parser := newDetailParser()

	page := defaultDetailPage()
	page.imageTag = ""
	_, err := parser.ParseProduct(page.render(), detailURL)
	assert.Error(t, err)
}
