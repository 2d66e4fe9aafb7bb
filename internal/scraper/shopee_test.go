package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedash/product-scraper/internal/models"
)

// shopeeProductPage mirrors what Shopee serves to a link-preview
// crawler identity: OG meta tags plus JSON-LD, no SPA shell.
const shopeeProductPage = `<!DOCTYPE html>
<html>
<head>
<meta property="og:title" content="Jual Kaos Polos Premium Cotton Combed | Shopee Indonesia"/>
<meta property="og:image" content="https://cf.shopee.co.id/file/preview-lowres"/>
<meta property="og:url" content="https://shopee.co.id/product/123456/789012"/>
<script type="application/ld+json">{"@context":"https://schema.org/","@type":"Product","name":"Kaos Polos Premium Cotton Combed","image":"https://cf.shopee.co.id/file/preview-lowres","aggregateRating":{"@type":"AggregateRating","ratingValue":"4.8","ratingCount":"231"},"offers":{"@type":"Offer","price":"150000","priceCurrency":"IDR","availability":"https://schema.org/InStock"}}</script>
</head>
<body>
<img src="https://down-id.img.susercontent.com/file/id-11134207-full-resolution" srcset="..."/>
</body>
</html>`

func shopeeRef() models.ProductReference {
	return models.ProductReference{
		Platform: models.PlatformShopee,
		ShopID:   "123456",
		ItemID:   "789012",
	}
}

func TestExtractShopeeProduct(t *testing.T) {
	raw := models.RawFetchResult{StatusOK: true, Body: shopeeProductPage, Kind: models.ContentHTML}

	product := extractShopeeProduct(raw, shopeeRef())
	require.NotNil(t, product)

	assert.Equal(t, "shopee", product.Platform)
	assert.Equal(t, "789012", product.ID)
	assert.Equal(t, "Kaos Polos Premium Cotton Combed", product.Name)
	assert.Equal(t, float64(150000), product.Price)
	assert.Equal(t, 4.8, product.Rating)
	assert.Equal(t, 231, product.RatingCount)
	// No explicit sold counter on the page: ratingCount is the proxy.
	assert.Equal(t, 231, product.Sold)
	assert.Equal(t, 1, product.Stock)
	assert.Equal(t, models.Shop{ID: "123456", Name: "Shopee"}, product.Shop)

	// The full-resolution CDN asset overrides og:image even though
	// og:image was found first.
	assert.Equal(t, "https://down-id.img.susercontent.com/file/id-11134207-full-resolution", product.Image)
	assert.Equal(t, []string{product.Image}, product.Images)
}

func TestExtractShopeeProductWithoutCDNImage(t *testing.T) {
	page := `<html><head>
<meta property="og:title" content="Jual Tumbler Stainless | Shopee Indonesia"/>
<meta property="og:image" content="https://cf.shopee.co.id/file/preview-only"/>
</head><body></body></html>`

	raw := models.RawFetchResult{StatusOK: true, Body: page, Kind: models.ContentHTML}
	product := extractShopeeProduct(raw, shopeeRef())

	assert.Equal(t, "https://cf.shopee.co.id/file/preview-only", product.Image)
	assert.Equal(t, "Tumbler Stainless", product.Name)
	// No JSON-LD at all: numeric fields degrade to zero values, the
	// record itself still comes back.
	assert.Equal(t, float64(0), product.Price)
	assert.Equal(t, float64(0), product.Rating)
}

func TestCleanShopeeTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "prefix and suffix stripped",
			title:    "Jual Kaos Polos | Shopee Indonesia",
			expected: "Kaos Polos",
		},
		{
			name:     "idempotent on already-clean title",
			title:    "Kaos Polos",
			expected: "Kaos Polos",
		},
		{
			name:     "mid-string Jual survives",
			title:    "Buku Panduan Jual Beli Online",
			expected: "Buku Panduan Jual Beli Online",
		},
		{
			name:     "mid-string pipe before suffix",
			title:    "Jual Headset Gaming | Garansi Resmi | Shopee Indonesia",
			expected: "Headset Gaming | Garansi Resmi",
		},
		{
			name:     "empty title",
			title:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanShopeeTitle(tt.title))
		})
	}
}

func TestCleanShopeeTitleIdempotent(t *testing.T) {
	once := cleanShopeeTitle("Jual Kaos Polos | Shopee Indonesia")
	twice := cleanShopeeTitle(once)
	assert.Equal(t, once, twice)
}

func TestExtractShopeePrice(t *testing.T) {
	// AggregateOffer pages expose lowPrice; it wins over a plain price
	// when both are present.
	block := `{"@type":"Product","offers":{"@type":"AggregateOffer","lowPrice":"120000","highPrice":"180000","price":"180000"}}`
	assert.Equal(t, float64(120000), extractShopeePrice(block))

	plain := `{"@type":"Product","offers":{"price":95000}}`
	assert.Equal(t, float64(95000), extractShopeePrice(plain))
}

func TestExtractShopeeSold(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		rating   int
		expected int
	}{
		{
			name:     "json-ld sold field",
			body:     `{"sold": 1520}`,
			expected: 1520,
		},
		{
			name:     "terjual text with thousands suffix",
			body:     `<div>1.2 rb terjual</div>`,
			expected: 1200,
		},
		{
			name:     "plain terjual text",
			body:     `<div>500+ terjual</div>`,
			expected: 500,
		},
		{
			name:     "rating count proxy when nothing else matches",
			body:     `<div>no counters here</div>`,
			rating:   231,
			expected: 231,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractShopeeSold(tt.body, tt.rating))
		})
	}
}

func TestParseSoldValue(t *testing.T) {
	assert.Equal(t, 1200, parseSoldValue("1.2", "rb"))
	assert.Equal(t, 3000, parseSoldValue("3", "k"))
	assert.Equal(t, 500, parseSoldValue("500", ""))
	assert.Equal(t, 1500, parseSoldValue("1,5", "rb"))
}
