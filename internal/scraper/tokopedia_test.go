package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedash/product-scraper/internal/models"
)

const tokopediaAPIPayload = `{
  "data": {
    "pdpGetLayout": {
      "components": [
        {"name": "product_media", "data": [{"media": []}]},
        {"name": "product_content", "data": [{
          "id": 15936452,
          "name": "Widget X Original",
          "price": {"value": 250000, "currency": "IDR"},
          "campaign": {"originalPrice": 300000, "discountPercentage": 17},
          "pictures": [
            {"urlThumbnail": "https://images.tokopedia.net/thumb-1.jpg", "urlOriginal": "https://images.tokopedia.net/orig-1.jpg"},
            {"urlThumbnail": "https://images.tokopedia.net/thumb-2.jpg", "urlOriginal": "https://images.tokopedia.net/orig-2.jpg"}
          ],
          "txStats": {"countSold": 54},
          "stock": {"value": 12},
          "rating": 4.9
        }]}
      ]
    }
  }
}`

func tokopediaRef() models.ProductReference {
	return models.ProductReference{
		Platform:    models.PlatformTokopedia,
		ShopSlug:    "acme-store",
		ProductSlug: "widget-x",
	}
}

func TestExtractTokopediaAPI(t *testing.T) {
	raw := models.RawFetchResult{StatusOK: true, Body: tokopediaAPIPayload, Kind: models.ContentJSON}

	product, ok := extractTokopediaAPI(raw, tokopediaRef())
	require.True(t, ok)

	assert.Equal(t, "tokopedia", product.Platform)
	assert.Equal(t, "15936452", product.ID)
	assert.Equal(t, "Widget X Original", product.Name)
	assert.Equal(t, float64(250000), product.Price)
	require.NotNil(t, product.OriginalPrice)
	assert.Equal(t, float64(300000), *product.OriginalPrice)
	assert.Equal(t, float64(17), product.Discount)
	assert.Equal(t, "https://images.tokopedia.net/thumb-1.jpg", product.Image)
	assert.Equal(t, []string{
		"https://images.tokopedia.net/orig-1.jpg",
		"https://images.tokopedia.net/orig-2.jpg",
	}, product.Images)
	assert.Equal(t, 54, product.Sold)
	// Literal stock count, unlike Shopee's availability flag.
	assert.Equal(t, 12, product.Stock)
	assert.Equal(t, 4.9, product.Rating)
	assert.Equal(t, models.Shop{Name: "acme-store"}, product.Shop)
}

func TestExtractTokopediaAPIStringID(t *testing.T) {
	payload := `{"data":{"pdpGetLayout":{"components":[
		{"name":"product_content","data":[{"id":"9988776655","name":"Widget"}]}
	]}}}`
	raw := models.RawFetchResult{StatusOK: true, Body: payload, Kind: models.ContentJSON}

	product, ok := extractTokopediaAPI(raw, tokopediaRef())
	require.True(t, ok)
	assert.Equal(t, "9988776655", product.ID)
}

func TestExtractTokopediaAPIComponentMissing(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "no product_content component",
			body: `{"data":{"pdpGetLayout":{"components":[{"name":"product_media","data":[{}]}]}}}`,
		},
		{
			name: "product_content has no data entries",
			body: `{"data":{"pdpGetLayout":{"components":[{"name":"product_content","data":[]}]}}}`,
		},
		{
			name: "empty components",
			body: `{"data":{"pdpGetLayout":{"components":[]}}}`,
		},
		{
			name: "not json at all",
			body: `<html>bot check</html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := models.RawFetchResult{StatusOK: true, Body: tt.body, Kind: models.ContentJSON}
			product, ok := extractTokopediaAPI(raw, tokopediaRef())
			assert.False(t, ok)
			assert.Nil(t, product)
		})
	}
}

func TestExtractTokopediaAPIMissingFieldsDefault(t *testing.T) {
	// Absent numeric fields stay at type-correct zero values; only the
	// structural absence of the component fails the strategy.
	payload := `{"data":{"pdpGetLayout":{"components":[
		{"name":"product_content","data":[{"id":1,"name":"Bare Widget"}]}
	]}}}`
	raw := models.RawFetchResult{StatusOK: true, Body: payload, Kind: models.ContentJSON}

	product, ok := extractTokopediaAPI(raw, tokopediaRef())
	require.True(t, ok)
	assert.Equal(t, "Bare Widget", product.Name)
	assert.Equal(t, float64(0), product.Price)
	assert.Nil(t, product.OriginalPrice)
	assert.Equal(t, float64(0), product.Discount)
	assert.Empty(t, product.Image)
	assert.Empty(t, product.Images)
	assert.Equal(t, 0, product.Sold)
	assert.Equal(t, 0, product.Stock)
	assert.Equal(t, float64(0), product.Rating)
}

const tokopediaProductPage = `<!DOCTYPE html>
<html>
<head>
<script type="application/ld+json">
{
  "@context": "http://schema.org/",
  "@type": "Product",
  "name": "Widget X Original",
  "image": "https://images.tokopedia.net/orig-1.jpg",
  "offers": {
    "@type": "Offer",
    "price": "250000",
    "priceCurrency": "IDR",
    "availability": "InStock"
  },
  "aggregateRating": {
    "@type": "AggregateRating",
    "ratingValue": "4.9"
  }
}
</script>
</head>
<body></body>
</html>`

func TestExtractTokopediaJSONLD(t *testing.T) {
	raw := models.RawFetchResult{StatusOK: true, Body: tokopediaProductPage, Kind: models.ContentHTML}

	product, ok := extractTokopediaJSONLD(raw, tokopediaRef())
	require.True(t, ok)

	assert.Equal(t, "tokopedia", product.Platform)
	assert.Equal(t, "widget-x", product.ID)
	assert.Equal(t, "Widget X Original", product.Name)
	assert.Equal(t, float64(250000), product.Price)
	assert.Equal(t, "https://images.tokopedia.net/orig-1.jpg", product.Image)
	assert.Equal(t, 1, product.Stock)
	assert.Equal(t, 4.9, product.Rating)
	assert.Nil(t, product.OriginalPrice)
	assert.Equal(t, models.Shop{Name: "acme-store"}, product.Shop)
}

func TestExtractTokopediaJSONLDBarePriceAndOutOfStock(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
	{"@type":"Product","name":"Widget","offers":{"price":250000,"availability":"OutOfStock"}}
	</script></head></html>`
	raw := models.RawFetchResult{StatusOK: true, Body: page, Kind: models.ContentHTML}

	product, ok := extractTokopediaJSONLD(raw, tokopediaRef())
	require.True(t, ok)
	assert.Equal(t, float64(250000), product.Price)
	assert.Equal(t, 0, product.Stock)
}

func TestExtractTokopediaJSONLDImageList(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
	{"@type":"Product","name":"Widget","image":["https://images.tokopedia.net/a.jpg","https://images.tokopedia.net/b.jpg"]}
	</script></head></html>`
	raw := models.RawFetchResult{StatusOK: true, Body: page, Kind: models.ContentHTML}

	product, ok := extractTokopediaJSONLD(raw, tokopediaRef())
	require.True(t, ok)
	assert.Equal(t, "https://images.tokopedia.net/a.jpg", product.Image)
}

func TestExtractTokopediaJSONLDRejectsNonProduct(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "wrong type",
			body: `<html><head><script type="application/ld+json">{"@type":"BreadcrumbList"}</script></head></html>`,
		},
		{
			name: "no json-ld block",
			body: `<html><body><p>nothing structured</p></body></html>`,
		},
		{
			name: "malformed json",
			body: `<html><head><script type="application/ld+json">{"@type":"Product",</script></head></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := models.RawFetchResult{StatusOK: true, Body: tt.body, Kind: models.ContentHTML}
			product, ok := extractTokopediaJSONLD(raw, tokopediaRef())
			assert.False(t, ok)
			assert.Nil(t, product)
		})
	}
}
