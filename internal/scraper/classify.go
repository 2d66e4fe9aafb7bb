package scraper

import (
	"regexp"
	"strings"

	"github.com/onedash/product-scraper/internal/models"
)

// Shopee product URL shapes, attempted in order. First match wins.
//
// Format 1: https://shopee.co.id/Product-Name-i.123456.789012
// Format 2: https://shopee.co.id/product/123456/789012
var (
	shopeeSEOPattern  = regexp.MustCompile(`i\.(\d+)\.(\d+)`)
	shopeePathPattern = regexp.MustCompile(`product/(\d+)/(\d+)`)

	// Format: https://www.tokopedia.com/shopname/product-slug?query
	// The slug excludes both "/" and "?" so the query string never
	// leaks into the reference.
	tokopediaPattern = regexp.MustCompile(`tokopedia\.com/([^/]+)/([^/?]+)`)
)

// Classify pattern-matches a product URL against known marketplace
// shapes and produces a typed reference. The input is not validated as
// a syntactically correct URL beyond what the patterns require.
//
// Platform dispatch is a plain substring check ("shopee" before
// "tokopedia"); a URL matching neither is a validation error. A URL on
// a recognized platform whose identifiers cannot be captured is also a
// validation error, with a platform-specific message.
func Classify(rawURL string) (models.ProductReference, error) {
	switch {
	case strings.Contains(rawURL, "shopee"):
		return classifyShopee(rawURL)
	case strings.Contains(rawURL, "tokopedia"):
		return classifyTokopedia(rawURL)
	}
	return models.ProductReference{Platform: models.PlatformUnknown},
		models.NewValidationError(models.MsgUnsupportedPlatform)
}

func classifyShopee(rawURL string) (models.ProductReference, error) {
	if m := shopeeSEOPattern.FindStringSubmatch(rawURL); m != nil {
		return models.ProductReference{
			Platform: models.PlatformShopee,
			ShopID:   m[1],
			ItemID:   m[2],
		}, nil
	}
	if m := shopeePathPattern.FindStringSubmatch(rawURL); m != nil {
		return models.ProductReference{
			Platform: models.PlatformShopee,
			ShopID:   m[1],
			ItemID:   m[2],
		}, nil
	}

	// Short links (s.shopee.co.id/...) belong to the platform but carry
	// no shop/item IDs; resolving them would require following the
	// redirect, which this classifier does not do. Known limitation.
	return models.ProductReference{Platform: models.PlatformShopee},
		models.NewValidationError(models.MsgInvalidShopeeURL)
}

func classifyTokopedia(rawURL string) (models.ProductReference, error) {
	if m := tokopediaPattern.FindStringSubmatch(rawURL); m != nil {
		return models.ProductReference{
			Platform:    models.PlatformTokopedia,
			ShopSlug:    m[1],
			ProductSlug: m[2],
		}, nil
	}
	return models.ProductReference{Platform: models.PlatformTokopedia},
		models.NewValidationError(models.MsgInvalidTokopediaURL)
}
