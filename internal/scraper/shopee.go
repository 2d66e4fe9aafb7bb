package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/onedash/product-scraper/internal/models"
)

var (
	// Anchored cleanup rules: the vernacular "Jual" for-sale prefix and
	// the "| Shopee Indonesia" suffix are stripped only at the string
	// boundaries, so titles legitimately containing those words
	// mid-string survive intact.
	shopeeTitlePrefix = regexp.MustCompile(`^Jual\s+`)
	shopeeTitleSuffix = regexp.MustCompile(`\s*\|\s*Shopee.*$`)

	// Full-resolution CDN asset. When present it always overrides the
	// og:image preview, which is a downscaled copy of the same asset.
	shopeeCDNImagePattern = regexp.MustCompile(`src="(https://down-id\.img\.susercontent\.com/file/[^"@]+)"`)

	shopeeSoldJSONPattern = regexp.MustCompile(`"sold"\s*:\s*(\d+)`)
	shopeeSoldTextPattern = regexp.MustCompile(`([\d.,]+)\s*(rb|k|K)?\s*\+?\s*terjual`)
)

// extractShopeeProduct maps a server-rendered Shopee page onto the
// canonical Product. Each field tries its own ordered signals
// independently; a page can contribute a title from one signal and an
// image from another.
func extractShopeeProduct(raw models.RawFetchResult, ref models.ProductReference) *models.Product {
	doc := parseDocument(raw.Body)
	product := models.NewProduct(models.PlatformShopee, ref.ItemID)

	product.Name = cleanShopeeTitle(extractMetaContent(doc, raw.Body, "og:title"))
	product.Image = extractShopeeImage(doc, raw.Body)
	if product.Image != "" {
		product.Images = []string{product.Image}
	}

	ld := findProductJSONLD(doc, raw.Body)
	searchBody := ld
	if searchBody == "" {
		searchBody = raw.Body
	}
	product.Price = extractShopeePrice(searchBody)
	product.Rating = extractLastNumericField(searchBody, "ratingValue")
	product.RatingCount = int(extractLastNumericField(searchBody, "ratingCount"))
	product.Sold = extractShopeeSold(raw.Body, product.RatingCount)

	// Shopee exposes availability, not a count.
	product.Stock = 1
	product.Shop = models.Shop{ID: ref.ShopID, Name: "Shopee"}

	return product
}

// extractShopeePrice reads the price from the JSON-LD block. Variant
// pages publish an AggregateOffer whose lowPrice is the displayed
// price; single-offer pages publish a plain price.
func extractShopeePrice(block string) float64 {
	if price := extractNumericField(block, "lowPrice"); price > 0 {
		return price
	}
	return extractNumericField(block, "price")
}

func cleanShopeeTitle(title string) string {
	title = shopeeTitlePrefix.ReplaceAllString(title, "")
	title = shopeeTitleSuffix.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}

func extractShopeeImage(doc *goquery.Document, raw string) string {
	image := extractMetaContent(doc, raw, "og:image")
	if m := shopeeCDNImagePattern.FindStringSubmatch(raw); m != nil {
		image = m[1]
	}
	return image
}

// extractShopeeSold layers three signals: the JSON-LD "sold" number,
// the vernacular "terjual" counter text ("1.2rb terjual"), and finally
// the product's ratingCount as a proxy for completed transactions.
func extractShopeeSold(raw string, ratingCount int) int {
	if m := shopeeSoldJSONPattern.FindStringSubmatch(raw); m != nil {
		return parseInt(m[1])
	}

	if m := shopeeSoldTextPattern.FindStringSubmatch(raw); m != nil {
		return parseSoldValue(m[1], m[2])
	}

	return ratingCount
}

// parseSoldValue parses a display count with an optional Indonesian
// thousands suffix ("rb") or the latin "k".
func parseSoldValue(value, suffix string) int {
	multiplier := 1.0
	suffix = strings.ToLower(suffix)
	if strings.Contains(suffix, "rb") || strings.Contains(suffix, "k") {
		multiplier = 1000.0
	}

	value = strings.ReplaceAll(value, ",", ".")
	return int(parseFloat(value) * multiplier)
}
