package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extraction is layered per field: each helper tries a structured
// lookup first and degrades to pattern matching over the raw markup,
// so minor layout drift on one signal does not lose the whole record.

var (
	jsonLDProductPattern = regexp.MustCompile(`<script[^>]*type="application/ld\+json"[^>]*>([\s\S]*?)</script>`)

	metaPropertyFirst = `property="%s"[^>]*content="([^"]*)"`
	metaContentFirst  = `content="([^"]*)"[^>]*property="%s"`
	metaItempropFirst = `itemprop="%s"[^>]*content="([^"]*)"`
	metaNameFirst     = `name="%s"[^>]*content="([^"]*)"`
)

// extractMetaContent pulls the content of a meta tag by property name.
// The parsed-document lookup handles well-formed markup; the pattern
// variants tolerate attribute reordering, itemprop and name spellings
// that the marketplaces switch between.
func extractMetaContent(html *goquery.Document, raw, property string) string {
	if html != nil {
		if v, ok := html.Find(fmt.Sprintf(`meta[property=%q]`, property)).Attr("content"); ok && v != "" {
			return v
		}
		if v, ok := html.Find(fmt.Sprintf(`meta[name=%q]`, property)).Attr("content"); ok && v != "" {
			return v
		}
		if v, ok := html.Find(fmt.Sprintf(`meta[itemprop=%q]`, property)).Attr("content"); ok && v != "" {
			return v
		}
	}

	for _, format := range []string{metaPropertyFirst, metaContentFirst, metaItempropFirst, metaNameFirst} {
		re := regexp.MustCompile(fmt.Sprintf(format, regexp.QuoteMeta(property)))
		if m := re.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
	}

	return ""
}

// findJSONLDBlocks returns the bodies of every ld+json script block in
// document order, preferring the parsed document and falling back to a
// raw-markup scan.
func findJSONLDBlocks(html *goquery.Document, raw string) []string {
	var blocks []string

	if html != nil {
		html.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				blocks = append(blocks, text)
			}
		})
	}
	if len(blocks) > 0 {
		return blocks
	}

	for _, m := range jsonLDProductPattern.FindAllStringSubmatch(raw, -1) {
		if text := strings.TrimSpace(m[1]); text != "" {
			blocks = append(blocks, text)
		}
	}
	return blocks
}

// findProductJSONLD returns the first ld+json block describing a
// schema.org Product, or "" when none exists.
func findProductJSONLD(html *goquery.Document, raw string) string {
	typePattern := regexp.MustCompile(`"@type"\s*:\s*"Product"`)
	for _, block := range findJSONLDBlocks(html, raw) {
		if typePattern.MatchString(block) {
			return block
		}
	}
	return ""
}

// Numeric parsing policy: marketplace payloads quote numbers
// inconsistently ("150000" vs 150000), and individual malformed values
// must degrade to zero rather than fail the record. Only structural
// absence of a whole data source is fatal, and that decision belongs
// to the caller.

// parseFloat parses a number that may carry surrounding quotes or
// whitespace. Malformed input parses to 0.
func parseFloat(s string) float64 {
	s = strings.Trim(strings.TrimSpace(s), `"`)
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// parseInt is parseFloat for integers, truncating fractional input.
func parseInt(s string) int {
	return int(parseFloat(s))
}

// extractNumericField finds a named numeric field inside a JSON-ish
// text block, tolerating both quoted and bare values. Returns 0 when
// the field is absent or malformed.
func extractNumericField(block, field string) float64 {
	re := regexp.MustCompile(fmt.Sprintf(`"%s"\s*:\s*"?([\d.]+)"?`, regexp.QuoteMeta(field)))
	if m := re.FindStringSubmatch(block); m != nil {
		return parseFloat(m[1])
	}
	return 0
}

// extractLastNumericField is extractNumericField taking the last
// occurrence instead of the first. On pages embedding both a seller
// and a product aggregateRating, the product's appears last.
func extractLastNumericField(block, field string) float64 {
	re := regexp.MustCompile(fmt.Sprintf(`"%s"\s*:\s*"?([\d.]+)"?`, regexp.QuoteMeta(field)))
	all := re.FindAllStringSubmatch(block, -1)
	if len(all) == 0 {
		return 0
	}
	return parseFloat(all[len(all)-1][1])
}

// parseDocument parses raw HTML into a goquery document. A nil return
// simply drops the structured layer; the regex layers still apply.
func parseDocument(raw string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil
	}
	return doc
}
