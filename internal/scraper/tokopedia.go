package scraper

import (
	"encoding/json"
	"strings"

	"github.com/onedash/product-scraper/internal/models"
)

// The aggregation endpoint returns a component list; the fields we
// need live in the first data entry of the component named
// "product_content". The structs model only what is read.

const productContentComponent = "product_content"

type pdpResponse struct {
	Data struct {
		PdpGetLayout struct {
			Components []pdpComponent `json:"components"`
		} `json:"pdpGetLayout"`
	} `json:"data"`
}

// Data stays raw until the component is matched by name: sibling
// components reuse the "data" key with unrelated shapes, and decoding
// them eagerly would fail the whole payload.
type pdpComponent struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

type pdpBasicInfo struct {
	ID    flexID `json:"id"`
	Name  string `json:"name"`
	Price struct {
		Value float64 `json:"value"`
	} `json:"price"`
	Campaign struct {
		OriginalPrice      float64 `json:"originalPrice"`
		DiscountPercentage float64 `json:"discountPercentage"`
	} `json:"campaign"`
	Pictures []struct {
		URLThumbnail string `json:"urlThumbnail"`
		URLOriginal  string `json:"urlOriginal"`
	} `json:"pictures"`
	TxStats struct {
		CountSold int `json:"countSold"`
	} `json:"txStats"`
	Stock struct {
		Value int `json:"value"`
	} `json:"stock"`
	Rating float64 `json:"rating"`
}

// findBasicInfo navigates the parsed payload to the product_content
// component. The boolean forces callers to branch on the
// component-missing case explicitly; a missing component means the
// whole primary strategy failed, not a degraded product.
func findBasicInfo(payload pdpResponse) (pdpBasicInfo, bool) {
	for _, c := range payload.Data.PdpGetLayout.Components {
		if c.Name != productContentComponent {
			continue
		}
		var entries []pdpBasicInfo
		if err := json.Unmarshal(c.Data, &entries); err != nil || len(entries) == 0 {
			return pdpBasicInfo{}, false
		}
		return entries[0], true
	}
	return pdpBasicInfo{}, false
}

// extractTokopediaAPI maps the aggregation-API payload onto the
// canonical Product. The boolean is false when the payload does not
// decode or lacks the product_content component, which triggers the
// HTML fallback in the orchestrator.
func extractTokopediaAPI(raw models.RawFetchResult, ref models.ProductReference) (*models.Product, bool) {
	var payload pdpResponse
	if err := json.Unmarshal([]byte(raw.Body), &payload); err != nil {
		return nil, false
	}

	info, ok := findBasicInfo(payload)
	if !ok {
		return nil, false
	}

	product := models.NewProduct(models.PlatformTokopedia, ref.ProductSlug)
	if id := string(info.ID); id != "" {
		product.ID = id
	}
	product.Name = info.Name
	product.Price = info.Price.Value
	if info.Campaign.OriginalPrice > 0 {
		original := info.Campaign.OriginalPrice
		product.OriginalPrice = &original
	}
	product.Discount = info.Campaign.DiscountPercentage

	if len(info.Pictures) > 0 {
		product.Image = info.Pictures[0].URLThumbnail
		for _, p := range info.Pictures {
			if p.URLOriginal != "" {
				product.Images = append(product.Images, p.URLOriginal)
			}
		}
	}

	product.Sold = info.TxStats.CountSold
	product.Stock = info.Stock.Value
	product.Rating = info.Rating
	product.Shop = models.Shop{Name: ref.ShopSlug}

	return product, true
}

// productLD is the schema.org Product subset read from the fallback
// page's JSON-LD block. Offer numbers arrive quoted or bare depending
// on the page generation.
type productLD struct {
	Type   string     `json:"@type"`
	Name   string     `json:"name"`
	Image  flexString `json:"image"`
	Offers struct {
		Price        flexNumber `json:"price"`
		Availability string     `json:"availability"`
	} `json:"offers"`
	AggregateRating struct {
		RatingValue flexNumber `json:"ratingValue"`
	} `json:"aggregateRating"`
}

// extractTokopediaJSONLD parses the first JSON-LD block of the product
// page. A block that is absent or not of @type Product fails the call;
// a block that is present but malformed in individual fields degrades
// those fields to zero values.
func extractTokopediaJSONLD(raw models.RawFetchResult, ref models.ProductReference) (*models.Product, bool) {
	doc := parseDocument(raw.Body)
	blocks := findJSONLDBlocks(doc, raw.Body)
	if len(blocks) == 0 {
		return nil, false
	}

	var ld productLD
	if err := json.Unmarshal([]byte(blocks[0]), &ld); err != nil {
		return nil, false
	}
	if ld.Type != "Product" {
		return nil, false
	}

	product := models.NewProduct(models.PlatformTokopedia, ref.ProductSlug)
	product.Name = ld.Name
	product.Price = float64(ld.Offers.Price)
	product.Image = string(ld.Image)
	if product.Image != "" {
		product.Images = []string{product.Image}
	}
	if ld.Offers.Availability == "InStock" {
		product.Stock = 1
	}
	product.Rating = float64(ld.AggregateRating.RatingValue)
	product.Shop = models.Shop{Name: ref.ShopSlug}

	return product, true
}

// flexNumber decodes a JSON number that may arrive quoted. Malformed
// or missing values decode to 0 rather than failing the record.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	*n = flexNumber(parseFloat(s))
	return nil
}

// flexID decodes an identifier that the API emits as either a number
// or a string.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "null" {
		s = ""
	}
	*f = flexID(s)
	return nil
}

// flexString decodes a JSON value that may be a string or an array of
// strings, keeping the first entry.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil && len(list) > 0 {
		*f = flexString(list[0])
		return nil
	}
	*f = ""
	return nil
}
