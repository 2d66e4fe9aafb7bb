package models

// Platform identifies the source marketplace of a product URL.
type Platform string

const (
	PlatformShopee    Platform = "shopee"
	PlatformTokopedia Platform = "tokopedia"
	PlatformUnknown   Platform = "unknown"
)

// ProductReference is the result of classifying a product URL. It is
// only ever constructed from a successful pattern match and is never
// partially populated: Shopee references carry ShopID/ItemID, Tokopedia
// references carry ShopSlug/ProductSlug.
type ProductReference struct {
	Platform Platform

	// Shopee identifiers (digit strings).
	ShopID string
	ItemID string

	// Tokopedia identifiers.
	ShopSlug    string
	ProductSlug string
}

// ID returns the platform-specific product identifier used in the
// canonical output and as a cache key component.
func (r ProductReference) ID() string {
	switch r.Platform {
	case PlatformShopee:
		return r.ItemID
	case PlatformTokopedia:
		return r.ProductSlug
	}
	return ""
}

// ContentKind describes what a fetch attempt returned.
type ContentKind string

const (
	ContentHTML ContentKind = "html"
	ContentJSON ContentKind = "json"
)

// RawFetchResult is the transient payload of a single fetch attempt.
// It lives only for the duration of the scrape call and is never
// persisted.
type RawFetchResult struct {
	StatusOK bool
	Body     string
	Kind     ContentKind
}

// Shop is the selling shop of a product.
type Shop struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Product is the canonical normalized record returned to callers,
// regardless of source platform. Platform and ID are always non-empty;
// every other field defaults to its type-appropriate zero value except
// OriginalPrice, RatingCount, Shop.ID and Location, which may be
// legitimately absent.
type Product struct {
	Platform      string   `json:"platform"`
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Discount      float64  `json:"discount"`
	Image         string   `json:"image"`
	Images        []string `json:"images"`
	Sold          int      `json:"sold"`
	// Stock semantics differ per platform and are deliberately not
	// reconciled: Shopee reports availability (1/0), Tokopedia reports
	// a literal stock count.
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount,omitempty"`
	Shop        Shop    `json:"shop"`
	Location    string  `json:"location"`
	Category    string  `json:"category,omitempty"`
}

// NewProduct returns a Product with identity fields set and sequence
// fields initialized, so callers never see nil slices.
func NewProduct(platform Platform, id string) *Product {
	return &Product{
		Platform: string(platform),
		ID:       id,
		Images:   make([]string, 0),
	}
}
