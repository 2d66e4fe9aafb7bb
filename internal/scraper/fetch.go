package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/onedash/product-scraper/internal/config"
	"github.com/onedash/product-scraper/internal/models"
	"github.com/onedash/product-scraper/internal/ratelimit"
)

// Fetcher issues the platform-specific HTTP requests. Each platform has
// a request shape designed to receive a metadata-rich response instead
// of a JS-rendered shell; the client identity strings live in config so
// upstream drift can be handled without a code change.
type Fetcher struct {
	client  *http.Client
	cfg     config.ScraperConfig
	limiter ratelimit.RateLimiter
}

func NewFetcher(cfg config.ScraperConfig) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		cfg:     cfg,
		limiter: ratelimit.NewSimpleRateLimiter(cfg.RateLimitMin, cfg.RateLimitMax),
	}
}

// ShopeeProductURL reconstructs the canonical product-page URL from a
// classified reference.
func (f *Fetcher) ShopeeProductURL(ref models.ProductReference) string {
	return fmt.Sprintf("%s/product/%s/%s", f.cfg.ShopeeBaseURL, ref.ShopID, ref.ItemID)
}

// TokopediaAPIURL is the public page-data aggregation endpoint for a
// product, the primary Tokopedia strategy.
func (f *Fetcher) TokopediaAPIURL(ref models.ProductReference) string {
	return fmt.Sprintf("%s/api/v1/aggregate/pdp/%s/%s", f.cfg.TokopediaBaseURL, ref.ShopSlug, ref.ProductSlug)
}

// TokopediaPageURL is the human-facing product page, the fallback
// Tokopedia strategy.
func (f *Fetcher) TokopediaPageURL(ref models.ProductReference) string {
	return fmt.Sprintf("%s/%s/%s", f.cfg.TokopediaBaseURL, ref.ShopSlug, ref.ProductSlug)
}

// FetchShopee retrieves the server-rendered Shopee product page.
// Shopee serves full HTML with OG tags and a JSON-LD Product block
// only to known link-preview crawler identities; without the spoofed
// identity the body contains none of the needed fields.
func (f *Fetcher) FetchShopee(ctx context.Context, ref models.ProductReference) (models.RawFetchResult, error) {
	url := f.ShopeeProductURL(ref)
	return f.get(ctx, url, f.cfg.CrawlerUserAgent, "text/html,application/xhtml+xml", models.ContentHTML)
}

// FetchTokopediaAPI retrieves the aggregation-API payload with an
// ordinary desktop browser identity.
func (f *Fetcher) FetchTokopediaAPI(ctx context.Context, ref models.ProductReference) (models.RawFetchResult, error) {
	url := f.TokopediaAPIURL(ref)
	return f.get(ctx, url, f.cfg.DesktopUserAgent, "application/json", models.ContentJSON)
}

// FetchTokopediaPage retrieves the product page HTML for the JSON-LD
// fallback path.
func (f *Fetcher) FetchTokopediaPage(ctx context.Context, ref models.ProductReference) (models.RawFetchResult, error) {
	url := f.TokopediaPageURL(ref)
	return f.get(ctx, url, f.cfg.DesktopUserAgent, "text/html,application/xhtml+xml", models.ContentHTML)
}

// get performs a single paced GET. Network failures and context expiry
// surface as errors; non-2xx statuses surface as StatusOK=false with
// the body still read, so callers decide whether that status is fatal
// or a fallback trigger.
func (f *Fetcher) get(ctx context.Context, url, userAgent, accept string, kind models.ContentKind) (models.RawFetchResult, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return models.RawFetchResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.RawFetchResult{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return models.RawFetchResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.RawFetchResult{}, fmt.Errorf("failed to read response body: %w", err)
	}

	return models.RawFetchResult{
		StatusOK: resp.StatusCode >= 200 && resp.StatusCode < 300,
		Body:     string(body),
		Kind:     kind,
	}, nil
}
