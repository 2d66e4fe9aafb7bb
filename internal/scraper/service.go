package scraper

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/onedash/product-scraper/internal/cache"
	"github.com/onedash/product-scraper/internal/models"
)

// Service coordinates a scrape call: classify the URL, fetch with the
// platform strategy, extract, and fall back to the alternate strategy
// where one exists. Each invocation is a single linear sequence with
// no shared mutable state, so calls are safe to run concurrently.
type Service struct {
	fetcher    *Fetcher
	cache      *cache.ProductCache
	categories *CategoryIndex
	logger     *slog.Logger
}

// NewService builds a scrape service. The cache may be nil; category
// detection falls back to built-in keywords when no index is supplied.
func NewService(fetcher *Fetcher, productCache *cache.ProductCache, categories *CategoryIndex, logger *slog.Logger) *Service {
	if categories == nil {
		categories = NewCategoryIndex()
	}
	return &Service{
		fetcher:    fetcher,
		cache:      productCache,
		categories: categories,
		logger:     logger,
	}
}

// Scrape resolves a product URL to a normalized Product. Failures are
// always a *models.ScrapeError whose kind distinguishes bad input,
// upstream fetch failure, and upstream layout change.
func (s *Service) Scrape(ctx context.Context, rawURL string) (*models.Product, error) {
	scrapeID := uuid.NewString()
	logger := s.logger.With("scrape_id", scrapeID)

	ref, err := Classify(rawURL)
	if err != nil {
		logger.Info("url rejected", "url", rawURL, "error", err)
		return nil, err
	}

	if cached := s.cache.Get(ctx, ref); cached != nil {
		logger.Info("cache hit", "platform", ref.Platform, "id", ref.ID())
		return cached, nil
	}

	var product *models.Product
	switch ref.Platform {
	case models.PlatformShopee:
		product, err = s.scrapeShopee(ctx, ref, logger)
	case models.PlatformTokopedia:
		product, err = s.scrapeTokopedia(ctx, ref, logger)
	default:
		return nil, models.NewValidationError(models.MsgUnsupportedPlatform)
	}
	if err != nil {
		return nil, err
	}

	product.Category = s.categories.Detect(product.Name)
	s.cache.Set(ctx, ref, product)

	logger.Info("scrape complete",
		"platform", product.Platform,
		"id", product.ID,
		"price", product.Price,
	)
	return product, nil
}

// scrapeShopee is deliberately single-strategy: the crawler-identity
// fetch either yields a metadata-rich page or the call fails. Whether
// Shopee deserves a fallback like Tokopedia's is an open product
// question; the asymmetry is preserved as observed.
func (s *Service) scrapeShopee(ctx context.Context, ref models.ProductReference, logger *slog.Logger) (*models.Product, error) {
	url := s.fetcher.ShopeeProductURL(ref)

	raw, err := s.fetcher.FetchShopee(ctx, ref)
	if err != nil {
		logger.Error("shopee fetch failed", "url", url, "error", err)
		return nil, models.NewFetchError(models.MsgShopeeFetchFailed, url, err)
	}
	if !raw.StatusOK {
		logger.Error("shopee fetch returned non-success status", "url", url)
		return nil, models.NewFetchError(models.MsgShopeeFetchFailed, url, nil)
	}

	return extractShopeeProduct(raw, ref), nil
}

// scrapeTokopedia tries the aggregation API first and falls back to
// scraping the product page's JSON-LD when the API is unreachable,
// returns a non-success status, or lacks the product_content
// component.
func (s *Service) scrapeTokopedia(ctx context.Context, ref models.ProductReference, logger *slog.Logger) (*models.Product, error) {
	apiURL := s.fetcher.TokopediaAPIURL(ref)

	raw, err := s.fetcher.FetchTokopediaAPI(ctx, ref)
	if err == nil && raw.StatusOK {
		if product, ok := extractTokopediaAPI(raw, ref); ok {
			return product, nil
		}
		logger.Warn("tokopedia api response missing product_content, falling back", "url", apiURL)
	} else {
		logger.Warn("tokopedia api fetch failed, falling back", "url", apiURL, "error", err)
	}

	// Failure of both strategies is reported as a parse failure: the
	// distinct message lets operators spot upstream layout changes.
	pageURL := s.fetcher.TokopediaPageURL(ref)
	pageRaw, err := s.fetcher.FetchTokopediaPage(ctx, ref)
	if err != nil {
		logger.Error("tokopedia page fetch failed", "url", pageURL, "error", err)
		return nil, models.WrapParse(models.MsgTokopediaParse, pageURL, err)
	}
	if !pageRaw.StatusOK {
		logger.Error("tokopedia page fetch returned non-success status", "url", pageURL)
		return nil, models.NewParseError(models.MsgTokopediaParse, pageURL)
	}

	product, ok := extractTokopediaJSONLD(pageRaw, ref)
	if !ok {
		logger.Error("tokopedia page has no usable product json-ld", "url", pageURL)
		return nil, models.NewParseError(models.MsgTokopediaParse, pageURL)
	}
	return product, nil
}

// Categories exposes the keyword index so the keyword store can reload
// it after a database refresh.
func (s *Service) Categories() *CategoryIndex {
	return s.categories
}
