package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/onedash/product-scraper/internal/models"
	"github.com/onedash/product-scraper/internal/scraper"
)

type Handlers struct {
	scraper *scraper.Service
	logger  *slog.Logger
}

func NewHandlers(scraper *scraper.Service, logger *slog.Logger) *Handlers {
	return &Handlers{
		scraper: scraper,
		logger:  logger,
	}
}

// ProductResponse is the envelope returned by GET /api/product.
type ProductResponse struct {
	Success bool            `json:"success"`
	Data    *models.Product `json:"data"`
}

// GetProduct handles GET /api/product?url=<product URL>: classify,
// fetch, extract, and return the normalized record in a success
// envelope. Validation failures map to 400, upstream failures to 500,
// each with the message the frontend presents.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		h.respondError(w, http.StatusBadRequest, models.MsgURLRequired)
		return
	}

	product, err := h.scraper.Scrape(r.Context(), url)
	if err != nil {
		h.respondScrapeError(w, url, err)
		return
	}

	h.respondJSON(w, http.StatusOK, ProductResponse{Success: true, Data: product})
}

// ScrapeLinkRequest is the body of POST /api/links/scrape, used by the
// link editor.
type ScrapeLinkRequest struct {
	URL string `json:"url"`
}

// LinkMetadata is the flat record the link editor consumes. Same
// pipeline as GetProduct, different shaping: snake_case image/price
// fields and a display-ready discount string.
type LinkMetadata struct {
	Title         string  `json:"title"`
	ImageURL      string  `json:"image_url"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	Discount      string  `json:"discount"`
	Rating        float64 `json:"rating"`
	Sold          int     `json:"sold"`
	Platform      string  `json:"platform"`
	Category      string  `json:"category"`
}

// ScrapeLink handles POST /api/links/scrape.
func (h *Handlers) ScrapeLink(w http.ResponseWriter, r *http.Request) {
	var req ScrapeLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "URL is required")
		return
	}

	product, err := h.scraper.Scrape(r.Context(), req.URL)
	if err != nil {
		h.logger.Error("link scrape failed", "url", req.URL, "error", err)
		h.respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "Failed to scrape product",
			"message": err.Error(),
		})
		return
	}

	h.respondJSON(w, http.StatusOK, toLinkMetadata(product))
}

func toLinkMetadata(p *models.Product) LinkMetadata {
	meta := LinkMetadata{
		Title:    p.Name,
		ImageURL: p.Image,
		Price:    p.Price,
		Rating:   p.Rating,
		Sold:     p.Sold,
		Platform: p.Platform,
		Category: p.Category,
	}
	if p.OriginalPrice != nil {
		meta.OriginalPrice = *p.OriginalPrice
	}
	if p.Discount > 0 {
		meta.Discount = fmt.Sprintf("%.0f%%", p.Discount)
	}
	return meta
}

// respondScrapeError maps the error taxonomy onto the wire contract:
// validation errors are the caller's fault (400), fetch and parse
// failures are upstream trouble (500).
func (h *Handlers) respondScrapeError(w http.ResponseWriter, url string, err error) {
	var scrapeErr *models.ScrapeError
	if errors.As(err, &scrapeErr) {
		switch scrapeErr.Kind {
		case models.ErrValidation:
			h.respondError(w, http.StatusBadRequest, scrapeErr.Message)
		default:
			h.logger.Error("scrape failed", "url", url, "attempted", scrapeErr.URL, "kind", scrapeErr.Kind, "error", err)
			h.respondError(w, http.StatusInternalServerError, scrapeErr.Message)
		}
		return
	}

	h.logger.Error("scrape failed", "url", url, "error", err)
	h.respondError(w, http.StatusInternalServerError, "Failed to fetch product")
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
