package scraper

import (
	"strings"
	"sync"
)

// CategoryIndex matches product titles against per-category keyword
// sets. Keywords come from the category_keywords table when a database
// is configured, otherwise from the built-in defaults, and can be
// swapped at runtime when the table is reloaded.
type CategoryIndex struct {
	mu       sync.RWMutex
	keywords map[string][]string
}

func NewCategoryIndex() *CategoryIndex {
	return &CategoryIndex{keywords: defaultCategoryKeywords()}
}

// Replace swaps in a freshly loaded keyword set. Keywords are matched
// lowercase.
func (c *CategoryIndex) Replace(keywords map[string][]string) {
	normalized := make(map[string][]string, len(keywords))
	for category, words := range keywords {
		for _, w := range words {
			normalized[category] = append(normalized[category], strings.ToLower(w))
		}
	}

	c.mu.Lock()
	c.keywords = normalized
	c.mu.Unlock()
}

// Detect returns the first category whose keyword set matches the
// title, or "Other".
func (c *CategoryIndex) Detect(title string) string {
	title = strings.ToLower(title)

	c.mu.RLock()
	defer c.mu.RUnlock()

	for category, words := range c.keywords {
		for _, w := range words {
			if strings.Contains(title, w) {
				return category
			}
		}
	}
	return "Other"
}

func defaultCategoryKeywords() map[string][]string {
	return map[string][]string{
		"Electronics": {
			"iphone", "samsung", "xiaomi", "phone", "laptop", "headphone",
			"earphone", "airpods", "macbook", "tablet",
		},
		"Fashion": {
			"baju", "kaos", "celana", "dress", "sepatu", "shoes",
			"jacket", "jaket", "hoodie", "fashion",
		},
		"Beauty": {
			"skincare", "serum", "makeup", "lipstick", "parfum", "beauty",
		},
		"Food": {
			"makanan", "snack", "kopi", "food",
		},
	}
}
