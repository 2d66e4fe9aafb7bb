package database

import (
	"context"
	"fmt"
)

// CategoryKeyword is one row of the category_keywords table, which
// curators edit to steer category detection without a deploy.
type CategoryKeyword struct {
	Category string
	Keyword  string
	// Source distinguishes title keywords from breadcrumb keywords.
	Source string
}

const sourceTitle = "title"

// LoadCategoryKeywords fetches all title-sourced keywords grouped by
// category, ready to install into the scraper's category index.
func (db *DB) LoadCategoryKeywords(ctx context.Context) (map[string][]string, error) {
	rows, err := db.Query(ctx,
		`SELECT category, keyword FROM category_keywords WHERE source = $1`, sourceTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to load category keywords: %w", err)
	}
	defer rows.Close()

	keywords := make(map[string][]string)
	for rows.Next() {
		var kw CategoryKeyword
		if err := rows.Scan(&kw.Category, &kw.Keyword); err != nil {
			return nil, fmt.Errorf("failed to scan category keyword: %w", err)
		}
		keywords[kw.Category] = append(keywords[kw.Category], kw.Keyword)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category keywords: %w", err)
	}

	return keywords, nil
}
