// Package catalog stores imported compendiums for the catalog API.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/mind-engage/compendium/internal/compendium"
)

var ErrNotFound = errors.New("not found")

type ListOpts struct {
	Q      string // case-insensitive match on title or slug
	Limit  int
	Offset int
}

type VariantSummary struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Solutions int    `json:"solutions"`
	Answers   int    `json:"answers"`
}

type ImportRun struct {
	ID            string `json:"id"`
	Source        string `json:"source"`
	Variants      int    `json:"variants"`
	Solutions     int    `json:"solutions"`
	FallbackTasks int    `json:"fallback_tasks"`
	CreatedAt     int64  `json:"created_at"`
}

// Store replaces its content with each imported compendium and keeps a log of
// import runs.
type Store interface {
	PutCompendium(ctx context.Context, c *compendium.Compendium, source string) (ImportRun, error)
	LatestCompendium(ctx context.Context) (*compendium.Compendium, error)
	ListVariants(ctx context.Context, opts ListOpts) ([]VariantSummary, error)
	GetVariant(ctx context.Context, number int) (compendium.Variant, error)
	GetVariantBySlug(ctx context.Context, slug string) (compendium.Variant, error)
	ListImports(ctx context.Context, limit int) ([]ImportRun, error)
}

func summarize(v compendium.Variant) VariantSummary {
	return VariantSummary{
		ID:        v.ID,
		Number:    v.Number,
		Title:     v.Title,
		Slug:      v.Slug,
		Solutions: len(v.Solutions),
		Answers:   len(v.Answers),
	}
}

func matches(q string, v VariantSummary) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(v.Title), q) || strings.Contains(v.Slug, q)
}

func normLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
