package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/compendium/internal/compendium"
)

type memoryStore struct {
	mu      sync.RWMutex
	current *compendium.Compendium
	imports []ImportRun
	now     func() time.Time
}

// NewInMemoryStore is used when no database is configured, and by tests.
func NewInMemoryStore() Store {
	return &memoryStore{now: time.Now}
}

func (m *memoryStore) PutCompendium(ctx context.Context, c *compendium.Compendium, source string) (ImportRun, error) {
	rep := compendium.Summarize(c)
	run := ImportRun{
		ID:            uuid.NewString(),
		Source:        source,
		Variants:      rep.Variants,
		Solutions:     rep.Solutions,
		FallbackTasks: rep.FallbackTasks,
		CreatedAt:     m.now().Unix(),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = c
	m.imports = append(m.imports, run)
	return run, nil
}

func (m *memoryStore) LatestCompendium(ctx context.Context) (*compendium.Compendium, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, ErrNotFound
	}
	return m.current, nil
}

func (m *memoryStore) ListVariants(ctx context.Context, opts ListOpts) ([]VariantSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []VariantSummary{}
	if m.current == nil {
		return out, nil
	}
	limit := normLimit(opts.Limit, 50, 500)
	skipped := 0
	for _, v := range m.current.Variants {
		s := summarize(v)
		if !matches(opts.Q, s) {
			continue
		}
		if skipped < opts.Offset {
			skipped++
			continue
		}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memoryStore) GetVariant(ctx context.Context, number int) (compendium.Variant, error) {
	return m.find(func(v compendium.Variant) bool { return v.Number == number })
}

func (m *memoryStore) GetVariantBySlug(ctx context.Context, slug string) (compendium.Variant, error) {
	return m.find(func(v compendium.Variant) bool { return v.Slug == slug })
}

func (m *memoryStore) find(pred func(compendium.Variant) bool) (compendium.Variant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current != nil {
		for _, v := range m.current.Variants {
			if pred(v) {
				return v, nil
			}
		}
	}
	return compendium.Variant{}, ErrNotFound
}

func (m *memoryStore) ListImports(ctx context.Context, limit int) ([]ImportRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	limit = normLimit(limit, 20, 200)
	out := []ImportRun{}
	for i := len(m.imports) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.imports[i])
	}
	return out, nil
}
