package pipeline

import (
	"context"
	"fmt"

	"github.com/mind-engage/compendium/internal/catalog"
	"github.com/mind-engage/compendium/internal/compendium"
	"github.com/mind-engage/compendium/internal/db"
	"github.com/mind-engage/compendium/internal/dialect"
)

// LoadDialect returns the YAML dialect at file when set, else the preset name.
func LoadDialect(name, file string) (*dialect.Dialect, error) {
	if file != "" {
		d, err := dialect.LoadFile(file)
		if err != nil {
			return nil, fmt.Errorf("dialect file %s: %w", file, err)
		}
		return d, nil
	}
	return dialect.Get(name)
}

func NewExtractor(name, file string, opts ...compendium.Option) (*compendium.Extractor, error) {
	d, err := LoadDialect(name, file)
	if err != nil {
		return nil, err
	}
	return compendium.NewExtractor(d, opts...)
}

// OpenCatalog opens the SQL catalog, or an in-memory one when enabled is false.
// The returned closer is never nil.
func OpenCatalog(ctx context.Context, enabled bool, driver, dsn string) (catalog.Store, func() error, error) {
	if !enabled {
		return catalog.NewInMemoryStore(), func() error { return nil }, nil
	}
	dbh, err := db.Open(ctx, db.Driver(driver), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open: %w", err)
	}
	return catalog.NewSQLStore(dbh), dbh.Close, nil
}
