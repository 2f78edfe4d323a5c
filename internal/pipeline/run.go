// Package pipeline runs one extraction: read the export, build the compendium,
// write the JSON document and optionally import it into the catalog.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mind-engage/compendium/internal/catalog"
	"github.com/mind-engage/compendium/internal/compendium"
	"github.com/mind-engage/compendium/internal/logger"
	"github.com/mind-engage/compendium/internal/storage"
)

// ErrInputNotFound is returned when the source export does not exist. Nothing is
// written in that case.
var ErrInputNotFound = errors.New("input file not found")

type Options struct {
	InputPath  string
	OutputPath string
	Import     bool // also load the result into Deps.Catalog
}

type Deps struct {
	Extractor *compendium.Extractor
	Log       *logger.Logger
	Catalog   catalog.Store     // required when Options.Import
	Blobs     storage.BlobStore // optional; defaults to an FSStore rooted at the output directory
}

type Result struct {
	Report     compendium.Report
	OutputPath string
	Import     *catalog.ImportRun
}

func Run(ctx context.Context, opts Options, deps Deps) (Result, error) {
	if deps.Extractor == nil {
		return Result{}, errors.New("pipeline: extractor is required")
	}
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	if opts.Import && deps.Catalog == nil {
		return Result{}, errors.New("pipeline: import requested without a catalog store")
	}

	raw, err := os.ReadFile(opts.InputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrInputNotFound, opts.InputPath)
		}
		return Result{}, fmt.Errorf("read input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	log.Info("parsing compendium", "input", opts.InputPath, "dialect", deps.Extractor.Dialect().Name, "bytes", len(raw))
	c := deps.Extractor.Extract(string(raw))
	rep := compendium.Summarize(c)

	// With an explicit blob store OutputPath is the blob key.
	blobs, key := deps.Blobs, opts.OutputPath
	if blobs == nil {
		key = filepath.Base(opts.OutputPath)
		fsStore, err := storage.NewFSStore(filepath.Dir(opts.OutputPath))
		if err != nil {
			return Result{}, fmt.Errorf("prepare output dir: %w", err)
		}
		blobs = fsStore
	}
	var buf bytes.Buffer
	if err := compendium.Encode(&buf, c); err != nil {
		return Result{}, fmt.Errorf("encode compendium: %w", err)
	}
	if _, err := blobs.Put(key, &buf); err != nil {
		return Result{}, fmt.Errorf("write output: %w", err)
	}

	res := Result{Report: rep, OutputPath: opts.OutputPath}
	if opts.Import {
		run, err := deps.Catalog.PutCompendium(ctx, c, filepath.Base(opts.InputPath))
		if err != nil {
			return res, fmt.Errorf("import into catalog: %w", err)
		}
		res.Import = &run
		log.Info("imported into catalog", "import_id", run.ID)
	}

	log.Info("compendium written",
		"output", opts.OutputPath,
		"variants", rep.Variants,
		"solutions", rep.Solutions,
		"answers", rep.Answers,
		"fallback_tasks", rep.FallbackTasks,
	)
	if rep.FallbackTasks > 0 {
		log.Warn("code solutions assigned the fallback task", "count", rep.FallbackTasks)
	}
	if rep.FirstVariantEmpty {
		log.Warn("first variant has no solutions or attachments; check the input format")
	}
	return res, nil
}
