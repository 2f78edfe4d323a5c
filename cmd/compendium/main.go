// Command compendium converts a readable exam export into the compendium JSON
// document and optionally loads it into the catalog database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mind-engage/compendium/internal/config"
	_ "github.com/mind-engage/compendium/internal/dialect/en"
	_ "github.com/mind-engage/compendium/internal/dialect/ru"
	"github.com/mind-engage/compendium/internal/logger"
	"github.com/mind-engage/compendium/internal/pipeline"
)

// ExitError carries the process exit code for a failed run.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

func main() {
	if err := run(context.Background(), os.Stdout, os.Args[1:], config.FromEnv()); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, outW io.Writer, args []string, cfg config.Config) error {
	fs := flag.NewFlagSet("compendium", flag.ContinueOnError)
	fs.SetOutput(outW)
	in := fs.String("in", cfg.InputPath, "path to the readable export")
	out := fs.String("out", cfg.OutputPath, "path of the JSON document to write")
	dialectName := fs.String("dialect", cfg.Dialect, "marker dialect preset (en, ru)")
	dialectFile := fs.String("dialect-file", cfg.DialectFile, "YAML dialect file; overrides -dialect")
	doImport := fs.Bool("import", false, "also load the result into the catalog database")
	logMode := fs.String("log-mode", cfg.LogMode, "log output: dev or prod")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}

	log, err := logger.New(*logMode)
	if err != nil {
		return &ExitError{Code: 2, Message: "logger: " + err.Error()}
	}
	defer log.Sync()

	ex, err := pipeline.NewExtractor(*dialectName, *dialectFile)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	deps := pipeline.Deps{Extractor: ex, Log: log}
	if *doImport {
		store, closeStore, err := pipeline.OpenCatalog(ctx, true, cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer closeStore()
		deps.Catalog = store
	}

	res, err := pipeline.Run(ctx, pipeline.Options{InputPath: *in, OutputPath: *out, Import: *doImport}, deps)
	if errors.Is(err, pipeline.ErrInputNotFound) {
		return &ExitError{Code: 1, Message: fmt.Sprintf("input file %s not found; nothing written", *in)}
	}
	if err != nil {
		return err
	}

	rep := res.Report
	fmt.Fprintf(outW, "wrote %d variants (%d solutions, %d answers) to %s\n",
		rep.Variants, rep.Solutions, rep.Answers, res.OutputPath)
	if res.Import != nil {
		fmt.Fprintf(outW, "catalog import %s\n", res.Import.ID)
	}
	switch {
	case rep.Variants == 0:
		fmt.Fprintln(outW, "check: no variants found, the input format may have changed")
	case rep.FirstVariantEmpty:
		fmt.Fprintln(outW, "check: first variant has no solutions or attachments, the input format may have changed")
	default:
		fmt.Fprintln(outW, "check: ok")
	}
	return nil
}
