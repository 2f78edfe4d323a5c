package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/compendium/internal/compendium"
	"github.com/mind-engage/compendium/internal/config"
)

const export = `##########
VARIANT 1
##########
[PDF File]: PDF File
Link: https://disk.example/v1.pdf

[Video breakdown]: Task №5
Link: https://rutube.example/v1-5

KEYS AND ANSWERS FOR ALL VARIANTS
>>> Variant 1
Task №5: 42
`

func testConfig(dir string) config.Config {
	return config.Config{
		LogMode:    "dev",
		InputPath:  filepath.Join(dir, "in.txt"),
		OutputPath: filepath.Join(dir, "out", "data.json"),
		Dialect:    "en",
		DBDriver:   "sqlite",
		DBDSN:      "file:" + filepath.Join(dir, "c.db") + "?_pragma=busy_timeout(5000)",
	}
}

func TestRunWritesDocument(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	require.NoError(t, os.WriteFile(cfg.InputPath, []byte(export), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, nil, cfg))
	assert.Contains(t, out.String(), "wrote 1 variants")
	assert.Contains(t, out.String(), "check: ok")

	f, err := os.Open(cfg.OutputPath)
	require.NoError(t, err)
	defer f.Close()
	c, err := compendium.Decode(f)
	require.NoError(t, err)
	require.Len(t, c.Variants, 1)
	assert.Equal(t, "42", c.Variants[0].Answers[0].Value)
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	in := filepath.Join(dir, "other.txt")
	outPath := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(in, []byte(export), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, []string{"-in", in, "-out", outPath, "-import"}, cfg))
	assert.FileExists(t, outPath)
	assert.NoFileExists(t, cfg.OutputPath)
	assert.Contains(t, out.String(), "catalog import ")
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	err := run(context.Background(), &bytes.Buffer{}, nil, cfg)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Message, "not found")
	assert.NoDirExists(t, filepath.Dir(cfg.OutputPath))
}

func TestRunNoVariants(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	require.NoError(t, os.WriteFile(cfg.InputPath, []byte("nothing recognisable here\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, nil, cfg))
	assert.Contains(t, out.String(), "wrote 0 variants")
	assert.Contains(t, out.String(), "check: no variants found")
}

func TestRunEmptyFirstVariant(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	body := "##########\nVARIANT 2\n##########\njust prose\n"
	require.NoError(t, os.WriteFile(cfg.InputPath, []byte(body), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, nil, cfg))
	assert.Contains(t, out.String(), "first variant has no solutions")
}

func TestRunBadFlags(t *testing.T) {
	cfg := testConfig(t.TempDir())

	err := run(context.Background(), &bytes.Buffer{}, []string{"-dialect", "xx"}, cfg)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)

	err = run(context.Background(), &bytes.Buffer{}, []string{"-bogus"}, cfg)
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
