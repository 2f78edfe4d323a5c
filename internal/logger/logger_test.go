package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProdWritesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewTo(&buf, "prod").With("import_id", "abc")
	log.Debug("hidden")
	log.Info("compendium imported", "variants", 3)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "compendium imported", entry["msg"])
	assert.Equal(t, "abc", entry["import_id"])
	assert.EqualValues(t, 3, entry["variants"])
}

func TestDevWritesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewTo(&buf, "dev")
	log.Debug("parsing compendium", "dialect", "en")
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "parsing compendium")
	assert.Contains(t, buf.String(), `"dialect": "en"`)
}

func TestNopIsSilent(t *testing.T) {
	log := Nop()
	log.Error("nothing")
	log.With("k", "v").Warn("still nothing")
	log.Sync()
}
