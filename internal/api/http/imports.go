package http

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mind-engage/compendium/internal/auth"
	"github.com/mind-engage/compendium/internal/catalog"
	"github.com/mind-engage/compendium/internal/compendium"
	"github.com/mind-engage/compendium/internal/logger"
	"github.com/mind-engage/compendium/internal/storage"
)

// maxUploadBytes bounds one export upload.
const maxUploadBytes = 32 << 20

// ExtractorFactory returns an extractor for a dialect name; "" means the default.
type ExtractorFactory func(dialect string) (*compendium.Extractor, error)

type importResponse struct {
	Import  catalog.ImportRun `json:"import"`
	Report  compendium.Report `json:"report"`
	RawKey  string            `json:"raw_key"`
	JSONKey string            `json:"json_key"`
}

// POST /imports (multipart: file=export.txt, dialect=en|ru)
func ImportCompendiumHandler(store catalog.Store, bs storage.BlobStore, extractors ExtractorFactory, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		raw, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
			return
		}

		ex, err := extractors(strings.TrimSpace(r.FormValue("dialect")))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		c := ex.Extract(string(raw))
		body, err := compendium.Marshal(c)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		// blobs are keyed by an upload id so repeated uploads never collide
		uploadID := uuid.NewString()
		rawKey, err := bs.Put("uploads/"+uploadID+filepath.Ext(hdr.Filename), bytes.NewReader(raw))
		if err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		jsonKey, err := bs.Put("compendiums/"+uploadID+".json", bytes.NewReader(body))
		if err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		run, err := store.PutCompendium(r.Context(), c, hdr.Filename)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		rep := compendium.Summarize(c)
		log := log.With("import_id", run.ID, "subject", auth.SubjectFromContext(r.Context()))
		log.Info("compendium imported",
			"source", hdr.Filename,
			"dialect", ex.Dialect().Name,
			"variants", rep.Variants,
			"fallback_tasks", rep.FallbackTasks,
		)
		if rep.FirstVariantEmpty {
			log.Warn("first variant has no solutions or attachments")
		}
		writeJSON(w, http.StatusCreated, importResponse{Import: run, Report: rep, RawKey: rawKey, JSONKey: jsonKey})
	}
}
