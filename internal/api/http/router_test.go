package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/mind-engage/compendium/internal/api/http"
	"github.com/mind-engage/compendium/internal/auth"
	"github.com/mind-engage/compendium/internal/catalog"
	"github.com/mind-engage/compendium/internal/compendium"
	"github.com/mind-engage/compendium/internal/dialect"
	_ "github.com/mind-engage/compendium/internal/dialect/en"
	_ "github.com/mind-engage/compendium/internal/dialect/ru"
	"github.com/mind-engage/compendium/internal/logger"
	"github.com/mind-engage/compendium/internal/storage"
)

const bar = "##########"

const export = bar + `
VARIANT 3
` + bar + `
[PDF File]: PDF File
Link: https://disk.example/v3.pdf

[Video breakdown]: Task №25
Link: https://rutube.example/v3-25

` + bar + `
VARIANT 4
` + bar + `
[Code solution (Python)]:
----------
print(sum(range(10)))
----------

KEYS AND ANSWERS FOR ALL VARIANTS
>>> Variant 3
Task №1: 14
`

type fixture struct {
	srv   http.Handler
	store catalog.Store
	auth  *auth.AuthService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return newFixtureWith(t, nil)
}

func newFixtureWith(t *testing.T, adjust func(*api.Server)) fixture {
	t.Helper()
	blobs, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	a := auth.NewAuthService("test-secret")
	hash, err := auth.HashPassword("pw")
	require.NoError(t, err)
	store := catalog.NewInMemoryStore()
	s := api.Server{
		Store:   store,
		Blobs:   blobs,
		Auth:    a,
		Account: auth.Account{Username: "ops", PassHash: hash, Role: "admin"},
		Extractors: func(name string) (*compendium.Extractor, error) {
			if name == "" {
				name = "en"
			}
			d, err := dialect.Get(name)
			if err != nil {
				return nil, err
			}
			return compendium.NewExtractor(d)
		},
		CORSOrigins: []string{"http://localhost:5173"},
	}
	if adjust != nil {
		adjust(&s)
	}
	return fixture{srv: api.NewRouter(s), store: store, auth: a}
}

func (f fixture) token(t *testing.T, role string) string {
	t.Helper()
	tok, err := f.auth.IssueJWT("tester", role)
	require.NoError(t, err)
	return tok
}

func uploadRequest(t *testing.T, body, dialectName, token string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "export.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte(body))
	require.NoError(t, err)
	if dialectName != "" {
		require.NoError(t, mw.WriteField("dialect", dialectName))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/imports", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusOK, serve(f.srv, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(f.srv, httptest.NewRequest(http.MethodGet, "/readyz", nil)).Code)
}

func TestCompendiumNotFoundBeforeImport(t *testing.T) {
	f := newFixture(t)
	rec := serve(f.srv, httptest.NewRequest(http.MethodGet, "/compendium", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(f.srv, httptest.NewRequest(http.MethodGet, "/variants", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestImportRequiresToken(t *testing.T) {
	f := newFixture(t)
	rec := serve(f.srv, uploadRequest(t, export, "", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(f.srv, uploadRequest(t, export, "", f.token(t, "viewer")))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestImportThenBrowse(t *testing.T) {
	f := newFixture(t)
	rec := serve(f.srv, uploadRequest(t, export, "", f.token(t, "editor")))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Import  catalog.ImportRun `json:"import"`
		Report  compendium.Report `json:"report"`
		RawKey  string            `json:"raw_key"`
		JSONKey string            `json:"json_key"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "export.txt", resp.Import.Source)
	assert.Equal(t, 2, resp.Import.Variants)
	assert.Equal(t, 1, resp.Report.FallbackTasks)
	assert.True(t, strings.HasPrefix(resp.RawKey, "uploads/"))

	rec = serve(f.srv, httptest.NewRequest(http.MethodGet, "/variants", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []catalog.VariantSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].Number)
	assert.Equal(t, 4, list[1].Number)

	for _, ref := range []string{"variant-3", "3"} {
		rec = serve(f.srv, httptest.NewRequest(http.MethodGet, "/variants/"+ref, nil))
		require.Equal(t, http.StatusOK, rec.Code, ref)
		var v compendium.Variant
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
		assert.Equal(t, "var-03", v.ID)
		require.Len(t, v.Answers, 1)
		assert.Equal(t, "14", v.Answers[0].Value)
	}

	rec = serve(f.srv, httptest.NewRequest(http.MethodGet, "/variants/variant-9", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(f.srv, httptest.NewRequest(http.MethodGet, "/compendium", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	c, err := compendium.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Meta.TotalVariants)

	req := httptest.NewRequest(http.MethodGet, "/blobs/"+resp.JSONKey, nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t, "editor"))
	rec = serve(f.srv, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rec.Body.String(), `"total_variants": 2`)
}

func TestImportUnknownDialect(t *testing.T) {
	f := newFixture(t)
	rec := serve(f.srv, uploadRequest(t, export, "klingon", f.token(t, "admin")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportMissingFile(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/imports", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+f.token(t, "admin"))
	rec := serve(f.srv, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListImports(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, serve(f.srv, uploadRequest(t, export, "en", f.token(t, "admin"))).Code)

	req := httptest.NewRequest(http.MethodGet, "/imports", nil)
	rec := serve(f.srv, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req.Header.Set("Authorization", "Bearer "+f.token(t, "editor"))
	rec = serve(f.srv, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []catalog.ImportRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Variants)
}

func TestPrivateReadsNeedVariantsView(t *testing.T) {
	f := newFixtureWith(t, func(s *api.Server) { s.PrivateReads = true })
	require.Equal(t, http.StatusCreated, serve(f.srv, uploadRequest(t, export, "", f.token(t, "editor"))).Code)

	for _, path := range []string{"/compendium", "/variants", "/variants/variant-3"} {
		assert.Equal(t, http.StatusUnauthorized, serve(f.srv, httptest.NewRequest(http.MethodGet, path, nil)).Code, path)

		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+f.token(t, "guest"))
		assert.Equal(t, http.StatusForbidden, serve(f.srv, req).Code, path)

		req = httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+f.token(t, "viewer"))
		assert.Equal(t, http.StatusOK, serve(f.srv, req).Code, path)
	}
}

func TestImportLogsSubject(t *testing.T) {
	var buf bytes.Buffer
	f := newFixtureWith(t, func(s *api.Server) { s.Log = logger.NewTo(&buf, "prod") })
	rec := serve(f.srv, uploadRequest(t, export, "", f.token(t, "editor")))
	require.Equal(t, http.StatusCreated, rec.Code)

	var found bool
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["msg"] == "compendium imported" {
			found = true
			assert.Equal(t, "tester", entry["subject"])
			assert.NotEmpty(t, entry["import_id"])
			assert.Equal(t, "en", entry["dialect"])
		}
	}
	assert.True(t, found, buf.String())
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	rec := serve(f.srv, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"ops","password":"pw"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	claims, err := f.auth.Parse(out["access_token"])
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	rec = serve(f.srv, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"ops","password":"nope"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
