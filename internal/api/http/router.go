package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mind-engage/compendium/internal/auth"
	"github.com/mind-engage/compendium/internal/catalog"
	"github.com/mind-engage/compendium/internal/logger"
	"github.com/mind-engage/compendium/internal/rbac"
	"github.com/mind-engage/compendium/internal/storage"
)

type Server struct {
	Store       catalog.Store
	Blobs       storage.BlobStore
	Auth        *auth.AuthService
	Account     auth.Account
	Extractors  ExtractorFactory
	Log         *logger.Logger
	CORSOrigins []string

	// PrivateReads puts the compendium and variant routes behind a token with
	// variants:view.
	PrivateReads bool
}

// NewRouter mounts the catalog API. Import routes always need a token; reads do
// only when PrivateReads is set.
func NewRouter(s Server) http.Handler {
	if s.Log == nil {
		s.Log = logger.Nop()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(s.Log), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Post("/auth/login", auth.LoginHandler(s.Auth, s.Account))

	r.Group(func(rr chi.Router) {
		if s.PrivateReads {
			rr.Use(auth.JWTMiddleware(s.Auth), rbac.Require(rbac.PermVariantsView))
		}
		rr.Get("/compendium", GetCompendiumHandler(s.Store))
		rr.Get("/variants", ListVariantsHandler(s.Store))
		rr.Get("/variants/{ref}", GetVariantHandler(s.Store))
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(s.Auth))
		pr.With(rbac.Require(rbac.PermImportsView)).
			Get("/imports", ListImportsHandler(s.Store))
		pr.With(rbac.Require(rbac.PermImport)).
			Post("/imports", ImportCompendiumHandler(s.Store, s.Blobs, s.Extractors, s.Log))
		pr.Route("/blobs", func(br chi.Router) {
			br.Use(rbac.Require(rbac.PermImportsView))
			MountBlobs(br, s.Blobs)
		})
	})
	return r
}

// requestLogger writes one structured line per request.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
