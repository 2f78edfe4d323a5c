// Command catalogd serves imported compendiums over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/mind-engage/compendium/internal/api/http"
	"github.com/mind-engage/compendium/internal/auth"
	"github.com/mind-engage/compendium/internal/compendium"
	"github.com/mind-engage/compendium/internal/config"
	_ "github.com/mind-engage/compendium/internal/dialect/en"
	_ "github.com/mind-engage/compendium/internal/dialect/ru"
	"github.com/mind-engage/compendium/internal/logger"
	"github.com/mind-engage/compendium/internal/pipeline"
	"github.com/mind-engage/compendium/internal/storage"
)

func main() {
	hashPassword := flag.String("hash-password", "", "print a bcrypt hash for ADMIN_PASS_HASH and exit")
	flag.Parse()
	if *hashPassword != "" {
		h, err := auth.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(h)
		return
	}

	cfg := config.FromEnv()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	// --- Catalog ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, closeStore, err := pipeline.OpenCatalog(ctx, cfg.DBEnabled, cfg.DBDriver, cfg.DBDSN)
	cancel()
	if err != nil {
		log.Fatal("catalog open failed", "error", err)
	}
	defer closeStore()

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatal("blob store", "error", err)
	}

	// Uploads without a dialect field use the configured one.
	extractors := func(name string) (*compendium.Extractor, error) {
		if name == "" {
			return pipeline.NewExtractor(cfg.Dialect, cfg.DialectFile)
		}
		return pipeline.NewExtractor(name, "")
	}
	if _, err := extractors(""); err != nil {
		log.Fatal("dialect", "error", err)
	}

	if cfg.AdminPassHash == "" {
		log.Warn("ADMIN_PASS_HASH is empty; /auth/login is disabled")
	}
	handler := api.NewRouter(api.Server{
		Store:        store,
		Blobs:        bs,
		Auth:         auth.NewAuthService(cfg.AuthHMACSecret),
		Account:      auth.Account{Username: cfg.AdminUser, PassHash: cfg.AdminPassHash, Role: "admin"},
		Extractors:   extractors,
		Log:          log,
		CORSOrigins:  cfg.CORSOrigins(),
		PrivateReads: cfg.PrivateReads,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode, "db_enabled", cfg.DBEnabled, "db", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
