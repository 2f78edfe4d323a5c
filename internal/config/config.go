package config

import (
	"os"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	LogMode  string // dev|prod
	HTTPAddr string

	// Extraction
	InputPath   string
	OutputPath  string
	Dialect     string // registered preset name
	DialectFile string // optional YAML dialect, overrides Dialect

	// Catalog
	DBEnabled    bool
	DBDriver     string
	DBDSN        string
	BlobBasePath string
	PrivateReads bool // reads need a token with variants:view

	AdminUser      string
	AdminPassHash  string // bcrypt
	AuthHMACSecret string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:     mode,
		LogMode:  envOr("LOG_MODE", defaultLogMode(mode)),
		HTTPAddr: envOr("HTTP_ADDR", ":8080"),

		InputPath:   envOr("COMPENDIUM_INPUT", "data/sbornik_readable_export.txt"),
		OutputPath:  envOr("COMPENDIUM_OUTPUT", "data/sbornik_data.json"),
		Dialect:     envOr("COMPENDIUM_DIALECT", "en"),
		DialectFile: os.Getenv("COMPENDIUM_DIALECT_FILE"),

		DBEnabled:    envBool("DB_ENABLED", true),
		DBDriver:     envOr("DB_DRIVER", "sqlite"),
		DBDSN:        envOr("DB_DSN", ""),
		BlobBasePath: envOr("BLOB_BASE_PATH", "./data/blobs"),
		PrivateReads: envBool("CATALOG_PRIVATE_READS", false),

		AdminUser:      envOr("ADMIN_USER", "admin"),
		AdminPassHash:  os.Getenv("ADMIN_PASS_HASH"), // empty disables /auth/login
		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://catalog.mindengage.ai"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000"),
	}
}

// CORSOrigins returns the allow-list for the current mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func defaultLogMode(m Mode) string {
	if m == ModeOnline {
		return "prod"
	}
	return "dev"
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
