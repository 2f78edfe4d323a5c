package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"MODE", "LOG_MODE", "COMPENDIUM_DIALECT", "DB_ENABLED", "CORS_ORIGINS_OFFLINE", "CATALOG_PRIVATE_READS"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	assert.Equal(t, ModeOffline, c.Mode)
	assert.Equal(t, "dev", c.LogMode)
	assert.Equal(t, "en", c.Dialect)
	assert.True(t, c.DBEnabled)
	assert.False(t, c.PrivateReads)
	assert.Equal(t, []string{"http://localhost:3000"}, c.CORSOrigins())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("COMPENDIUM_DIALECT", "ru")
	t.Setenv("DB_ENABLED", "no")
	t.Setenv("CATALOG_PRIVATE_READS", "true")
	t.Setenv("CORS_ORIGINS_ONLINE", " https://a.example , ,https://b.example")

	c := FromEnv()
	assert.Equal(t, ModeOnline, c.Mode)
	assert.Equal(t, "prod", c.LogMode)
	assert.Equal(t, "ru", c.Dialect)
	assert.False(t, c.DBEnabled)
	assert.True(t, c.PrivateReads)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins())
}
