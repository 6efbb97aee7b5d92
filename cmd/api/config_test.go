package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "STATIC_DIR", "DATABASE_URL", "DB_SSL", "DB_MAX_OPEN_CONNS", "DB_CONNECT_ATTEMPTS"} {
		t.Setenv(key, "")
	}

	cfg, err := loadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.port)
	assert.Equal(t, "development", cfg.environment)
	assert.Equal(t, "public", cfg.staticDir)
	assert.Equal(t, 25, cfg.db.maxOpenConns)
	assert.Equal(t, 5, cfg.db.connectAttempts)
	assert.False(t, cfg.requireTLS())
	assert.Equal(t, cfg.db.dsn, cfg.dsn())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("APP_ENV", "staging")
	t.Setenv("STATIC_DIR", "web")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/books")
	t.Setenv("DB_SSL", "true")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg, err := loadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.port)
	assert.Equal(t, "staging", cfg.environment)
	assert.Equal(t, "web", cfg.staticDir)
	assert.Equal(t, 25, cfg.db.maxOpenConns)
	assert.True(t, cfg.requireTLS())
	assert.Equal(t, "postgres://u:p@db/books?sslmode=require", cfg.dsn())
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_SSL", "")

	cfg, err := loadConfig([]string{"-port", "9000", "-env", "production", "-db-dsn", "host=db dbname=books sslmode=disable"})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.port)
	assert.True(t, cfg.requireTLS())
	assert.Equal(t, "host=db dbname=books sslmode=disable sslmode=require", cfg.dsn())
}

func TestDSNReplacesExistingSSLMode(t *testing.T) {
	var cfg serverConfig
	cfg.environment = "production"
	cfg.db.dsn = "postgres://u:p@db:5432/books?sslmode=disable"

	assert.Equal(t, "postgres://u:p@db:5432/books?sslmode=require", cfg.dsn())
}

func TestLoadConfigRejectsUnknownFlag(t *testing.T) {
	_, err := loadConfig([]string{"-nope"})
	assert.Error(t, err)
}
