package config

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "local", cfg.StorageType)
	assert.Equal(t, int64(6), cfg.PageSize)
	assert.True(t, cfg.SeedDefaultTags)
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("PAGE_SIZE", "12")
	t.Setenv("SEED_DEFAULT_TAGS", "false")

	cfg, err := ParseConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, int64(12), cfg.PageSize)
	assert.False(t, cfg.SeedDefaultTags)
}

func TestLogFieldsOmitSecrets(t *testing.T) {
	cfg := Config{
		HTTPPort:                  "8080",
		DSNURL:                    "postgres://app:dsn-pass@db/foodgram",
		DBPassword:                "db-pass",
		JWTSecret:                 "jwt-secret",
		StorageS3AccessKeyID:      "s3-key-id",
		StorageS3SecretAccessKey:  "s3-secret",
		StorageS3SessionToken:     "s3-session",
		StorageOSSAccessKeySecret: "oss-secret",
		StorageCOSSecretKey:       "cos-secret",
		StorageR2SecretAccessKey:  "r2-secret",
	}

	fields := cfg.LogFields()
	assert.Equal(t, "8080", fields["http_port"])
	for _, secret := range []string{"dsn-pass", "db-pass", "jwt-secret", "s3-key-id", "s3-secret", "s3-session", "oss-secret", "cos-secret", "r2-secret"} {
		for key, value := range fields {
			assert.NotContains(t, fmt.Sprint(value), secret, "field %s leaks a secret", key)
		}
	}
}
