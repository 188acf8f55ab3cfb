package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.True(t, cfg.Catalog.CacheEnabled)
	assert.Equal(t, 15*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, "@every 10m", cfg.Catalog.WarmSchedule)
	assert.Equal(t, 12, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, 60, cfg.Catalog.MaxPageSize)
	assert.Equal(t, 2*time.Second, cfg.Jobs.RetryDelay)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperClampsPageSizes(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("CATALOG_DEFAULT_PAGE_SIZE", 0)
	v.Set("CATALOG_MAX_PAGE_SIZE", 4)
	v.Set("CATALOG_CACHE_TTL", "not-a-duration")

	cfg := fromViper(v)

	assert.Equal(t, 12, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, 12, cfg.Catalog.MaxPageSize)
	assert.Equal(t, 15*time.Minute, cfg.Catalog.CacheTTL)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, splitAndTrim(" https://a.test, ,https://b.test "))
}
