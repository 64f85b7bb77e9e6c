package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	AppConfig = Config{}

	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, StoreFirestore, AppConfig.StoreDriver)
	assert.Equal(t, 10, AppConfig.BannerCount)
	assert.Equal(t, 8, AppConfig.DenormalizeConcurrency)
	assert.Equal(t, 5*time.Second, AppConfig.StoreTimeout)
	assert.Equal(t, 10*time.Minute, AppConfig.AuthCacheTTL)
	assert.Empty(t, AppConfig.TrustedProxies)
	assert.False(t, IsProduction())
}

func TestLoadConfigFromEnv(t *testing.T) {
	viper.Reset()
	AppConfig = Config{}
	t.Setenv("ENV", "production")
	t.Setenv("STORE_DRIVER", StoreMemory)
	t.Setenv("BANNER_COUNT", "4")
	t.Setenv("AUTH_CACHE_TTL", "90s")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,10.0.0.0/8")

	LoadConfig()

	assert.True(t, IsProduction())
	assert.Equal(t, StoreMemory, AppConfig.StoreDriver)
	assert.Equal(t, 4, AppConfig.BannerCount)
	assert.Equal(t, 90*time.Second, AppConfig.AuthCacheTTL)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.0/8"}, AppConfig.TrustedProxies)
}
