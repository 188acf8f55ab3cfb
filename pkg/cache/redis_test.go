package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/usedcar-api/pkg/config"
)

func TestAddr(t *testing.T) {
	assert.Equal(t, "cache.internal:6380", Addr(config.RedisConfig{Host: "cache.internal", Port: 6380}))
	assert.Equal(t, "[::1]:6379", Addr(config.RedisConfig{Host: "::1", Port: 6379}))
}
