package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "ignore", cfg.Query.AfterDatePolicy)
	assert.Equal(t, "strict", cfg.Query.OrderTagsPolicy)
	assert.Equal(t, 3, cfg.Query.InventoryPageSize)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("INVENTORY_AFTER_DATE_POLICY", "REJECT")
	t.Setenv("ORDER_TAGS_POLICY", "lenient")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "25")
	t.Setenv("REDIS_LIST_TTL", "30s")

	cfg := LoadEnv()

	assert.Equal(t, ":9090", cfg.Server.HTTPPort)
	assert.Equal(t, "reject", cfg.Query.AfterDatePolicy)
	assert.Equal(t, "lenient", cfg.Query.OrderTagsPolicy)
	assert.Equal(t, 25, cfg.Postgres.MaxOpenConns)
	assert.Equal(t, 30*time.Second, cfg.Redis.ListTTL)
}
