package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bloglist/internal/config"
)

func TestRunMigrations_AppliesInOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS blogs").WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, RunMigrations(context.Background(), mock, zap.NewNop()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_NilPoolSkips(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestRedis_NotConfigured(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, zap.NewNop())
	assert.False(t, r.Enabled())
	assert.Error(t, r.Ping(context.Background()))
	r.Close()
}

func TestRedis_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	r := NewRedis(config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	defer r.Close()

	assert.True(t, r.Enabled())
	assert.NoError(t, r.Ping(context.Background()))
}

func TestPostgres_PingWithoutPool(t *testing.T) {
	var p *Postgres
	assert.Error(t, p.Ping(context.Background()))
	p.Close()
}

func TestOpenStore_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}}
	store, err := OpenStore(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer store.Close(context.Background())

	assert.NotNil(t, store.Users)
	assert.NotNil(t, store.Blogs)
	assert.Empty(t, store.Dependencies)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "sqlite"}}
	_, err := OpenStore(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
