package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/widget-service/internal/repositories"
)

func TestSeedAllTestDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryWidgetRepository()

	require.NoError(t, SeedAllTestData(ctx, repo))
	require.NoError(t, SeedAllTestData(ctx, repo))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Widget Name", all[0].Name)
	assert.Equal(t, "Widget 2 Name", all[1].Name)
	assert.Equal(t, int64(1), all[0].RowVersion)
}

func TestNewAppSeedsWhenFlagged(t *testing.T) {
	cfg := testConfig(t, repositories.StoreDriverSQLite)
	cfg.LDFlag_SeedDbWithTestData = true

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	n, err := a.WidgetRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestOpenWidgetRepositoryUnknownDriver(t *testing.T) {
	cfg := testConfig(t, repositories.StoreDriverMemory)
	cfg.StoreDriver = "redis"

	_, err := OpenWidgetRepository(context.Background(), cfg)
	assert.Error(t, err)
}
