package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsbridge/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

func fileIDs(files []domain.DriveFile) []string {
	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestResolveMany_AllCached_NoFetch(t *testing.T) {
	cache := memory.NewResourceCache[domain.DriveFile]("documents")
	cache.Put("d1", domain.DriveFile{ID: "d1", Name: "one"})
	cache.Put("d2", domain.DriveFile{ID: "d2", Name: "two"})
	provider := newMockDriveProvider()

	result, err := ResolveMany(context.Background(), cache, []string{"d2", "d1"}, provider.BatchGetFiles)
	require.NoError(t, err)

	assert.Empty(t, provider.batchCalls)
	assert.Equal(t, []string{"d2", "d1"}, fileIDs(result.Values))
	assert.Equal(t, 2, result.Hits)
}

func TestResolveMany_NoneCached_OneFetchPopulatesCache(t *testing.T) {
	cache := memory.NewResourceCache[domain.DriveFile]("documents")
	provider := newMockDriveProvider(
		domain.DriveFile{ID: "d1"}, domain.DriveFile{ID: "d2"}, domain.DriveFile{ID: "d3"},
	)

	result, err := ResolveMany(context.Background(), cache, []string{"d1", "d2", "d3"}, provider.BatchGetFiles)
	require.NoError(t, err)

	require.Len(t, provider.batchCalls, 1)
	assert.Equal(t, []string{"d1", "d2", "d3"}, provider.batchCalls[0])
	assert.Equal(t, []string{"d1", "d2", "d3"}, fileIDs(result.Values))
	assert.Equal(t, 3, cache.Len())
}

func TestResolveMany_PartialCache(t *testing.T) {
	cache := memory.NewResourceCache[domain.DriveFile]("documents")
	cache.Put("d1", domain.DriveFile{ID: "d1", Name: "cached"})
	provider := newMockDriveProvider(domain.DriveFile{ID: "d2", Name: "fetched"})

	result, err := ResolveMany(context.Background(), cache, []string{"d1", "d2"}, provider.BatchGetFiles)
	require.NoError(t, err)

	require.Len(t, provider.batchCalls, 1)
	assert.Equal(t, []string{"d2"}, provider.batchCalls[0])
	require.Len(t, result.Values, 2)
	assert.Equal(t, "cached", result.Values[0].Name)
	assert.Equal(t, "fetched", result.Values[1].Name)

	_, ok := cache.Get("d2")
	assert.True(t, ok)
}

func TestResolveMany_SkipsIndividualFailures(t *testing.T) {
	cache := memory.NewResourceCache[domain.DriveFile]("documents")
	provider := newMockDriveProvider(domain.DriveFile{ID: "d1"}, domain.DriveFile{ID: "d2"})
	provider.batchFail["d2"] = true

	result, err := ResolveMany(context.Background(), cache, []string{"d1", "d2", "missing"}, provider.BatchGetFiles)
	require.NoError(t, err)

	assert.Equal(t, []string{"d1"}, fileIDs(result.Values))
	assert.Equal(t, []string{"d2", "missing"}, result.Skipped)
	assert.Equal(t, 1, cache.Len())
}

func TestResolveMany_CollapsesDuplicatesAndBlanks(t *testing.T) {
	cache := memory.NewResourceCache[domain.DriveFile]("documents")
	provider := newMockDriveProvider(domain.DriveFile{ID: "d1"})

	result, err := ResolveMany(context.Background(), cache, []string{"d1", "", "d1"}, provider.BatchGetFiles)
	require.NoError(t, err)

	assert.Equal(t, []string{"d1"}, provider.batchCalls[0])
	assert.Equal(t, []string{"d1"}, fileIDs(result.Values))
}

func TestResolveMany_EmptyInput(t *testing.T) {
	cache := memory.NewResourceCache[domain.DriveFile]("documents")
	provider := newMockDriveProvider()

	result, err := ResolveMany(context.Background(), cache, nil, provider.BatchGetFiles)
	require.NoError(t, err)
	assert.Empty(t, result.Values)
	assert.Empty(t, provider.batchCalls)
}

func TestResolveMany_WholeRequestFailure(t *testing.T) {
	cache := memory.NewResourceCache[domain.DriveFile]("documents")
	provider := newMockDriveProvider()
	provider.err = &domain.ProviderError{Op: "drive.batch", StatusCode: 503, Message: "unavailable"}

	_, err := ResolveMany(context.Background(), cache, []string{"d1"}, provider.BatchGetFiles)
	assert.ErrorIs(t, err, domain.ErrProvider)
	assert.Equal(t, 0, cache.Len())
}

func TestResolveMany_ClearDuringFetchDropsWrites(t *testing.T) {
	cache := memory.NewResourceCache[domain.DriveFile]("documents")
	fetch := func(_ context.Context, ids []string) (map[string]domain.DriveFile, error) {
		cache.Clear()
		return map[string]domain.DriveFile{"d1": {ID: "d1"}}, nil
	}

	result, err := ResolveMany(context.Background(), cache, []string{"d1"}, fetch)
	require.NoError(t, err)
	assert.Len(t, result.Values, 1)
	assert.Equal(t, 0, cache.Len())
}

func TestResolveMany_ContextCanceled(t *testing.T) {
	cache := memory.NewResourceCache[domain.DriveFile]("documents")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetch := func(ctx context.Context, _ []string) (map[string]domain.DriveFile, error) {
		return nil, ctx.Err()
	}

	_, err := ResolveMany(ctx, cache, []string{"d1"}, fetch)
	assert.True(t, errors.Is(err, context.Canceled))
}
