package gormdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/HSAR/GamesInCommon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRepository_AppendAndGet(t *testing.T) {
	repos := testutil.NewTestRepositories(t)
	ctx := context.Background()

	first := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Scan.Append(ctx, &domain.ScanRecord{
		AppID:     440,
		CheckedAt: first,
		Matched:   []domain.FilterKind{domain.FilterMultiplayer, domain.FilterTradingCards},
	}))
	require.NoError(t, repos.Scan.Append(ctx, &domain.ScanRecord{
		AppID:     440,
		CheckedAt: first.Add(time.Hour),
		Matched:   nil,
	}))
	require.NoError(t, repos.Scan.Append(ctx, &domain.ScanRecord{
		AppID:     570,
		CheckedAt: first,
		Matched:   []domain.FilterKind{domain.FilterCoop},
	}))

	records, err := repos.Scan.GetByGame(ctx, 440)
	require.NoError(t, err)
	require.Len(t, records, 2, "history is per game and append-only")

	assert.Equal(t, []domain.FilterKind{domain.FilterMultiplayer, domain.FilterTradingCards}, records[0].Matched)
	assert.Empty(t, records[1].Matched)
	assert.True(t, records[0].CheckedAt.Before(records[1].CheckedAt), "records come back oldest first")
}

func TestScanRepository_GetByGame_Empty(t *testing.T) {
	repos := testutil.NewTestRepositories(t)

	records, err := repos.Scan.GetByGame(context.Background(), 999999)
	require.NoError(t, err)
	assert.Empty(t, records)
}
