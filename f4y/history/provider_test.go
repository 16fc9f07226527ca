package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/file4you/f4y/organizer/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	provider, err := NewProvider(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })
	return provider
}

func sampleResult(runID string) *types.RunResult {
	now := time.Now().UTC().Truncate(time.Second)
	return &types.RunResult{
		RunID:     runID,
		SourceDir: "/downloads",
		StartTime: now.Add(-time.Minute),
		EndTime:   now,
		Moved:     3,
		Skipped:   1,
		Failed:    0,
		Learned:   2,
	}
}

func TestProviderRecordAndListRuns(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	first := sampleResult(uuid.NewString())
	first.StartTime = first.StartTime.Add(-time.Hour)
	second := sampleResult(uuid.NewString())

	require.NoError(t, provider.RecordRun(ctx, first))
	require.NoError(t, provider.RecordRun(ctx, second))

	runs, err := provider.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, second.RunID, runs[0].ID, "newest run comes first")
	assert.Equal(t, first.RunID, runs[1].ID)
	assert.Equal(t, "/downloads", runs[0].SourceDir)
	assert.Equal(t, 3, runs[0].Moved)
	assert.Equal(t, 2, runs[0].Learned)

	limited, err := provider.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestProviderRecordMove(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()
	runID := uuid.NewString()

	moved := types.ItemOperation{
		Item:       types.Item{Path: "/downloads/a.txt", Name: "a.txt"},
		Target:     types.Destination{Category: "Documents & Data", Subcategory: "Documents"},
		TargetPath: "/downloads/Documents & Data/Documents/a.txt",
		Outcome:    types.OutcomeMoved,
		Timestamp:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, provider.RecordMove(ctx, runID, moved))

	// Skips and dry runs never reach the ledger
	require.NoError(t, provider.RecordMove(ctx, runID, types.ItemOperation{
		Item:    types.Item{Path: "/downloads/b.txt"},
		Outcome: types.OutcomeSkipped,
	}))
	require.NoError(t, provider.RecordMove(ctx, runID, types.ItemOperation{
		Item:    types.Item{Path: "/downloads/c.txt"},
		Outcome: types.OutcomeMoved,
		DryRun:  true,
	}))

	moves, err := provider.MovesForRun(ctx, runID)
	require.NoError(t, err)
	require.Len(t, moves, 1)

	assert.Equal(t, "/downloads/a.txt", moves[0].Item.Path)
	assert.Equal(t, "a.txt", moves[0].Item.Name)
	assert.Equal(t, moved.TargetPath, moves[0].TargetPath)
	assert.Equal(t, "Documents & Data", moves[0].Target.Category)
	assert.Equal(t, types.OutcomeMoved, moves[0].Outcome)
}

func TestProviderPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()
	runID := uuid.NewString()

	provider, err := NewProvider(path)
	require.NoError(t, err)
	require.NoError(t, provider.RecordRun(ctx, sampleResult(runID)))
	require.NoError(t, provider.Close())

	reopened, err := NewProvider(path)
	require.NoError(t, err)
	defer reopened.Close()

	runs, err := reopened.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
}
