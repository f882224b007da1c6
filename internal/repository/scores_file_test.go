package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniyarm/trivia-game-bot/internal/domain/entities"
)

func TestFileScoreRepositoryAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores", "scores.json")
	repo := NewFileScoreRepository(path)

	date := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	err := repo.Append(context.Background(), entities.ScoreboardEntry{
		PlayerName: "Dana",
		Score:      700,
		Date:       date,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Dana", records[0]["player"])
	assert.Equal(t, float64(700), records[0]["score"])
	assert.Equal(t, "2026-08-30T12:00:00Z", records[0]["date"])
}

func TestFileScoreRepositoryListSorted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	repo := NewFileScoreRepository(path)
	ctx := context.Background()

	for _, e := range []entities.ScoreboardEntry{
		{PlayerName: "Low", Score: 100, Date: time.Now()},
		{PlayerName: "High", Score: 900, Date: time.Now()},
		{PlayerName: "Mid", Score: 500, Date: time.Now()},
	} {
		require.NoError(t, repo.Append(ctx, e))
	}

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "High", entries[0].PlayerName)
	assert.Equal(t, "Mid", entries[1].PlayerName)
	assert.Equal(t, "Low", entries[2].PlayerName)
}

func TestFileScoreRepositoryMissingFile(t *testing.T) {
	repo := NewFileScoreRepository(filepath.Join(t.TempDir(), "absent.json"))

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileScoreRepositoryLegacyDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	seed := `[{"player":"Old","score":300,"date":"2024-01-02T15:04:05"}]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	repo := NewFileScoreRepository(path)
	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2024, entries[0].Date.Year())
}
