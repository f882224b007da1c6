package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/daniyarm/trivia-game-bot/internal/domain/entities"
)

// scoreRecord is the on-disk shape of a scoreboard entry.
type scoreRecord struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
	Date   string `json:"date"`
}

// FileScoreRepository persists scoreboard entries as an append-only JSON
// array on disk. The file is rewritten whole on every append, which is fine
// for a single-player high-score list.
type FileScoreRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileScoreRepository creates a repository backed by the given file.
// The file and its directory are created lazily on first append.
func NewFileScoreRepository(path string) *FileScoreRepository {
	return &FileScoreRepository{path: path}
}

// Append adds a new entry to the scoreboard file.
func (r *FileScoreRepository) Append(_ context.Context, entry entities.ScoreboardEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}

	records = append(records, scoreRecord{
		Player: entry.PlayerName,
		Score:  entry.Score,
		Date:   entry.Date.Format(time.RFC3339),
	})

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create scores directory: %w", err)
		}
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write scores file: %w", err)
	}

	return nil
}

// List returns all persisted entries, highest score first.
func (r *FileScoreRepository) List(_ context.Context) ([]entities.ScoreboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	entries := make([]entities.ScoreboardEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, entities.ScoreboardEntry{
			PlayerName: record.Player,
			Score:      record.Score,
			Date:       parseScoreDate(record.Date),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	return entries, nil
}

func (r *FileScoreRepository) load() ([]scoreRecord, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scores file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []scoreRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal scores file: %w", err)
	}

	return records, nil
}

// parseScoreDate tolerates both timezone-qualified and bare ISO-8601 dates,
// since other tools may have seeded the file.
func parseScoreDate(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
