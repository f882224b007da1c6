package entities

import "time"

// ScoreboardEntry is a single persisted high-score record. Entries are
// created at end-of-game and never mutated afterwards.
type ScoreboardEntry struct {
	PlayerName string
	Score      int
	Date       time.Time
}
