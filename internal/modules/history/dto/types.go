package dto

import "time"

type RecordInput struct {
	SessionID string
	Game      string
	Score     int
	Level     int
	EndReason string
	Seed      int64
	StartedAt time.Time
	EndedAt   time.Time
}

type ListInput struct {
	Game  string
	Limit int
}

type RunOutput struct {
	ID        string
	SessionID string
	Game      string
	Score     int
	Level     int
	EndReason string
	Seed      int64
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
}
