package models

import "time"

// AudioInfo describes a WAV file returned by the music endpoint
type AudioInfo struct {
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"`
	BitDepth   int           `json:"bit_depth"`
	Duration   time.Duration `json:"duration"`
	Size       int           `json:"size"`
}

// Clip is a generated audio file held for the session that requested it
type Clip struct {
	ID        string    `json:"id"`
	SessionID string    `json:"-"`
	Scale     Scale     `json:"scale"`
	Length    int       `json:"length"`
	Data      []byte    `json:"-"`
	Info      AudioInfo `json:"info"`
	CreatedAt time.Time `json:"created_at"`
}
