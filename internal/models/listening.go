package models

import "time"

// Story and Dialogue share a shape; the original keeps them in separate
// tables so listeners can browse them independently.

type Story struct {
	ID           int64            `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Content      string           `json:"content"`
	AudioURL     string           `json:"audio_url"`
	ImageURL     *string          `json:"image_url,omitempty"`
	Duration     int              `json:"duration"` // seconds
	DifficultyID *int64           `json:"difficulty_id,omitempty"`
	Difficulty   *DifficultyLevel `json:"difficulty,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

type Dialogue struct {
	ID           int64            `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Content      string           `json:"content"`
	AudioURL     string           `json:"audio_url"`
	ImageURL     *string          `json:"image_url,omitempty"`
	Duration     int              `json:"duration"` // seconds
	DifficultyID *int64           `json:"difficulty_id,omitempty"`
	Difficulty   *DifficultyLevel `json:"difficulty,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}
