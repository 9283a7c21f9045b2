package model

import "time"

// Preset is a saved generator configuration. It never holds a password.
type Preset struct {
	ID          string
	AccountID   int64
	Name        string
	Length      int
	Uppercase   bool
	Lowercase   bool
	Numbers     bool
	Symbols     bool
	RequireEach bool
	CreatedAt   time.Time
}

// PresetRequest creates a preset. Missing class flags default to true.
type PresetRequest struct {
	Name        string `json:"name"`
	Length      int    `json:"length"`
	Uppercase   *bool  `json:"uppercase"`
	Lowercase   *bool  `json:"lowercase"`
	Numbers     *bool  `json:"numbers"`
	Symbols     *bool  `json:"symbols"`
	RequireEach bool   `json:"require_each"`
}

// PresetResponse represents a preset in API responses.
type PresetResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Length      int       `json:"length"`
	Uppercase   bool      `json:"uppercase"`
	Lowercase   bool      `json:"lowercase"`
	Numbers     bool      `json:"numbers"`
	Symbols     bool      `json:"symbols"`
	RequireEach bool      `json:"require_each"`
	PoolSize    int       `json:"pool_size"`
	CreatedAt   time.Time `json:"created_at"`
}

// PresetGenerateRequest generates from a stored preset.
type PresetGenerateRequest struct {
	Count  int    `json:"count"`
	Source string `json:"source"`
}
