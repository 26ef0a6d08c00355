package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SavedListing is a listing pinned to a user's garage.
type SavedListing struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	Listing Listing   `json:"listing"`
	SavedAt time.Time `json:"saved_at"`
}

// HistoryEntry records one completed analysis for a user.
type HistoryEntry struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
	Listing   Listing         `json:"listing"`
	DealScore *DealScore      `json:"deal_score,omitempty"`
	Risk      *RiskAssessment `json:"risk,omitempty"`
}
