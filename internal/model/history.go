package model

import "time"

// HistoryEntry records one play of a media item by a user.
type HistoryEntry struct {
	ID       string       `json:"id"`
	UserID   string       `json:"user"`
	MediaID  string       `json:"mediaID"`
	Artist   string       `json:"artist"`
	Title    string       `json:"title"`
	Start    int          `json:"start"`
	End      int          `json:"end"`
	PlayedAt time.Time    `json:"playedAt"`
	Media    *GlobalMedia `json:"media,omitempty"`
}
