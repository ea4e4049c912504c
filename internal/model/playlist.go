package model

import "time"

// Playlist is a named, ordered collection of items owned by one user.
type Playlist struct {
	ID          string         `json:"id"`
	AuthorID    string         `json:"author"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Shared      bool           `json:"shared"`
	Size        int            `json:"size"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Media       []PlaylistItem `json:"media,omitempty"`
}

// PlaylistItem is one entry of a playlist. Artist/Title/Start/End are per-playlist
// overrides of the referenced GlobalMedia.
type PlaylistItem struct {
	ID         string       `json:"id"`
	PlaylistID string       `json:"playlist"`
	MediaID    string       `json:"mediaID"`
	Artist     string       `json:"artist"`
	Title      string       `json:"title"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Position   int          `json:"-"`
	CreatedAt  time.Time    `json:"createdAt"`
	Media      *GlobalMedia `json:"media,omitempty"`
}
