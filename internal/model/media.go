package model

import "time"

// GlobalMedia is provider metadata shared by every playlist that references the same source.
type GlobalMedia struct {
	ID         string    `json:"id"`
	SourceType string    `json:"sourceType"`
	SourceID   string    `json:"sourceID"`
	Artist     string    `json:"artist"`
	Title      string    `json:"title"`
	Duration   int       `json:"duration"` // seconds
	Thumbnail  string    `json:"thumbnail"`
	NSFW       bool      `json:"nsfw"`
	Restricted []string  `json:"restricted"`
	CreatedAt  time.Time `json:"createdAt"`
}
