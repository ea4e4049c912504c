package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"uwaveapi/internal/model"
)

// SoundCloud searches tracks through the public API with a client id.
type SoundCloud struct {
	client
	clientID string
	baseURL  string
}

func NewSoundCloud(clientID, baseURL string, limiter *rate.Limiter) *SoundCloud {
	return &SoundCloud{
		client:   newClient(limiter),
		clientID: clientID,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

func (s *SoundCloud) Name() string { return "soundcloud" }

type scTrack struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	// milliseconds
	Duration    int64  `json:"duration"`
	ArtworkURL  string `json:"artwork_url"`
	WaveformURL string `json:"waveform_url"`
	User        struct {
		Username string `json:"username"`
	} `json:"user"`
}

func (s *SoundCloud) Search(ctx context.Context, query string) ([]model.GlobalMedia, error) {
	val := url.Values{}
	val.Set("client_id", s.clientID)
	val.Set("q", query)
	val.Set("limit", strconv.Itoa(SearchLimit))

	var tracks []scTrack
	if err := s.getJSON(ctx, s.baseURL+"/tracks?"+val.Encode(), &tracks); err != nil {
		return nil, fmt.Errorf("soundcloud search: %w", err)
	}

	out := make([]model.GlobalMedia, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, convertSoundCloud(t))
	}
	return out, nil
}

func (s *SoundCloud) Fetch(ctx context.Context, sourceID string) (*model.GlobalMedia, error) {
	val := url.Values{}
	val.Set("client_id", s.clientID)

	var t scTrack
	if err := s.getJSON(ctx, s.baseURL+"/tracks/"+url.PathEscape(sourceID)+"?"+val.Encode(), &t); err != nil {
		return nil, fmt.Errorf("soundcloud track: %w", err)
	}
	if t.ID == 0 {
		return nil, ErrNotFound
	}
	m := convertSoundCloud(t)
	return &m, nil
}

func convertSoundCloud(t scTrack) model.GlobalMedia {
	thumb := t.ArtworkURL
	if thumb == "" {
		thumb = t.WaveformURL
	}
	return model.GlobalMedia{
		SourceType: "soundcloud",
		SourceID:   strconv.FormatInt(t.ID, 10),
		Artist:     t.User.Username,
		Title:      t.Title,
		Duration:   int(t.Duration / 1000),
		Thumbnail:  thumb,
		NSFW:       false,
		Restricted: []string{},
	}
}
