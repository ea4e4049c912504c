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

// YouTube searches videos through the Data API v3.
type YouTube struct {
	client
	apiKey  string
	baseURL string
}

func NewYouTube(apiKey, baseURL string, limiter *rate.Limiter) *YouTube {
	return &YouTube{
		client:  newClient(limiter),
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (y *YouTube) Name() string { return "youtube" }

type ytThumbnail struct {
	URL string `json:"url"`
}

type ytVideo struct {
	ID      string `json:"id"`
	Snippet *struct {
		Title        string `json:"title"`
		ChannelTitle string `json:"channelTitle"`
		Thumbnails   struct {
			Default *ytThumbnail `json:"default"`
			Medium  *ytThumbnail `json:"medium"`
			High    *ytThumbnail `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	ContentDetails *struct {
		Duration          string         `json:"duration"`
		ContentRating     map[string]any `json:"contentRating"`
		RegionRestriction *struct {
			Blocked []string `json:"blocked"`
		} `json:"regionRestriction"`
	} `json:"contentDetails"`
}

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type ytVideosResponse struct {
	Items []ytVideo `json:"items"`
}

// Search runs a relevance-ordered video search and then loads the details of
// every hit.
func (y *YouTube) Search(ctx context.Context, query string) ([]model.GlobalMedia, error) {
	val := url.Values{}
	val.Set("key", y.apiKey)
	val.Set("q", query)
	val.Set("safeSearch", "none")
	val.Set("videoSyndicated", "true")
	val.Set("part", "snippet")
	val.Set("order", "relevance")
	val.Set("maxResults", strconv.Itoa(SearchLimit))
	val.Set("type", "video")

	var body ytSearchResponse
	if err := y.getJSON(ctx, y.baseURL+"/search?"+val.Encode(), &body); err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	ids := make([]string, 0, len(body.Items))
	for _, it := range body.Items {
		if it.ID.VideoID != "" {
			ids = append(ids, it.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return []model.GlobalMedia{}, nil
	}
	return y.videos(ctx, ids)
}

// Fetch loads a single video.
func (y *YouTube) Fetch(ctx context.Context, sourceID string) (*model.GlobalMedia, error) {
	media, err := y.videos(ctx, []string{sourceID})
	if err != nil {
		return nil, err
	}
	if len(media) == 0 {
		return nil, ErrNotFound
	}
	return &media[0], nil
}

func (y *YouTube) videos(ctx context.Context, ids []string) ([]model.GlobalMedia, error) {
	val := url.Values{}
	val.Set("key", y.apiKey)
	val.Set("part", "snippet,contentDetails")
	val.Set("id", strings.Join(ids, ","))

	var body ytVideosResponse
	if err := y.getJSON(ctx, y.baseURL+"/videos?"+val.Encode(), &body); err != nil {
		return nil, fmt.Errorf("youtube videos: %w", err)
	}

	out := make([]model.GlobalMedia, 0, len(body.Items))
	for _, v := range body.Items {
		// private and deleted videos come back without these parts
		if v.Snippet == nil || v.ContentDetails == nil {
			continue
		}
		out = append(out, convertYouTube(v))
	}
	return out, nil
}

func convertYouTube(v ytVideo) model.GlobalMedia {
	artist, title, ok := splitArtistTitle(v.Snippet.Title)
	if !ok {
		artist, title = v.Snippet.ChannelTitle, v.Snippet.Title
	}

	restricted := []string{}
	if rr := v.ContentDetails.RegionRestriction; rr != nil && rr.Blocked != nil {
		restricted = rr.Blocked
	}

	return model.GlobalMedia{
		SourceType: "youtube",
		SourceID:   v.ID,
		Artist:     artist,
		Title:      title,
		Duration:   parseISODuration(v.ContentDetails.Duration),
		Thumbnail:  selectThumbnail(v.Snippet.Thumbnails.High, v.Snippet.Thumbnails.Medium, v.Snippet.Thumbnails.Default),
		NSFW:       v.ContentDetails.ContentRating != nil,
		Restricted: restricted,
	}
}

func selectThumbnail(candidates ...*ytThumbnail) string {
	for _, t := range candidates {
		if t != nil {
			return t.URL
		}
	}
	return ""
}
