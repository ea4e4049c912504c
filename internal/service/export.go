package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"uwaveapi/internal/model"
	"uwaveapi/internal/repository"
	"uwaveapi/internal/storage"
)

// ExportTTL is how long an export download link stays valid.
const ExportTTL = 15 * time.Minute

// ExportResult points at a stored playlist snapshot.
type ExportResult struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type exportSnapshot struct {
	ExportedAt time.Time            `json:"exportedAt"`
	Playlist   model.Playlist       `json:"playlist"`
	Items      []model.PlaylistItem `json:"items"`
}

func (s *playlistService) Export(ctx context.Context, user *model.User, id string) (*ExportResult, error) {
	if s.store == nil {
		return nil, newError(ErrUnavailable, "playlist export is not configured")
	}
	p, err := s.readable(ctx, user, id)
	if err != nil {
		return nil, err
	}

	items := make([]model.PlaylistItem, 0, p.Size)
	for page := 0; ; page++ {
		res, err := s.playlists.ListItems(ctx, p.ID, repository.NewPageQuery(page, itemPageMax, itemPageMax, itemPageMax))
		if err != nil {
			return nil, err
		}
		items = append(items, res.Items...)
		if len(res.Items) < itemPageMax || len(items) >= res.Total {
			break
		}
	}

	now := s.now()
	body, err := json.Marshal(exportSnapshot{ExportedAt: now, Playlist: *p, Items: items})
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := path.Join("exports", user.ID, fmt.Sprintf("%s-%d.json", p.ID, now.Unix()))
	info, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
		Metadata:    map[string]string{"playlist-id": p.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.store.PresignGet(ctx, info.Key, ExportTTL)
	if err != nil {
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			s.log.Warn().Err(delErr).Str("key", info.Key).Msg("remove unreachable export failed")
		}
		return nil, fmt.Errorf("presign export: %w", err)
	}

	s.log.Info().Str("playlist_id", p.ID).Str("key", info.Key).Int("items", len(items)).Msg("playlist exported")
	return &ExportResult{URL: url, Key: info.Key, ExpiresAt: now.Add(ExportTTL)}, nil
}
