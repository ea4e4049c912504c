package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"uwaveapi/internal/model"
	"uwaveapi/internal/provider"
	"uwaveapi/internal/repository"
	"uwaveapi/internal/storage"
)

const (
	playlistPageDefault = 50
	playlistPageMax     = 100
	itemPageDefault     = 100
	itemPageMax         = 200
)

// CreatePlaylistInput is the body of a playlist creation.
type CreatePlaylistInput struct {
	Name        string
	Description string
	Shared      bool
}

// MediaInput references provider media to add to a playlist. Empty Artist and
// Title fall back to the provider metadata; End 0 means the full duration.
type MediaInput struct {
	SourceType string `json:"sourceType"`
	SourceID   string `json:"sourceID"`
	Artist     string `json:"artist"`
	Title      string `json:"title"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
}

// ItemMetadata holds the editable fields of a playlist item.
type ItemMetadata struct {
	Artist string
	Title  string
	Start  int
	End    int
}

// PlaylistService defines the playlist use cases. Every method acts on behalf of user.
type PlaylistService interface {
	List(ctx context.Context, user *model.User, page, limit int) (*model.Page[model.Playlist], error)
	Create(ctx context.Context, user *model.User, in CreatePlaylistInput) (*model.Playlist, error)

	// Get returns the playlist with the first page of its items.
	Get(ctx context.Context, user *model.User, id string) (*model.Playlist, error)

	Delete(ctx context.Context, user *model.User, id string) error
	Rename(ctx context.Context, user *model.User, id, name string) (*model.Playlist, error)
	Share(ctx context.Context, user *model.User, id string, shared bool) (*model.Playlist, error)
	Activate(ctx context.Context, user *model.User, id string) (*model.Playlist, error)

	// Move places itemIDs directly after the item after, or at the start when after is empty.
	Move(ctx context.Context, user *model.User, id string, itemIDs []string, after string) (*model.Playlist, error)

	ListMedia(ctx context.Context, user *model.User, id string, page, limit int) (*model.Page[model.PlaylistItem], error)

	// AddMedia resolves each input against stored or provider metadata and inserts
	// the new items after the item after, or at the start when after is empty.
	AddMedia(ctx context.Context, user *model.User, id string, items []MediaInput, after string) ([]model.PlaylistItem, error)

	RemoveMedia(ctx context.Context, user *model.User, id string, itemIDs []string) (*model.Playlist, error)
	RemoveItem(ctx context.Context, user *model.User, id, itemID string) (*model.Playlist, error)
	GetMedia(ctx context.Context, user *model.User, id, itemID string) (*model.PlaylistItem, error)
	UpdateMedia(ctx context.Context, user *model.User, id, itemID string, meta ItemMetadata) (*model.PlaylistItem, error)

	// CopyMedia appends a copy of an item to another playlist of user.
	CopyMedia(ctx context.Context, user *model.User, id, itemID, toPlaylistID string) (*model.PlaylistItem, error)

	// Export writes a JSON snapshot to object storage and returns a download link.
	Export(ctx context.Context, user *model.User, id string) (*ExportResult, error)
}

type playlistService struct {
	playlists repository.PlaylistRepository
	media     repository.MediaRepository
	users     repository.UserRepository
	sources   *provider.Registry
	state     PlaylistState
	store     storage.Storage
	log       zerolog.Logger
	now       func() time.Time
}

// NewPlaylistService constructs a PlaylistService. store may be nil, which
// disables exports.
func NewPlaylistService(
	playlists repository.PlaylistRepository,
	media repository.MediaRepository,
	users repository.UserRepository,
	sources *provider.Registry,
	state PlaylistState,
	store storage.Storage,
	log zerolog.Logger,
) PlaylistService {
	return &playlistService{
		playlists: playlists,
		media:     media,
		users:     users,
		sources:   sources,
		state:     state,
		store:     store,
		log:       log.With().Str("component", "playlists").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *playlistService) find(ctx context.Context, id string) (*model.Playlist, error) {
	if !validID(id) {
		return nil, notFound("playlist with ID %s not found", id)
	}
	p, err := s.playlists.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("playlist with ID %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// readable loads a playlist user may read: their own or a shared one.
func (s *playlistService) readable(ctx context.Context, user *model.User, id string) (*model.Playlist, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != user.ID && !p.Shared {
		return nil, forbidden("this playlist is private")
	}
	return p, nil
}

// owned loads a playlist user may modify. action completes the refusal message.
func (s *playlistService) owned(ctx context.Context, user *model.User, id, action string) (*model.Playlist, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != user.ID {
		return nil, forbidden("you can't %s the playlist of another user", action)
	}
	return p, nil
}

func (s *playlistService) List(ctx context.Context, user *model.User, page, limit int) (*model.Page[model.Playlist], error) {
	pq := repository.NewPageQuery(page, limit, playlistPageDefault, playlistPageMax)
	res, err := s.playlists.ListByAuthor(ctx, user.ID, pq)
	if err != nil {
		return nil, err
	}
	return &model.Page[model.Playlist]{Page: pq.Page, PageSize: pq.Limit, Total: res.Total, Data: res.Items}, nil
}

func (s *playlistService) Create(ctx context.Context, user *model.User, in CreatePlaylistInput) (*model.Playlist, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is not set")
	}
	now := s.now()
	return s.playlists.Create(ctx, &model.Playlist{
		ID:          uuid.New().String(),
		AuthorID:    user.ID,
		Name:        name,
		Description: in.Description,
		Shared:      in.Shared,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *playlistService) Get(ctx context.Context, user *model.User, id string) (*model.Playlist, error) {
	p, err := s.readable(ctx, user, id)
	if err != nil {
		return nil, err
	}
	items, err := s.playlists.ListItems(ctx, p.ID, repository.NewPageQuery(0, 0, itemPageDefault, itemPageMax))
	if err != nil {
		return nil, err
	}
	p.Media = items.Items
	return p, nil
}

func (s *playlistService) Delete(ctx context.Context, user *model.User, id string) error {
	p, err := s.owned(ctx, user, id, "delete")
	if err != nil {
		return err
	}
	active, err := s.state.ActivePlaylist(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("load active playlist: %w", err)
	}
	if active == p.ID {
		return forbidden("you can't delete an active playlist")
	}
	if err := s.playlists.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("playlist with ID %s not found", id)
		}
		return err
	}
	return nil
}

func (s *playlistService) Rename(ctx context.Context, user *model.User, id, name string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is not set")
	}
	p, err := s.owned(ctx, user, id, "rename")
	if err != nil {
		return nil, err
	}
	p.Name = name
	p.UpdatedAt = s.now()
	return s.update(ctx, p)
}

func (s *playlistService) Share(ctx context.Context, user *model.User, id string, shared bool) (*model.Playlist, error) {
	p, err := s.owned(ctx, user, id, "share")
	if err != nil {
		return nil, err
	}
	p.Shared = shared
	p.UpdatedAt = s.now()
	return s.update(ctx, p)
}

func (s *playlistService) update(ctx context.Context, p *model.Playlist) (*model.Playlist, error) {
	out, err := s.playlists.Update(ctx, p)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("playlist with ID %s not found", p.ID)
	}
	return out, err
}

func (s *playlistService) Activate(ctx context.Context, user *model.User, id string) (*model.Playlist, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != user.ID && !p.Shared {
		author := "the author"
		if u, err := s.users.FindByID(ctx, p.AuthorID); err == nil {
			author = u.Username
		}
		return nil, forbidden("%s has made %s private", author, p.Name)
	}
	if err := s.state.SetActivePlaylist(ctx, user.ID, p.ID); err != nil {
		return nil, fmt.Errorf("store active playlist: %w", err)
	}
	return p, nil
}

// placement builds the insertion point for after. Whether the item exists is
// checked by the repository under the playlist lock.
func placement(after string) (repository.Placement, error) {
	if after == "" {
		return repository.Placement{}, nil
	}
	if !validID(after) {
		return repository.Placement{}, notFound("playlist item %s not found", after)
	}
	return repository.Placement{After: after}, nil
}

func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}

func (s *playlistService) Move(ctx context.Context, user *model.User, id string, itemIDs []string, after string) (*model.Playlist, error) {
	p, err := s.owned(ctx, user, id, "edit")
	if err != nil {
		return nil, err
	}
	for _, itemID := range itemIDs {
		if after != "" && itemID == after {
			return nil, invalid("after can't be one of the moved items")
		}
	}
	at, err := placement(after)
	if err != nil {
		return nil, err
	}
	if ids := validIDs(itemIDs); len(ids) > 0 || at.After != "" {
		err := s.playlists.MoveItems(ctx, p.ID, ids, at)
		if errors.Is(err, repository.ErrAnchorNotFound) {
			return nil, notFound("playlist item %s not found", after)
		}
		if err != nil {
			return nil, err
		}
	}
	return s.find(ctx, p.ID)
}

func (s *playlistService) ListMedia(ctx context.Context, user *model.User, id string, page, limit int) (*model.Page[model.PlaylistItem], error) {
	p, err := s.readable(ctx, user, id)
	if err != nil {
		return nil, err
	}
	pq := repository.NewPageQuery(page, limit, itemPageDefault, itemPageMax)
	res, err := s.playlists.ListItems(ctx, p.ID, pq)
	if err != nil {
		return nil, err
	}
	return &model.Page[model.PlaylistItem]{Page: pq.Page, PageSize: pq.Limit, Total: res.Total, Data: res.Items}, nil
}

func (s *playlistService) AddMedia(ctx context.Context, user *model.User, id string, items []MediaInput, after string) ([]model.PlaylistItem, error) {
	p, err := s.owned(ctx, user, id, "edit")
	if err != nil {
		return nil, err
	}
	at, err := placement(after)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []model.PlaylistItem{}, nil
	}

	resolved := make(map[string]*model.GlobalMedia, len(items))
	toInsert := make([]model.PlaylistItem, 0, len(items))
	now := s.now()
	for _, in := range items {
		key := strings.ToLower(in.SourceType) + ":" + in.SourceID
		gm, ok := resolved[key]
		if !ok {
			gm, err = s.resolve(ctx, in.SourceType, in.SourceID)
			if err != nil {
				return nil, err
			}
			resolved[key] = gm
		}

		start, end, err := clip(in.Start, in.End, gm.Duration)
		if err != nil {
			return nil, err
		}
		toInsert = append(toInsert, model.PlaylistItem{
			ID:        uuid.New().String(),
			MediaID:   gm.ID,
			Artist:    orDefault(in.Artist, gm.Artist),
			Title:     orDefault(in.Title, gm.Title),
			Start:     start,
			End:       end,
			CreatedAt: now,
			Media:     gm,
		})
	}

	out, err := s.playlists.InsertItems(ctx, p.ID, toInsert, at)
	switch {
	case errors.Is(err, repository.ErrAnchorNotFound):
		return nil, notFound("playlist item %s not found", after)
	case errors.Is(err, repository.ErrNotFound):
		return nil, notFound("playlist with ID %s not found", id)
	}
	return out, err
}

// resolve returns stored metadata for a source, fetching and storing it on first use.
func (s *playlistService) resolve(ctx context.Context, sourceType, sourceID string) (*model.GlobalMedia, error) {
	sourceType = strings.ToLower(strings.TrimSpace(sourceType))
	if sourceType == "" || sourceID == "" {
		return nil, invalid("sourceType and sourceID are required")
	}

	gm, err := s.media.FindBySource(ctx, sourceType, sourceID)
	if err == nil {
		return gm, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	src, err := s.sources.Get(sourceType)
	if err != nil {
		return nil, notFound("unknown provider %s", sourceType)
	}
	fetched, err := src.Fetch(ctx, sourceID)
	if errors.Is(err, provider.ErrNotFound) {
		return nil, notFound("media %s/%s not found", sourceType, sourceID)
	}
	if err != nil {
		s.log.Error().Err(err).Str("source_type", sourceType).Str("source_id", sourceID).Msg("fetch media failed")
		return nil, fmt.Errorf("fetch %s media: %w", sourceType, err)
	}

	fetched.ID = uuid.New().String()
	fetched.CreatedAt = s.now()
	return s.media.Create(ctx, fetched)
}

// clip validates a start/end pair against a duration in seconds. end 0 selects
// the full duration.
func clip(start, end, duration int) (int, int, error) {
	if start < 0 || end < 0 {
		return 0, 0, invalid("start and end can't be negative")
	}
	if end == 0 || (duration > 0 && end > duration) {
		end = duration
	}
	if end > 0 && start >= end {
		return 0, 0, invalid("start has to be before end")
	}
	return start, end, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func (s *playlistService) RemoveMedia(ctx context.Context, user *model.User, id string, itemIDs []string) (*model.Playlist, error) {
	p, err := s.owned(ctx, user, id, "edit")
	if err != nil {
		return nil, err
	}
	if ids := validIDs(itemIDs); len(ids) > 0 {
		if _, err := s.playlists.DeleteItems(ctx, p.ID, ids); err != nil {
			return nil, err
		}
	}
	return s.find(ctx, p.ID)
}

func (s *playlistService) RemoveItem(ctx context.Context, user *model.User, id, itemID string) (*model.Playlist, error) {
	p, err := s.owned(ctx, user, id, "edit")
	if err != nil {
		return nil, err
	}
	if !validID(itemID) {
		return nil, notFound("media not found")
	}
	n, err := s.playlists.DeleteItems(ctx, p.ID, []string{itemID})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, notFound("media not found")
	}
	return s.find(ctx, p.ID)
}

func (s *playlistService) item(ctx context.Context, playlistID, itemID string) (*model.PlaylistItem, error) {
	if !validID(itemID) {
		return nil, notFound("media not found")
	}
	it, err := s.playlists.FindItem(ctx, playlistID, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("media not found")
	}
	return it, err
}

func (s *playlistService) GetMedia(ctx context.Context, user *model.User, id, itemID string) (*model.PlaylistItem, error) {
	p, err := s.readable(ctx, user, id)
	if err != nil {
		return nil, err
	}
	return s.item(ctx, p.ID, itemID)
}

func (s *playlistService) UpdateMedia(ctx context.Context, user *model.User, id, itemID string, meta ItemMetadata) (*model.PlaylistItem, error) {
	p, err := s.owned(ctx, user, id, "edit")
	if err != nil {
		return nil, err
	}
	it, err := s.item(ctx, p.ID, itemID)
	if err != nil {
		return nil, err
	}

	duration := 0
	if it.Media != nil {
		duration = it.Media.Duration
	}
	start, end, err := clip(meta.Start, meta.End, duration)
	if err != nil {
		return nil, err
	}
	it.Artist = orDefault(meta.Artist, it.Artist)
	it.Title = orDefault(meta.Title, it.Title)
	it.Start, it.End = start, end

	out, err := s.playlists.UpdateItem(ctx, it)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("media not found")
	}
	return out, err
}

func (s *playlistService) CopyMedia(ctx context.Context, user *model.User, id, itemID, toPlaylistID string) (*model.PlaylistItem, error) {
	src, err := s.readable(ctx, user, id)
	if err != nil {
		return nil, err
	}
	it, err := s.item(ctx, src.ID, itemID)
	if err != nil {
		return nil, err
	}
	dst, err := s.owned(ctx, user, toPlaylistID, "edit")
	if err != nil {
		return nil, err
	}

	cp := model.PlaylistItem{
		ID:        uuid.New().String(),
		MediaID:   it.MediaID,
		Artist:    it.Artist,
		Title:     it.Title,
		Start:     it.Start,
		End:       it.End,
		CreatedAt: s.now(),
		Media:     it.Media,
	}
	out, err := s.playlists.InsertItems(ctx, dst.ID, []model.PlaylistItem{cp}, repository.Placement{AtEnd: true})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("playlist with ID %s not found", toPlaylistID)
	}
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}
