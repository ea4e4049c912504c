package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"uwaveapi/internal/model"
	"uwaveapi/internal/provider"
	"uwaveapi/internal/realtime"
	"uwaveapi/internal/repository"
	repoMocks "uwaveapi/internal/repository/mocks"
	"uwaveapi/internal/storage"
	storeMocks "uwaveapi/internal/storage/mocks"
)

type playlistFixture struct {
	svc       PlaylistService
	playlists *repoMocks.MockPlaylistRepository
	media     *repoMocks.MockMediaRepository
	users     *repoMocks.MockUserRepository
	youtube   *mockSource
	store     *storeMocks.MockStorage
	mr        *miniredis.Miniredis
}

func newPlaylistFixture(t *testing.T) *playlistFixture {
	t.Helper()
	mr, rdb := newRedis(t)
	f := &playlistFixture{
		playlists: new(repoMocks.MockPlaylistRepository),
		media:     new(repoMocks.MockMediaRepository),
		users:     new(repoMocks.MockUserRepository),
		youtube:   &mockSource{name: "youtube"},
		store:     new(storeMocks.MockStorage),
		mr:        mr,
	}
	f.svc = NewPlaylistService(f.playlists, f.media, f.users, provider.NewRegistry(f.youtube),
		realtime.NewState(rdb), f.store, zerolog.Nop())
	t.Cleanup(func() {
		f.playlists.AssertExpectations(t)
		f.media.AssertExpectations(t)
		f.youtube.AssertExpectations(t)
		f.store.AssertExpectations(t)
	})
	return f
}

func chill() *model.Playlist {
	return &model.Playlist{ID: playlistID, AuthorID: ownerID, Name: "Chill", Size: 2}
}

func sharedChill() *model.Playlist {
	p := chill()
	p.Shared = true
	return p
}

func TestPlaylistService_List(t *testing.T) {
	f := newPlaylistFixture(t)
	ctx := context.Background()

	f.playlists.On("ListByAuthor", mock.Anything, ownerID, repository.PageQuery{Page: 1, Limit: 100, Offset: 100}).
		Return(&repository.PageResult[model.Playlist]{Items: []model.Playlist{*chill()}, Total: 101}, nil)

	page, err := f.svc.List(ctx, owner(), 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.PageSize)
	assert.Equal(t, 101, page.Total)
	assert.Len(t, page.Data, 1)
}

func TestPlaylistService_Create(t *testing.T) {
	f := newPlaylistFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, owner(), CreatePlaylistInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.playlists.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Playlist) bool {
		return p.AuthorID == ownerID && p.Name == "Road trip" && p.Shared && validID(p.ID)
	})).Return(&model.Playlist{ID: playlistID, AuthorID: ownerID, Name: "Road trip", Shared: true}, nil)

	p, err := f.svc.Create(ctx, owner(), CreatePlaylistInput{Name: " Road trip ", Shared: true})
	require.NoError(t, err)
	assert.Equal(t, "Road trip", p.Name)
}

func TestPlaylistService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		id        string
		user      *model.User
		setup     func(f *playlistFixture)
		wantErr   error
		wantMsg   string
		wantItems int
	}{
		{
			name:    "malformed id",
			id:      "nope",
			user:    owner(),
			setup:   func(f *playlistFixture) {},
			wantErr: ErrNotFound,
		},
		{
			name: "unknown id",
			id:   playlistID,
			user: owner(),
			setup: func(f *playlistFixture) {
				f.playlists.On("FindByID", mock.Anything, playlistID).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
			wantMsg: "playlist with ID " + playlistID + " not found",
		},
		{
			name: "private playlist of another user",
			id:   playlistID,
			user: other(),
			setup: func(f *playlistFixture) {
				f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
			},
			wantErr: ErrForbidden,
			wantMsg: "this playlist is private",
		},
		{
			name: "shared playlist of another user",
			id:   playlistID,
			user: other(),
			setup: func(f *playlistFixture) {
				f.playlists.On("FindByID", mock.Anything, playlistID).Return(sharedChill(), nil)
				f.playlists.On("ListItems", mock.Anything, playlistID, repository.PageQuery{Limit: 100}).
					Return(&repository.PageResult[model.PlaylistItem]{Items: []model.PlaylistItem{{ID: itemA}, {ID: itemB}}, Total: 2}, nil)
			},
			wantItems: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPlaylistFixture(t)
			tt.setup(f)

			p, err := f.svc.Get(ctx, tt.user, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Len(t, p.Media, tt.wantItems)
		})
	}
}

func TestPlaylistService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("not the author", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(sharedChill(), nil)

		err := f.svc.Delete(ctx, other(), playlistID)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.EqualError(t, err, "you can't delete the playlist of another user")
	})

	t.Run("active playlist", func(t *testing.T) {
		f := newPlaylistFixture(t)
		require.NoError(t, f.mr.Set("playlist:"+ownerID, playlistID))
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)

		err := f.svc.Delete(ctx, owner(), playlistID)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.EqualError(t, err, "you can't delete an active playlist")
	})

	t.Run("success", func(t *testing.T) {
		f := newPlaylistFixture(t)
		require.NoError(t, f.mr.Set("playlist:"+ownerID, targetID))
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.playlists.On("Delete", mock.Anything, playlistID).Return(nil)

		assert.NoError(t, f.svc.Delete(ctx, owner(), playlistID))
	})
}

func TestPlaylistService_RenameShare(t *testing.T) {
	ctx := context.Background()

	t.Run("rename requires a name", func(t *testing.T) {
		f := newPlaylistFixture(t)
		_, err := f.svc.Rename(ctx, owner(), playlistID, "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rename someone else's playlist", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)

		_, err := f.svc.Rename(ctx, other(), playlistID, "Mine now")
		assert.EqualError(t, err, "you can't rename the playlist of another user")
	})

	t.Run("rename", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.playlists.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Playlist) bool {
			return p.Name == "Focus"
		})).Return(&model.Playlist{ID: playlistID, Name: "Focus"}, nil)

		p, err := f.svc.Rename(ctx, owner(), playlistID, "Focus")
		require.NoError(t, err)
		assert.Equal(t, "Focus", p.Name)
	})

	t.Run("share", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.playlists.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Playlist) bool {
			return p.Shared
		})).Return(sharedChill(), nil)

		p, err := f.svc.Share(ctx, owner(), playlistID, true)
		require.NoError(t, err)
		assert.True(t, p.Shared)
	})

	t.Run("share someone else's playlist", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(sharedChill(), nil)

		_, err := f.svc.Share(ctx, other(), playlistID, false)
		assert.EqualError(t, err, "you can't share the playlist of another user")
	})
}

func TestPlaylistService_Activate(t *testing.T) {
	ctx := context.Background()

	t.Run("private playlist of another user", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.users.On("FindByID", mock.Anything, ownerID).Return(owner(), nil)

		_, err := f.svc.Activate(ctx, other(), playlistID)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.EqualError(t, err, "alice has made Chill private")
		assert.False(t, f.mr.Exists("playlist:"+otherID))
	})

	t.Run("shared playlist of another user", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(sharedChill(), nil)

		_, err := f.svc.Activate(ctx, other(), playlistID)
		require.NoError(t, err)
		f.mr.CheckGet(t, "playlist:"+otherID, playlistID)
	})

	t.Run("own playlist", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)

		_, err := f.svc.Activate(ctx, owner(), playlistID)
		require.NoError(t, err)
		f.mr.CheckGet(t, "playlist:"+ownerID, playlistID)
	})
}

func TestPlaylistService_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("after is a moved item", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)

		_, err := f.svc.Move(ctx, owner(), playlistID, []string{itemA, itemB}, itemA)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown after", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.playlists.On("MoveItems", mock.Anything, playlistID, []string{itemA}, repository.Placement{After: itemB}).
			Return(repository.ErrAnchorNotFound)

		_, err := f.svc.Move(ctx, owner(), playlistID, []string{itemA}, itemB)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "playlist item "+itemB+" not found")
	})

	t.Run("after an item", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.playlists.On("MoveItems", mock.Anything, playlistID, []string{itemA}, repository.Placement{After: itemB}).Return(nil)

		_, err := f.svc.Move(ctx, owner(), playlistID, []string{itemA, "garbage"}, itemB)
		assert.NoError(t, err)
	})

	t.Run("to the start", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.playlists.On("MoveItems", mock.Anything, playlistID, []string{itemB}, repository.Placement{}).Return(nil)

		_, err := f.svc.Move(ctx, owner(), playlistID, []string{itemB}, "")
		assert.NoError(t, err)
	})
}

func TestPlaylistService_AddMedia(t *testing.T) {
	ctx := context.Background()
	stored := &model.GlobalMedia{ID: mediaID, SourceType: "youtube", SourceID: "abc", Artist: "Daft Punk", Title: "Get Lucky", Duration: 369}

	t.Run("stored media", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.media.On("FindBySource", mock.Anything, "youtube", "abc").Return(stored, nil).Once()
		f.playlists.On("InsertItems", mock.Anything, playlistID, mock.MatchedBy(func(items []model.PlaylistItem) bool {
			return len(items) == 2 &&
				items[0].MediaID == mediaID && items[0].Artist == "Daft Punk" && items[0].End == 369 &&
				items[1].Title == "Custom" && items[1].Start == 10 && items[1].End == 100
		}), repository.Placement{}).
			Return([]model.PlaylistItem{{ID: itemA}, {ID: itemB}}, nil)

		out, err := f.svc.AddMedia(ctx, owner(), playlistID, []MediaInput{
			{SourceType: "YouTube", SourceID: "abc"},
			{SourceType: "youtube", SourceID: "abc", Title: "Custom", Start: 10, End: 100},
		}, "")
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("fetched from provider", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.media.On("FindBySource", mock.Anything, "youtube", "new").Return(nil, repository.ErrNotFound)
		f.youtube.On("Fetch", mock.Anything, "new").
			Return(&model.GlobalMedia{SourceType: "youtube", SourceID: "new", Artist: "A", Title: "T", Duration: 60}, nil)
		f.media.On("Create", mock.Anything, mock.MatchedBy(func(m *model.GlobalMedia) bool {
			return validID(m.ID) && m.SourceID == "new"
		})).Return(&model.GlobalMedia{ID: mediaID, SourceType: "youtube", SourceID: "new", Duration: 60}, nil)
		f.playlists.On("InsertItems", mock.Anything, playlistID, mock.Anything, repository.Placement{After: itemA}).
			Return([]model.PlaylistItem{{ID: itemB}}, nil)

		out, err := f.svc.AddMedia(ctx, owner(), playlistID, []MediaInput{{SourceType: "youtube", SourceID: "new"}}, itemA)
		require.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("after item removed meanwhile", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.media.On("FindBySource", mock.Anything, "youtube", "abc").Return(stored, nil)
		f.playlists.On("InsertItems", mock.Anything, playlistID, mock.Anything, repository.Placement{After: itemA}).
			Return(nil, repository.ErrAnchorNotFound)

		_, err := f.svc.AddMedia(ctx, owner(), playlistID, []MediaInput{{SourceType: "youtube", SourceID: "abc"}}, itemA)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "playlist item "+itemA+" not found")
	})

	t.Run("unknown provider", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.media.On("FindBySource", mock.Anything, "vimeo", "1").Return(nil, repository.ErrNotFound)

		_, err := f.svc.AddMedia(ctx, owner(), playlistID, []MediaInput{{SourceType: "vimeo", SourceID: "1"}}, "")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "unknown provider vimeo")
	})

	t.Run("provider does not know the media", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.media.On("FindBySource", mock.Anything, "youtube", "gone").Return(nil, repository.ErrNotFound)
		f.youtube.On("Fetch", mock.Anything, "gone").Return(nil, provider.ErrNotFound)

		_, err := f.svc.AddMedia(ctx, owner(), playlistID, []MediaInput{{SourceType: "youtube", SourceID: "gone"}}, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("provider failure", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.media.On("FindBySource", mock.Anything, "youtube", "x").Return(nil, repository.ErrNotFound)
		f.youtube.On("Fetch", mock.Anything, "x").Return(nil, errors.New("quota exceeded"))

		_, err := f.svc.AddMedia(ctx, owner(), playlistID, []MediaInput{{SourceType: "youtube", SourceID: "x"}}, "")
		require.Error(t, err)
		var svcErr *Error
		assert.False(t, errors.As(err, &svcErr))
	})

	t.Run("someone else's playlist", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(sharedChill(), nil)

		_, err := f.svc.AddMedia(ctx, other(), playlistID, []MediaInput{{SourceType: "youtube", SourceID: "abc"}}, "")
		assert.EqualError(t, err, "you can't edit the playlist of another user")
	})

	t.Run("invalid range", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.media.On("FindBySource", mock.Anything, "youtube", "abc").Return(stored, nil)

		_, err := f.svc.AddMedia(ctx, owner(), playlistID, []MediaInput{{SourceType: "youtube", SourceID: "abc", Start: 400}}, "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestPlaylistService_RemoveMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("batch", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.playlists.On("DeleteItems", mock.Anything, playlistID, []string{itemA, itemB}).Return(2, nil)

		_, err := f.svc.RemoveMedia(ctx, owner(), playlistID, []string{itemA, itemB})
		assert.NoError(t, err)
	})

	t.Run("single missing", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.playlists.On("DeleteItems", mock.Anything, playlistID, []string{itemA}).Return(0, nil)

		_, err := f.svc.RemoveItem(ctx, owner(), playlistID, itemA)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPlaylistService_UpdateMedia(t *testing.T) {
	f := newPlaylistFixture(t)
	ctx := context.Background()

	item := &model.PlaylistItem{ID: itemA, PlaylistID: playlistID, Artist: "A", Title: "T", End: 200, Media: &model.GlobalMedia{Duration: 200}}
	f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
	f.playlists.On("FindItem", mock.Anything, playlistID, itemA).Return(item, nil)
	f.playlists.On("UpdateItem", mock.Anything, mock.MatchedBy(func(it *model.PlaylistItem) bool {
		return it.Artist == "B" && it.Title == "T" && it.Start == 20 && it.End == 200
	})).Return(item, nil)

	_, err := f.svc.UpdateMedia(ctx, owner(), playlistID, itemA, ItemMetadata{Artist: "B", Start: 20, End: 999})
	assert.NoError(t, err)
}

func TestPlaylistService_CopyMedia(t *testing.T) {
	ctx := context.Background()
	item := &model.PlaylistItem{ID: itemA, PlaylistID: playlistID, MediaID: mediaID, Artist: "A", Title: "T", End: 100}

	t.Run("into a foreign playlist", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(sharedChill(), nil)
		f.playlists.On("FindItem", mock.Anything, playlistID, itemA).Return(item, nil)
		f.playlists.On("FindByID", mock.Anything, targetID).Return(&model.Playlist{ID: targetID, AuthorID: ownerID}, nil)

		_, err := f.svc.CopyMedia(ctx, other(), playlistID, itemA, targetID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("appends to own playlist", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(sharedChill(), nil)
		f.playlists.On("FindItem", mock.Anything, playlistID, itemA).Return(item, nil)
		f.playlists.On("FindByID", mock.Anything, targetID).Return(&model.Playlist{ID: targetID, AuthorID: otherID}, nil)
		f.playlists.On("InsertItems", mock.Anything, targetID, mock.MatchedBy(func(items []model.PlaylistItem) bool {
			return len(items) == 1 && items[0].ID != itemA && items[0].MediaID == mediaID && items[0].End == 100
		}), repository.Placement{AtEnd: true}).
			Return([]model.PlaylistItem{{ID: itemB, PlaylistID: targetID, MediaID: mediaID}}, nil)

		out, err := f.svc.CopyMedia(ctx, other(), playlistID, itemA, targetID)
		require.NoError(t, err)
		assert.Equal(t, targetID, out.PlaylistID)
	})
}

func TestPlaylistService_Export(t *testing.T) {
	ctx := context.Background()
	items := &repository.PageResult[model.PlaylistItem]{Items: []model.PlaylistItem{{ID: itemA}, {ID: itemB}}, Total: 2}

	t.Run("not configured", func(t *testing.T) {
		_, rdb := newRedis(t)
		svc := NewPlaylistService(new(repoMocks.MockPlaylistRepository), new(repoMocks.MockMediaRepository),
			new(repoMocks.MockUserRepository), provider.NewRegistry(), realtime.NewState(rdb), nil, zerolog.Nop())

		_, err := svc.Export(ctx, owner(), playlistID)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("success", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.playlists.On("ListItems", mock.Anything, playlistID, repository.PageQuery{Limit: 200}).Return(items, nil)
		f.store.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "exports/"+ownerID+"/"+playlistID+"-") && strings.HasSuffix(key, ".json")
		}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "application/json" && opt.Size > 0
		})).Return(func(_ context.Context, key string, r io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
			body, _ := io.ReadAll(r)
			assert.Contains(t, string(body), itemB)
			return storage.ObjectInfo{Key: key}
		}, nil)
		f.store.On("PresignGet", mock.Anything, mock.Anything, ExportTTL).Return("https://minio/exports/x?sig", nil)

		res, err := f.svc.Export(ctx, owner(), playlistID)
		require.NoError(t, err)
		assert.Equal(t, "https://minio/exports/x?sig", res.URL)
		assert.WithinDuration(t, time.Now().Add(ExportTTL), res.ExpiresAt, time.Minute)
	})

	t.Run("presign failure removes the object", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("FindByID", mock.Anything, playlistID).Return(chill(), nil)
		f.playlists.On("ListItems", mock.Anything, playlistID, mock.Anything).Return(items, nil)
		f.store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{Key: "exports/k.json"}, nil)
		f.store.On("PresignGet", mock.Anything, "exports/k.json", ExportTTL).Return("", errors.New("signature error"))
		f.store.On("Delete", mock.Anything, "exports/k.json").Return(nil)

		_, err := f.svc.Export(ctx, owner(), playlistID)
		assert.ErrorContains(t, err, "presign export")
	})
}
