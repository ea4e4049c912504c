package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"uwaveapi/internal/model"
	"uwaveapi/internal/provider"
)

func TestSearchService_SearchAll(t *testing.T) {
	youtube := &mockSource{name: "youtube"}
	soundcloud := &mockSource{name: "soundcloud"}
	youtube.On("Search", mock.Anything, "daft punk").
		Return([]model.GlobalMedia{{SourceType: "youtube", SourceID: "abc"}}, nil)
	soundcloud.On("Search", mock.Anything, "daft punk").Return(nil, errors.New("rate limited"))

	svc := NewSearchService(provider.NewRegistry(youtube, soundcloud), zerolog.Nop())

	res, err := svc.SearchAll(context.Background(), "  daft punk ")
	require.NoError(t, err)
	assert.Len(t, res["youtube"], 1)
	require.Contains(t, res, "soundcloud")
	assert.Empty(t, res["soundcloud"])
	youtube.AssertExpectations(t)
	soundcloud.AssertExpectations(t)
}

func TestSearchService_Search(t *testing.T) {
	youtube := &mockSource{name: "youtube"}
	svc := NewSearchService(provider.NewRegistry(youtube), zerolog.Nop())
	ctx := context.Background()

	t.Run("empty query", func(t *testing.T) {
		_, err := svc.Search(ctx, "youtube", " ")
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.EqualError(t, err, "query is not set")

		_, err = svc.SearchAll(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := svc.Search(ctx, "vimeo", "x")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("source failure", func(t *testing.T) {
		youtube.On("Search", mock.Anything, "broken").Return(nil, errors.New("quota exceeded")).Once()

		_, err := svc.Search(ctx, "YouTube", "broken")
		assert.EqualError(t, err, "quota exceeded")
	})
}
