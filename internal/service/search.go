package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"uwaveapi/internal/model"
	"uwaveapi/internal/provider"
)

// SearchService queries the media sources.
type SearchService interface {
	// SearchAll queries every source concurrently. A failing source contributes an
	// empty result instead of failing the search.
	SearchAll(ctx context.Context, query string) (map[string][]model.GlobalMedia, error)
	Search(ctx context.Context, sourceType, query string) ([]model.GlobalMedia, error)
}

type searchService struct {
	sources *provider.Registry
	log     zerolog.Logger
}

func NewSearchService(sources *provider.Registry, log zerolog.Logger) SearchService {
	return &searchService{sources: sources, log: log.With().Str("component", "search").Logger()}
}

func (s *searchService) SearchAll(ctx context.Context, query string) (map[string][]model.GlobalMedia, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("query is not set")
	}

	var (
		g   errgroup.Group
		mu  sync.Mutex
		out = make(map[string][]model.GlobalMedia)
	)
	for _, name := range s.sources.Names() {
		src, err := s.sources.Get(name)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			media, err := src.Search(ctx, query)
			if err != nil {
				s.log.Warn().Err(err).Str("source", name).Str("query", query).Msg("search failed")
				media = []model.GlobalMedia{}
			}
			mu.Lock()
			out[name] = media
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *searchService) Search(ctx context.Context, sourceType, query string) ([]model.GlobalMedia, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("query is not set")
	}
	src, err := s.sources.Get(sourceType)
	if errors.Is(err, provider.ErrUnknownSource) {
		return nil, notFound("unknown provider %s", sourceType)
	}
	if err != nil {
		return nil, err
	}
	return src.Search(ctx, query)
}
