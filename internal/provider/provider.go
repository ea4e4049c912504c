// Package provider fetches media metadata from the external sources users add
// to their playlists.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"uwaveapi/internal/model"
)

var (
	// ErrNotFound is returned when a source does not know the requested media.
	ErrNotFound = errors.New("media not found")
	// ErrUnknownSource is returned by Registry.Get for unregistered source types.
	ErrUnknownSource = errors.New("unknown provider")
)

// SearchLimit is the number of results requested from each source.
const SearchLimit = 25

// Source is a media provider. Returned media carry no ID or CreatedAt; those are
// assigned when the media is stored.
type Source interface {
	Name() string
	Search(ctx context.Context, query string) ([]model.GlobalMedia, error)
	Fetch(ctx context.Context, sourceID string) (*model.GlobalMedia, error)
}

// Registry resolves sources by their lower-case source type.
type Registry struct {
	sources map[string]Source
}

func NewRegistry(sources ...Source) *Registry {
	r := &Registry{sources: make(map[string]Source, len(sources))}
	for _, s := range sources {
		r.sources[strings.ToLower(s.Name())] = s
	}
	return r
}

// Get returns the source for sourceType, matched case-insensitively.
func (r *Registry) Get(sourceType string) (Source, error) {
	s, ok := r.sources[strings.ToLower(sourceType)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, sourceType)
	}
	return s, nil
}

// Names lists the registered source types in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewLimiter builds the token bucket shared by one source's requests.
// A non-positive rps disables throttling.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// client performs throttled JSON GET requests.
type client struct {
	http    *http.Client
	limiter *rate.Limiter
}

func newClient(limiter *rate.Limiter) client {
	if limiter == nil {
		limiter = NewLimiter(0)
	}
	return client{
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter: limiter,
	}
}

func (c client) getJSON(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
