package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT4M13S", 253},
		{"PT1H", 3600},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"P1DT1S", 86401},
		{"PT0S", 0},
		{"", 0},
		{"4:13", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseISODuration(tt.in))
		})
	}
}

func TestSplitArtistTitle(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		artist string
		title  string
		ok     bool
	}{
		{"dash", "Daft Punk - Get Lucky", "Daft Punk", "Get Lucky", true},
		{"official video tag", "Daft Punk - Get Lucky (Official Video)", "Daft Punk", "Get Lucky", true},
		{"lyrics tag", "Queen - Bohemian Rhapsody [Lyrics]", "Queen", "Bohemian Rhapsody", true},
		{"en dash", "Björk – Army of Me", "Björk", "Army of Me", true},
		{"quoted title", `Muse - "Uprising"`, "Muse", "Uprising", true},
		{"keeps other parens", "Artist - Song (Remix)", "Artist", "Song (Remix)", true},
		{"first separator wins", "A - B - C", "A", "B - C", true},
		{"no separator", "Just a title", "", "", false},
		{"leading separator", " - Title", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artist, title, ok := splitArtistTitle(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.artist, artist)
			assert.Equal(t, tt.title, title)
		})
	}
}
