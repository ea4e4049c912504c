package provider

import (
	"regexp"
	"strconv"
	"strings"
)

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseISODuration converts an ISO-8601 duration such as PT4M13S to seconds.
// Unparsable input yields 0.
func parseISODuration(s string) int {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	total := 0
	for i, unit := range []int{86400, 3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0
		}
		total += n * unit
	}
	return total
}

var (
	titleSeparators = []string{" -- ", " - ", " – ", " — ", " ~ ", " | "}
	titleNoise      = regexp.MustCompile(`(?i)\s*[\(\[][^\)\]]*\b(official|lyrics?|audio|video|hd|hq|mv|m/v)\b[^\)\]]*[\)\]]`)
	titleQuotes     = strings.NewReplacer(`"`, "", "“", "", "”", "")
)

// splitArtistTitle splits video titles of the form "Artist - Title", dropping
// bracketed tags like "(Official Video)". ok is false when no separator is found.
func splitArtistTitle(s string) (artist, title string, ok bool) {
	clean := strings.TrimSpace(titleNoise.ReplaceAllString(s, ""))
	for _, sep := range titleSeparators {
		i := strings.Index(clean, sep)
		if i <= 0 {
			continue
		}
		artist = strings.TrimSpace(clean[:i])
		title = strings.TrimSpace(titleQuotes.Replace(clean[i+len(sep):]))
		if artist == "" || title == "" {
			return "", "", false
		}
		return artist, title, true
	}
	return "", "", false
}
