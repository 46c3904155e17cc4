// Package youtube resolves the many shapes a YouTube reference arrives in
// (watch links, short links, embeds, shorts, bare IDs) to a video ID, and
// derives the canonical watch URL and thumbnail URLs from it.
package youtube

import (
	"regexp"
	"strings"
)

// Quality is a thumbnail quality tier.
type Quality string

const (
	QualityDefault  Quality = "default"
	QualityMedium   Quality = "medium"
	QualityHigh     Quality = "high"
	QualityStandard Quality = "standard"
	QualityMaxRes   Quality = "maxres"
)

const (
	watchURLPrefix     = "https://www.youtube.com/watch?v="
	thumbnailURLPrefix = "https://img.youtube.com/vi/"
)

// thumbnailFileByQuality maps a tier to the file name YouTube serves it under.
var thumbnailFileByQuality = map[Quality]string{
	QualityDefault:  "default",
	QualityMedium:   "mqdefault",
	QualityHigh:     "hqdefault",
	QualityStandard: "sddefault",
	QualityMaxRes:   "maxresdefault",
}

var bareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// Tried in order; the first capture group is the ID.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`[?&]v=([a-zA-Z0-9_-]{11})`),
}

// ExtractID returns the 11 character video ID referenced by input.
// It reports false when input is blank or matches none of the known shapes.
func ExtractID(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}
	if bareIDPattern.MatchString(trimmed) {
		return trimmed, true
	}

	for _, pattern := range urlPatterns {
		if match := pattern.FindStringSubmatch(input); len(match) > 1 && match[1] != "" {
			return match[1], true
		}
	}
	return "", false
}

// IsValid reports whether input references a YouTube video.
func IsValid(input string) bool {
	_, ok := ExtractID(input)
	return ok
}

// CanonicalURL returns https://www.youtube.com/watch?v=<id> for any accepted
// reference to the same video.
func CanonicalURL(input string) (string, bool) {
	id, ok := ExtractID(input)
	if !ok {
		return "", false
	}
	return watchURLPrefix + id, true
}

// IsCanonicalURL reports whether input is already in canonical watch form.
func IsCanonicalURL(input string) bool {
	canonical, ok := CanonicalURL(input)
	return ok && canonical == input
}

// ThumbnailURL returns the img.youtube.com thumbnail for the referenced video.
// Unknown tiers fall back to QualityHigh.
func ThumbnailURL(input string, quality Quality) (string, bool) {
	id, ok := ExtractID(input)
	if !ok {
		return "", false
	}

	file, known := thumbnailFileByQuality[quality]
	if !known {
		file = thumbnailFileByQuality[QualityHigh]
	}
	return thumbnailURLPrefix + id + "/" + file + ".jpg", true
}
