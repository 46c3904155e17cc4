package normalize

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rpupo63/video-portfolio-backend/models"
)

// DurationToSeconds parses a legacy "m:ss" duration. Missing or non-numeric
// parts count as zero. A bare number is taken as seconds. Anything else
// reports false.
func DurationToSeconds(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	if minutes, seconds, found := strings.Cut(text, ":"); found {
		if strings.Contains(seconds, ":") {
			return 0, false
		}
		return leadingInt(minutes)*60 + leadingInt(seconds), true
	}

	if n, err := strconv.Atoi(text); err == nil {
		return n, true
	}
	return 0, false
}

// leadingInt reads the optional sign and digits at the start of s, or 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

var fourDigits = regexp.MustCompile(`\d{4}`)

// YearFromText finds the first four digit year in free text such as
// "2021", "03/14/2021" or "Spring 2021" and reports whether it is in range.
func YearFromText(text string) (int, bool) {
	match := fourDigits.FindString(text)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil || !yearInRange(year) {
		return 0, false
	}
	return year, true
}

// LegacyThumbnailPath turns a stored legacy thumbnail into a thumbnail URL:
// absolute URLs and rooted paths are kept, bare file names are placed under
// /thumbnails/. Blank input reports false.
func LegacyThumbnailPath(thumbnail string) (string, bool) {
	thumbnail = strings.TrimSpace(thumbnail)
	if thumbnail == "" {
		return "", false
	}
	if strings.HasPrefix(thumbnail, "http://") ||
		strings.HasPrefix(thumbnail, "https://") ||
		strings.HasPrefix(thumbnail, "/") {
		return thumbnail, true
	}
	return "/thumbnails/" + thumbnail, true
}

var categoryAliases = map[string]string{
	"short film":  models.CategoryShortFilm,
	"short":       models.CategoryShortFilm,
	"film":        models.CategoryShortFilm,
	"doc":         models.CategoryDocumentary,
	"documentary": models.CategoryDocumentary,
	"commercial":  models.CategoryCommercial,
	"ad":          models.CategoryCommercial,
	"corporate":   models.CategoryCorporate,
	"reel":        models.CategoryReel,
	"showreel":    models.CategoryReel,
	"music video": models.CategoryMusicVideo,
	"mv":          models.CategoryMusicVideo,
}

// MapCategory maps a free-text category onto the accepted set, defaulting to
// Short Film.
func MapCategory(category string) string {
	if slices.Contains(models.Categories, category) {
		return category
	}
	if mapped, ok := categoryAliases[strings.ToLower(strings.TrimSpace(category))]; ok {
		return mapped
	}
	return models.CategoryShortFilm
}
