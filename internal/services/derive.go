package services

import (
	"regexp"
	"strings"
)

// Content derivation constants.
const (
	// WordsPerMinute is the assumed reading speed for read-time estimates.
	WordsPerMinute = 200
	// ExcerptLength is the fallback excerpt size in characters.
	ExcerptLength = 150
	// MetaDescriptionLength is the fallback meta-description size in characters.
	MetaDescriptionLength = 160
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphens  = regexp.MustCompile(`-+`)
)

// Slugify converts free text into a URL-safe slug: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, trimmed at the
// ends. Returns "post" for input that slugs to nothing.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "post"
	}
	return s
}

// ReadTime estimates reading time in minutes for the given content:
// word count divided by WordsPerMinute, rounded up, never below 1.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ExcerptFallback derives an excerpt from content: the first
// ExcerptLength characters followed by an ellipsis when truncated.
func ExcerptFallback(content string) string {
	return truncate(content, ExcerptLength, "...")
}

// MetaDescriptionFallback derives a meta description from content.
func MetaDescriptionFallback(content string) string {
	return truncate(content, MetaDescriptionLength, "")
}

func truncate(s string, limit int, suffix string) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + suffix
}
