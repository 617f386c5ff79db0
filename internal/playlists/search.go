package playlists

import (
	"context"
	"strings"

	"github.com/moodshopapp/moodshop-server/internal/mood"
)

const (
	// defaultLimit is how many playlists a mood lookup returns by default.
	defaultLimit = 5
	// maxSearchTerms caps provider calls per lookup.
	maxSearchTerms = 3
	// minNameLength and minTracks drop junk results.
	minNameLength = 3
	minTracks     = 10
)

// moodKeywords maps each mood to playlist search terms. These are search
// vocabulary, distinct from the catalog tags on mood.RelatedTags.
var moodKeywords = map[mood.Mood][]string{
	mood.Happy:    {"happy", "upbeat", "positive", "cheerful", "joyful"},
	mood.Sad:      {"sad", "melancholy", "emotional", "heartbreak", "blue"},
	mood.Angry:    {"angry", "rage", "metal", "punk", "aggressive"},
	mood.Surprise: {"energetic", "exciting", "surprise", "uplifting", "dynamic"},
	mood.Fear:     {"calm", "relaxing", "soothing", "peaceful", "meditation"},
	mood.Disgust:  {"alternative", "indie", "experimental", "unique", "different"},
	mood.Neutral:  {"chill", "ambient", "focus", "study", "background"},
}

// defaultKeywords covers labels outside the vocabulary.
var defaultKeywords = []string{"music", "playlist", "songs"}

func searchTerms(m mood.Mood) []string {
	if terms, ok := moodKeywords[m]; ok {
		return terms
	}
	return defaultKeywords
}

// ByMood returns up to limit playlists matching the mood. Individual
// search terms that fail are logged and skipped; the error return is for
// problems that sink every term, like a missing token.
func (c *Client) ByMood(ctx context.Context, m mood.Mood, limit int) ([]Playlist, error) {
	if !c.Available() {
		return nil, ErrNotConfigured
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	terms := searchTerms(m)
	if len(terms) > maxSearchTerms {
		terms = terms[:maxSearchTerms]
	}

	var (
		all       []Playlist
		lastErr   error
		succeeded bool
	)

	for _, term := range terms {
		found, err := c.searchPlaylists(ctx, term+" playlist", searchPageSize)
		if err != nil {
			c.logger.Warn("playlist search term failed", "term", term, "error", err)
			lastErr = err
			continue
		}
		succeeded = true
		all = append(all, found...)

		// Enough raw results to survive dedup and filtering.
		if len(all) >= limit*2 {
			break
		}
	}

	if !succeeded {
		return nil, lastErr
	}

	result := dedupeAndFilter(all, limit)

	c.logger.Info("playlists found", "mood", m, "count", len(result))

	return result, nil
}

// dedupeAndFilter removes duplicate names and low-quality hits, keeping
// provider order, capped at limit.
func dedupeAndFilter(playlists []Playlist, limit int) []Playlist {
	seen := make(map[string]bool, len(playlists))
	result := make([]Playlist, 0, limit)

	for _, p := range playlists {
		nameKey := strings.ToLower(p.Name)
		if seen[nameKey] {
			continue
		}
		if len(p.Name) <= minNameLength || p.Tracks <= minTracks {
			continue
		}

		seen[nameKey] = true
		result = append(result, p)

		if len(result) >= limit {
			break
		}
	}

	return result
}
