// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package enrich

import (
	"fmt"
	"strings"
)

// Display defaults for fields TMDB leaves empty.
const (
	defaultTitle       = "Unknown"
	defaultOverview    = "No overview available."
	defaultReleaseDate = "Unknown"
	defaultCast        = "No cast info"
	youtubeWatchURL    = "https://www.youtube.com/watch?v="
)

// ToDetails converts a TMDB response into a display record. movieID is the
// catalog ID the lookup was made for.
func (c *Config) ToDetails(movieID int64, m *TMDBMovie) MovieDetails {
	d := MovieDetails{
		MovieID:     movieID,
		Title:       orDefault(m.Title, defaultTitle),
		PosterURL:   c.PlaceholderPosterURL,
		Cast:        defaultCast,
		Overview:    orDefault(m.Overview, defaultOverview),
		ReleaseDate: orDefault(m.ReleaseDate, defaultReleaseDate),
		Rating:      fmt.Sprintf("%.1f/10 (%d votes)", m.VoteAverage, m.VoteCount),
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
	}

	if m.PosterPath != "" {
		d.PosterURL = strings.TrimSuffix(c.ImageBaseURL, "/") + "/" + strings.TrimPrefix(m.PosterPath, "/")
	}

	names := make([]string, 0, c.CastLimit)
	for _, member := range m.Credits.Cast {
		if len(names) == c.CastLimit {
			break
		}
		if member.Name != "" {
			names = append(names, member.Name)
		}
	}
	if len(names) > 0 {
		d.Cast = strings.Join(names, ", ")
	}

	for _, v := range m.Videos.Results {
		if v.Type == "Trailer" && v.Site == "YouTube" && v.Key != "" {
			d.TrailerURL = youtubeWatchURL + v.Key
			break
		}
	}

	return d
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
