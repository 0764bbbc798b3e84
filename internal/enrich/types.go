// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package enrich

import "context"

// TMDBMovie is the subset of the /movie/{id} response used for display,
// requested with append_to_response=credits,videos.
type TMDBMovie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`

	Credits struct {
		Cast []struct {
			Name string `json:"name"`
		} `json:"cast"`
	} `json:"credits"`

	Videos struct {
		Results []TMDBVideo `json:"results"`
	} `json:"videos"`
}

// TMDBVideo is one entry of the videos block.
type TMDBVideo struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// MovieDetails is the display record for one recommended movie.
type MovieDetails struct {
	MovieID     int64   `json:"movie_id"`
	Title       string  `json:"title"`
	PosterURL   string  `json:"poster_url"`
	Cast        string  `json:"cast"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	Rating      string  `json:"rating"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	TrailerURL  string  `json:"trailer_url,omitempty"`
}

// MetadataFetcher retrieves raw TMDB metadata for one movie ID.
// TMDBClient and CircuitBreakerClient implement it.
type MetadataFetcher interface {
	GetMovie(ctx context.Context, id int64) (*TMDBMovie, error)
}
