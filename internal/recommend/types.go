// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// ErrInvalidK is returned when fewer than one recommendation is requested.
var ErrInvalidK = errors.New("k must be at least 1")

// Catalog is the read-only view of the movie catalog the engine ranks over.
// *catalog.Store satisfies it.
type Catalog interface {
	// IndexOf resolves a title to its catalog index or a *catalog.NotFoundError.
	IndexOf(title string) (int, error)

	// RowOf returns the similarity of index to every movie, in column order.
	RowOf(index int) ([]catalog.Score, error)

	// Movie returns the movie at index.
	Movie(index int) (catalog.Movie, error)

	// Len returns the number of movies.
	Len() int
}

// Candidate is one ranked recommendation.
type Candidate struct {
	// Rank is the 1-based position in the result.
	Rank int `json:"rank"`

	// Index is the catalog index of the movie.
	Index int `json:"index"`

	MovieID int64   `json:"movie_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}

// Result is a ranked recommendation list for one query title.
type Result struct {
	Query      catalog.Movie `json:"query"`
	QueryIndex int           `json:"query_index"`

	// K is the number of recommendations requested. Candidates may be
	// shorter when the catalog has fewer than K+1 movies.
	K int `json:"k"`

	Candidates []Candidate `json:"candidates"`
}

// MovieIDs returns the movie_id of every candidate in rank order.
func (r *Result) MovieIDs() []int64 {
	ids := make([]int64, len(r.Candidates))
	for i, c := range r.Candidates {
		ids[i] = c.MovieID
	}
	return ids
}

// Stats is a snapshot of engine request counters.
type Stats struct {
	Requests int64 `json:"requests"`
	NotFound int64 `json:"not_found"`
	InvalidK int64 `json:"invalid_k"`
	Errors   int64 `json:"errors"`
}
