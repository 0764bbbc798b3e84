// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog holds the movie table and its precomputed similarity matrix.
//
// A Store pairs N movies with an N x N matrix where row and column i both
// refer to movie i. It is built once by Load, LoadFiles or New and never
// modified afterwards, so any number of goroutines may read it concurrently.
package catalog

import (
	"fmt"
	"math"
	"strings"
)

// Movie is one entry of the catalog.
type Movie struct {
	ID    int64  `json:"movie_id"`
	Title string `json:"title"`
}

// Score is one cell of a similarity row.
type Score struct {
	Index int     `json:"index"`
	Value float64 `json:"score"`
}

// Store is an immutable movie catalog with pairwise similarity scores.
type Store struct {
	movies []Movie
	// cells holds the matrix in row-major order, n*n values.
	cells []float64
	n     int

	titleIndex map[string]int
	idIndex    map[int64]int
	duplicates map[string][]int
}

// New validates movies and matrix and returns a Store holding copies of both.
//
// It fails with a DataIntegrityError when the table is empty, a movie_id
// repeats, the matrix is not len(movies) x len(movies), or a score is NaN
// or infinite.
func New(movies []Movie, matrix [][]float64) (*Store, error) {
	n := len(movies)
	if n == 0 {
		return nil, integrityErrorf(ArtifactMovies, nil, "movie table is empty")
	}
	if len(matrix) != n {
		return nil, integrityErrorf(ArtifactSimilarity, nil,
			"matrix has %d rows, want %d to match the movie table", len(matrix), n)
	}

	cells := make([]float64, n*n)
	for i, row := range matrix {
		if len(row) != n {
			return nil, integrityErrorf(ArtifactSimilarity, nil,
				"row %d has %d columns, want %d", i, len(row), n)
		}
		copy(cells[i*n:(i+1)*n], row)
	}

	owned := make([]Movie, n)
	copy(owned, movies)

	return build(owned, cells)
}

// build finishes construction. It takes ownership of movies and cells.
func build(movies []Movie, cells []float64) (*Store, error) {
	n := len(movies)

	for k, v := range cells {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, integrityErrorf(ArtifactSimilarity, nil,
				"non-finite score %v at row %d column %d", v, k/n, k%n)
		}
	}

	s := &Store{
		movies:     movies,
		cells:      cells,
		n:          n,
		titleIndex: make(map[string]int, n),
		idIndex:    make(map[int64]int, n),
	}

	for i, m := range movies {
		if prev, ok := s.idIndex[m.ID]; ok {
			return nil, integrityErrorf(ArtifactMovies, nil,
				"movie_id %d appears at rows %d and %d", m.ID, prev, i)
		}
		s.idIndex[m.ID] = i

		if first, ok := s.titleIndex[m.Title]; ok {
			if s.duplicates == nil {
				s.duplicates = make(map[string][]int)
			}
			if len(s.duplicates[m.Title]) == 0 {
				s.duplicates[m.Title] = []int{first}
			}
			s.duplicates[m.Title] = append(s.duplicates[m.Title], i)
			continue
		}
		s.titleIndex[m.Title] = i
	}

	return s, nil
}

// Len returns the number of movies.
func (s *Store) Len() int {
	return s.n
}

// IndexOf returns the position of the first movie whose title equals title
// exactly. Matching is case-sensitive.
func (s *Store) IndexOf(title string) (int, error) {
	if i, ok := s.titleIndex[title]; ok {
		return i, nil
	}
	return -1, &NotFoundError{Title: title}
}

// RowOf returns the similarity of movie index to every movie, in column order.
// The entry for index itself is included.
func (s *Store) RowOf(index int) ([]Score, error) {
	if index < 0 || index >= s.n {
		return nil, fmt.Errorf("%w: %d (catalog has %d movies)", ErrIndexOutOfRange, index, s.n)
	}

	row := s.cells[index*s.n : (index+1)*s.n]
	scores := make([]Score, s.n)
	for j, v := range row {
		scores[j] = Score{Index: j, Value: v}
	}
	return scores, nil
}

// Movie returns the movie at index.
func (s *Store) Movie(index int) (Movie, error) {
	if index < 0 || index >= s.n {
		return Movie{}, fmt.Errorf("%w: %d (catalog has %d movies)", ErrIndexOutOfRange, index, s.n)
	}
	return s.movies[index], nil
}

// MovieByID returns the movie with the given movie_id and its index.
func (s *Store) MovieByID(id int64) (Movie, int, bool) {
	i, ok := s.idIndex[id]
	if !ok {
		return Movie{}, -1, false
	}
	return s.movies[i], i, true
}

// Movies returns a copy of the movie table in catalog order.
func (s *Store) Movies() []Movie {
	out := make([]Movie, s.n)
	copy(out, s.movies)
	return out
}

// Titles returns every title in catalog order, duplicates included.
func (s *Store) Titles() []string {
	out := make([]string, s.n)
	for i, m := range s.movies {
		out[i] = m.Title
	}
	return out
}

// Search returns movies whose title contains query, ignoring case, in
// catalog order. An empty query matches everything. limit <= 0 means no limit.
func (s *Store) Search(query string, limit int) []Movie {
	needle := strings.ToLower(strings.TrimSpace(query))

	var out []Movie
	for _, m := range s.movies {
		if needle != "" && !strings.Contains(strings.ToLower(m.Title), needle) {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// DuplicateTitles maps every title that occurs more than once to all of its
// indices. IndexOf resolves such titles to the first index.
func (s *Store) DuplicateTitles() map[string][]int {
	out := make(map[string][]int, len(s.duplicates))
	for title, idx := range s.duplicates {
		out[title] = append([]int(nil), idx...)
	}
	return out
}
