// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func sampleMovies() []Movie {
	return []Movie{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
		{ID: 3, Title: "C"},
		{ID: 4, Title: "D"},
	}
}

func sampleMatrix() [][]float64 {
	return [][]float64{
		{1.0, 0.9, 0.9, 0.1},
		{0.9, 1.0, 0.3, 0.2},
		{0.9, 0.3, 1.0, 0.5},
		{0.1, 0.2, 0.5, 1.0},
	}
}

func mustNew(t *testing.T, movies []Movie, matrix [][]float64) *Store {
	t.Helper()
	s, err := New(movies, matrix)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		movies       []Movie
		matrix       [][]float64
		wantArtifact string
	}{
		{
			name:         "empty movie table",
			movies:       nil,
			matrix:       nil,
			wantArtifact: ArtifactMovies,
		},
		{
			name:   "3x4 matrix against 3 movies",
			movies: sampleMovies()[:3],
			matrix: [][]float64{
				{1, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 0, 1, 0},
			},
			wantArtifact: ArtifactSimilarity,
		},
		{
			name:         "too few rows",
			movies:       sampleMovies(),
			matrix:       sampleMatrix()[:3],
			wantArtifact: ArtifactSimilarity,
		},
		{
			name:   "ragged row",
			movies: sampleMovies()[:2],
			matrix: [][]float64{
				{1, 0.5},
				{0.5},
			},
			wantArtifact: ArtifactSimilarity,
		},
		{
			name:   "NaN score",
			movies: sampleMovies()[:2],
			matrix: [][]float64{
				{1, math.NaN()},
				{0.5, 1},
			},
			wantArtifact: ArtifactSimilarity,
		},
		{
			name:   "infinite score",
			movies: sampleMovies()[:2],
			matrix: [][]float64{
				{1, 0.5},
				{math.Inf(-1), 1},
			},
			wantArtifact: ArtifactSimilarity,
		},
		{
			name:   "duplicate movie_id",
			movies: []Movie{{ID: 7, Title: "X"}, {ID: 7, Title: "Y"}},
			matrix: [][]float64{
				{1, 0.5},
				{0.5, 1},
			},
			wantArtifact: ArtifactMovies,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := New(tt.movies, tt.matrix)
			if s != nil {
				t.Error("expected nil store on failure")
			}
			if !errors.Is(err, ErrDataIntegrity) {
				t.Fatalf("expected ErrDataIntegrity, got %v", err)
			}
			var integrityErr *DataIntegrityError
			if !errors.As(err, &integrityErr) {
				t.Fatalf("expected *DataIntegrityError, got %T", err)
			}
			if integrityErr.Artifact != tt.wantArtifact {
				t.Errorf("Artifact = %q, want %q", integrityErr.Artifact, tt.wantArtifact)
			}
		})
	}
}

func TestNew_CopiesInputs(t *testing.T) {
	t.Parallel()

	movies := sampleMovies()
	matrix := sampleMatrix()
	s := mustNew(t, movies, matrix)

	movies[0].Title = "changed"
	matrix[0][1] = -5

	m, err := s.Movie(0)
	if err != nil {
		t.Fatalf("Movie(0) error = %v", err)
	}
	if m.Title != "A" {
		t.Errorf("store observed caller mutation of movies: %q", m.Title)
	}

	row, _ := s.RowOf(0)
	if row[1].Value != 0.9 {
		t.Errorf("store observed caller mutation of matrix: %v", row[1].Value)
	}
}

func TestIndexOf(t *testing.T) {
	t.Parallel()

	s := mustNew(t, []Movie{
		{ID: 10, Title: "Avatar"},
		{ID: 11, Title: "Spectre"},
		{ID: 12, Title: "Avatar"},
	}, [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})

	tests := []struct {
		title     string
		wantIndex int
		wantErr   bool
	}{
		{"Avatar", 0, false},
		{"Spectre", 1, false},
		{"avatar", -1, true},
		{"Avatar ", -1, true},
		{"Unknown Title", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()

			got, err := s.IndexOf(tt.title)
			if tt.wantErr {
				var nf *NotFoundError
				if !errors.As(err, &nf) || !errors.Is(err, ErrNotFound) {
					t.Fatalf("expected NotFoundError, got %v", err)
				}
				if nf.Title != tt.title {
					t.Errorf("NotFoundError.Title = %q, want %q", nf.Title, tt.title)
				}
				return
			}
			if err != nil {
				t.Fatalf("IndexOf() error = %v", err)
			}
			if got != tt.wantIndex {
				t.Errorf("IndexOf(%q) = %d, want %d", tt.title, got, tt.wantIndex)
			}

			again, _ := s.IndexOf(tt.title)
			if again != got {
				t.Errorf("IndexOf is not idempotent: %d then %d", got, again)
			}
		})
	}
}

func TestRowOf(t *testing.T) {
	t.Parallel()

	s := mustNew(t, sampleMovies(), sampleMatrix())

	row, err := s.RowOf(0)
	if err != nil {
		t.Fatalf("RowOf(0) error = %v", err)
	}
	want := []float64{1.0, 0.9, 0.9, 0.1}
	if len(row) != len(want) {
		t.Fatalf("len(row) = %d, want %d", len(row), len(want))
	}
	for j, sc := range row {
		if sc.Index != j || sc.Value != want[j] {
			t.Errorf("row[%d] = %+v, want {%d %v}", j, sc, j, want[j])
		}
	}

	for _, idx := range []int{-1, 4, 100} {
		if _, err := s.RowOf(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("RowOf(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	s := mustNew(t, sampleMovies(), sampleMatrix())

	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}

	titles := s.Titles()
	if len(titles) != 4 || titles[0] != "A" || titles[3] != "D" {
		t.Errorf("Titles() = %v", titles)
	}

	movies := s.Movies()
	movies[0].Title = "mutated"
	if m, _ := s.Movie(0); m.Title != "A" {
		t.Error("Movies() must return a copy")
	}

	m, idx, ok := s.MovieByID(3)
	if !ok || idx != 2 || m.Title != "C" {
		t.Errorf("MovieByID(3) = %+v, %d, %v", m, idx, ok)
	}
	if _, _, ok := s.MovieByID(99); ok {
		t.Error("MovieByID(99) should not be found")
	}

	if _, err := s.Movie(4); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Movie(4) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	s := mustNew(t, []Movie{
		{ID: 1, Title: "The Dark Knight"},
		{ID: 2, Title: "Avatar"},
		{ID: 3, Title: "The Dark Knight Rises"},
		{ID: 4, Title: "Dark Shadows"},
	}, [][]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})

	tests := []struct {
		name  string
		query string
		limit int
		want  []int64
	}{
		{"empty query lists all", "", 0, []int64{1, 2, 3, 4}},
		{"case-insensitive substring", "dark", 0, []int64{1, 3, 4}},
		{"limit applied in catalog order", "DARK", 2, []int64{1, 3}},
		{"no match", "zzz", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := s.Search(tt.query, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q, %d) returned %d movies, want %d", tt.query, tt.limit, len(got), len(tt.want))
			}
			for i, m := range got {
				if m.ID != tt.want[i] {
					t.Errorf("result[%d].ID = %d, want %d", i, m.ID, tt.want[i])
				}
			}
		})
	}
}

func TestDuplicateTitles(t *testing.T) {
	t.Parallel()

	s := mustNew(t, []Movie{
		{ID: 1, Title: "Hamlet"},
		{ID: 2, Title: "Heat"},
		{ID: 3, Title: "Hamlet"},
		{ID: 4, Title: "Hamlet"},
	}, [][]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})

	dups := s.DuplicateTitles()
	if len(dups) != 1 {
		t.Fatalf("DuplicateTitles() = %v, want one entry", dups)
	}
	got := dups["Hamlet"]
	if len(got) != 3 || got[0] != 0 || got[1] != 2 || got[2] != 3 {
		t.Errorf("DuplicateTitles()[Hamlet] = %v, want [0 2 3]", got)
	}

	if idx, _ := s.IndexOf("Hamlet"); idx != 0 {
		t.Errorf("IndexOf(Hamlet) = %d, want first occurrence 0", idx)
	}

	unique := mustNew(t, sampleMovies(), sampleMatrix())
	if len(unique.DuplicateTitles()) != 0 {
		t.Error("expected no duplicates")
	}
}

func TestStore_ConcurrentReaders(t *testing.T) {
	t.Parallel()

	s := mustNew(t, sampleMovies(), sampleMatrix())

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				idx, err := s.IndexOf("C")
				if err != nil || idx != 2 {
					t.Errorf("IndexOf(C) = %d, %v", idx, err)
					return
				}
				if _, err := s.RowOf(idx); err != nil {
					t.Errorf("RowOf(%d) error = %v", idx, err)
					return
				}
				_ = s.Search("a", 0)
			}
		}()
	}
	wg.Wait()
}
