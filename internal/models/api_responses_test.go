// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend"
)

func TestAPIResponse_ErrorOmitsData(t *testing.T) {
	resp := APIResponse{
		Status:   StatusError,
		Metadata: Metadata{Timestamp: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)},
		Error:    &APIError{Code: ErrCodeMovieNotFound, Message: "movie not found"},
	}

	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)

	if strings.Contains(s, `"data"`) {
		t.Errorf("error response should omit data: %s", s)
	}
	if !strings.Contains(s, `"code":"MOVIE_NOT_FOUND"`) {
		t.Errorf("missing error code: %s", s)
	}
	if strings.Contains(s, "query_time_ms") {
		t.Errorf("zero query time should be omitted: %s", s)
	}
}

func TestMovieResponse_FlattensMovie(t *testing.T) {
	b, err := json.Marshal(MovieResponse{Index: 3, Movie: catalog.Movie{ID: 19995, Title: "Avatar"}})
	if err != nil {
		t.Fatal(err)
	}

	want := `{"index":3,"movie_id":19995,"title":"Avatar"}`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}
}

func TestRecommendationResponse_OmitsEnrichment(t *testing.T) {
	b, err := json.Marshal(RecommendationResponse{
		Query:      catalog.Movie{ID: 1, Title: "A"},
		K:          2,
		MovieIDs:   []int64{2, 3},
		Candidates: []CandidateResponse{{Rank: 1, MovieID: 2, Title: "B", Score: 0.9}},
	})
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)

	if strings.Contains(s, "details") || strings.Contains(s, "dropped") {
		t.Errorf("unenriched response should omit details and dropped: %s", s)
	}
	if !strings.Contains(s, `"movie_ids":[2,3]`) {
		t.Errorf("missing movie_ids: %s", s)
	}
}

func TestNewRecommendationResponse(t *testing.T) {
	result := &recommend.Result{
		Query:      catalog.Movie{ID: 19995, Title: "Avatar"},
		QueryIndex: 0,
		K:          2,
		Candidates: []recommend.Candidate{
			{Rank: 1, Index: 1, MovieID: 285, Title: "Pirates of the Caribbean: At World's End", Score: 0.9},
			{Rank: 2, Index: 2, MovieID: 206647, Title: "Spectre", Score: 0.9},
		},
	}

	resp := NewRecommendationResponse(result)

	if resp.Query.ID != 19995 || resp.K != 2 {
		t.Errorf("query/k = %+v/%d", resp.Query, resp.K)
	}
	if len(resp.MovieIDs) != 2 || resp.MovieIDs[0] != 285 || resp.MovieIDs[1] != 206647 {
		t.Errorf("MovieIDs = %v, want [285 206647]", resp.MovieIDs)
	}
	if len(resp.Candidates) != 2 || resp.Candidates[1].Rank != 2 || resp.Candidates[1].Title != "Spectre" {
		t.Errorf("Candidates = %+v", resp.Candidates)
	}
	if resp.Details != nil || resp.Dropped != nil {
		t.Error("details and dropped should be empty before enrichment")
	}

	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), `"details"`) {
		t.Errorf("unenriched response should omit details: %s", b)
	}
}
