// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend ranks catalog movies by precomputed content similarity.
//
// # Ranking
//
// For a query title the engine resolves its catalog index, reads the matching
// similarity row and orders every other movie by score, highest first. Scores
// that are exactly equal are ordered by ascending catalog index, so the
// output is a pure function of the catalog and the arguments:
//
//   - the query movie is never part of its own result
//   - Recommend(t, k1) is a prefix of Recommend(t, k2) whenever k1 < k2
//   - asking for more than N-1 movies returns all N-1 without error
//
// Small k is served by a bounded heap of the k best scores, O(N log k) per
// query; a k covering the whole row falls back to a full sort. Both paths
// use the same ordering.
//
// # Usage
//
//	store, err := catalog.LoadFiles(ctx, "data/movies.json", "data/similarity.json")
//	engine, err := recommend.NewEngine(store, recommend.DefaultConfig(), logger)
//	ids, err := engine.Recommend("Avatar", 5)
//
// # Thread Safety
//
// The engine holds no mutable ranking state. Any number of goroutines may
// call Recommend concurrently against the same engine.
package recommend
