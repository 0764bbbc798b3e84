// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"sort"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// ranksBefore reports whether a is ranked ahead of b: higher score first,
// lower catalog index on an exact tie.
func ranksBefore(a, b catalog.Score) bool {
	if a.Value != b.Value {
		return a.Value > b.Value
	}
	return a.Index < b.Index
}

// topKHeap keeps the k best scores seen so far. The root is the worst kept
// score, so a better candidate replaces it in O(log k).
type topKHeap struct {
	heap   []catalog.Score
	maxLen int
}

func newTopKHeap(k int) *topKHeap {
	return &topKHeap{
		heap:   make([]catalog.Score, 0, k),
		maxLen: k,
	}
}

// Offer considers sc for the top k.
func (h *topKHeap) Offer(sc catalog.Score) {
	if len(h.heap) < h.maxLen {
		h.heap = append(h.heap, sc)
		h.bubbleUp(len(h.heap) - 1)
		return
	}
	if !ranksBefore(sc, h.heap[0]) {
		return
	}
	h.heap[0] = sc
	h.bubbleDown(0)
}

// Sorted returns the kept scores in rank order. The heap is consumed.
func (h *topKHeap) Sorted() []catalog.Score {
	out := h.heap
	h.heap = nil
	sort.Slice(out, func(i, j int) bool { return ranksBefore(out[i], out[j]) })
	return out
}

// worse orders the heap so the lowest-ranked score sits at the root.
func (h *topKHeap) worse(i, j int) bool {
	return ranksBefore(h.heap[j], h.heap[i])
}

func (h *topKHeap) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.worse(i, parent) {
			break
		}
		h.heap[i], h.heap[parent] = h.heap[parent], h.heap[i]
		i = parent
	}
}

func (h *topKHeap) bubbleDown(i int) {
	n := len(h.heap)
	for {
		worst := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && h.worse(left, worst) {
			worst = left
		}
		if right < n && h.worse(right, worst) {
			worst = right
		}
		if worst == i {
			return
		}

		h.heap[i], h.heap[worst] = h.heap[worst], h.heap[i]
		i = worst
	}
}

// selectTopK returns the k best entries of row in rank order, skipping the
// query's own entry. A k at or above the row length ranks the whole row.
func selectTopK(row []catalog.Score, queryIndex, k int) []catalog.Score {
	if k >= len(row)-1 {
		return rankRow(row, queryIndex)
	}

	h := newTopKHeap(k)
	for _, sc := range row {
		if sc.Index == queryIndex {
			continue
		}
		h.Offer(sc)
	}
	return h.Sorted()
}
