// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

const (
	columnMovieID = "movie_id"
	columnTitle   = "title"
)

// decodeMoviesJSON accepts the three layouts pandas produces for a two-column
// frame: column mapping with row labels, column mapping with lists, and records.
func decodeMoviesJSON(r io.Reader) ([]Movie, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, integrityErrorf(ArtifactMovies, err, "read failed")
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, integrityErrorf(ArtifactMovies, nil, "document is empty")
	}

	switch trimmed[0] {
	case '[':
		return decodeMovieRecords(trimmed)
	case '{':
		return decodeMovieColumns(trimmed)
	default:
		return nil, integrityErrorf(ArtifactMovies, nil, "expected a JSON object or array")
	}
}

type movieRecord struct {
	MovieID json.Number `json:"movie_id"`
	Title   *string     `json:"title"`
}

func decodeMovieRecords(raw []byte) ([]Movie, error) {
	var records []movieRecord
	if err := decodeSingle(bytes.NewReader(raw), &records); err != nil {
		return nil, integrityErrorf(ArtifactMovies, err, "invalid record list")
	}

	movies := make([]Movie, len(records))
	for i, rec := range records {
		m, err := toMovie(i, string(rec.MovieID), rec.Title)
		if err != nil {
			return nil, err
		}
		movies[i] = m
	}
	return movies, nil
}

func decodeMovieColumns(raw []byte) ([]Movie, error) {
	var columns map[string]json.RawMessage
	if err := decodeSingle(bytes.NewReader(raw), &columns); err != nil {
		return nil, integrityErrorf(ArtifactMovies, err, "invalid column mapping")
	}

	idRaw, ok := columns[columnMovieID]
	if !ok {
		return nil, integrityErrorf(ArtifactMovies, nil, "missing column %q", columnMovieID)
	}
	titleRaw, ok := columns[columnTitle]
	if !ok {
		return nil, integrityErrorf(ArtifactMovies, nil, "missing column %q", columnTitle)
	}

	idLabels, ids, err := decodeColumn[json.Number](idRaw, columnMovieID)
	if err != nil {
		return nil, err
	}
	titleLabels, titles, err := decodeColumn[*string](titleRaw, columnTitle)
	if err != nil {
		return nil, err
	}

	if len(idLabels) != len(titleLabels) {
		return nil, integrityErrorf(ArtifactMovies, nil,
			"column %q has %d rows but %q has %d", columnMovieID, len(idLabels), columnTitle, len(titleLabels))
	}
	for i := range idLabels {
		if idLabels[i] != titleLabels[i] {
			return nil, integrityErrorf(ArtifactMovies, nil, "row labels of %q and %q differ", columnMovieID, columnTitle)
		}
	}

	movies := make([]Movie, len(ids))
	for i := range ids {
		m, err := toMovie(i, string(ids[i]), titles[i])
		if err != nil {
			return nil, err
		}
		movies[i] = m
	}
	return movies, nil
}

// decodeColumn reads one column either as a list or as a mapping from row
// label to value. Mapped values are returned in ascending label order.
func decodeColumn[T any](raw json.RawMessage, name string) ([]int, []T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil, integrityErrorf(ArtifactMovies, nil, "column %q is empty", name)
	}

	if trimmed[0] == '[' {
		var values []T
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return nil, nil, integrityErrorf(ArtifactMovies, err, "invalid column %q", name)
		}
		labels := make([]int, len(values))
		for i := range labels {
			labels[i] = i
		}
		return labels, values, nil
	}

	var mapped map[string]T
	if err := json.Unmarshal(trimmed, &mapped); err != nil {
		return nil, nil, integrityErrorf(ArtifactMovies, err, "invalid column %q", name)
	}

	labels := make([]int, 0, len(mapped))
	byLabel := make(map[int]T, len(mapped))
	for key, v := range mapped {
		label, err := strconv.Atoi(key)
		if err != nil {
			return nil, nil, integrityErrorf(ArtifactMovies, err, "column %q has non-integer row label %q", name, key)
		}
		labels = append(labels, label)
		byLabel[label] = v
	}
	sort.Ints(labels)

	values := make([]T, len(labels))
	for i, label := range labels {
		values[i] = byLabel[label]
	}
	return labels, values, nil
}

func toMovie(row int, rawID string, title *string) (Movie, error) {
	id, err := parseMovieID(rawID)
	if err != nil {
		return Movie{}, integrityErrorf(ArtifactMovies, err, "row %d has invalid movie_id %q", row, rawID)
	}
	if title == nil {
		return Movie{}, integrityErrorf(ArtifactMovies, nil, "row %d has no title", row)
	}
	return Movie{ID: id, Title: *title}, nil
}

// parseMovieID accepts integers and integral floats such as "19995.0".
func parseMovieID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("missing value")
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	return int64(f), nil
}

// decodeSingle decodes exactly one JSON value from r into v. Anything but
// whitespace after that value is an error.
func decodeSingle(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return fmt.Errorf("after top-level value: %w", err)
	default:
		return errors.New("unexpected data after top-level value")
	}
}

func decodeMatrixJSON(r io.Reader) ([][]float64, error) {
	var cells [][]*float64
	if err := decodeSingle(r, &cells); err != nil {
		return nil, integrityErrorf(ArtifactSimilarity, err, "expected a 2-D numeric array")
	}

	matrix := make([][]float64, len(cells))
	for i, row := range cells {
		if row == nil {
			return nil, integrityErrorf(ArtifactSimilarity, nil, "row %d is null", i)
		}
		matrix[i] = make([]float64, len(row))
		for j, v := range row {
			if v == nil {
				return nil, integrityErrorf(ArtifactSimilarity, nil, "score at row %d column %d is null", i, j)
			}
			matrix[i][j] = *v
		}
	}
	return matrix, nil
}

func decodeMoviesCSV(r io.Reader) ([]Movie, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, integrityErrorf(ArtifactMovies, nil, "document is empty")
		}
		return nil, integrityErrorf(ArtifactMovies, err, "invalid header")
	}

	idCol, titleCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case columnMovieID:
			idCol = i
		case columnTitle:
			titleCol = i
		}
	}
	if idCol < 0 {
		return nil, integrityErrorf(ArtifactMovies, nil, "missing column %q", columnMovieID)
	}
	if titleCol < 0 {
		return nil, integrityErrorf(ArtifactMovies, nil, "missing column %q", columnTitle)
	}

	var movies []Movie
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, integrityErrorf(ArtifactMovies, err, "invalid row %d", row)
		}
		title := record[titleCol]
		m, err := toMovie(row, record[idCol], &title)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, nil
}

func decodeMatrixCSV(r io.Reader) ([][]float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	var matrix [][]float64
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, integrityErrorf(ArtifactSimilarity, err, "invalid row %d", row)
		}

		values := make([]float64, len(record))
		for col, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, integrityErrorf(ArtifactSimilarity, err, "row %d column %d is not a number", row, col)
			}
			values[col] = v
		}
		matrix = append(matrix, values)
	}
	return matrix, nil
}
