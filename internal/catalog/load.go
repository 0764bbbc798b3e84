// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Load reads a JSON movie table and a JSON similarity matrix and returns the
// validated Store. On failure no Store is returned.
func Load(movieSource, matrixSource io.Reader) (*Store, error) {
	return LoadFormat(movieSource, FormatJSON, matrixSource, FormatJSON)
}

// LoadFormat is Load with explicit artifact formats. Parquet needs random
// access and is only available through LoadFiles.
func LoadFormat(movieSource io.Reader, movieFormat Format, matrixSource io.Reader, matrixFormat Format) (*Store, error) {
	movies, err := decodeMovies(movieSource, movieFormat)
	if err != nil {
		return nil, err
	}
	matrix, err := decodeMatrix(matrixSource, matrixFormat)
	if err != nil {
		return nil, err
	}
	return New(movies, matrix)
}

func decodeMovies(r io.Reader, format Format) ([]Movie, error) {
	switch format {
	case FormatJSON:
		return decodeMoviesJSON(r)
	case FormatCSV:
		return decodeMoviesCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s movie table from a stream", ErrUnsupportedFormat, format)
	}
}

func decodeMatrix(r io.Reader, format Format) ([][]float64, error) {
	switch format {
	case FormatJSON:
		return decodeMatrixJSON(r)
	case FormatCSV:
		return decodeMatrixCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s similarity matrix from a stream", ErrUnsupportedFormat, format)
	}
}

// LoadFiles loads both artifacts from disk, choosing each decoder from the
// file extension. The two files may use different formats.
func LoadFiles(ctx context.Context, moviesPath, similarityPath string) (*Store, error) {
	movieFormat, err := FormatFromPath(moviesPath)
	if err != nil {
		return nil, err
	}
	matrixFormat, err := FormatFromPath(similarityPath)
	if err != nil {
		return nil, err
	}

	var pq *parquetReader
	if movieFormat == FormatParquet || matrixFormat == FormatParquet {
		pq, err = openParquetReader()
		if err != nil {
			return nil, err
		}
		defer pq.Close() //nolint:errcheck // in-memory database, nothing to flush
	}

	var movies []Movie
	if movieFormat == FormatParquet {
		movies, err = pq.readMovies(ctx, moviesPath)
	} else {
		movies, err = readFile(moviesPath, func(r io.Reader) ([]Movie, error) {
			return decodeMovies(r, movieFormat)
		})
	}
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matrix [][]float64
	if matrixFormat == FormatParquet {
		matrix, err = pq.readMatrix(ctx, similarityPath)
	} else {
		matrix, err = readFile(similarityPath, func(r io.Reader) ([][]float64, error) {
			return decodeMatrix(r, matrixFormat)
		})
	}
	if err != nil {
		return nil, err
	}

	return New(movies, matrix)
}

func readFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return zero, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file
	return decode(f)
}
