// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver for parquet reads
)

// duckDBMemoryDSN opens a private in-memory database. Extension autoloading is
// off; read_parquet is built into the driver.
const duckDBMemoryDSN = ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false"

// maxParquetCells bounds the long-form matrix so a corrupt file cannot force
// an arbitrarily large allocation.
const maxParquetCells = 1 << 28

// parquetReader reads catalog artifacts from parquet files with DuckDB.
type parquetReader struct {
	db *sql.DB
}

func openParquetReader() (*parquetReader, error) {
	db, err := sql.Open("duckdb", duckDBMemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &parquetReader{db: db}, nil
}

func (p *parquetReader) Close() error {
	return p.db.Close()
}

// sqlStringLiteral quotes path for use inside a DuckDB table function call.
func sqlStringLiteral(path string) string {
	return "'" + strings.ReplaceAll(path, "'", "''") + "'"
}

// readMovies returns movie_id and title in file row order.
func (p *parquetReader) readMovies(ctx context.Context, path string) ([]Movie, error) {
	query := "SELECT movie_id, CAST(title AS VARCHAR) FROM read_parquet(" + sqlStringLiteral(path) +
		", file_row_number = true) ORDER BY file_row_number"

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, integrityErrorf(ArtifactMovies, err, "read parquet %s", path)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var movies []Movie
	for row := 0; rows.Next(); row++ {
		var rawID any
		var title sql.NullString
		if err := rows.Scan(&rawID, &title); err != nil {
			return nil, integrityErrorf(ArtifactMovies, err, "scan row %d", row)
		}

		id, err := movieIDFromValue(rawID)
		if err != nil {
			return nil, integrityErrorf(ArtifactMovies, err, "row %d has invalid movie_id", row)
		}
		if !title.Valid {
			return nil, integrityErrorf(ArtifactMovies, nil, "row %d has no title", row)
		}
		movies = append(movies, Movie{ID: id, Title: title.String})
	}
	if err := rows.Err(); err != nil {
		return nil, integrityErrorf(ArtifactMovies, err, "read parquet %s", path)
	}
	return movies, nil
}

// readMatrix rebuilds a dense matrix from long-form (row_idx, col_idx, score)
// cells. Every cell of the rectangle must appear exactly once.
func (p *parquetReader) readMatrix(ctx context.Context, path string) ([][]float64, error) {
	source := "read_parquet(" + sqlStringLiteral(path) + ")"

	var rowCount, colCount, cellCount sql.NullInt64
	var minRow, minCol sql.NullInt64
	err := p.db.QueryRowContext(ctx,
		"SELECT MAX(row_idx) + 1, MAX(col_idx) + 1, COUNT(*), MIN(row_idx), MIN(col_idx) FROM "+source,
	).Scan(&rowCount, &colCount, &cellCount, &minRow, &minCol)
	if err != nil {
		return nil, integrityErrorf(ArtifactSimilarity, err, "read parquet %s", path)
	}
	if !rowCount.Valid || cellCount.Int64 == 0 {
		return nil, integrityErrorf(ArtifactSimilarity, nil, "matrix has no cells")
	}
	if minRow.Int64 < 0 || minCol.Int64 < 0 {
		return nil, integrityErrorf(ArtifactSimilarity, nil, "negative row_idx or col_idx")
	}

	nRows, nCols := rowCount.Int64, colCount.Int64
	if err := checkMatrixDims(nRows, nCols); err != nil {
		return nil, err
	}
	if cellCount.Int64 != nRows*nCols {
		return nil, integrityErrorf(ArtifactSimilarity, nil,
			"long-form matrix has %d cells, want %d for %dx%d", cellCount.Int64, nRows*nCols, nRows, nCols)
	}

	rows, err := p.db.QueryContext(ctx,
		"SELECT row_idx, col_idx, CAST(score AS DOUBLE) FROM "+source+" ORDER BY row_idx, col_idx")
	if err != nil {
		return nil, integrityErrorf(ArtifactSimilarity, err, "read parquet %s", path)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	matrix := make([][]float64, nRows)
	for i := range matrix {
		matrix[i] = make([]float64, nCols)
	}

	var k int64
	for ; rows.Next(); k++ {
		var r, c int64
		var score sql.NullFloat64
		if err := rows.Scan(&r, &c, &score); err != nil {
			return nil, integrityErrorf(ArtifactSimilarity, err, "scan cell %d", k)
		}
		// Ordered scan over a complete rectangle visits cells in row-major order.
		if r != k/nCols || c != k%nCols {
			return nil, integrityErrorf(ArtifactSimilarity, nil, "duplicate or missing cell near row %d column %d", r, c)
		}
		if !score.Valid {
			return nil, integrityErrorf(ArtifactSimilarity, nil, "null score at row %d column %d", r, c)
		}
		matrix[r][c] = score.Float64
	}
	if err := rows.Err(); err != nil {
		return nil, integrityErrorf(ArtifactSimilarity, err, "read parquet %s", path)
	}
	return matrix, nil
}

// checkMatrixDims rejects a rectangle with more than maxParquetCells cells.
// Each side is bounded first so the product cannot overflow.
func checkMatrixDims(nRows, nCols int64) error {
	if nRows < 1 || nCols < 1 {
		return integrityErrorf(ArtifactSimilarity, nil, "matrix %dx%d has no cells", nRows, nCols)
	}
	if nRows > maxParquetCells || nCols > maxParquetCells || nRows*nCols > maxParquetCells {
		return integrityErrorf(ArtifactSimilarity, nil, "matrix %dx%d is too large", nRows, nCols)
	}
	return nil
}

// movieIDFromValue converts the driver's representation of a numeric column
// to an int64, accepting integral floats.
func movieIDFromValue(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", x)
		}
		return int64(x), nil
	case float64:
		return parseMovieID(strconv.FormatFloat(x, 'f', -1, 64))
	case float32:
		return parseMovieID(strconv.FormatFloat(float64(x), 'f', -1, 32))
	case string:
		return parseMovieID(x)
	case nil:
		return 0, errors.New("missing value")
	default:
		return 0, fmt.Errorf("unsupported movie_id type %T", v)
	}
}
