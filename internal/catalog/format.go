// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an artifact encoding.
type Format int

const (
	// FormatJSON is a pandas-style JSON export.
	FormatJSON Format = iota
	// FormatCSV is comma-separated text.
	FormatCSV
	// FormatParquet is an Apache Parquet file read through DuckDB.
	FormatParquet
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatParquet:
		return "parquet"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}
