// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"fmt"
)

// Artifact names used in DataIntegrityError.
const (
	ArtifactMovies     = "movies"
	ArtifactSimilarity = "similarity"
)

var (
	// ErrDataIntegrity matches every DataIntegrityError via errors.Is.
	ErrDataIntegrity = errors.New("catalog data integrity violation")

	// ErrNotFound matches every NotFoundError via errors.Is.
	ErrNotFound = errors.New("movie not found")

	// ErrIndexOutOfRange is returned for a movie index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("movie index out of range")

	// ErrUnsupportedFormat is returned when an artifact extension is not recognized.
	ErrUnsupportedFormat = errors.New("unsupported artifact format")
)

// DataIntegrityError reports an artifact that could not be decoded or that
// does not agree with its counterpart.
type DataIntegrityError struct {
	Artifact string
	Reason   string
	Err      error
}

// Error implements the error interface.
func (e *DataIntegrityError) Error() string {
	msg := "data integrity: " + e.Artifact + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying decode error, if any.
func (e *DataIntegrityError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDataIntegrity.
func (e *DataIntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}

func integrityErrorf(artifact string, err error, format string, args ...any) *DataIntegrityError {
	return &DataIntegrityError{
		Artifact: artifact,
		Reason:   fmt.Sprintf(format, args...),
		Err:      err,
	}
}

// NotFoundError is returned when a title has no exact match in the catalog.
type NotFoundError struct {
	Title string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("movie not found: %q", e.Title)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
