// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator checks HTTP query parameter structs and
// converts failures to the VALIDATION_ERROR API format:
//
//	type recommendationsRequest struct {
//	    Title string `query:"title" validate:"required,max=500,nocontrol"`
//	    K     int    `query:"k" validate:"min=1,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// Struct-level limits that depend on configuration (such as the maximum k)
// are checked with validator.Var or by the caller after ValidateStruct.
package validation
