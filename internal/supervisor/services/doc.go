// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package services adapts long-running components to suture.Service.
//
// HTTPServerService bridges http.Server's blocking ListenAndServe to a
// context-driven Serve with graceful Shutdown. StatsReporterService logs
// recommendation counters on a ticker.
package services
