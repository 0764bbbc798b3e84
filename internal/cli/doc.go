// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package cli implements the cinematch command-line client with cobra.

Commands:

	cinematch titles [--search q] [--limit n] [--json]
	cinematch recommend <title> [-k n] [--enrich] [--json]
	cinematch details <movie-id> [--json]
	cinematch version

The persistent --movies and --similarity flags override the configured
artifact paths. Logs go to stderr at the --log-level threshold (warn by
default); results go to stdout.

A title missing from the catalog prints "Movie not found in dataset." and
the process exits with status 1.

Usage from main:

	root := cli.NewRootCmd(cli.Options{Version: version})
	os.Exit(cli.Execute(ctx, root))
*/
package cli
