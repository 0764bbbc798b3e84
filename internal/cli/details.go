// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/bootstrap"
	"github.com/tomtom215/cinematch/internal/enrich"
	"github.com/tomtom215/cinematch/internal/logging"
)

func newDetailsCmd(a *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "details <movie-id>",
		Short: "Show TMDB details for a movie",
		Long: `Fetch the poster, cast, rating, release date and overview of a movie
from TMDB. Requires TMDB_ENABLED=true and TMDB_API_KEY.`,
		Example: `  cinematch details 19995`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("movie id must be a positive integer, got %q", args[0])
			}

			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.TMDB.Enabled {
				return errEnrichmentDisabled
			}

			enrichment, err := bootstrap.NewEnrichment(cfg.TMDB, logging.WithComponent("enrich"))
			if err != nil {
				return err
			}

			details, err := enrichment.Enricher.Details(cmd.Context(), id)
			if err != nil {
				if errors.Is(err, enrich.ErrMovieNotFound) {
					cmd.PrintErrf("No TMDB entry for movie_id %d.\n", id)
					return errReported
				}
				return fmt.Errorf("fetch details: %w", err)
			}

			if jsonOut {
				return printJSON(cmd, details)
			}
			printDetails(cmd.OutOrStdout(), details, "")
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
