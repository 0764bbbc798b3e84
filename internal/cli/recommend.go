// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/bootstrap"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/enrich"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/validation"
)

// msgMovieNotFound is shown when the query title is not in the catalog.
const msgMovieNotFound = "Movie not found in dataset."

// errEnrichmentDisabled is returned when --enrich is used without TMDB.
var errEnrichmentDisabled = errors.New("tmdb enrichment is disabled; set TMDB_ENABLED=true and TMDB_API_KEY")

// recommendArgs are the validated inputs of the recommend command.
type recommendArgs struct {
	Title string `json:"title" validate:"required,max=500,nocontrol"`
	K     int    `json:"k" validate:"min=1"`
}

func newRecommendCmd(a *app) *cobra.Command {
	var (
		k          int
		withEnrich bool
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Recommend movies similar to a title",
		Long: `Recommend the movies most similar to an exact catalog title.

Results are ranked by similarity score; ties keep catalog order. Use the
titles command to find the exact spelling. With --enrich, each result is
looked up on TMDB and movies without metadata are skipped.`,
		Example: `  cinematch recommend "Avatar"
  cinematch recommend "The Dark Knight Rises" -k 10 --enrich`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("k") {
				k = cfg.Recommend.DefaultK
			}
			req := recommendArgs{Title: args[0], K: k}
			if verr := validation.ValidateStruct(req); verr != nil {
				return verr
			}
			if req.K > cfg.Recommend.MaxK {
				return fmt.Errorf("k must be at most %d", cfg.Recommend.MaxK)
			}
			if withEnrich && !cfg.TMDB.Enabled {
				return errEnrichmentDisabled
			}

			engine, err := a.loadEngine(cmd, cfg)
			if err != nil {
				return err
			}

			result, err := engine.RecommendScored(req.Title, req.K)
			if err != nil {
				var nf *catalog.NotFoundError
				if errors.As(err, &nf) {
					cmd.PrintErrln(msgMovieNotFound)
					return errReported
				}
				return err
			}
			resp := models.NewRecommendationResponse(result)

			if withEnrich && len(resp.MovieIDs) > 0 {
				enrichment, err := bootstrap.NewEnrichment(cfg.TMDB, logging.WithComponent("enrich"))
				if err != nil {
					return err
				}
				enriched, err := enrichment.Enricher.Enrich(cmd.Context(), resp.MovieIDs)
				if err != nil {
					return fmt.Errorf("enrich recommendations: %w", err)
				}
				resp.Details = enriched.Movies
				resp.Dropped = enriched.Dropped
			}

			if jsonOut {
				return printJSON(cmd, resp)
			}
			printRecommendations(cmd.OutOrStdout(), &resp, withEnrich)
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", 0, "Number of recommendations (default from recommend.default_k)")
	cmd.Flags().BoolVar(&withEnrich, "enrich", false, "Add TMDB posters, cast and ratings")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func printRecommendations(out io.Writer, resp *models.RecommendationResponse, enriched bool) {
	if len(resp.Candidates) == 0 {
		fmt.Fprintf(out, "No other movies in the catalog to compare with %q.\n", resp.Query.Title)
		return
	}

	fmt.Fprintf(out, "Movies similar to %q:\n\n", resp.Query.Title)

	if !enriched {
		for _, c := range resp.Candidates {
			fmt.Fprintf(out, "%3d. %s (movie_id %d, score %.4f)\n", c.Rank, c.Title, c.MovieID, c.Score)
		}
		return
	}

	for i := range resp.Details {
		fmt.Fprintf(out, "%3d. ", i+1)
		printDetails(out, &resp.Details[i], "     ")
	}
	if len(resp.Dropped) > 0 {
		fmt.Fprintf(out, "\nSkipped %d movie(s) without TMDB metadata:\n", len(resp.Dropped))
		for _, d := range resp.Dropped {
			fmt.Fprintf(out, "  - movie_id %d: %s\n", d.MovieID, d.Reason)
		}
	}
}

// printDetails writes one display record. The first line has no indent so
// callers can prefix it.
func printDetails(out io.Writer, d *enrich.MovieDetails, indent string) {
	fmt.Fprintf(out, "%s (movie_id %d)\n", d.Title, d.MovieID)
	fmt.Fprintf(out, "%sRating:   %s\n", indent, d.Rating)
	fmt.Fprintf(out, "%sReleased: %s\n", indent, d.ReleaseDate)
	fmt.Fprintf(out, "%sCast:     %s\n", indent, d.Cast)
	fmt.Fprintf(out, "%sPoster:   %s\n", indent, d.PosterURL)
	if d.TrailerURL != "" {
		fmt.Fprintf(out, "%sTrailer:  %s\n", indent, d.TrailerURL)
	}
	fmt.Fprintf(out, "%sOverview: %s\n", indent, d.Overview)
}
