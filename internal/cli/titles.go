// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/catalog"
)

func newTitlesCmd(a *app) *cobra.Command {
	var (
		search  string
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List movie titles in the catalog",
		Long: `List every movie in catalog order, one per line as "movie_id<TAB>title".

--search keeps titles containing the text, ignoring case. Exact titles from
this list are what the recommend command accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}

			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := a.loadCatalog(cmd, cfg)
			if err != nil {
				return err
			}

			movies := store.Search(search, limit)
			if jsonOut {
				if movies == nil {
					movies = []catalog.Movie{}
				}
				return printJSON(cmd, movies)
			}

			out := cmd.OutOrStdout()
			if len(movies) == 0 {
				fmt.Fprintln(out, "No movies found.")
				return nil
			}
			for _, m := range movies {
				fmt.Fprintf(out, "%d\t%s\n", m.ID, m.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only list titles containing this text")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of titles (0 lists all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
