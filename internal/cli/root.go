// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/bootstrap"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// errReported marks a failure whose message was already printed.
var errReported = errors.New("reported")

// Options configures the command tree.
type Options struct {
	// Version is printed by the version command.
	Version string

	// LoadConfig returns the configuration. Defaults to config.LoadWithKoanf.
	LoadConfig func() (*config.Config, error)
}

// app holds state shared by every subcommand.
type app struct {
	opts Options

	moviesPath     string
	similarityPath string
	logLevel       string
}

// NewRootCmd builds the cinematch command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.LoadWithKoanf
	}
	a := &app{opts: opts}

	rootCmd := &cobra.Command{
		Use:   "cinematch",
		Short: "Content-based movie recommendations",
		Long: `cinematch suggests movies similar to a title you already like.

Recommendations come from a precomputed similarity matrix over the movie
catalog. When a TMDB API key is configured, results can be enriched with
posters, cast, ratings and trailers.

Configuration is read from config.yaml and environment variables; the
--movies and --similarity flags override the artifact paths.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.moviesPath, "movies", "", "Movie table artifact (overrides catalog.movies_path)")
	rootCmd.PersistentFlags().StringVar(&a.similarityPath, "similarity", "", "Similarity matrix artifact (overrides catalog.similarity_path)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(
		newTitlesCmd(a),
		newRecommendCmd(a),
		newDetailsCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, rootCmd *cobra.Command) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			rootCmd.PrintErrln("Error:", err)
		}
		return 1
	}
	return 0
}

// loadConfig reads configuration, applies flag overrides, and routes logs to
// the command's error stream.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if !logging.ValidLevel(a.logLevel) {
		return nil, fmt.Errorf("invalid --log-level %q", a.logLevel)
	}
	logging.Init(logging.Config{
		Level:     a.logLevel,
		Format:    "console",
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})

	cfg, err := a.opts.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if a.moviesPath != "" {
		cfg.Catalog.MoviesPath = a.moviesPath
	}
	if a.similarityPath != "" {
		cfg.Catalog.SimilarityPath = a.similarityPath
	}
	return cfg, nil
}

// loadCatalog loads the catalog named by cfg.
func (a *app) loadCatalog(cmd *cobra.Command, cfg *config.Config) (*catalog.Store, error) {
	return bootstrap.LoadCatalog(cmd.Context(), cfg.Catalog, logging.WithComponent("catalog"))
}

// loadEngine loads the catalog and builds an engine over it.
func (a *app) loadEngine(cmd *cobra.Command, cfg *config.Config) (*recommend.Engine, error) {
	store, err := a.loadCatalog(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return bootstrap.NewEngine(store, cfg.Recommend, logging.WithComponent("recommend"))
}

// printJSON writes v as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
