// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor runs the server's long-lived services under a suture v4
supervisor tree.

	RootSupervisor ("cinematch")
	├── CoreSupervisor ("core-layer")
	│   └── StatsReporterService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Supervisor events are
logged through sutureslog, which the server points at the zerolog adapter
from the logging package so every line shares one format.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddCoreService(services.NewStatsReporterService(engine, 5*time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("supervisor stopped")
	}

After Serve returns, UnstoppedServiceReport lists any service that ignored
cancellation past the shutdown timeout.

The service wrappers live in the services subpackage.
*/
package supervisor
