// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

/*
Package supervisor provides process supervision for AdmitGuard using suture v4.

The tree has two layers:

	admitguard
	├── maintenance-layer
	│   └── JanitorService (session and login-limiter cleanup)
	└── api-layer
	    └── HTTPServerService

Crashed services are restarted with backoff once FailureThreshold is
exceeded. Each layer counts failures on its own, so a failing janitor never
restarts the HTTP server. Canceling the Serve context stops every service,
each bounded by ShutdownTimeout.

Supervisor events (start, failure, backoff, stop timeout) are logged through
sutureslog into the zerolog-backed slog handler from the logging package:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMaintenanceService(services.NewJanitorService(5*time.Minute, tasks...))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
