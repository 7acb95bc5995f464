// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

/*
Package services adapts AdmitGuard components to suture.Service.

  - HTTPServerService wraps *http.Server with graceful shutdown.
  - JanitorService runs periodic cleanup of expired sessions and idle
    login-limiter buckets.

Both return ctx.Err() on cancellation and name themselves via String for
supervisor log events.
*/
package services
