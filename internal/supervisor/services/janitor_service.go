// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package services

import (
	"context"
	"time"

	"github.com/tomtom215/admitguard/internal/logging"
)

// CleanupTask removes expired state and reports how many items it removed.
type CleanupTask struct {
	Name string
	Run  func(ctx context.Context) (int, error)
}

// JanitorService runs cleanup tasks on a fixed interval: expired admin
// sessions, idle login-limiter buckets. A failing task is logged and does
// not stop the others.
type JanitorService struct {
	interval time.Duration
	tasks    []CleanupTask
	name     string
}

// NewJanitorService creates the service. A non-positive interval means 5m.
func NewJanitorService(interval time.Duration, tasks ...CleanupTask) *JanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &JanitorService{interval: interval, tasks: tasks, name: "janitor"}
}

// Serve implements suture.Service.
func (j *JanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce runs every task once.
func (j *JanitorService) RunOnce(ctx context.Context) {
	for _, task := range j.tasks {
		removed, err := task.Run(ctx)
		if err != nil {
			logging.Warn().Err(err).Str("task", task.Name).Msg("Cleanup task failed")
			continue
		}
		if removed > 0 {
			logging.Debug().Str("task", task.Name).Int("removed", removed).Msg("Cleanup task removed expired entries")
		}
	}
}

func (j *JanitorService) String() string {
	return j.name
}
