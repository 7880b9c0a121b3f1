// Package cron runs the scheduled jobs declared in the config file.
package cron

import (
	"context"
	"fmt"
	"log/slog"

	robfigcron "github.com/robfig/cron/v3"

	"github.com/pitwall/pitwall/internal/bus"
	"github.com/pitwall/pitwall/internal/config"
	"github.com/pitwall/pitwall/internal/store"
)

// Asker answers a prompt through the agent loop.
type Asker interface {
	Ask(ctx context.Context, content string) string
}

// Service schedules the config-declared jobs: dataset reloads and
// recurring agent prompts delivered over the bus.
type Service struct {
	jobs   []config.JobConfig
	store  *store.Store
	asker  Asker
	b      bus.Bus
	robfig *robfigcron.Cron
}

// NewService creates a Service for the given jobs.
func NewService(jobs []config.JobConfig, st *store.Store, asker Asker, b bus.Bus) *Service {
	return &Service{
		jobs:   jobs,
		store:  st,
		asker:  asker,
		b:      b,
		robfig: robfigcron.New(),
	}
}

// Start registers every job and blocks until ctx is cancelled.
// Jobs with a bad schedule or kind are logged and skipped.
func (s *Service) Start(ctx context.Context) error {
	registered := 0
	for _, job := range s.jobs {
		job := job
		run, err := s.jobFunc(job)
		if err != nil {
			slog.Error("cron: skipping job", "name", job.Name, "err", err)
			continue
		}
		if _, err := s.robfig.AddFunc(job.Schedule, func() { run(ctx) }); err != nil {
			slog.Error("cron: bad schedule", "name", job.Name, "schedule", job.Schedule, "err", err)
			continue
		}
		registered++
	}

	s.robfig.Start()
	slog.Info("cron: started", "jobs", registered)

	<-ctx.Done()
	<-s.robfig.Stop().Done()
	return ctx.Err()
}

// jobFunc builds the callback for one job, validating its kind up front.
func (s *Service) jobFunc(job config.JobConfig) (func(context.Context), error) {
	switch job.Kind {
	case "reload":
		return func(context.Context) {
			snap := s.store.Reload()
			slog.Info("cron: dataset reloaded", "job", job.Name,
				"drivers", snap.Drivers.Len(), "teams", snap.Teams.Len(), "circuits", snap.Circuits.Len())
		}, nil

	case "ask":
		if job.Prompt == "" {
			return nil, fmt.Errorf("ask job %q has no prompt", job.Name)
		}
		return func(ctx context.Context) {
			answer := s.asker.Ask(ctx, job.Prompt)
			if job.Channel == "" || job.ChatID == "" {
				slog.Info("cron: job answered", "job", job.Name, "answer", answer)
				return
			}
			s.b.PublishOutbound(bus.OutboundMessage{
				Channel: bus.Channel(job.Channel),
				ChatID:  job.ChatID,
				Content: answer,
			})
		}, nil
	}
	return nil, fmt.Errorf("unknown job kind %q", job.Kind)
}
