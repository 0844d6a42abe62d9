package preview

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// periodicRebuild wraps a gocron scheduler requesting a rebuild every
// interval, for content that changes without filesystem events (network
// mounts, generated includes).
type periodicRebuild struct {
	scheduler gocron.Scheduler
}

func newPeriodicRebuild(interval time.Duration, request func()) (*periodicRebuild, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if _, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(request),
		gocron.WithName("preview-rebuild"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic rebuild job: %w", err)
	}
	return &periodicRebuild{scheduler: s}, nil
}

func (p *periodicRebuild) start(interval time.Duration) {
	slog.Info("Starting periodic rebuild", slog.Duration("interval", interval))
	p.scheduler.Start()
}

func (p *periodicRebuild) stop() {
	if err := p.scheduler.Shutdown(); err != nil {
		slog.Warn("Scheduler shutdown error", "error", err)
	}
}
