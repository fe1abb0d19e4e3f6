package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/services"
)

// EventPruner periodically deletes aged audit-log entries so the events
// table does not grow without bound.
type EventPruner struct {
	events    services.EventServiceProvider
	schedule  cron.Schedule
	retention time.Duration
	ticker    *time.Ticker
	done      chan bool
	nextRun   time.Time
}

// NewEventPruner creates a pruner from a standard cron expression and a
// retention window in days.
func NewEventPruner(events services.EventServiceProvider, cronExpr string, retentionDays int) (*EventPruner, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &EventPruner{
		events:    events,
		schedule:  schedule,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		done:      make(chan bool),
		nextRun:   schedule.Next(time.Now()),
	}, nil
}

// Run starts the pruner's ticking loop. It blocks until Stop is called.
func (p *EventPruner) Run() {
	log.Info().Time("next_run", p.nextRun).Msg("Starting audit-log pruner")
	p.ticker = time.NewTicker(1 * time.Minute)
	defer p.ticker.Stop()

	for {
		select {
		case <-p.done:
			log.Info().Msg("Stopping audit-log pruner")
			return
		case now := <-p.ticker.C:
			if now.After(p.nextRun) {
				p.prune(now)
				p.nextRun = p.schedule.Next(now)
			}
		}
	}
}

// Stop halts the pruner.
func (p *EventPruner) Stop() {
	p.done <- true
}

func (p *EventPruner) prune(now time.Time) {
	cutoff := now.Add(-p.retention)
	deleted, err := p.events.PruneOlderThan(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Audit-log prune failed")
		return
	}
	log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Pruned audit log")
}
