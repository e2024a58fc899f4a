// backend-go/internal/scheduler/poller.go
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/procuresmart/backend-go/internal/domain"
)

// AlertSource is the queue-facing side of the procurement service.
type AlertSource interface {
	CollectDueAlerts(today time.Time) []domain.Alert
}

// Poller periodically drains due reminders and logs them. It is the
// second consumer of the reminder queue next to the alerts endpoint.
type Poller struct {
	cron   *cron.Cron
	source AlertSource
}

func NewPoller(source AlertSource) *Poller {
	return &Poller{
		cron:   cron.New(),
		source: source,
	}
}

// Start schedules the poll job at the given interval in seconds.
func (p *Poller) Start(pollSeconds int) error {
	if pollSeconds <= 0 {
		pollSeconds = 60
	}
	spec := fmt.Sprintf("@every %ds", pollSeconds)
	if _, err := p.cron.AddFunc(spec, p.poll); err != nil {
		return fmt.Errorf("failed to schedule alert poller: %w", err)
	}
	p.cron.Start()
	log.Info().Int("interval_seconds", pollSeconds).Msg("alert poller started")
	return nil
}

// Stop halts the schedule and waits for a running poll to finish.
func (p *Poller) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
}

func (p *Poller) poll() {
	alerts := p.source.CollectDueAlerts(time.Now())
	for _, a := range alerts {
		log.Info().Str("alert_id", a.ID).Msg(a.Message)
	}
}
