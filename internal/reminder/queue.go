// backend-go/internal/reminder/queue.go
package reminder

import (
	"fmt"
	"sync"
	"time"

	"github.com/procuresmart/backend-go/internal/domain"
)

// Queue holds pending reminders. The evaluator enqueues and the alert
// poller collects, so both operations hold the same mutex.
type Queue struct {
	mu      sync.Mutex
	pending []domain.Reminder
}

func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a reminder.
func (q *Queue) Enqueue(r domain.Reminder) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, r)
}

// Pending returns the number of reminders not yet surfaced.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// CollectDue removes and returns every reminder whose reminder date is
// on or before today. Removal on read is the consumption semantic: a
// collected reminder is never emitted again.
func (q *Queue) CollectDue(today time.Time) []domain.Alert {
	q.mu.Lock()
	defer q.mu.Unlock()

	var alerts []domain.Alert
	remaining := q.pending[:0]
	for _, r := range q.pending {
		if r.ReminderDate.After(today) {
			remaining = append(remaining, r)
			continue
		}
		alerts = append(alerts, domain.Alert{
			ID: r.ID,
			Message: fmt.Sprintf("Reminder: order %d units of %s from %s by %s (deadline %s)",
				r.Quantity, r.MaterialID, r.AssignedVendor,
				r.ReminderDate.Format("2006-01-02"), r.Deadline.Format("2006-01-02")),
		})
	}
	q.pending = remaining
	return alerts
}
