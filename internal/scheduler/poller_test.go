package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procuresmart/backend-go/internal/domain"
)

type stubSource struct {
	calls atomic.Int64
}

func (s *stubSource) CollectDueAlerts(today time.Time) []domain.Alert {
	s.calls.Add(1)
	return []domain.Alert{{ID: "r1", Message: "due"}}
}

func TestPoller_PollsOnSchedule(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test")
	}

	source := &stubSource{}
	poller := NewPoller(source)
	require.NoError(t, poller.Start(1))
	defer poller.Stop()

	assert.Eventually(t, func() bool {
		return source.calls.Load() >= 1
	}, 3*time.Second, 50*time.Millisecond)
}

func TestPoller_StopIsClean(t *testing.T) {
	poller := NewPoller(&stubSource{})
	require.NoError(t, poller.Start(60))
	poller.Stop()
}
