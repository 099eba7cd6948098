package client

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-account-service/internal/logger"
)

type sessionJob struct {
	session Session
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSessionJob creates a SessionJob that calls session.Refresh on a ticker.
// The job is idle until Start is called.
func NewSessionJob(session Session, logger *logger.Logger) SessionJob {
	return &sessionJob{session: session, logger: logger}
}

// Start implements SessionJob. It stops any previously running job, then
// launches a background goroutine that refreshes the session every interval.
// If interval is zero or negative it defaults to 5 minutes. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *sessionJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := j.session.Refresh(jobCtx); err != nil {
					j.logger.Warn().Err(err).Msg("background session refresh failed")
				}
			}
		}
	}()
}

// Stop implements SessionJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the job
// is not running (no-op in that case).
func (j *sessionJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
