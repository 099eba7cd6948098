// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/models"
)

// spySession counts Refresh calls and lets tests inject a failure.
type spySession struct {
	refreshes atomic.Int64
	err       error
}

func (s *spySession) Login(_ context.Context, _ models.LoginRequest) (models.User, error) {
	return models.User{}, nil
}

func (s *spySession) Logout() {}

func (s *spySession) CurrentUser(_ context.Context) (models.User, error) {
	return models.User{}, nil
}

func (s *spySession) Refresh(_ context.Context) (models.User, error) {
	s.refreshes.Add(1)
	return models.User{}, s.err
}

func (s *spySession) Invalidate() {}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestSessionJob_Start_RefreshesPeriodically(t *testing.T) {
	spy := &spySession{}
	job := NewSessionJob(spy, logger.Nop())
	ctx := context.Background()

	// 10ms interval — expect a handful of ticks over 55ms
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.refreshes.Load()
	assert.GreaterOrEqual(t, got, int64(3), "Refresh should fire on every tick, got %d calls", got)
}

func TestSessionJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spySession{}
	job := NewSessionJob(spy, logger.Nop())
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.refreshes.Load()
	time.Sleep(30 * time.Millisecond)
	callsLater := spy.refreshes.Load()

	assert.Equal(t, callsAfterStop, callsLater, "no refreshes may happen after Stop")
}

func TestSessionJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewSessionJob(&spySession{}, logger.Nop())

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSessionJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewSessionJob(&spySession{}, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSessionJob_Start_DefaultInterval(t *testing.T) {
	spy := &spySession{}
	job := NewSessionJob(spy, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	// interval <= 0 falls back to 5 minutes, so nothing fires within 20ms
	job.Start(ctx, 0)
	time.Sleep(20 * time.Millisecond)
	cancel()
	job.Stop()

	assert.Equal(t, int64(0), spy.refreshes.Load())
}

func TestSessionJob_Restart_StopsPrevious(t *testing.T) {
	spy := &spySession{}
	job := NewSessionJob(spy, logger.Nop())
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	callsBefore := spy.refreshes.Load()
	assert.Greater(t, callsBefore, int64(0))

	// a second Start stops the first goroutine and keeps ticking
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.refreshes.Load(), callsBefore)
}

func TestSessionJob_ContextCancel_StopsJob(t *testing.T) {
	spy := &spySession{}
	job := NewSessionJob(spy, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop hung after context cancellation")
	}
}

func TestSessionJob_RefreshError_DoesNotStopJob(t *testing.T) {
	spy := &spySession{err: assert.AnError}
	job := NewSessionJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.refreshes.Load()
	assert.GreaterOrEqual(t, got, int64(3), "refresh keeps running despite errors, got %d calls", got)
}
