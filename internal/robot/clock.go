package robot

import (
	"context"
	"sync/atomic"
	"time"
)

// Clock is the time source of the control loop
type Clock interface {
	// NowMs returns the milliseconds elapsed since the clock was created
	NowMs() int64
	// Sleep blocks for d or until ctx is done
	Sleep(ctx context.Context, d time.Duration) error
}

type RealClock struct {
	start time.Time
}

func NewRealClock() *RealClock {
	return &RealClock{start: time.Now()}
}

func (c *RealClock) NowMs() int64 {
	return time.Since(c.start).Milliseconds()
}

func (c *RealClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ManualClock only advances when Sleep is called, which makes
// simulated runs deterministic and as fast as the CPU allows
type ManualClock struct {
	nowMs atomic.Int64
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) NowMs() int64 {
	return c.nowMs.Load()
}

func (c *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.nowMs.Add(d.Milliseconds())
	return nil
}
