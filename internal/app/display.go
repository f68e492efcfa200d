package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/scheduler"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// RankingSource is what the display driver reads on every frame.
type RankingSource interface {
	scheduler.DurationSource
	Ranked() []model.RankedStudent
	Settings() model.Settings
}

// Display runs the presentation scheduler headlessly and publishes the latest
// frame for API clients. The tick loop is the only writer of scheduler state.
type Display struct {
	src      RankingSource
	sched    *scheduler.Scheduler
	interval time.Duration
	frame    atomic.Pointer[scheduler.Frame]

	// mu guards the channels of the current run.
	mu     sync.Mutex
	stopCh chan struct{}
	done   chan struct{}

	logger logger.Logger
}

// NewDisplay creates a display driver ticking every interval.
func NewDisplay(src RankingSource, interval time.Duration) *Display {
	d := &Display{
		src:      src,
		sched:    scheduler.New(src),
		interval: interval,
		logger:   logger.Named("display"),
	}
	f := scheduler.BuildFrame(d.sched.State(), src.Ranked(), src.Settings())
	d.frame.Store(&f)
	metrics.UpdateActiveMode(string(f.Mode), model.ModeNames())
	return d
}

// Start launches the tick loop. It stops when ctx is done or Stop is called,
// and can be started again afterwards.
func (d *Display) Start(ctx context.Context) {
	if d.interval <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done != nil {
		select {
		case <-d.done:
		default:
			return
		}
	}

	stopCh, done := make(chan struct{}), make(chan struct{})
	d.stopCh, d.done = stopCh, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			case now := <-ticker.C:
				d.Tick(now.Sub(last))
				last = now
			}
		}
	}()
	d.logger.Info(ctx, "display driver started", logger.Duration("interval", d.interval))
}

// Stop ends the tick loop and waits for it.
func (d *Display) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done == nil {
		return
	}
	select {
	case <-d.stopCh:
	default:
		close(d.stopCh)
	}
	<-d.done
}

// Tick advances the scheduler by dt and publishes a new frame. It must not be
// called while the loop started by Start is running.
func (d *Display) Tick(dt time.Duration) scheduler.Frame {
	start := time.Now()
	st := d.sched.Advance(dt)
	if st.Transitioned {
		metrics.RecordModeTransition(string(st.Mode), model.ModeNames())
		d.logger.Debug(context.Background(), "display mode changed",
			logger.String("mode", string(st.Mode)),
			logger.Duration("slideDuration", st.Duration),
		)
	}
	f := scheduler.BuildFrame(st, d.src.Ranked(), d.src.Settings())
	d.frame.Store(&f)
	metrics.RecordTickLatency(float64(time.Since(start).Microseconds()) / 1000)
	return f
}

// Frame returns the latest published frame.
func (d *Display) Frame() scheduler.Frame {
	return *d.frame.Load()
}
