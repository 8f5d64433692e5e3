package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/config"
)

// Default refresh cadence when the configuration leaves an interval unset.
const (
	DefaultFeedInterval   = 5 * time.Second
	DefaultStatusInterval = 15 * time.Second
)

// Poller drives the feed manager on fixed intervals: the anomaly and custom
// anomaly feeds on the feed interval, the status card on its own slower one.
// It is lifecycle-bound: Stop (or context cancellation) tears the timers down
// so no refresh can fire into a dismantled gateway.
type Poller struct {
	feed           *FeedManager
	feedInterval   time.Duration
	statusInterval time.Duration

	started   atomic.Bool
	startOnce sync.Once
	stopOnce  sync.Once
	quit      chan struct{}
	done      chan struct{}
}

// NewPoller creates a poller for the given feed manager
func NewPoller(feed *FeedManager, cfg config.PollConfig) *Poller {
	feedInterval := cfg.FeedInterval
	if feedInterval <= 0 {
		feedInterval = DefaultFeedInterval
	}
	statusInterval := cfg.StatusInterval
	if statusInterval <= 0 {
		statusInterval = DefaultStatusInterval
	}
	return &Poller{
		feed:           feed,
		feedInterval:   feedInterval,
		statusInterval: statusInterval,
		quit:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// Start launches the refresh loop. The first full refresh runs before the
// tickers begin so a freshly booted gateway has data to serve. Subsequent
// calls are no-ops.
func (p *Poller) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		p.started.Store(true)
		logrus.Infof("Starting poller: feed every %s, status every %s", p.feedInterval, p.statusInterval)
		go p.run(ctx)
	})
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	p.feed.RefreshAll(ctx)

	feedTicker := time.NewTicker(p.feedInterval)
	defer feedTicker.Stop()
	statusTicker := time.NewTicker(p.statusInterval)
	defer statusTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Poller context cancelled, stopping refresh loop")
			return
		case <-p.quit:
			return
		case <-feedTicker.C:
			p.feed.RefreshAnomalySnapshot(ctx)
			p.feed.RefreshCustomAnomalies(ctx)
		case <-statusTicker.C:
			p.feed.RefreshSystemStatus(ctx)
		}
	}
}

// Stop cancels the timers and waits for the refresh loop to exit. Safe to
// call multiple times and before Start.
func (p *Poller) Stop() {
	if !p.started.Load() {
		return
	}
	p.stopOnce.Do(func() {
		close(p.quit)
	})
	<-p.done
	logrus.Info("Poller stopped")
}
