package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"FinDash/internal/domain/models"
	drepo "FinDash/internal/domain/repository"
	"FinDash/internal/service/report"
	applogger "FinDash/pkg/logger"
)

var (
	ErrAlreadyStarted = errors.New("dashboard already started")
)

// Options controls dashboard timing.
type Options struct {
	RefreshInterval time.Duration // countdown cycle
	APIInterval     time.Duration // fixed fetch cadence
	RequestTimeout  time.Duration // zero means no per-fetch timeout
	DiscardStale    bool          // drop completions older than the newest applied one
}

type event int

const (
	evRefresh event = iota
	evTick
)

type fetchResult struct {
	seq  uint64
	snap *models.Snapshot
	err  error
	took time.Duration
}

// Dashboard keeps the report and countdown regions up to date.
//
// All state transitions happen on one loop goroutine. Timers and fetches only
// send events to it, so fetch completions interleave in arrival order and the
// last one to arrive owns the report region.
type Dashboard struct {
	source    drepo.SnapshotSource
	formatter *report.Formatter
	display   drepo.Display
	sched     Scheduler
	metrics   drepo.DashboardMetrics
	logger    *applogger.Logger
	opts      Options

	events  chan event
	results chan fetchResult

	// owned by the loop goroutine
	countdown *Countdown
	seq       uint64
	applied   uint64

	mu        sync.RWMutex
	snapshot  *models.Snapshot
	remaining int

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	ctx       context.Context
	cancel    context.CancelFunc
	loopDone  chan struct{}
	inflight  sync.WaitGroup
}

// NewDashboard wires a dashboard. Nothing runs until Start.
func NewDashboard(
	source drepo.SnapshotSource,
	formatter *report.Formatter,
	display drepo.Display,
	sched Scheduler,
	metrics drepo.DashboardMetrics,
	logger *applogger.Logger,
	opts Options,
) *Dashboard {
	if opts.RefreshInterval < time.Second {
		opts.RefreshInterval = 60 * time.Second
	}
	if opts.APIInterval <= 0 {
		opts.APIInterval = 15 * time.Second
	}
	cd := NewCountdown(int(opts.RefreshInterval / time.Second))
	return &Dashboard{
		source:    source,
		formatter: formatter,
		display:   display,
		sched:     sched,
		metrics:   metrics,
		logger:    logger,
		opts:      opts,
		events:    make(chan event, 16),
		results:   make(chan fetchResult, 16),
		countdown: cd,
		remaining: cd.Remaining(),
		loopDone:  make(chan struct{}),
	}
}

// Start fetches once immediately, then keeps fetching every APIInterval and
// ticking the countdown every second until Stop or ctx is cancelled.
func (d *Dashboard) Start(ctx context.Context) error {
	err := ErrAlreadyStarted
	d.startOnce.Do(func() {
		err = d.start(ctx)
	})
	return err
}

func (d *Dashboard) start(ctx context.Context) error {
	d.ctx, d.cancel = context.WithCancel(ctx)

	if err := d.sched.Every(d.opts.APIInterval, d.Refresh); err != nil {
		d.cancel()
		return err
	}
	if err := d.sched.Every(time.Second, func() { d.post(evTick) }); err != nil {
		d.cancel()
		return err
	}

	d.mu.Lock()
	d.started = true
	d.mu.Unlock()

	go d.loop()
	d.Refresh()
	d.sched.Start()

	d.logger.Info("dashboard started",
		applogger.Duration("api_interval_ms", d.opts.APIInterval),
		applogger.Duration("refresh_interval_ms", d.opts.RefreshInterval),
		applogger.Bool("discard_stale", d.opts.DiscardStale),
	)
	return nil
}

// Stop halts the timers, cancels in-flight fetches and waits for everything to return.
func (d *Dashboard) Stop() {
	d.stopOnce.Do(func() {
		d.mu.RLock()
		started := d.started
		d.mu.RUnlock()
		if !started {
			return
		}
		d.cancel()
		d.sched.Stop()
		<-d.loopDone
		d.inflight.Wait()
		d.logger.Info("dashboard stopped")
	})
}

// Refresh requests one fetch cycle. It never blocks on the network.
func (d *Dashboard) Refresh() { d.post(evRefresh) }

// Snapshot returns the last successfully fetched snapshot, or nil.
func (d *Dashboard) Snapshot() *models.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// Remaining is the value the next countdown tick will show.
func (d *Dashboard) Remaining() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.remaining
}

func (d *Dashboard) post(ev event) {
	if d.ctx == nil {
		return
	}
	select {
	case d.events <- ev:
	case <-d.ctx.Done():
	}
}

func (d *Dashboard) loop() {
	defer close(d.loopDone)
	for {
		select {
		case <-d.ctx.Done():
			return
		case ev := <-d.events:
			switch ev {
			case evRefresh:
				d.dispatch()
			case evTick:
				d.tick()
			}
		case res := <-d.results:
			d.apply(res)
		}
	}
}

func (d *Dashboard) dispatch() {
	d.seq++
	seq := d.seq
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		ctx := d.ctx
		if d.opts.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.opts.RequestTimeout)
			defer cancel()
		}
		start := time.Now()
		snap, err := d.source.Fetch(ctx)
		res := fetchResult{seq: seq, snap: snap, err: err, took: time.Since(start)}
		select {
		case d.results <- res:
		case <-d.ctx.Done():
		}
	}()
}

func (d *Dashboard) apply(res fetchResult) {
	if d.opts.DiscardStale {
		if res.seq < d.applied {
			d.metrics.RecordStale()
			d.logger.Debug("stale fetch discarded", applogger.Uint64("seq", res.seq), applogger.Uint64("applied", d.applied))
			return
		}
		d.applied = res.seq
	}

	if res.err != nil || res.snap == nil {
		d.metrics.RecordFetch("error", res.took)
		d.logger.Debug("fetch failed", applogger.Uint64("seq", res.seq), applogger.Error(res.err))
		d.display.Render(models.RegionReport, report.ErrorText)
		return
	}

	d.metrics.RecordFetch("ok", res.took)
	d.mu.Lock()
	d.snapshot = res.snap
	d.mu.Unlock()
	d.display.Render(models.RegionReport, d.formatter.Format(res.snap))
}

func (d *Dashboard) tick() {
	shown := d.countdown.Remaining()
	label, fire := d.countdown.Tick()

	d.mu.Lock()
	d.remaining = d.countdown.Remaining()
	d.mu.Unlock()

	d.metrics.RecordTick(shown)
	d.display.Render(models.RegionCountdown, label)
	if fire {
		d.dispatch()
	}
}
