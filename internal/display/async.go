package display

import (
	"context"
	"sync"

	"FinDash/internal/domain/models"
	drepo "FinDash/internal/domain/repository"
	applogger "FinDash/pkg/logger"
)

// Sink delivers a region write somewhere that may block or fail (network).
type Sink interface {
	Deliver(ctx context.Context, region models.Region, text string) error
}

// Async puts a buffer between the dashboard loop and a Sink. Writes are
// dropped when the buffer is full.
type Async struct {
	name    string
	sink    Sink
	metrics drepo.DashboardMetrics
	logger  *applogger.Logger

	buf    chan models.RegionUpdate
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewAsync starts the delivery worker.
func NewAsync(name string, sink Sink, bufSize int, metrics drepo.DashboardMetrics, logger *applogger.Logger) *Async {
	if bufSize < 1 {
		bufSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &Async{
		name:    name,
		sink:    sink,
		metrics: metrics,
		logger:  logger,
		buf:     make(chan models.RegionUpdate, bufSize),
		ctx:     ctx,
		cancel:  cancel,
	}
	a.wg.Add(1)
	go a.run()
	return a
}

// Name is the sink label used in metrics and logs.
func (a *Async) Name() string { return a.name }

func (a *Async) Render(region models.Region, text string) {
	select {
	case <-a.ctx.Done():
		return
	default:
	}
	select {
	case a.buf <- models.RegionUpdate{Region: region, Text: text}:
	default:
		a.metrics.RecordDisplayDrop(a.name)
	}
}

func (a *Async) run() {
	defer a.wg.Done()
	for {
		select {
		case <-a.ctx.Done():
			return
		case u := <-a.buf:
			if err := a.sink.Deliver(a.ctx, u.Region, u.Text); err != nil {
				a.metrics.RecordDisplayError(a.name)
				a.logger.Warn("display sink delivery failed",
					applogger.String("sink", a.name),
					applogger.String("region", string(u.Region)),
					applogger.Error(err),
				)
			}
		}
	}
}

// Close stops the worker. Buffered writes that were not delivered yet are discarded.
func (a *Async) Close() error {
	a.once.Do(func() {
		a.cancel()
		a.wg.Wait()
	})
	return nil
}
