package sink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-fireform/internal/observability"
	"github.com/goliatone/go-fireform/pkg/observation"
)

const defaultTimeout = 5 * time.Second

// Pinger is implemented by sinks that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dispatcher fans accepted observations out to sinks in the background.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics

	mu       sync.Mutex
	closed   bool
	inFlight atomic.Int64
	wg       sync.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithTimeout bounds every sink publish.
func WithTimeout(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(disp *Dispatcher) {
		if logger != nil {
			disp.logger = logger
		}
	}
}

func WithMetrics(m *observability.Metrics) DispatcherOption {
	return func(disp *Dispatcher) {
		disp.metrics = m
	}
}

// NewDispatcher creates a dispatcher over sinks. Nil sinks are skipped.
func NewDispatcher(sinks []Sink, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, s := range sinks {
		if s != nil {
			d.sinks = append(d.sinks, s)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Submit matches form.SubmitFunc. It returns as soon as the envelope is
// queued; delivery happens on a separate goroutine.
func (d *Dispatcher) Submit(rec observation.Observation) {
	d.Dispatch(rec)
}

// Dispatch stamps rec and starts delivering it, returning the envelope.
// After Close it logs and drops the record.
func (d *Dispatcher) Dispatch(rec observation.Observation) Envelope {
	env := NewEnvelope(rec)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("dispatcher closed, dropping observation", "id", env.ID)
		return env
	}
	d.inFlight.Add(1)
	d.wg.Add(1)
	d.mu.Unlock()

	if d.metrics != nil {
		d.metrics.SubmissionsAccepted.Inc()
		d.metrics.PublishesInFlight.Inc()
	}
	go func() {
		defer d.wg.Done()
		defer func() {
			d.inFlight.Add(-1)
			if d.metrics != nil {
				d.metrics.PublishesInFlight.Dec()
			}
		}()
		d.publish(env)
	}()
	return env
}

// Busy reports whether any envelope is still being delivered.
func (d *Dispatcher) Busy() bool {
	return d.inFlight.Load() > 0
}

// Reject counts a submission refused before it reached Submit.
func (d *Dispatcher) Reject(reason string) {
	if d.metrics != nil {
		d.metrics.SubmissionsRejected.WithLabelValues(reason).Inc()
	}
}

// Wait blocks until every pending delivery finishes or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting records, drains pending deliveries within ctx and
// closes every sink. When ctx ends first, the sinks are closed only after the
// remaining deliveries finish; each is bounded by the publish timeout.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	if err := d.Wait(ctx); err != nil {
		d.logger.Warn("sink drain cut off, closing sinks after pending deliveries",
			"in_flight", d.inFlight.Load(), "error", err)
		go func() {
			d.wg.Wait()
			if err := d.closeSinks(); err != nil {
				d.logger.Error("sink close failed", "error", err)
			}
		}()
		return fmt.Errorf("sink: drain: %w", err)
	}
	return d.closeSinks()
}

func (d *Dispatcher) closeSinks() error {
	var errs []error
	for _, s := range d.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("sink: close %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// CheckReadiness pings every sink that supports it.
func (d *Dispatcher) CheckReadiness(ctx context.Context) error {
	for _, s := range d.sinks {
		p, ok := s.(Pinger)
		if !ok {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.Name(), err)
		}
	}
	return nil
}

func (d *Dispatcher) publish(env Envelope) {
	var wg sync.WaitGroup
	for _, s := range d.sinks {
		wg.Add(1)
		go func(s Sink) {
			defer wg.Done()
			d.publishOne(s, env)
		}(s)
	}
	wg.Wait()
}

func (d *Dispatcher) publishOne(s Sink, env Envelope) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := clock.Now()
	err := s.Publish(ctx, env)
	elapsed := clock.Since(start)

	outcome := "success"
	if err != nil {
		outcome = "error"
		d.logger.Error("sink publish failed", "sink", s.Name(), "id", env.ID, "error", err)
	} else {
		d.logger.Debug("sink publish", "sink", s.Name(), "id", env.ID, "duration", elapsed)
	}
	if d.metrics != nil {
		d.metrics.SinkPublishes.WithLabelValues(s.Name(), outcome).Inc()
		d.metrics.SinkPublishDuration.WithLabelValues(s.Name()).Observe(elapsed.Seconds())
	}
}
