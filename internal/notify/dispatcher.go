package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"docshare/internal/model"
)

// Options tune delivery retries.
type Options struct {
	// MaxAttempts is the total number of tries per recipient; 1 disables retry.
	MaxAttempts     int
	InitialInterval time.Duration
	// Timeout bounds all attempts for one recipient.
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 1
	}
	if o.InitialInterval <= 0 {
		o.InitialInterval = 200 * time.Millisecond
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return o
}

// Dispatcher fans share notifications out to a Notifier on background goroutines.
// Failures are retried, logged and counted; they never reach the caller.
type Dispatcher struct {
	notifier Notifier
	log      *zap.Logger
	opts     Options
	results  *prometheus.CounterVec
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher and registers its metrics on reg.
func NewDispatcher(n Notifier, log *zap.Logger, reg prometheus.Registerer, opts Options) (*Dispatcher, error) {
	d := &Dispatcher{
		notifier: n,
		log:      log.With(zap.String("component", "notify")),
		opts:     opts.withDefaults(),
		results: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docshare_notifications_total",
				Help: "Share notifications by delivery result.",
			},
			[]string{"result"},
		),
	}
	if err := reg.Register(d.results); err != nil {
		return nil, fmt.Errorf("register notification metrics: %w", err)
	}
	return d, nil
}

// NotifyShared starts one delivery per recipient and returns without waiting.
// Deliveries outlive ctx's cancellation but keep its values.
func (d *Dispatcher) NotifyShared(ctx context.Context, doc *model.Document, recipients []string, link string, sharedBy model.Identity) {
	base := context.WithoutCancel(ctx)
	now := time.Now().UTC()
	for _, rc := range recipients {
		n := Notification{
			Recipient:  rc,
			Link:       link,
			DocumentID: doc.ID,
			FileName:   doc.FileName,
			SharedBy:   sharedBy.DisplayName(),
			SharedAt:   now,
		}
		d.wg.Add(1)
		go d.deliver(base, n)
	}
}

// Wait blocks until in-flight deliveries finish or ctx is done.
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

func (d *Dispatcher) deliver(ctx context.Context, n Notification) {
	defer d.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			d.results.WithLabelValues("failed").Inc()
			d.log.Error("notification_panic",
				zap.Any("panic", r),
				zap.String("recipient", n.Recipient),
				zap.String("document_id", n.DocumentID),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, d.opts.Timeout)
	defer cancel()

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = d.opts.InitialInterval

	attempts := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempts++
		return struct{}{}, d.notifier.Send(ctx, n)
	},
		backoff.WithBackOff(eb),
		backoff.WithMaxTries(uint(d.opts.MaxAttempts)),
	)
	if err != nil {
		d.results.WithLabelValues("failed").Inc()
		d.log.Warn("notification_failed",
			zap.String("recipient", n.Recipient),
			zap.String("document_id", n.DocumentID),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
		return
	}

	d.results.WithLabelValues("sent").Inc()
	d.log.Debug("notification_sent",
		zap.String("recipient", n.Recipient),
		zap.String("document_id", n.DocumentID),
		zap.Int("attempts", attempts),
	)
}
