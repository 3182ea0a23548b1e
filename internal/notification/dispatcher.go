package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"bimbingan_service/internal/logging"
)

// Dispatcher runs notifications as detached tasks. Callers never wait for them
// and never see their outcome; failures end up in the log.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	logger   *logging.Logger
	wg       sync.WaitGroup
}

func NewDispatcher(notifier Notifier, timeout time.Duration, logger *logging.Logger) *Dispatcher {
	return &Dispatcher{notifier: notifier, timeout: timeout, logger: logger}
}

func (d *Dispatcher) Dispatch(ctx context.Context, phone string, kind Kind, args ...string) {
	if phone == "" {
		d.logger.Warn(ctx, "Notification skipped: recipient has no phone number", zap.String("kind", string(kind)))
		return
	}

	d.Go(ctx, func(nctx context.Context) {
		res := d.notifier.Notify(nctx, phone, kind, args...)
		if !res.Success {
			d.logger.Warn(nctx, "Notification failed",
				zap.String("kind", string(kind)),
				zap.String("reason", res.Reason),
			)
			return
		}
		d.logger.Debug(nctx, "Notification queued", zap.String("kind", string(kind)))
	})
}

// Go runs task as a detached notification step bounded by the dispatcher timeout.
// Wait covers it like any dispatched notification.
func (d *Dispatcher) Go(ctx context.Context, task func(ctx context.Context)) {
	// Keeps request-scoped values such as the trace id, drops the request's cancellation.
	detached := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error(detached, "Notification panicked", zap.Any("panic", r))
			}
		}()

		tctx, cancel := context.WithTimeout(detached, d.timeout)
		defer cancel()
		task(tctx)
	}()
}

// Wait blocks until every dispatched notification has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
