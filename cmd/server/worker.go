package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bimbingan_service/internal/logging"
)

type Reminder interface {
	RemindStalePending(ctx context.Context, olderThan time.Duration) (int, error)
}

// ReminderWorker periodically nudges advisors about submissions left unreviewed.
type ReminderWorker struct {
	reminder   Reminder
	logger     *logging.Logger
	interval   time.Duration
	staleAfter time.Duration
}

func NewReminderWorker(reminder Reminder, logger *logging.Logger, interval, staleAfter time.Duration) *ReminderWorker {
	return &ReminderWorker{
		reminder:   reminder,
		logger:     logger,
		interval:   interval,
		staleAfter: staleAfter,
	}
}

// Run starts the worker in the background. The returned channel is closed once the
// worker has stopped and no reminder run is left in flight.
func (w *ReminderWorker) Run(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Start(ctx)
	}()
	return done
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Reminder worker stopped")
			return
		case <-ticker.C:
			w.processReminders(ctx)
		}
	}
}

func (w *ReminderWorker) processReminders(ctx context.Context) {
	sent, err := w.reminder.RemindStalePending(ctx, w.staleAfter)
	if err != nil {
		w.logger.Error(ctx, "Failed to send pending reminders", zap.Error(err))
		return
	}
	if sent > 0 {
		w.logger.Info(ctx, "Pending reminders dispatched", zap.Int("count", sent))
	}
}
