package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/obsidianempire/overlay/api/internal/service"
)

// AlertWatcher periodically scans for events entering the alert window and
// logs them so the overlay can surface upcoming activities.
type AlertWatcher struct {
	eventService *service.EventService
	interval     time.Duration
	stopCh       chan struct{}
	wg           sync.WaitGroup
	running      bool
	mu           sync.Mutex

	// seen tracks event IDs already announced this window
	seen map[string]time.Time
}

// NewAlertWatcher creates a new alert watcher job
func NewAlertWatcher(eventService *service.EventService, interval time.Duration) *AlertWatcher {
	if interval == 0 {
		interval = 1 * time.Minute
	}
	return &AlertWatcher{
		eventService: eventService,
		interval:     interval,
		stopCh:       make(chan struct{}),
		seen:         make(map[string]time.Time),
	}
}

// Start begins the alert watcher job
func (w *AlertWatcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run()
	slog.Info("alert watcher started", slog.Duration("interval", w.interval))
}

// Stop gracefully stops the alert watcher job
func (w *AlertWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	w.wg.Wait()
	slog.Info("alert watcher stopped")
}

func (w *AlertWatcher) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.scan()
		case <-w.stopCh:
			return
		}
	}
}

func (w *AlertWatcher) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := w.RunOnce(ctx); err != nil {
		slog.Error("alert scan failed", slog.Any("error", err))
	}
}

// RunOnce scans for upcoming events once (for testing or manual trigger)
func (w *AlertWatcher) RunOnce(ctx context.Context) error {
	now := time.Now().UTC()
	events, err := w.eventService.UpcomingAlerts(ctx, now)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// Drop bookkeeping for events whose start has passed
	for id, startAt := range w.seen {
		if startAt.Before(now) {
			delete(w.seen, id)
		}
	}

	for _, event := range events {
		if _, announced := w.seen[event.ID]; announced {
			continue
		}
		w.seen[event.ID] = event.StartAt
		slog.Info("event entering alert window",
			slog.String("event_id", event.ID),
			slog.String("title", event.Title),
			slog.Time("start_at", event.StartAt),
			slog.Duration("starts_in", event.StartAt.Sub(now)),
		)
	}

	return nil
}

// IsRunning returns whether the watcher is running
func (w *AlertWatcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
