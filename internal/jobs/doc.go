// Package jobs implements background job processing for the Overlay API.
//
// The jobs package contains scheduled tasks that run independently of HTTP
// request handling.
//
// # Job Types
//
// Available background jobs:
//
//   - AlertWatcher: Periodic scan for events entering the alert window
//
// # Lifecycle
//
// Jobs expose Start and Stop for graceful lifecycle management:
//
//	watcher := jobs.NewAlertWatcher(eventService, cfg.Alerts.CheckInterval)
//	watcher.Start()
//	defer watcher.Stop()
//
// # Error Handling
//
// Jobs log errors but don't crash the application. A failed scan is retried
// on the next tick.
package jobs
