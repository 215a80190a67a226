// Package app provides the orchestration layer for the rentdeck application.
//
// # Overview
//
// This package wires together configuration, the REST gateway, the query
// cache, the rental store, the push listener and the UI to create the
// complete rentdeck TUI experience. It serves as the composition root where
// all dependencies are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/rentdeck/config.toml
//  2. Load user preferences (theme, default status filter)
//  3. Initialize the HTTP client for the rental backend API
//  4. Assemble the service layer (cache, store, notices)
//  5. Launch the websocket push listener goroutine
//  6. Launch the background poller goroutine
//  7. Start the TUI and block until user exits or context cancels
//
// # Polling Behavior
//
// The poller runs continuously in the background at a configurable interval
// (default: 30 seconds). Each tick pulls the rental and item collections
// through the query cache, so within the staleness window a tick costs
// nothing server-side. Consecutive fetch failures back the cadence off
// exponentially, capped at five minutes, until the backend answers again.
//
// # Push Events
//
// The push listener invalidates the query cache on every rental event, so
// the next poller tick (or UI-triggered fetch) observes fresh data. Events
// are additionally rendered into the notification feed.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file present but invalid
//   - Gateway client initialization failure
//
// Recoverable errors (logged, polling continues):
//   - Periodic fetch failures
//   - Websocket disconnects (the listener redials on its own)
package app
