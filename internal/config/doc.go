// Package config handles loading and parsing rentdeck configuration files.
//
// # Overview
//
// This package reads rentdeck's TOML configuration to discover the rental
// backend's REST endpoint, the websocket push endpoint, and the background
// refresh cadence.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/rentdeck/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/rentdeck/config.toml
//   - API base: 127.0.0.1:8080
//   - Push URL: derived from the API base (ws(s)://<host>/ws)
//   - Poll interval: 30 seconds
//
// # TOML Format
//
// Example config.toml:
//
//	api_base = "127.0.0.1:8080"
//	push_url = "ws://127.0.0.1:8080/ws"
//	poll_seconds = 30
//
// All fields are optional. Tilde expansion is performed on the config path.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead. This
// allows rentdeck to work out-of-the-box against a backend on localhost.
package config
