// Package derive turns the raw rental and item collections into the
// numbers the dashboard renders: headline counters, stock badges, the
// popularity ranking, the recent activity feed, the 12-month history and
// the filtered, paginated rental list.
//
// Everything here is a pure function of its inputs. Nothing is memoized;
// the collections are small and the UI simply recomputes on every store
// notification. Empty input yields empty output, never an error.
package derive
