// Package ui implements the rentdeck terminal interface with Bubble Tea.
//
// # Overview
//
// The UI is a single Bubble Tea model with three views:
//
//   - Dashboard: headline counters, popular items, recent activity and a
//     twelve-month rental trend chart
//   - Rentals: the filterable, searchable, paginated rental table with
//     return and delete actions
//   - Items: the inventory list with stock badges
//
// # Data Flow
//
// The model never talks to the backend directly. A tick at the poll
// cadence reads the rental collection from the store and the item list
// through the query cache; store mutations (poller refreshes, push events,
// confirmed mutations) additionally inject a message through the store's
// observer so the screen repaints immediately.
//
// Mutations triggered from the rentals view run as commands against the
// service layer, which posts the outcome to the notification feed shown in
// the header.
//
// # Theming
//
// Three built-in themes (Dracula, Nightfox, Slate) cycle with T and
// persist through the prefs package along with the active status filter.
package ui
