// Package cache is the query cache between the UI and the rental backend.
//
// Keys combine an entity kind with an optional filter (for example all
// rentals vs. rentals narrowed to one status). A fetched list stays fresh
// for five minutes; every successful mutation invalidates both the rentals
// and items prefixes because the backend adjusts item stock as a side
// effect of rental changes — the two collections are never independent.
package cache
