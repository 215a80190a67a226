// Package push listens to the backend's websocket event channel.
//
// The channel carries discrete JSON frames of the form {type, data}. Only
// RENTAL_CREATED and RENTAL_RETURNED matter to this client; both mean some
// other actor changed rentals (and therefore item stock) behind our back,
// so the listener invalidates both query-cache prefixes and surfaces a
// notification naming the item and renter involved.
//
// The connection is best-effort: any failure schedules a single redial
// after a fixed five second delay. The delay and the dialer are injectable
// so tests drive the state machine on virtual time.
package push
