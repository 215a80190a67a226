// Package store holds the synchronized rental collection shared by the
// poller, the mutation layer and the UI.
//
// The collection is replaced wholesale on every successful list fetch and
// patched incrementally when the backend confirms a create, update, delete
// or return. Every mutation bumps LastUpdate and then invokes the observer
// registry in registration order on the mutating goroutine, so an observer
// registered before the mutation always sees the post-mutation state.
//
// Known limitation: two mutations in flight at once race here. The store
// applies whichever server response lands last, which matches the network
// arrival order rather than the order the user issued the actions. There
// is no request sequencing on the backend to lean on, so this is
// documented rather than papered over.
package store
