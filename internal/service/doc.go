// Package service is the workflow layer between the UI and the backend:
// cached queries, mutations with cache invalidation and store patching,
// and the user-visible notification feed.
package service
