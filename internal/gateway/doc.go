// Package gateway provides the HTTP client for the rental backend API.
//
// The backend owns all stock accounting and rental lifecycle transitions;
// this client is a thin, typed wrapper over its REST surface. Each
// operation maps directly to one method and path:
//
//	GET    /api/items                ListItems
//	GET    /api/items/{id}           GetItem
//	POST   /api/items                CreateItem
//	PATCH  /api/items/{id}           UpdateItem
//	DELETE /api/items/{id}           DeleteItem
//	GET    /api/rentals?status=      ListRentals
//	POST   /api/rentals              CreateRental
//	PATCH  /api/rentals/{id}         UpdateRental
//	DELETE /api/rentals/{id}         DeleteRental
//	POST   /api/rentals/{id}/return  ReturnRental
//
// Non-2xx responses surface as *APIError with the server-provided message
// attached, so callers can show the reason for a rejected mutation instead
// of a generic failure. Transport errors are wrapped and returned as-is;
// the caller decides whether to retry.
package gateway
