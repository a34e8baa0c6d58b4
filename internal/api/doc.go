// Package api provides the HTTP handlers and error mapping for the
// flashcard API. Handlers decode and validate requests, delegate to the
// service layer, and translate service errors into sanitized JSON
// responses with stable error codes.
package api
