// Package middleware provides HTTP middleware for the GatherHub API.
//
// The chain applied in main is RequestID, Logger, Recovery, CORS, RateLimit,
// Compress; Auth wraps individual protected routes.
//
// # Authentication
//
// Auth validates bearer session tokens and attaches the acting user id to
// the request context. Handlers read it back through helpers:
//
//	userID := middleware.GetUserID(r.Context())
//
// A missing or malformed Authorization header and a token that fails
// verification are reported as distinct 401 responses.
//
// # Context Values
//
//   - GetUserID(ctx): acting user id set by Auth
//   - GetUserEmail(ctx): email claim set by Auth
//   - GetRequestID(ctx): unique request identifier set by RequestID
package middleware
