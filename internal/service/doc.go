// Package service implements the business rules of GatherHub: account
// registration and login, event lifecycle, listings, and membership.
//
// Services depend on repository interfaces declared in this package, so tests
// substitute in-memory fakes without touching the store. All failures are
// sentinel errors from errors.go; handlers map them to HTTP responses in one
// place.
package service
