// Package handler contains the HTTP layer: request decoding, payload
// validation, and response shaping. Handlers hold no business rules; they
// call services and translate sentinel errors through MapServiceError.
package handler
