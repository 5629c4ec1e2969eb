// Package jwt issues and verifies the self-contained session tokens used by
// the GatherHub API. Tokens are HMAC-signed (HS256) with a fixed validity
// window measured from issuance; verification is pure and requires no store
// round-trip. There is no revocation: a token stays valid until its expiry.
package jwt
