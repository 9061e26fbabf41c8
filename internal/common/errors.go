// Package common defines shared constants and sentinel errors used across
// the client and server layers of paperdrop. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Intake errors.
	ErrorValidation      = errors.New("validation failure")
	ErrorPayloadTooLarge = errors.New("payload too large")
	ErrorStorage         = errors.New("storage failure")

	// Client-side transport errors.
	ErrorServerUnreachable = errors.New("server unreachable")
	ErrorServerRejected    = errors.New("server rejected request")
)
