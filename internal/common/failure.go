package common

import "errors"

// FailureClass tags an upload attempt's outcome so the sync engine can decide
// whether to keep the item queued or evict it.
type FailureClass int

const (
	// Retryable failures leave the item in the queue: the same request may
	// succeed on a later cycle (no connectivity, timeouts, 5xx).
	Retryable FailureClass = iota
	// Permanent failures will never succeed as-is (4xx other than 408/429);
	// the item is evicted from the queue and reported.
	Permanent
)

func (c FailureClass) String() string {
	if c == Permanent {
		return "permanent"
	}
	return "retryable"
}

// ClassifyError maps an upload error to a FailureClass. Anything that is not
// an explicit rejection by the server is treated as retryable.
func ClassifyError(err error) FailureClass {
	if errors.Is(err, ErrorServerRejected) || errors.Is(err, ErrorValidation) || errors.Is(err, ErrorPayloadTooLarge) {
		return Permanent
	}
	return Retryable
}

// ClassifyStatus maps an HTTP response status to a FailureClass. 408 and 429
// are transient by definition; the remaining 4xx range is a rejection of the
// request itself.
func ClassifyStatus(status int) FailureClass {
	if status >= 400 && status < 500 && status != 408 && status != 429 {
		return Permanent
	}
	return Retryable
}
