package inference

import (
	"fmt"

	domaintypes "tripplanner/internal/domain/types"
)

// APIError is a non-2xx answer from the inference service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("inference api error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("inference api error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap classifies APIError as an external-service failure.
func (e *APIError) Unwrap() error { return domaintypes.ErrInference }

// wrap marks a transport or decoding failure as an inference error while
// keeping the cause (for example context.DeadlineExceeded) reachable.
func wrap(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domaintypes.ErrInference, op, err)
}
