package interfaces

import (
	"context"

	domaintypes "tripplanner/internal/domain/types"
)

// TextGenerator is how we talk to the hosted text-generation endpoint. It
// returns the generated text or an error wrapping domaintypes.ErrInference.
type TextGenerator interface {
	Generate(ctx context.Context, req domaintypes.GenerationRequest) (string, error)
}
