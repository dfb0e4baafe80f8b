package advice

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"tripplanner/internal/domain"
	domaintypes "tripplanner/internal/domain/types"
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 60 * time.Second

// Service submits travel prompts to a text generator.
type Service struct {
	gen     domain.TextGenerator
	timeout time.Duration
	logger  *slog.Logger
}

// New constructs an advice Service. A non-positive timeout selects
// DefaultTimeout.
func New(gen domain.TextGenerator, timeout time.Duration, logger *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gen: gen, timeout: timeout, logger: logger.With("component", "advice")}
}

// Timeout reports the per-request bound.
func (s *Service) Timeout() time.Duration { return s.timeout }

// SubmitTripAdvice validates req and starts a recommendation request.
func (s *Service) SubmitTripAdvice(ctx context.Context, req domain.AdviceRequest) (*Task, error) {
	if strings.TrimSpace(req.Destination) == "" {
		return nil, domaintypes.ErrEmptyDestination
	}
	return s.submit(ctx, "recommendations", TripPrompt(req)), nil
}

// SubmitQuestion validates question and starts a question request.
func (s *Service) SubmitQuestion(ctx context.Context, destination, question string) (*Task, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domaintypes.ErrEmptyQuestion
	}
	return s.submit(ctx, "question", QuestionPrompt(destination, question)), nil
}

// TripAdvice asks for recommendations and waits for the answer.
func (s *Service) TripAdvice(ctx context.Context, req domain.AdviceRequest) (string, error) {
	task, err := s.SubmitTripAdvice(ctx, req)
	if err != nil {
		return "", err
	}
	res := task.Wait(ctx)
	return res.Text, res.Err
}

// AnswerQuestion asks a free-form question and waits for the answer.
func (s *Service) AnswerQuestion(ctx context.Context, destination, question string) (string, error) {
	task, err := s.SubmitQuestion(ctx, destination, question)
	if err != nil {
		return "", err
	}
	res := task.Wait(ctx)
	return res.Text, res.Err
}

func (s *Service) submit(parent context.Context, kind string, req domain.GenerationRequest) *Task {
	ctx, cancel := context.WithTimeout(parent, s.timeout)
	t := &Task{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer cancel()
		start := time.Now()
		text, err := s.gen.Generate(ctx, req)
		text = strings.TrimSpace(text)
		if err != nil {
			s.logger.Warn("generation failed", "kind", kind, "error", err, "elapsed", time.Since(start))
		} else {
			s.logger.Debug("generation done", "kind", kind, "chars", len(text), "elapsed", time.Since(start))
		}
		t.finish(ctx, text, err)
	}()
	return t
}

var _ domain.AdviceService = (*Service)(nil)
