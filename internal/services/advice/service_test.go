package advice_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/domain"
	domaintypes "tripplanner/internal/domain/types"
	"tripplanner/internal/services/advice"
)

type fakeGenerator struct {
	mu    sync.Mutex
	reply string
	err   error
	block bool
	delay time.Duration
	calls []domain.GenerationRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	reply, err, block, delay := f.reply, f.err, f.block, f.delay
	f.mu.Unlock()
	time.Sleep(delay)
	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return reply, err
}

func (f *fakeGenerator) requests() []domain.GenerationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.GenerationRequest(nil), f.calls...)
}

func TestTripPromptFormat(t *testing.T) {
	req := advice.TripPrompt(domain.AdviceRequest{
		Destination: "Lisbon",
		TripType:    "Cultural",
		Travelers:   2,
		Interests:   []string{"History", "Museums"},
	})

	want := "<|begin_of_text|>\n" +
		"<|start_header_id|>system<|end_header_id|>\n\n" +
		"You are an expert travel planner AI. Give practical tips, must-visit attractions, " +
		"local food recommendations, transportation advice, and travel hacks.<|eot_id|>\n" +
		"<|start_header_id|>user<|end_header_id|>\n\n" +
		"Destination: Lisbon\nTrip Type: Cultural\nTravelers: 2\nInterests: History, Museums\n\n" +
		"Plan my perfect trip!<|eot_id|>\n" +
		"<|start_header_id|>assistant<|end_header_id|>"
	assert.Equal(t, want, req.Prompt)
	assert.Equal(t, 500, req.MaxNewTokens)
	assert.Equal(t, 0.8, req.Temperature)
	assert.True(t, req.DoSample)
	assert.Nil(t, req.TopP)
	assert.Nil(t, req.RepetitionPenalty)
}

func TestTripPromptDefaultsInterests(t *testing.T) {
	req := advice.TripPrompt(domain.AdviceRequest{Destination: "Rome", TripType: "City"})
	assert.Contains(t, req.Prompt, "Travelers: 1\n")
	assert.Contains(t, req.Prompt, "Interests: History, Food\n")
}

func TestQuestionPrompt(t *testing.T) {
	req := advice.QuestionPrompt("Tokyo", "Best ramen?")
	assert.Equal(t,
		"You are a helpful travel assistant. Answer travel questions concisely with context: "+
			"Destination=Tokyo. Use bullet points when possible.\n\nQ: Best ramen?\nA: ",
		req.Prompt)
	assert.Equal(t, 300, req.MaxNewTokens)
	assert.Equal(t, 0.7, req.Temperature)
	require.NotNil(t, req.TopP)
	require.NotNil(t, req.RepetitionPenalty)
	assert.Equal(t, 0.9, *req.TopP)
	assert.Equal(t, 1.1, *req.RepetitionPenalty)

	blank := advice.QuestionPrompt("  ", "Visa?")
	assert.Contains(t, blank.Prompt, "Destination=your destination.")
}

func TestTripAdviceTrimsResponse(t *testing.T) {
	gen := &fakeGenerator{reply: "\n  - Visit Belem Tower\n"}
	svc := advice.New(gen, time.Second, nil)

	text, err := svc.TripAdvice(context.Background(), domain.AdviceRequest{Destination: "Lisbon", TripType: "Cultural"})
	require.NoError(t, err)
	assert.Equal(t, "- Visit Belem Tower", text)
	assert.Len(t, gen.requests(), 1)
}

func TestValidationWarningsSkipGenerator(t *testing.T) {
	gen := &fakeGenerator{reply: "unused"}
	svc := advice.New(gen, time.Second, nil)

	_, err := svc.TripAdvice(context.Background(), domain.AdviceRequest{Destination: "   "})
	assert.ErrorIs(t, err, domaintypes.ErrEmptyDestination)

	_, err = svc.AnswerQuestion(context.Background(), "Paris", "")
	assert.ErrorIs(t, err, domaintypes.ErrEmptyQuestion)
	assert.True(t, domaintypes.IsWarning(err))

	assert.Empty(t, gen.requests())
}

func TestAnswerQuestionWrapsFailures(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model is loading")}
	svc := advice.New(gen, time.Second, nil)

	text, err := svc.AnswerQuestion(context.Background(), "Paris", "Where to eat?")
	require.Error(t, err)
	assert.Empty(t, text)
	assert.ErrorIs(t, err, domaintypes.ErrInference)
	assert.Contains(t, err.Error(), "model is loading")
}

func TestTaskTimesOut(t *testing.T) {
	gen := &fakeGenerator{block: true}
	svc := advice.New(gen, 20*time.Millisecond, nil)

	task, err := svc.SubmitQuestion(context.Background(), "Oslo", "Fjords?")
	require.NoError(t, err)

	res := task.Wait(context.Background())
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.ErrorIs(t, res.Err, domaintypes.ErrInference)
}

func TestLateAnswerLosesToDeadline(t *testing.T) {
	gen := &fakeGenerator{reply: "too late", delay: 60 * time.Millisecond}
	svc := advice.New(gen, 10*time.Millisecond, nil)

	task, err := svc.SubmitQuestion(context.Background(), "Oslo", "Fjords?")
	require.NoError(t, err)

	res := task.Wait(context.Background())
	assert.Empty(t, res.Text)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.ErrorIs(t, res.Err, domaintypes.ErrInference)
}

func TestTaskCancel(t *testing.T) {
	gen := &fakeGenerator{block: true}
	svc := advice.New(gen, time.Minute, nil)

	task, err := svc.SubmitTripAdvice(context.Background(), domain.AdviceRequest{Destination: "Oslo"})
	require.NoError(t, err)
	task.Cancel()

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not finish after cancel")
	}
	res := task.Wait(context.Background())
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestWaitHonoursCallerContext(t *testing.T) {
	gen := &fakeGenerator{block: true}
	svc := advice.New(gen, time.Minute, nil)

	task, err := svc.SubmitQuestion(context.Background(), "", "Anything?")
	require.NoError(t, err)
	defer task.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	res := task.Wait(ctx)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	require.Eventually(t, func() bool { return len(gen.requests()) == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, strings.HasPrefix(gen.requests()[0].Prompt, "You are a helpful travel assistant."))
}

func TestDefaultTimeout(t *testing.T) {
	svc := advice.New(&fakeGenerator{}, 0, nil)
	assert.Equal(t, advice.DefaultTimeout, svc.Timeout())
}
