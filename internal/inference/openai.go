package inference

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"tripplanner/internal/domain"
)

// OpenAIClient sends prompts to an OpenAI-compatible completions endpoint.
// The repetition penalty has no equivalent there and is not sent.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAI returns an OpenAIClient. base must include the API version path,
// e.g. https://api.openai.com/v1/; empty selects the SDK default.
func NewOpenAI(base, model, token string, httpClient *http.Client) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(token),
		option.WithMaxRetries(0),
	}
	if base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &OpenAIClient{client: openai.NewClient(opts...), model: model}
}

// Generate submits req as a single-prompt completion.
func (c *OpenAIClient) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	params := openai.CompletionNewParams{
		Model:       openai.CompletionNewParamsModel(c.model),
		Prompt:      openai.CompletionNewParamsPromptUnion{OfString: openai.String(req.Prompt)},
		MaxTokens:   openai.Int(int64(req.MaxNewTokens)),
		Temperature: openai.Float(req.Temperature),
	}
	if req.TopP != nil {
		params.TopP = openai.Float(*req.TopP)
	}

	resp, err := c.client.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &APIError{StatusCode: apiErr.StatusCode, Message: apiErr.Message}
		}
		return "", wrap("completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", wrap("completion", errors.New("no choices returned"))
	}
	text, err := nonEmpty(resp.Choices[0].Text)
	if err != nil {
		return "", wrap("completion", err)
	}
	return text, nil
}

var _ domain.TextGenerator = (*OpenAIClient)(nil)
