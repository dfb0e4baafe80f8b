package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"tripplanner/internal/domain"
)

const (
	// DefaultHuggingFaceURL is the hosted inference API base URL.
	DefaultHuggingFaceURL = "https://api-inference.huggingface.co"
	// DefaultModel is the text-generation model prompts are written for.
	DefaultModel = "meta-llama/Meta-Llama-3-8B"
)

// HTTPClient calls a Hugging Face style text-generation endpoint.
type HTTPClient struct {
	Base  string
	Model string
	Token string
	HTTP  *http.Client
}

// NewHTTP returns an HTTPClient. A nil httpClient selects http.DefaultClient;
// deadlines come from the caller's context.
func NewHTTP(base, model, token string, httpClient *http.Client) *HTTPClient {
	if base == "" {
		base = DefaultHuggingFaceURL
	}
	if model == "" {
		model = DefaultModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{Base: strings.TrimRight(base, "/"), Model: model, Token: token, HTTP: httpClient}
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens      int      `json:"max_new_tokens"`
	Temperature       float64  `json:"temperature"`
	TopP              *float64 `json:"top_p,omitempty"`
	RepetitionPenalty *float64 `json:"repetition_penalty,omitempty"`
	DoSample          bool     `json:"do_sample"`
	ReturnFullText    bool     `json:"return_full_text"`
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

// Generate submits req and returns the trimmed generated text.
func (c *HTTPClient) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	body := generateRequest{
		Inputs: req.Prompt,
		Parameters: generateParameters{
			MaxNewTokens:      req.MaxNewTokens,
			Temperature:       req.Temperature,
			TopP:              req.TopP,
			RepetitionPenalty: req.RepetitionPenalty,
			DoSample:          req.DoSample,
		},
	}
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return "", wrap("encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/models/"+c.Model, buf)
	if err != nil {
		return "", wrap("build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", wrap("post "+c.Model, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", wrap("read response", err)
	}
	if resp.StatusCode/100 != 2 {
		return "", parseAPIError(resp.StatusCode, data)
	}

	text, err := decodeGeneration(data)
	if err != nil {
		return "", wrap("decode response", err)
	}
	return text, nil
}

// decodeGeneration accepts both the list and the single-object response forms.
func decodeGeneration(data []byte) (string, error) {
	var list []generation
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) == 0 {
			return "", errors.New("no generations returned")
		}
		return nonEmpty(list[0].GeneratedText)
	}
	var one generation
	if err := json.Unmarshal(data, &one); err != nil {
		return "", err
	}
	return nonEmpty(one.GeneratedText)
}

func nonEmpty(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("model returned an empty text")
	}
	return text, nil
}

func parseAPIError(status int, data []byte) error {
	apiErr := &APIError{StatusCode: status, Message: http.StatusText(status)}
	var payload struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return apiErr
	}
	switch v := payload.Error.(type) {
	case string:
		apiErr.Message = v
	case map[string]any:
		if msg, ok := v["message"].(string); ok && msg != "" {
			apiErr.Message = msg
		}
	}
	return apiErr
}

var _ domain.TextGenerator = (*HTTPClient)(nil)
