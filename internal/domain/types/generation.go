package types

// GenerationRequest is one prompt submitted to the text-generation endpoint.
// TopP and RepetitionPenalty are sent only when set.
type GenerationRequest struct {
	Prompt            string   `json:"prompt"`
	MaxNewTokens      int      `json:"max_new_tokens"`
	Temperature       float64  `json:"temperature"`
	TopP              *float64 `json:"top_p,omitempty"`
	RepetitionPenalty *float64 `json:"repetition_penalty,omitempty"`
	DoSample          bool     `json:"do_sample"`
}

// AdviceRequest is the plan-form context used for trip recommendations.
type AdviceRequest struct {
	Destination string   `json:"destination"`
	TripType    string   `json:"trip_type"`
	Travelers   int      `json:"travelers"`
	Interests   []string `json:"interests"`
}
