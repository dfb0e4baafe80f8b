package advice

import (
	"fmt"
	"strings"

	"tripplanner/internal/domain"
)

// TripTypes are the trip styles offered on the plan form.
var TripTypes = []string{"Adventure", "Relaxation", "Cultural", "Beach", "Mountain", "City", "Food Tour"}

// Interests are the interest choices offered on the plan form.
var Interests = []string{"History", "Food", "Nature", "Adventure", "Shopping", "Nightlife", "Museums", "Beaches"}

// DefaultInterests are preselected when the caller gives none.
var DefaultInterests = []string{"History", "Food"}

const (
	plannerSystemPrompt = "You are an expert travel planner AI. " +
		"Give practical tips, must-visit attractions, local food recommendations, transportation advice, and travel hacks."
	assistantSystemPrompt = "You are a helpful travel assistant. " +
		"Answer travel questions concisely with context: Destination=%s. Use bullet points when possible."
	unknownDestination = "your destination"
)

// TripPrompt returns the generation request for trip recommendations.
func TripPrompt(req domain.AdviceRequest) domain.GenerationRequest {
	interests := req.Interests
	if len(interests) == 0 {
		interests = DefaultInterests
	}
	travelers := max(req.Travelers, 1)

	userContext := fmt.Sprintf("Destination: %s\nTrip Type: %s\nTravelers: %d\nInterests: %s",
		req.Destination, req.TripType, travelers, strings.Join(interests, ", "))

	var b strings.Builder
	b.WriteString("<|begin_of_text|>\n")
	b.WriteString("<|start_header_id|>system<|end_header_id|>\n\n")
	b.WriteString(plannerSystemPrompt)
	b.WriteString("<|eot_id|>\n")
	b.WriteString("<|start_header_id|>user<|end_header_id|>\n\n")
	b.WriteString(userContext)
	b.WriteString("\n\nPlan my perfect trip!<|eot_id|>\n")
	b.WriteString("<|start_header_id|>assistant<|end_header_id|>")

	return domain.GenerationRequest{
		Prompt:       b.String(),
		MaxNewTokens: 500,
		Temperature:  0.8,
		DoSample:     true,
	}
}

// QuestionPrompt returns the generation request for a free-form question.
// An empty destination is phrased as "your destination".
func QuestionPrompt(destination, question string) domain.GenerationRequest {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		destination = unknownDestination
	}
	topP, penalty := 0.9, 1.1
	return domain.GenerationRequest{
		Prompt:            fmt.Sprintf(assistantSystemPrompt, destination) + "\n\nQ: " + question + "\nA: ",
		MaxNewTokens:      300,
		Temperature:       0.7,
		TopP:              &topP,
		RepetitionPenalty: &penalty,
	}
}
