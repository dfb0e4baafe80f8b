// Package advice builds travel prompts and submits them to a
// domain.TextGenerator.
//
// Two kinds of request exist: trip recommendations built from the plan form
// (destination, trip type, travelers, interests) in the Llama-3 chat format,
// and free-form questions answered with the active trip's destination as
// context. Each call runs as a Task bounded by the service timeout and can be
// cancelled. The service holds no session state; callers copy what they need
// out of a session before asking.
package advice
