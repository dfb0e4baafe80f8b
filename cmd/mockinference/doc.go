// Package main runs an in-memory text-generation endpoint for local
// development of tripplanner. Point inference.base_url at it and any token
// will do.
//
// HTTP API
//
//	POST /models/{model}
//	    Hugging Face text-generation request. Answers
//	    [{"generated_text": "..."}] with the configured reply.
//
//	POST /v1/completions
//	    OpenAI-compatible completion request with the same reply.
//
// Behaviour
//
//   - Requests are recorded in memory and logged.
//   - --fail makes every call answer that status, to exercise error paths.
//   - --delay stalls every answer, to exercise timeouts.
//   - The default listen address is :8090.
package main
