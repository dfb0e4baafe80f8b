// Package inference provides implementations of domain.TextGenerator used by
// the advice service.
//
// HTTPClient speaks the Hugging Face text-generation protocol: a prompt and
// generation parameters are POSTed to {base}/models/{model} with a bearer
// token, and the first generated_text of the response is returned.
// OpenAIClient sends the same request to an OpenAI-compatible completions
// endpoint.
//
// Neither client retries. Every failure wraps types.ErrInference; non-2xx
// statuses are reported as *APIError carrying the status code and the
// service's error message.
package inference
