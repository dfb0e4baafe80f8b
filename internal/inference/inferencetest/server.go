// Package inferencetest provides an in-memory text-generation server for
// tests and local development.
//
// It answers the Hugging Face protocol on POST /models/{model} and the
// OpenAI completions protocol on POST /v1/completions, records every request
// and can be scripted to fail or to stall.
package inferencetest

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// DefaultReply is returned until Reply is called.
const DefaultReply = "- Walk the old town early in the morning\n- Eat where the locals queue"

// Request is one recorded generation call.
type Request struct {
	Model         string         `json:"model"`
	Authorization string         `json:"authorization"`
	Inputs        string         `json:"inputs"`
	Parameters    map[string]any `json:"parameters"`
}

// Server is a scriptable fake inference endpoint. The zero value is not
// usable; call NewServer.
type Server struct {
	mu          sync.Mutex
	requests    []Request
	reply       string
	failStatus  int
	failMessage string
	delay       time.Duration
	router      *mux.Router
}

// NewServer returns a Server answering DefaultReply.
func NewServer() *Server {
	s := &Server{reply: DefaultReply}
	r := mux.NewRouter()
	r.HandleFunc("/models/{model:.+}", s.handleGenerate).Methods(http.MethodPost)
	r.HandleFunc("/v1/completions", s.handleCompletion).Methods(http.MethodPost)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// Reply sets the text returned by subsequent calls and clears any failure.
func (s *Server) Reply(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reply = text
	s.failStatus = 0
	s.failMessage = ""
}

// FailWith makes subsequent calls answer status with message as the error.
func (s *Server) FailWith(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failMessage = message
}

// Delay stalls every answer by d, or until the client goes away.
func (s *Server) Delay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Requests returns the calls recorded so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// record stores req and returns the scripted outcome.
func (s *Server) record(req Request) (reply string, status int, message string, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return s.reply, s.failStatus, s.failMessage, s.delay
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body struct {
		Inputs     string         `json:"inputs"`
		Parameters map[string]any `json:"parameters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	reply, status, message, delay := s.record(Request{
		Model:         mux.Vars(r)["model"],
		Authorization: r.Header.Get("Authorization"),
		Inputs:        body.Inputs,
		Parameters:    body.Parameters,
	})
	if !wait(r, delay) {
		return
	}
	if status != 0 {
		writeJSON(w, status, map[string]string{"error": message})
		return
	}
	writeJSON(w, http.StatusOK, []map[string]string{{"generated_text": reply}})
}

func (s *Server) handleCompletion(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]string{"message": err.Error()}})
		return
	}

	model, _ := body["model"].(string)
	prompt, _ := body["prompt"].(string)
	params := make(map[string]any, len(body))
	for k, v := range body {
		if k != "model" && k != "prompt" {
			params[k] = v
		}
	}

	reply, status, message, delay := s.record(Request{
		Model:         model,
		Authorization: r.Header.Get("Authorization"),
		Inputs:        prompt,
		Parameters:    params,
	})
	if !wait(r, delay) {
		return
	}
	if status != 0 {
		writeJSON(w, status, map[string]any{"error": map[string]string{
			"message": message,
			"type":    "server_error",
		}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":      "cmpl-" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		"object":  "text_completion",
		"created": time.Now().Unix(),
		"model":   model,
		"choices": []map[string]any{{
			"index":         0,
			"text":          reply,
			"finish_reason": "stop",
			"logprobs":      nil,
		}},
	})
}

// wait sleeps for d and reports whether the client is still there.
func wait(r *http.Request, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	select {
	case <-time.After(d):
		return true
	case <-r.Context().Done():
		return false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
