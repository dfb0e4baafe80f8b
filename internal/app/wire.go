package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"tripplanner/internal/domain"
	"tripplanner/internal/inference"
	"tripplanner/internal/metrics"
	"tripplanner/internal/store"
)

// ErrMissingToken is returned when no inference token is configured.
var ErrMissingToken = errors.New(
	"inference token missing: set TRIPPLANNER_INFERENCE_TOKEN, inference.token, or run `tripplanner secret set " + TokenSecret + "`",
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config    Config
	Logger    *slog.Logger
	Sessions  *store.MemorySessionStore
	Secrets   *store.SecretFileStore
	Generator domain.TextGenerator
	Registry  *prometheus.Registry
	Metrics   *metrics.Metrics
	App       *App
	HTTP      *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, logger *slog.Logger) (*Wire, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// In-memory session registry and file-based secrets
	sessions := store.NewMemorySessionStore(cfg.SessionTTL)
	secrets := store.NewSecretFileStore(cfg.Home)

	token, err := ResolveToken(cfg, secrets)
	if err != nil {
		return nil, err
	}

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, sessions.CountSessions)

	gen, err := NewGenerator(cfg.Inference, token, httpClient)
	if err != nil {
		return nil, err
	}
	gen = m.Instrument(gen, cfg.Inference.Provider)

	logger.Info("inference backend ready",
		"provider", cfg.Inference.Provider,
		"model", cfg.Inference.Model,
		"timeout", cfg.Inference.Timeout,
		"token", store.Fingerprint(token),
	)

	return &Wire{
		Config:    cfg,
		Logger:    logger,
		Sessions:  sessions,
		Secrets:   secrets,
		Generator: gen,
		Registry:  reg,
		Metrics:   m,
		App:       New(gen, cfg.Inference.Timeout, time.Now, logger),
		HTTP:      httpClient,
	}, nil
}

// ResolveToken returns the inference token from the config (which already
// folds in the environment) or, failing that, from the secrets file.
func ResolveToken(cfg Config, secrets domain.SecretStore) (string, error) {
	if cfg.Inference.Token != "" {
		return cfg.Inference.Token, nil
	}
	if cfg.Passphrase == "" {
		return "", ErrMissingToken
	}
	token, ok, err := secrets.LoadSecret(cfg.Passphrase, TokenSecret)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", TokenSecret, err)
	}
	if !ok || token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// NewGenerator builds the text generator for the configured provider.
func NewGenerator(cfg InferenceConfig, token string, httpClient *http.Client) (domain.TextGenerator, error) {
	switch cfg.Provider {
	case "", ProviderHuggingFace:
		return inference.NewHTTP(cfg.BaseURL, cfg.Model, token, httpClient), nil
	case ProviderOpenAI:
		if cfg.Model == "" {
			return nil, errors.New("inference.model is required for the openai provider")
		}
		return inference.NewOpenAI(cfg.BaseURL, cfg.Model, token, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown inference provider %q", cfg.Provider)
	}
}
