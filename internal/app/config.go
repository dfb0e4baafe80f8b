package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"tripplanner/internal/inference"
	"tripplanner/internal/services/advice"
	"tripplanner/internal/store"
)

// Provider names accepted by inference.provider.
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
)

// TokenSecret is the name the inference token is stored under in the
// secrets file.
const TokenSecret = "inference.token"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string        // config directory, e.g. $HOME/.tripplanner
	Listen     string        // HTTP listen address, e.g. :8080
	SessionTTL time.Duration // idle lifetime of a session
	Passphrase string        // unlocks the secrets file; optional
	Inference  InferenceConfig
	Log        LogConfig
	HTTP       *http.Client // optional; defaults to http.DefaultClient
}

// InferenceConfig selects and configures the text-generation backend.
type InferenceConfig struct {
	Provider string
	BaseURL  string
	Model    string
	Token    string
	Timeout  time.Duration
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// SetDefaults registers default values for every config key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("home", defaultHome())
	v.SetDefault("listen", ":8080")
	v.SetDefault("session_ttl", store.DefaultSessionTTL)
	v.SetDefault("inference.provider", ProviderHuggingFace)
	v.SetDefault("inference.base_url", "")
	v.SetDefault("inference.model", inference.DefaultModel)
	v.SetDefault("inference.token", "")
	v.SetDefault("inference.timeout", advice.DefaultTimeout)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads Config from v and validates it.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Home:       v.GetString("home"),
		Listen:     v.GetString("listen"),
		SessionTTL: v.GetDuration("session_ttl"),
		Passphrase: v.GetString("passphrase"),
		Inference: InferenceConfig{
			Provider: strings.ToLower(strings.TrimSpace(v.GetString("inference.provider"))),
			BaseURL:  v.GetString("inference.base_url"),
			Model:    v.GetString("inference.model"),
			Token:    v.GetString("inference.token"),
			Timeout:  v.GetDuration("inference.timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	switch cfg.Inference.Provider {
	case ProviderHuggingFace, ProviderOpenAI:
	default:
		return Config{}, fmt.Errorf("unknown inference provider %q", cfg.Inference.Provider)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("session_ttl must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.Inference.Timeout <= 0 {
		return Config{}, fmt.Errorf("inference.timeout must be positive, got %s", cfg.Inference.Timeout)
	}
	return cfg, nil
}

func defaultHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".tripplanner")
	}
	return ".tripplanner"
}
