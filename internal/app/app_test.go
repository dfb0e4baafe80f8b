package app_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/app"
	"tripplanner/internal/domain"
	"tripplanner/internal/inference"
	"tripplanner/internal/inference/inferencetest"
	"tripplanner/internal/store"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	app.SetDefaults(v)
	v.Set("home", t.TempDir())
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := app.LoadConfig(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, store.DefaultSessionTTL, cfg.SessionTTL)
	assert.Equal(t, app.ProviderHuggingFace, cfg.Inference.Provider)
	assert.Equal(t, inference.DefaultModel, cfg.Inference.Model)
	assert.Equal(t, 60*time.Second, cfg.Inference.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	v := newViper(t)
	v.Set("inference.provider", "carrier-pigeon")
	_, err := app.LoadConfig(v)
	assert.ErrorContains(t, err, "carrier-pigeon")
}

func TestResolveTokenPrefersConfig(t *testing.T) {
	secrets := store.NewSecretFileStore(t.TempDir())
	require.NoError(t, secrets.SaveSecret("pw", app.TokenSecret, "from-file"))

	token, err := app.ResolveToken(app.Config{Inference: app.InferenceConfig{Token: "from-env"}}, secrets)
	require.NoError(t, err)
	assert.Equal(t, "from-env", token)

	token, err = app.ResolveToken(app.Config{Passphrase: "pw"}, secrets)
	require.NoError(t, err)
	assert.Equal(t, "from-file", token)
}

func TestResolveTokenMissing(t *testing.T) {
	secrets := store.NewSecretFileStore(t.TempDir())

	_, err := app.ResolveToken(app.Config{}, secrets)
	assert.ErrorIs(t, err, app.ErrMissingToken)

	_, err = app.ResolveToken(app.Config{Passphrase: "pw"}, secrets)
	assert.ErrorIs(t, err, app.ErrMissingToken)
}

func TestNewWireFailsWithoutToken(t *testing.T) {
	cfg, err := app.LoadConfig(newViper(t))
	require.NoError(t, err)

	_, err = app.NewWire(cfg, nil)
	assert.ErrorIs(t, err, app.ErrMissingToken)
}

func TestNewWireEndToEnd(t *testing.T) {
	fake := inferencetest.NewServer()
	fake.Reply("Take the night train.")
	ts := httptest.NewServer(fake)
	defer ts.Close()

	v := newViper(t)
	v.Set("inference.token", "hf_test")
	v.Set("inference.base_url", ts.URL)
	cfg, err := app.LoadConfig(v)
	require.NoError(t, err)

	w, err := app.NewWire(cfg, nil)
	require.NoError(t, err)

	text, err := w.App.Advice.AnswerQuestion(context.Background(), "Vienna", "How to get to Venice?")
	require.NoError(t, err)
	assert.Equal(t, "Take the night train.", text)
	assert.Equal(t, "Bearer hf_test", fake.Requests()[0].Authorization)

	sess, err := w.Sessions.CreateSession()
	require.NoError(t, err)
	require.NoError(t, sess.Update(func(st *domain.State) error {
		return w.App.Trips.CreateTrip(st, "Alps")
	}))
	assert.Equal(t, 1, w.Sessions.CountSessions())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := app.NewLogger(&buf, app.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	logger.Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = app.NewLogger(&buf, app.LogConfig{Level: "loud"})
	assert.Error(t, err)
	_, err = app.NewLogger(&buf, app.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
