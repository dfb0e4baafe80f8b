package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/app"
	"tripplanner/internal/inference"
	"tripplanner/internal/inference/inferencetest"
	"tripplanner/internal/metrics"
	"tripplanner/internal/server"
	"tripplanner/internal/store"
)

type harness struct {
	t      *testing.T
	api    *httptest.Server
	fake   *inferencetest.Server
	client *http.Client
}

func newHarness(t *testing.T, timeout time.Duration) *harness {
	t.Helper()
	fake := inferencetest.NewServer()
	inf := httptest.NewServer(fake)
	t.Cleanup(inf.Close)

	sessions := store.NewMemorySessionStore(time.Hour)
	m := metrics.New(prometheus.NewRegistry(), sessions.CountSessions)
	gen := m.Instrument(inference.NewHTTP(inf.URL, "test-model", "hf_test", nil), "huggingface")
	now := func() time.Time { return time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC) }
	a := app.New(gen, timeout, now, nil)

	api := httptest.NewServer(server.New(sessions, a, m, nil))
	t.Cleanup(api.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &harness{t: t, api: api, fake: fake, client: &http.Client{Jar: jar}}
}

func (h *harness) do(method, path string, body any) (int, map[string]any) {
	h.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, h.api.URL+path, r)
	require.NoError(h.t, err)
	resp, err := h.client.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	out := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(h.t, json.Unmarshal(raw, &out), string(raw))
	} else if len(raw) > 0 {
		out["raw"] = string(raw)
	}
	return resp.StatusCode, out
}

func (h *harness) setupTrip() {
	h.t.Helper()
	status, _ := h.do("POST", "/api/v1/trips", map[string]string{"name": "Paris Vacation"})
	require.Equal(h.t, http.StatusCreated, status)
	status, _ = h.do("PUT", "/api/v1/trips/Paris%20Vacation", map[string]any{
		"destination": "Paris",
		"start_date":  "2026-06-01",
		"end_date":    "2026-06-03",
		"budget":      1000,
		"travelers":   2,
	})
	require.Equal(h.t, http.StatusOK, status)
}

func TestHealth(t *testing.T) {
	h := newHarness(t, time.Second)
	status, body := h.do("GET", "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestViewsRequireActiveTrip(t *testing.T) {
	h := newHarness(t, time.Second)
	for _, path := range []string{"/api/v1/plan", "/api/v1/itinerary", "/api/v1/budget", "/api/v1/packing"} {
		status, body := h.do("GET", path, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, status, path)
		assert.Equal(t, "create or select a trip first", body["warning"], path)
	}
}

func TestTripLifecycle(t *testing.T) {
	h := newHarness(t, time.Second)

	status, body := h.do("POST", "/api/v1/trips", map[string]string{"name": "  "})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.NotEmpty(t, body["warning"])

	h.setupTrip()
	status, _ = h.do("POST", "/api/v1/trips", map[string]string{"name": "Paris Vacation"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = h.do("POST", "/api/v1/trips", map[string]string{"name": "Rome"})
	require.Equal(t, http.StatusCreated, status)

	status, body = h.do("POST", "/api/v1/trips/Paris%20Vacation/select", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Paris Vacation", body["active"])

	status, _ = h.do("POST", "/api/v1/trips/Berlin/select", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = h.do("GET", "/api/v1/plan", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Paris", body["destination"])
	assert.Equal(t, "$1,000.00", body["budget"])
	assert.Equal(t, float64(2), body["travelers"])

	status, _ = h.do("PUT", "/api/v1/trips/Paris%20Vacation", map[string]any{"start_date": "June 1"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestItineraryFlow(t *testing.T) {
	h := newHarness(t, time.Second)
	h.setupTrip()

	status, body := h.do("PUT", "/api/v1/itinerary/days/2", map[string]string{"morning": "Louvre"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Louvre", body["morning"])

	status, _ = h.do("PUT", "/api/v1/itinerary/days/9", map[string]string{"morning": "x"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = h.do("GET", "/api/v1/itinerary", nil)
	require.Equal(t, http.StatusOK, status)
	days := body["days"].([]any)
	require.Len(t, days, 3)
	second := days[1].(map[string]any)
	assert.Equal(t, "Day 2 - Tuesday, June 02", second["heading"])
	assert.Equal(t, true, second["saved"])

	status, body = h.do("GET", "/api/v1/itinerary.ics", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["raw"], "SUMMARY:Louvre")
}

func TestBudgetFlow(t *testing.T) {
	h := newHarness(t, time.Second)
	h.setupTrip()

	status, body := h.do("POST", "/api/v1/budget/expenses", map[string]any{
		"category": "Transportation", "amount": 150, "description": "train",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Transport", body["category"])

	status, _ = h.do("POST", "/api/v1/budget/expenses", map[string]any{"category": "Food", "amount": 300})
	require.Equal(t, http.StatusCreated, status)

	status, body = h.do("GET", "/api/v1/budget", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "$450.00", body["total_spent"])
	assert.Equal(t, "$550.00", body["remaining"])
	assert.Equal(t, "45.0%", body["percent_used"])
	first := body["by_category"].([]any)[0].(map[string]any)
	assert.Equal(t, "Food", first["label"])

	status, _ = h.do("DELETE", "/api/v1/budget/expenses/5", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = h.do("DELETE", "/api/v1/budget/expenses/0", nil)
	assert.Equal(t, http.StatusNoContent, status)

	_, body = h.do("GET", "/api/v1/budget", nil)
	assert.Equal(t, "$300.00", body["total_spent"])
}

func TestListsFlow(t *testing.T) {
	h := newHarness(t, time.Second)
	h.setupTrip()

	status, _ := h.do("POST", "/api/v1/favorites", map[string]string{"place": "Eiffel Tower"})
	require.Equal(t, http.StatusCreated, status)
	status, body := h.do("POST", "/api/v1/favorites", map[string]string{"place": "Eiffel Tower"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.NotEmpty(t, body["warning"])

	status, _ = h.do("POST", "/api/v1/packing", map[string]string{"label": "Passport"})
	require.Equal(t, http.StatusCreated, status)
	status, body = h.do("PUT", "/api/v1/packing/0", map[string]bool{"packed": true})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Packed: 1/1", body["progress"])

	status, _ = h.do("POST", "/api/v1/notes", map[string]string{"text": "book museum tickets"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = h.do("DELETE", "/api/v1/notes/0", nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = h.do("DELETE", "/api/v1/notes/0", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdviceQuestion(t *testing.T) {
	h := newHarness(t, time.Second)
	h.setupTrip()
	h.fake.Reply("- Try a bistro in Le Marais")

	status, body := h.do("POST", "/api/v1/advice/questions", map[string]string{"question": "Where to eat?"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "- Try a bistro in Le Marais", body["answer"])
	assert.Contains(t, h.fake.Requests()[0].Inputs, "Destination=Paris.")

	status, body = h.do("POST", "/api/v1/advice/questions", map[string]string{"question": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.NotEmpty(t, body["warning"])
}

func TestAdviceFailureLeavesStateUnchanged(t *testing.T) {
	h := newHarness(t, time.Second)
	h.setupTrip()
	_, before := h.do("GET", "/api/v1/plan", nil)

	h.fake.FailWith(http.StatusServiceUnavailable, "Model is loading")
	status, body := h.do("POST", "/api/v1/advice/recommendations", map[string]any{
		"trip_type": "Cultural", "interests": []string{"Museums"},
	})
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body["error"], "Model is loading")

	_, after := h.do("GET", "/api/v1/plan", nil)
	assert.Equal(t, before, after)
}

func TestAdviceTimeout(t *testing.T) {
	h := newHarness(t, 30*time.Millisecond)
	h.setupTrip()
	h.fake.Delay(time.Second)

	status, _ := h.do("POST", "/api/v1/advice/recommendations", map[string]any{"trip_type": "City"})
	assert.Equal(t, http.StatusGatewayTimeout, status)
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newHarness(t, time.Second)
	h.setupTrip()

	other := &http.Client{}
	resp, err := other.Get(h.api.URL + "/api/v1/trips")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body["trips"])

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == server.SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t, time.Second)
	h.setupTrip()

	status, body := h.do("GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["raw"], "tripplanner_sessions_live 1")
	assert.Contains(t, body["raw"], `route="/api/v1/trips"`)
}

func TestTripNameWithSlash(t *testing.T) {
	h := newHarness(t, time.Second)

	status, _ := h.do("POST", "/api/v1/trips", map[string]string{"name": "Paris/Rome 2026"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = h.do("POST", "/api/v1/trips", map[string]string{"name": "Oslo"})
	require.Equal(t, http.StatusCreated, status)

	status, body := h.do("PUT", "/api/v1/trips/Paris%2FRome%202026", map[string]any{
		"destination": "Paris",
		"budget":      800,
		"travelers":   2,
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Paris", body["destination"])

	status, body = h.do("POST", "/api/v1/trips/Paris%2FRome%202026/select", nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Paris/Rome 2026", body["active"])

	status, _ = h.do("POST", "/api/v1/trips/Paris/Rome%202026/select", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
