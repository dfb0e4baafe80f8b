package shell_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/app"
	"tripplanner/internal/domain"
	domaintypes "tripplanner/internal/domain/types"
	"tripplanner/internal/shell"
)

type echoGenerator struct{ err error }

func (g echoGenerator) Generate(_ context.Context, req domain.GenerationRequest) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return "  echo: " + req.Prompt[len(req.Prompt)-10:] + "  ", nil
}

func newShell(gen domain.TextGenerator) (*shell.Shell, *domain.Session, *bytes.Buffer) {
	a := app.New(gen, time.Second, nil, nil)
	sess := domaintypes.NewSession("test-session", time.Now())
	var out bytes.Buffer
	return shell.New(a, sess, &out), sess, &out
}

func TestShellPlanningSession(t *testing.T) {
	sh, sess, out := newShell(echoGenerator{})
	script := strings.Join([]string{
		"new Paris Vacation",
		"set destination Paris",
		"set start 2026-06-01",
		"set end 2026-06-03",
		"day 1 Louvre | Lunch | Seine cruise",
		"expense Food 42.5 crepes",
		"fav Eiffel Tower",
		"pack Passport",
		"packed 0",
		"note buy metro pass",
		"budget",
		"quit",
		"new Never Reached",
	}, "\n")

	require.NoError(t, sh.Run(context.Background(), strings.NewReader(script)))
	assert.NotContains(t, out.String(), "warning:")
	assert.NotContains(t, out.String(), "error:")
	assert.Contains(t, out.String(), "total_spent: $42.50")

	require.NoError(t, sess.View(func(st *domain.State) error {
		assert.Equal(t, []string{"Paris Vacation"}, st.TripOrder)
		trip := st.Trips["Paris Vacation"]
		assert.Equal(t, "Paris", trip.Destination)
		assert.Equal(t, "Seine cruise", st.Itinerary["Paris Vacation"][1].Evening)
		assert.Equal(t, []string{"Eiffel Tower"}, st.Favorites)
		assert.True(t, st.Packing["Paris Vacation"][0].Packed)
		assert.Len(t, st.Notes, 1)
		return nil
	}))
}

func TestShellPrintsWarningsAndContinues(t *testing.T) {
	sh, _, out := newShell(echoGenerator{})
	script := "plan\nnew \nnew Rome\nitinerary\ntrips\n"

	require.NoError(t, sh.Run(context.Background(), strings.NewReader(script)))
	s := out.String()
	assert.Contains(t, s, "warning: create or select a trip first")
	assert.Contains(t, s, "warning: enter a trip name")
	assert.Contains(t, s, "warning: set start and end dates first")
	assert.Contains(t, s, "active: Rome")
}

func TestShellAdvice(t *testing.T) {
	sh, _, out := newShell(echoGenerator{})
	ctx := context.Background()

	require.NoError(t, sh.Exec(ctx, "new Lisbon"))
	err := sh.Exec(ctx, "advise Cultural | History")
	assert.ErrorIs(t, err, domaintypes.ErrEmptyDestination)

	require.NoError(t, sh.Exec(ctx, "set destination Lisbon"))
	require.NoError(t, sh.Exec(ctx, "advise Food Tour | Food, Nightlife"))
	assert.Contains(t, out.String(), "echo: ")

	require.NoError(t, sh.Exec(ctx, "ask Is tipping expected?"))
	assert.Contains(t, out.String(), "echo: ected?")
}

func TestShellAdviceFailureKeepsState(t *testing.T) {
	sh, sess, _ := newShell(echoGenerator{err: errors.New("unavailable")})
	ctx := context.Background()
	require.NoError(t, sh.Exec(ctx, "new Oslo"))
	require.NoError(t, sh.Exec(ctx, "set destination Oslo"))

	err := sh.Exec(ctx, "ask What to pack?")
	assert.ErrorIs(t, err, domaintypes.ErrInference)
	require.NoError(t, sess.View(func(st *domain.State) error {
		assert.Equal(t, "Oslo", st.Trips["Oslo"].Destination)
		return nil
	}))
}

func TestShellUnknownCommand(t *testing.T) {
	sh, _, _ := newShell(echoGenerator{})
	assert.ErrorContains(t, sh.Exec(context.Background(), "teleport"), "unknown command")
}

func TestShellRejectsNonFiniteAmounts(t *testing.T) {
	sh, sess, _ := newShell(echoGenerator{})
	ctx := context.Background()
	require.NoError(t, sh.Exec(ctx, "new Lisbon"))
	require.NoError(t, sh.Exec(ctx, "set budget 500"))

	for _, line := range []string{"set budget NaN", "set budget +Inf", "expense Food NaN", "expense Food -Inf lunch"} {
		err := sh.Exec(ctx, line)
		require.Error(t, err, line)
		assert.Contains(t, err.Error(), "finite", line)
	}

	require.NoError(t, sess.View(func(st *domain.State) error {
		assert.Equal(t, 500.0, st.Trips["Lisbon"].Budget)
		assert.Empty(t, st.Budget["Lisbon"])
		return nil
	}))
}

func TestShellSelectWithNoTrips(t *testing.T) {
	sh, sess, out := newShell(echoGenerator{})

	require.NoError(t, sh.Exec(context.Background(), "select foo"))
	assert.Contains(t, out.String(), "no trips yet")
	assert.NotContains(t, out.String(), "trip selected")

	require.NoError(t, sess.View(func(st *domain.State) error {
		assert.Empty(t, st.CurrentTrip)
		return nil
	}))
}
