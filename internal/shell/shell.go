// Package shell implements the line-oriented planner front end used by
// `tripplanner shell`.
//
// One command per line; views are printed as YAML. Warnings are printed and
// the loop continues. Multi-part arguments are separated with "|", e.g.
//
//	day 2 Louvre | Seine walk | Dinner in Le Marais
//	advise Food Tour | History, Food
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tripplanner/internal/app"
	"tripplanner/internal/domain"
	domaintypes "tripplanner/internal/domain/types"
	"tripplanner/internal/view"
)

// Shell drives one session from a text stream.
type Shell struct {
	app  *app.App
	sess *domain.Session
	out  io.Writer
	now  func() time.Time
}

// New returns a Shell acting on sess and writing to out.
func New(a *app.App, sess *domain.Session, out io.Writer) *Shell {
	return &Shell{app: a, sess: sess, out: out, now: time.Now}
}

// errQuit ends the loop without reporting an error.
var errQuit = errors.New("quit")

// Run reads commands from in until EOF, "quit" or ctx ends.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	s.prompt()
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			s.prompt()
			continue
		}
		err := s.Exec(ctx, line)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case domaintypes.IsWarning(err):
			fmt.Fprintf(s.out, "warning: %v\n", err)
		case err != nil:
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		s.prompt()
	}
	return sc.Err()
}

func (s *Shell) prompt() { fmt.Fprint(s.out, "> ") }

// Exec runs a single command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "help", "?":
		fmt.Fprint(s.out, helpText)
		return nil
	case "quit", "exit":
		return errQuit
	case "new":
		return s.update(func(st *domain.State) error { return s.app.Trips.CreateTrip(st, rest) }, "trip created")
	case "select":
		return s.selectTrip(rest)
	case "set":
		return s.set(rest)
	case "trips":
		return s.showSidebar()
	case "plan":
		return s.showActive(func(st *domain.State, t domain.Trip) (any, error) { return view.Plan(t), nil })
	case "itinerary":
		return s.showActive(func(st *domain.State, t domain.Trip) (any, error) {
			days, err := s.app.Itinerary.ListDays(st, t.Name)
			return view.Itinerary(t.Name, days), err
		})
	case "calendar":
		return s.calendar()
	case "day":
		return s.saveDay(rest)
	case "budget":
		return s.showActive(func(st *domain.State, t domain.Trip) (any, error) {
			expenses, err := s.app.Budget.ListExpenses(st, t.Name)
			if err != nil {
				return nil, err
			}
			sum, err := s.app.Budget.Summarize(st, t.Name)
			return view.Budget(expenses, sum), err
		})
	case "expense":
		return s.addExpense(rest)
	case "unexpense":
		return s.withIndex(rest, func(st *domain.State, t domain.Trip, i int) error {
			return s.app.Budget.DeleteExpense(st, t.Name, i)
		})
	case "fav":
		return s.update(func(st *domain.State) error { return s.app.Favorites.AddFavorite(st, rest) }, "added to favorites")
	case "unfav":
		i, err := parseIndex(rest)
		if err != nil {
			return err
		}
		return s.update(func(st *domain.State) error { return s.app.Favorites.RemoveFavorite(st, i) }, "removed")
	case "favs":
		var places []string
		_ = s.sess.View(func(st *domain.State) error { places = s.app.Favorites.ListFavorites(st); return nil })
		return s.print(view.Favorites(places))
	case "pack":
		return s.withActive(func(st *domain.State, t domain.Trip) error { return s.app.Packing.AddItem(st, t.Name, rest) }, "added to packing list")
	case "packed", "unpack":
		packed := strings.EqualFold(cmd, "packed")
		return s.withIndex(rest, func(st *domain.State, t domain.Trip, i int) error {
			return s.app.Packing.SetPacked(st, t.Name, i, packed)
		})
	case "drop":
		return s.withIndex(rest, func(st *domain.State, t domain.Trip, i int) error {
			return s.app.Packing.RemoveItem(st, t.Name, i)
		})
	case "packing":
		return s.showActive(func(st *domain.State, t domain.Trip) (any, error) {
			items, err := s.app.Packing.ListItems(st, t.Name)
			if err != nil {
				return nil, err
			}
			p, err := s.app.Packing.Progress(st, t.Name)
			return view.Packing(items, p), err
		})
	case "note":
		return s.update(func(st *domain.State) error { return s.app.Notes.AddNote(st, rest) }, "note saved")
	case "unnote":
		i, err := parseIndex(rest)
		if err != nil {
			return err
		}
		return s.update(func(st *domain.State) error { return s.app.Notes.RemoveNote(st, i) }, "removed")
	case "notes":
		var notes []domain.Note
		_ = s.sess.View(func(st *domain.State) error { notes = s.app.Notes.ListNotes(st); return nil })
		return s.print(view.Notes(notes))
	case "advise":
		return s.advise(ctx, rest)
	case "ask":
		return s.ask(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func (s *Shell) update(fn func(st *domain.State) error, done string) error {
	if err := s.sess.Update(fn); err != nil {
		return err
	}
	fmt.Fprintln(s.out, done)
	return nil
}

func (s *Shell) selectTrip(name string) error {
	var selected bool
	err := s.sess.Update(func(st *domain.State) error {
		if err := s.app.Trips.SelectTrip(st, name); err != nil {
			return err
		}
		selected = len(st.Trips) > 0
		return nil
	})
	if err != nil {
		return err
	}
	if !selected {
		fmt.Fprintln(s.out, "no trips yet")
		return nil
	}
	fmt.Fprintln(s.out, "trip selected")
	return nil
}

func (s *Shell) withActive(fn func(st *domain.State, t domain.Trip) error, done string) error {
	return s.update(func(st *domain.State) error {
		t, err := s.app.Trips.ActiveTrip(st)
		if err != nil {
			return err
		}
		return fn(st, t)
	}, done)
}

func (s *Shell) withIndex(arg string, fn func(st *domain.State, t domain.Trip, i int) error) error {
	i, err := parseIndex(arg)
	if err != nil {
		return err
	}
	return s.withActive(func(st *domain.State, t domain.Trip) error { return fn(st, t, i) }, "ok")
}

func (s *Shell) showActive(fn func(st *domain.State, t domain.Trip) (any, error)) error {
	var v any
	err := s.sess.View(func(st *domain.State) error {
		t, err := s.app.Trips.ActiveTrip(st)
		if err != nil {
			return err
		}
		v, err = fn(st, t)
		return err
	})
	if err != nil {
		return err
	}
	return s.print(v)
}

func (s *Shell) showSidebar() error {
	var v view.SidebarView
	_ = s.sess.View(func(st *domain.State) error {
		trips := s.app.Trips.ListTrips(st)
		if t, err := s.app.Trips.ActiveTrip(st); err == nil {
			v = view.Sidebar(trips, &t)
		} else {
			v = view.Sidebar(trips, nil)
		}
		return nil
	})
	return s.print(v)
}

func (s *Shell) print(v any) error {
	enc := yaml.NewEncoder(s.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// set changes one field of the active trip: destination, start, end,
// budget or travelers.
func (s *Shell) set(arg string) error {
	field, value, _ := strings.Cut(arg, " ")
	value = strings.TrimSpace(value)

	return s.withActive(func(st *domain.State, t domain.Trip) error {
		upd := domain.TripUpdate{
			Destination: t.Destination,
			StartDate:   t.StartDate,
			EndDate:     t.EndDate,
			Budget:      t.Budget,
			Travelers:   t.Travelers,
		}
		switch strings.ToLower(field) {
		case "destination":
			upd.Destination = value
		case "start", "end":
			d, err := parseDate(value)
			if err != nil {
				return err
			}
			if strings.EqualFold(field, "start") {
				upd.StartDate = d
			} else {
				upd.EndDate = d
			}
		case "budget":
			b, err := parseAmount(value)
			if err != nil {
				return fmt.Errorf("budget: %w", err)
			}
			upd.Budget = b
		case "travelers":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("travelers: %w", err)
			}
			upd.Travelers = n
		default:
			return fmt.Errorf("unknown field %q (destination, start, end, budget, travelers)", field)
		}
		return s.app.Trips.UpdateTrip(st, t.Name, upd)
	}, "trip details saved")
}

func (s *Shell) saveDay(arg string) error {
	num, slots, _ := strings.Cut(arg, " ")
	day, err := strconv.Atoi(num)
	if err != nil {
		return fmt.Errorf("day: want a day number, got %q", num)
	}
	parts := splitBar(slots, 3)
	return s.withActive(func(st *domain.State, t domain.Trip) error {
		_, err := s.app.Itinerary.SaveDay(st, t.Name, day, domain.DaySlots{
			Morning: parts[0], Afternoon: parts[1], Evening: parts[2],
		})
		return err
	}, fmt.Sprintf("day %d saved", day))
}

func (s *Shell) addExpense(arg string) error {
	fields := strings.Fields(arg)
	if len(fields) < 2 {
		return errors.New("usage: expense <category> <amount> [description]")
	}
	amount, err := parseAmount(fields[1])
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	desc := strings.Join(fields[2:], " ")
	return s.withActive(func(st *domain.State, t domain.Trip) error {
		_, err := s.app.Budget.AddExpense(st, t.Name, domain.Category(fields[0]), amount, desc)
		return err
	}, "expense added")
}

func (s *Shell) calendar() error {
	var (
		trip    domain.Trip
		entries []domain.ItineraryEntry
	)
	err := s.sess.View(func(st *domain.State) error {
		var err error
		if trip, err = s.app.Trips.ActiveTrip(st); err != nil {
			return err
		}
		entries, err = s.app.Itinerary.ListEntries(st, trip.Name)
		return err
	})
	if err != nil {
		return err
	}
	doc, err := view.ItineraryCalendar(trip, entries, s.now())
	if err != nil {
		return err
	}
	_, err = io.WriteString(s.out, doc)
	return err
}

// snapshot copies the active trip so advice calls run without the lock.
func (s *Shell) snapshot() (domain.Trip, error) {
	var t domain.Trip
	err := s.sess.View(func(st *domain.State) error {
		var err error
		t, err = s.app.Trips.ActiveTrip(st)
		return err
	})
	return t, err
}

func (s *Shell) advise(ctx context.Context, arg string) error {
	t, err := s.snapshot()
	if err != nil {
		return err
	}
	parts := splitBar(arg, 2)
	var interests []string
	for _, i := range strings.Split(parts[1], ",") {
		if i = strings.TrimSpace(i); i != "" {
			interests = append(interests, i)
		}
	}
	fmt.Fprintln(s.out, "planning your perfect trip...")
	text, err := s.app.Advice.TripAdvice(ctx, domain.AdviceRequest{
		Destination: t.Destination,
		TripType:    parts[0],
		Travelers:   t.Travelers,
		Interests:   interests,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, text)
	return nil
}

func (s *Shell) ask(ctx context.Context, question string) error {
	t, err := s.snapshot()
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "thinking...")
	answer, err := s.app.Advice.AnswerQuestion(ctx, t.Destination, question)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, answer)
	return nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("want an index, got %q", s)
	}
	return i, nil
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("want a finite number, got %q", s)
	}
	return v, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("date: want YYYY-MM-DD, got %q", s)
	}
	return &t, nil
}

// splitBar splits s on "|" into exactly n trimmed parts.
func splitBar(s string, n int) []string {
	parts := strings.SplitN(s, "|", n)
	out := make([]string, n)
	for i := range parts {
		out[i] = strings.TrimSpace(parts[i])
	}
	return out
}

const helpText = `commands:
  new <name>                     create a trip and make it active
  select <name>                  switch the active trip
  set <field> <value>            destination | start | end | budget | travelers
  trips | plan | itinerary       show views
  day <n> <morning> | <afternoon> | <evening>
  calendar                       print the itinerary as iCalendar
  budget                         show the ledger
  expense <category> <amount> [description]
  unexpense <index>
  fav <place> | unfav <index> | favs
  pack <item> | packed <index> | unpack <index> | drop <index> | packing
  note <text> | unnote <index> | notes
  advise <trip type> | <interest, interest>
  ask <question>
  help | quit
`
