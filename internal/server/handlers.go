package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"tripplanner/internal/domain"
	"tripplanner/internal/view"
)

func (s *Server) getSidebar(w http.ResponseWriter, _ *http.Request, sess *domain.Session) error {
	var v view.SidebarView
	_ = sess.View(func(st *domain.State) error {
		trips := s.app.Trips.ListTrips(st)
		if active, err := s.app.Trips.ActiveTrip(st); err == nil {
			v = view.Sidebar(trips, &active)
		} else {
			v = view.Sidebar(trips, nil)
		}
		return nil
	})
	writeJSON(w, http.StatusOK, v)
	return nil
}

func (s *Server) listTrips(w http.ResponseWriter, _ *http.Request, sess *domain.Session) error {
	var (
		trips   []domain.Trip
		current string
	)
	_ = sess.View(func(st *domain.State) error {
		trips = s.app.Trips.ListTrips(st)
		current = st.CurrentTrip
		return nil
	})
	writeJSON(w, http.StatusOK, map[string]any{"trips": trips, "current": current})
	return nil
}

func (s *Server) createTrip(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return err
	}
	var trip domain.Trip
	err := sess.Update(func(st *domain.State) error {
		if err := s.app.Trips.CreateTrip(st, body.Name); err != nil {
			return err
		}
		var err error
		trip, err = s.app.Trips.ActiveTrip(st)
		return err
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, trip)
	return nil
}

func (s *Server) selectTrip(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	name, err := pathName(r, "name")
	if err != nil {
		return err
	}
	var v view.SidebarView
	err = sess.Update(func(st *domain.State) error {
		if err := s.app.Trips.SelectTrip(st, name); err != nil {
			return err
		}
		trips := s.app.Trips.ListTrips(st)
		if active, err := s.app.Trips.ActiveTrip(st); err == nil {
			v = view.Sidebar(trips, &active)
		} else {
			v = view.Sidebar(trips, nil)
		}
		return nil
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, v)
	return nil
}

// tripForm is the plan form payload. Dates are YYYY-MM-DD; empty clears.
type tripForm struct {
	Destination string  `json:"destination"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Budget      float64 `json:"budget"`
	Travelers   int     `json:"travelers"`
}

func (f tripForm) update() (domain.TripUpdate, error) {
	start, err := parseDate("start_date", f.StartDate)
	if err != nil {
		return domain.TripUpdate{}, err
	}
	end, err := parseDate("end_date", f.EndDate)
	if err != nil {
		return domain.TripUpdate{}, err
	}
	return domain.TripUpdate{
		Destination: f.Destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      f.Budget,
		Travelers:   f.Travelers,
	}, nil
}

func parseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: want YYYY-MM-DD", errBadRequest, field)
	}
	return &t, nil
}

func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	name, err := pathName(r, "name")
	if err != nil {
		return err
	}
	var form tripForm
	if err := decodeJSON(r, &form); err != nil {
		return err
	}
	upd, err := form.update()
	if err != nil {
		return err
	}
	var v view.PlanView
	err = sess.Update(func(st *domain.State) error {
		if err := s.app.Trips.UpdateTrip(st, name, upd); err != nil {
			return err
		}
		t, err := s.app.Trips.GetTrip(st, name)
		v = view.Plan(t)
		return err
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, v)
	return nil
}

func (s *Server) getPlan(w http.ResponseWriter, _ *http.Request, sess *domain.Session) error {
	var v view.PlanView
	err := sess.View(func(st *domain.State) error {
		t, err := s.app.Trips.ActiveTrip(st)
		v = view.Plan(t)
		return err
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, v)
	return nil
}

func (s *Server) getItinerary(w http.ResponseWriter, _ *http.Request, sess *domain.Session) error {
	var v view.ItineraryView
	err := sess.View(func(st *domain.State) error {
		t, err := s.app.Trips.ActiveTrip(st)
		if err != nil {
			return err
		}
		days, err := s.app.Itinerary.ListDays(st, t.Name)
		if err != nil {
			return err
		}
		v = view.Itinerary(t.Name, days)
		return nil
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, v)
	return nil
}

func (s *Server) getCalendar(w http.ResponseWriter, _ *http.Request, sess *domain.Session) error {
	var (
		trip    domain.Trip
		entries []domain.ItineraryEntry
	)
	err := sess.View(func(st *domain.State) error {
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
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.ics"`)
	_, _ = w.Write([]byte(doc))
	return nil
}

func (s *Server) saveDay(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	day, err := pathInt(r, "day")
	if err != nil {
		return err
	}
	var slots domain.DaySlots
	if err := decodeJSON(r, &slots); err != nil {
		return err
	}
	var entry domain.ItineraryEntry
	err = sess.Update(func(st *domain.State) error {
		t, err := s.app.Trips.ActiveTrip(st)
		if err != nil {
			return err
		}
		entry, err = s.app.Itinerary.SaveDay(st, t.Name, day, slots)
		return err
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, entry)
	return nil
}

func (s *Server) getBudget(w http.ResponseWriter, _ *http.Request, sess *domain.Session) error {
	var v view.BudgetView
	err := sess.View(func(st *domain.State) error {
		t, err := s.app.Trips.ActiveTrip(st)
		if err != nil {
			return err
		}
		expenses, err := s.app.Budget.ListExpenses(st, t.Name)
		if err != nil {
			return err
		}
		sum, err := s.app.Budget.Summarize(st, t.Name)
		if err != nil {
			return err
		}
		v = view.Budget(expenses, sum)
		return nil
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, v)
	return nil
}

func (s *Server) addExpense(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	var body struct {
		Category    string  `json:"category"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return err
	}
	var e domain.Expense
	err := sess.Update(func(st *domain.State) error {
		t, err := s.app.Trips.ActiveTrip(st)
		if err != nil {
			return err
		}
		e, err = s.app.Budget.AddExpense(st, t.Name, domain.Category(body.Category), body.Amount, body.Description)
		return err
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, e)
	return nil
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	index, err := pathInt(r, "index")
	if err != nil {
		return err
	}
	err = sess.Update(func(st *domain.State) error {
		t, err := s.app.Trips.ActiveTrip(st)
		if err != nil {
			return err
		}
		return s.app.Budget.DeleteExpense(st, t.Name, index)
	})
	if err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) getFavorites(w http.ResponseWriter, _ *http.Request, sess *domain.Session) error {
	var places []string
	_ = sess.View(func(st *domain.State) error {
		places = s.app.Favorites.ListFavorites(st)
		return nil
	})
	writeJSON(w, http.StatusOK, view.Favorites(places))
	return nil
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	var body struct {
		Place string `json:"place"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return err
	}
	var places []string
	err := sess.Update(func(st *domain.State) error {
		if err := s.app.Favorites.AddFavorite(st, body.Place); err != nil {
			return err
		}
		places = s.app.Favorites.ListFavorites(st)
		return nil
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, view.Favorites(places))
	return nil
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	index, err := pathInt(r, "index")
	if err != nil {
		return err
	}
	if err := sess.Update(func(st *domain.State) error {
		return s.app.Favorites.RemoveFavorite(st, index)
	}); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// packingView renders the active trip's checklist. Callers hold the lock.
func (s *Server) packingView(st *domain.State) (view.PackingView, error) {
	t, err := s.app.Trips.ActiveTrip(st)
	if err != nil {
		return view.PackingView{}, err
	}
	items, err := s.app.Packing.ListItems(st, t.Name)
	if err != nil {
		return view.PackingView{}, err
	}
	p, err := s.app.Packing.Progress(st, t.Name)
	if err != nil {
		return view.PackingView{}, err
	}
	return view.Packing(items, p), nil
}

func (s *Server) getPacking(w http.ResponseWriter, _ *http.Request, sess *domain.Session) error {
	var v view.PackingView
	err := sess.View(func(st *domain.State) error {
		var err error
		v, err = s.packingView(st)
		return err
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, v)
	return nil
}

func (s *Server) addPackingItem(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	var body struct {
		Label string `json:"label"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return err
	}
	var v view.PackingView
	err := sess.Update(func(st *domain.State) error {
		t, err := s.app.Trips.ActiveTrip(st)
		if err != nil {
			return err
		}
		if err := s.app.Packing.AddItem(st, t.Name, body.Label); err != nil {
			return err
		}
		v, err = s.packingView(st)
		return err
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, v)
	return nil
}

func (s *Server) setPacked(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	index, err := pathInt(r, "index")
	if err != nil {
		return err
	}
	var body struct {
		Packed bool `json:"packed"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return err
	}
	var v view.PackingView
	err = sess.Update(func(st *domain.State) error {
		t, err := s.app.Trips.ActiveTrip(st)
		if err != nil {
			return err
		}
		if err := s.app.Packing.SetPacked(st, t.Name, index, body.Packed); err != nil {
			return err
		}
		v, err = s.packingView(st)
		return err
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, v)
	return nil
}

func (s *Server) removePackingItem(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	index, err := pathInt(r, "index")
	if err != nil {
		return err
	}
	err = sess.Update(func(st *domain.State) error {
		t, err := s.app.Trips.ActiveTrip(st)
		if err != nil {
			return err
		}
		return s.app.Packing.RemoveItem(st, t.Name, index)
	})
	if err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) getNotes(w http.ResponseWriter, _ *http.Request, sess *domain.Session) error {
	var notes []domain.Note
	_ = sess.View(func(st *domain.State) error {
		notes = s.app.Notes.ListNotes(st)
		return nil
	})
	writeJSON(w, http.StatusOK, view.Notes(notes))
	return nil
}

func (s *Server) addNote(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return err
	}
	var notes []domain.Note
	err := sess.Update(func(st *domain.State) error {
		if err := s.app.Notes.AddNote(st, body.Text); err != nil {
			return err
		}
		notes = s.app.Notes.ListNotes(st)
		return nil
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, view.Notes(notes))
	return nil
}

func (s *Server) removeNote(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	index, err := pathInt(r, "index")
	if err != nil {
		return err
	}
	if err := sess.Update(func(st *domain.State) error {
		return s.app.Notes.RemoveNote(st, index)
	}); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// activeSnapshot copies the active trip out of the session so callers can
// talk to the inference endpoint without holding the lock.
func (s *Server) activeSnapshot(sess *domain.Session) (domain.Trip, error) {
	var t domain.Trip
	err := sess.View(func(st *domain.State) error {
		var err error
		t, err = s.app.Trips.ActiveTrip(st)
		return err
	})
	return t, err
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	var body struct {
		TripType  string   `json:"trip_type"`
		Interests []string `json:"interests"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return err
	}
	t, err := s.activeSnapshot(sess)
	if err != nil {
		return err
	}
	text, err := s.app.Advice.TripAdvice(r.Context(), domain.AdviceRequest{
		Destination: t.Destination,
		TripType:    body.TripType,
		Travelers:   t.Travelers,
		Interests:   body.Interests,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
	return nil
}

func (s *Server) ask(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	var body struct {
		Question string `json:"question"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return err
	}
	t, err := s.activeSnapshot(sess)
	if err != nil {
		return err
	}
	answer, err := s.app.Advice.AnswerQuestion(r.Context(), t.Destination, body.Question)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, view.Chat(t, answer))
	return nil
}
