package notes

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"tripplanner/internal/domain"
	domaintypes "tripplanner/internal/domain/types"
)

// Service maintains the session's travel notes.
type Service struct {
	logger *slog.Logger
	now    func() time.Time
}

// New constructs a notes Service; now defaults to time.Now.
func New(logger *slog.Logger, now func() time.Time) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{logger: logger.With("component", "notes"), now: now}
}

// AddNote appends text stamped with the current time. Blank text is
// rejected with ErrEmptyNote; the text is stored as written.
func (s *Service) AddNote(st *domain.State, text string) error {
	if strings.TrimSpace(text) == "" {
		return domaintypes.ErrEmptyNote
	}
	st.Notes = append(st.Notes, domain.Note{Text: text, CreatedAt: s.now()})
	return nil
}

// RemoveNote deletes the note at index, keeping the order of the rest.
func (s *Service) RemoveNote(st *domain.State, index int) error {
	if index < 0 || index >= len(st.Notes) {
		return fmt.Errorf("%w: note %d of %d", domaintypes.ErrIndexOutOfRange, index, len(st.Notes))
	}
	st.Notes = slices.Delete(st.Notes, index, index+1)
	return nil
}

// ListNotes returns a copy of the notes, oldest first.
func (s *Service) ListNotes(st *domain.State) []domain.Note {
	return slices.Clone(st.Notes)
}

var _ domain.NoteService = (*Service)(nil)
