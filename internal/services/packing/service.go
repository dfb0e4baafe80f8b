package packing

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/samber/lo"

	"tripplanner/internal/domain"
	domaintypes "tripplanner/internal/domain/types"
)

// Service maintains packing lists keyed by trip name.
type Service struct {
	logger *slog.Logger
}

// New constructs a packing Service.
func New(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger.With("component", "packing")}
}

// AddItem appends an unpacked item. Duplicate labels are allowed.
func (s *Service) AddItem(st *domain.State, tripName, label string) error {
	if _, err := st.Trip(tripName); err != nil {
		return err
	}
	if label == "" {
		return domaintypes.ErrEmptyPackingItem
	}
	st.Packing[tripName] = append(st.Packing[tripName], domain.PackingItem{Label: label})
	return nil
}

// SetPacked overwrites the packed flag of the item at index.
func (s *Service) SetPacked(st *domain.State, tripName string, index int, packed bool) error {
	items, err := s.items(st, tripName, index)
	if err != nil {
		return err
	}
	items[index].Packed = packed
	return nil
}

// RemoveItem deletes the item at index.
func (s *Service) RemoveItem(st *domain.State, tripName string, index int) error {
	items, err := s.items(st, tripName, index)
	if err != nil {
		return err
	}
	st.Packing[tripName] = slices.Delete(items, index, index+1)
	return nil
}

// ListItems returns a copy of the trip's checklist.
func (s *Service) ListItems(st *domain.State, tripName string) ([]domain.PackingItem, error) {
	if _, err := st.Trip(tripName); err != nil {
		return nil, err
	}
	return slices.Clone(st.Packing[tripName]), nil
}

// Progress counts packed items of the trip.
func (s *Service) Progress(st *domain.State, tripName string) (domain.PackingProgress, error) {
	if _, err := st.Trip(tripName); err != nil {
		return domain.PackingProgress{}, err
	}
	return Progress(st.Packing[tripName]), nil
}

// Progress returns packed/total for items; the ratio of an empty list is 0.
func Progress(items []domain.PackingItem) domain.PackingProgress {
	packed := lo.CountBy(items, func(it domain.PackingItem) bool { return it.Packed })
	p := domain.PackingProgress{Packed: packed, Total: len(items)}
	if p.Total > 0 {
		p.Ratio = float64(p.Packed) / float64(p.Total)
	}
	return p
}

func (s *Service) items(st *domain.State, tripName string, index int) ([]domain.PackingItem, error) {
	if _, err := st.Trip(tripName); err != nil {
		return nil, err
	}
	items := st.Packing[tripName]
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("%w: item %d of %d", domaintypes.ErrIndexOutOfRange, index, len(items))
	}
	return items, nil
}

// Compile-time assertion that Service implements domain.PackingService.
var _ domain.PackingService = (*Service)(nil)
