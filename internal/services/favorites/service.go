package favorites

import (
	"fmt"
	"log/slog"
	"slices"

	"tripplanner/internal/domain"
	domaintypes "tripplanner/internal/domain/types"
)

// Service maintains the favorites list. It is not scoped to a trip.
type Service struct {
	logger *slog.Logger
}

// New constructs a favorites Service.
func New(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger.With("component", "favorites")}
}

// AddFavorite appends place unless it is empty or already listed. Matching is
// exact and case-sensitive.
func (s *Service) AddFavorite(st *domain.State, place string) error {
	if place == "" {
		return domaintypes.ErrEmptyFavorite
	}
	if slices.Contains(st.Favorites, place) {
		return domaintypes.ErrFavoriteExists
	}
	st.Favorites = append(st.Favorites, place)
	return nil
}

// RemoveFavorite deletes the favorite at index.
func (s *Service) RemoveFavorite(st *domain.State, index int) error {
	if index < 0 || index >= len(st.Favorites) {
		return fmt.Errorf("%w: favorite %d of %d", domaintypes.ErrIndexOutOfRange, index, len(st.Favorites))
	}
	st.Favorites = slices.Delete(st.Favorites, index, index+1)
	return nil
}

// ListFavorites returns a copy of the favorites in insertion order.
func (s *Service) ListFavorites(st *domain.State) []string {
	return slices.Clone(st.Favorites)
}

// Compile-time assertion that Service implements domain.FavoritesService.
var _ domain.FavoritesService = (*Service)(nil)
