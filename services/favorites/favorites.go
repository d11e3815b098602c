package favorites

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/services/country"
	"github.com/samber/lo"
)

var ErrUnauthenticated = errors.New("favorites require a signed-in user")

// Directory is the part of the country directory used to expand favorites.
type Directory interface {
	FetchByCodes(ctx context.Context, codes []string) ([]country.Record, error)
}

// Service reconciles a user's stored favorite codes with live country data.
type Service struct {
	Store     Store
	Directory Directory
}

func NewService(store Store, dir Directory) *Service {
	return &Service{Store: store, Directory: dir}
}

// Favorites returns the stored codes in insertion order. Anonymous users have none.
func (s *Service) Favorites(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return []string{}, nil
	}
	codes, err := s.Store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if codes == nil {
		return []string{}, nil
	}
	return codes, nil
}

func (s *Service) IsFavorite(ctx context.Context, userID, code string) (bool, error) {
	codes, err := s.Favorites(ctx, userID)
	if err != nil {
		return false, err
	}
	return lo.Contains(codes, normalize(code)), nil
}

// ToggleFavorite flips membership of code and writes the full list back. It
// returns the new membership.
//
// The read and the write are not atomic: two sessions toggling for the same
// user at once can lose one update. Callers assume one active session per user.
func (s *Service) ToggleFavorite(ctx context.Context, userID, code string) (bool, error) {
	if userID == "" {
		return false, ErrUnauthenticated
	}
	code = normalize(code)
	if code == "" {
		return false, fmt.Errorf("toggle favorite: empty country code")
	}

	codes, err := s.Favorites(ctx, userID)
	if err != nil {
		return false, err
	}

	added := !lo.Contains(codes, code)
	if added {
		codes = append(codes, code)
	} else {
		codes = lo.Without(codes, code)
	}

	if err := s.Store.Save(ctx, userID, codes); err != nil {
		return !added, err
	}

	logger.Debug("user %s favorite %s set to %v", userID, code, added)
	return added, nil
}

// ExpandFavorites resolves the user's favorite codes into country records.
// Codes that no longer resolve upstream are skipped.
func (s *Service) ExpandFavorites(ctx context.Context, userID string) ([]country.Record, error) {
	codes, err := s.Favorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return []country.Record{}, nil
	}
	return s.Directory.FetchByCodes(ctx, codes)
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
