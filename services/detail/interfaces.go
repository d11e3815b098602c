package detail

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/AbdulWasayUl/country-explorer/internal/session"
	"github.com/AbdulWasayUl/country-explorer/services/country"
)

type Directory interface {
	FetchByCode(ctx context.Context, code string) (country.Record, error)
	FetchByCodes(ctx context.Context, codes []string) ([]country.Record, error)
}

type Favorites interface {
	Favorites(ctx context.Context, userID string) ([]string, error)
	ToggleFavorite(ctx context.Context, userID, code string) (bool, error)
}

type Identity interface {
	CurrentUser() (session.User, bool)
}
