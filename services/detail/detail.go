package detail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/internal/session"
	"github.com/AbdulWasayUl/country-explorer/services/country"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Aggregator assembles the detail page for one country.
type Aggregator struct {
	Directory Directory
	Favorites Favorites
	Identity  Identity
}

func NewAggregator(dir Directory, favs Favorites, identity Identity) *Aggregator {
	return &Aggregator{Directory: dir, Favorites: favs, Identity: identity}
}

// Load fetches the country and its resolved neighbours. The favorites read
// runs alongside and never fails the load.
func (a *Aggregator) Load(ctx context.Context, code string) (*ViewModel, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrMissingCode
	}

	user, signedIn := a.currentUser()

	var (
		record  country.Record
		borders []BorderRef
		favs    []string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r, err := a.Directory.FetchByCode(gctx, code)
		if err != nil {
			return err
		}
		record = r

		if len(r.Borders) == 0 {
			borders = []BorderRef{}
			return nil
		}
		neighbours, err := a.Directory.FetchByCodes(gctx, r.Borders)
		if err != nil {
			return fmt.Errorf("fetch borders of %s: %w", r.Codes.Alpha3, err)
		}
		borders = lo.Map(neighbours, func(n country.Record, _ int) BorderRef {
			return BorderRef{Name: n.Names.Common, Code: n.Codes.Alpha3}
		})
		return nil
	})

	if signedIn {
		g.Go(func() error {
			codes, err := a.Favorites.Favorites(gctx, user.ID)
			if err != nil {
				logger.Warn("Error checking favorites for user %s: %v", user.ID, err)
				return nil
			}
			favs = codes
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Error loading country %s: %v", code, err)
		return nil, err
	}

	return &ViewModel{
		Country:         record,
		BorderCountries: borders,
		// the route may carry an alpha2 code while favorites hold alpha3
		IsFavorite:  lo.Contains(favs, record.Codes.Alpha3) || lo.Contains(favs, code),
		CanFavorite: signedIn,
	}, nil
}

// ToggleFavorite flips the favorite state shown in vm. It does nothing when
// no user is signed in. A failed write is logged and vm is left as it was.
func (a *Aggregator) ToggleFavorite(ctx context.Context, vm *ViewModel) error {
	user, ok := a.currentUser()
	if !ok || vm == nil {
		return nil
	}

	added, err := a.Favorites.ToggleFavorite(ctx, user.ID, vm.Country.Codes.Alpha3)
	if err != nil {
		logger.Warn("Error updating favorites for user %s: %v", user.ID, err)
		return err
	}
	vm.IsFavorite = added
	return nil
}

// currentUser reports no user when favorites are not wired.
func (a *Aggregator) currentUser() (session.User, bool) {
	if a.Identity == nil || a.Favorites == nil {
		return session.User{}, false
	}
	return a.Identity.CurrentUser()
}

// Classify maps a Load error to the page state it should produce.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeReady
	case errors.Is(err, ErrMissingCode):
		return OutcomeMissingCode
	case errors.Is(err, country.ErrNotFound), errors.Is(err, country.ErrInvalidCode):
		return OutcomeNotFound
	default:
		return OutcomeUnavailable
	}
}
