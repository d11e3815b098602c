package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/services/country"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	ErrInvalidRegion   = errors.New("unknown region")
	ErrInvalidSortKey  = errors.New("unknown sort key")
	ErrInvalidViewMode = errors.New("unknown view mode")
)

// Plan picks the upstream call for s. The upstream cannot combine a region
// filter with a name search, so when both are set the search goes upstream
// and the region is applied to the results locally.
func Plan(s QueryState) FetchPlan {
	search := strings.TrimSpace(s.Search)
	switch {
	case search != "" && s.Region != "":
		return FetchPlan{Mode: FetchBySearch, Search: search, ClientRegion: s.Region}
	case search != "":
		return FetchPlan{Mode: FetchBySearch, Search: search}
	case s.Region != "":
		return FetchPlan{Mode: FetchByRegion, Region: s.Region}
	default:
		return FetchPlan{Mode: FetchAll}
	}
}

// Controller owns the listing page state. Filter changes fetch; sort and view
// changes only re-derive. Every fetch carries a sequence number and a
// response is applied only if no newer fetch has started since.
type Controller struct {
	dir Directory
	url URLWriter

	mu      sync.Mutex
	state   QueryState
	results []country.Record // name-ascending baseline
	err     error
	loading bool
	seq     uint64
}

// NewController returns a controller in the default state. w may be nil when
// there is no router to mirror the query into.
func NewController(dir Directory, w URLWriter) *Controller {
	return &Controller{dir: dir, url: w, state: DefaultState()}
}

// Mount seeds search and region from the URL and fetches. It is also the
// entry point for external navigation to a new URL. It never writes the URL.
func (c *Controller) Mount(ctx context.Context, rawQuery string) error {
	search, region := DecodeQuery(rawQuery)
	return c.update(ctx, false, func(s *QueryState) error {
		s.Search = search
		s.Region = region
		return nil
	})
}

// SetSearch stores text trimmed, as it would read back from the URL.
func (c *Controller) SetSearch(ctx context.Context, text string) error {
	return c.update(ctx, true, func(s *QueryState) error {
		s.Search = strings.TrimSpace(text)
		return nil
	})
}

// SetRegion filters by region; an empty region clears the filter.
func (c *Controller) SetRegion(ctx context.Context, region string) error {
	return c.update(ctx, true, func(s *QueryState) error {
		if strings.TrimSpace(region) == "" {
			s.Region = ""
			return nil
		}
		r, ok := country.ParseRegion(region)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidRegion, region)
		}
		s.Region = r
		return nil
	})
}

// ClearFilters empties search and region, which fetches everything.
func (c *Controller) ClearFilters(ctx context.Context) error {
	return c.update(ctx, true, func(s *QueryState) error {
		s.Search = ""
		s.Region = ""
		return nil
	})
}

func (c *Controller) SortBy(key SortKey) error {
	if !lo.Contains([]SortKey{SortByName, SortByPopulation, SortByRegion}, key) {
		return fmt.Errorf("%w: %q", ErrInvalidSortKey, key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = nextSort(c.state, key)
	return nil
}

func (c *Controller) SetViewMode(mode ViewMode) error {
	if mode != ViewGrid && mode != ViewList {
		return fmt.Errorf("%w: %q", ErrInvalidViewMode, mode)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ViewMode = mode
	return nil
}

func (c *Controller) State() QueryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// QueryString is the URL query for the current state.
func (c *Controller) QueryString() string {
	return EncodeQuery(c.State())
}

// View derives the rendered list from the baseline and the chosen sort.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		State:     c.state,
		Countries: Sort(c.results, c.state.SortKey, c.state.SortOrder),
		Err:       c.err,
		Loading:   c.loading,
	}
}

func (c *Controller) update(ctx context.Context, pushURL bool, mutate func(*QueryState) error) error {
	c.mu.Lock()
	next := c.state
	if err := mutate(&next); err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = next
	c.seq++
	seq := c.seq
	c.loading = true
	if pushURL && c.url != nil {
		c.url.ReplaceQuery(EncodeQuery(next))
	}
	c.mu.Unlock()

	return c.fetch(ctx, seq, Plan(next))
}

func (c *Controller) fetch(ctx context.Context, seq uint64, plan FetchPlan) error {
	reqID := uuid.NewString()
	logger.Debug("listing request %s seq=%d mode=%s search=%q region=%q client_region=%q",
		reqID, seq, plan.Mode, plan.Search, plan.Region, plan.ClientRegion)

	records, err := c.run(ctx, plan)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		logger.Debug("listing request %s seq=%d superseded by seq=%d, discarding", reqID, seq, c.seq)
		return nil
	}
	c.loading = false

	if err != nil {
		logger.Error("listing request %s failed: %v", reqID, err)
		c.results = nil
		c.err = err
		return err
	}

	baseline := Sort(records, SortByName, Ascending)
	if plan.ClientRegion != "" {
		baseline = lo.Filter(baseline, func(r country.Record, _ int) bool {
			return r.Region == plan.ClientRegion
		})
	}
	c.results = baseline
	c.err = nil
	return nil
}

func (c *Controller) run(ctx context.Context, plan FetchPlan) ([]country.Record, error) {
	switch plan.Mode {
	case FetchByRegion:
		return c.dir.FetchByRegion(ctx, plan.Region)
	case FetchBySearch:
		return c.dir.SearchByName(ctx, plan.Search)
	default:
		return c.dir.FetchAll(ctx)
	}
}
