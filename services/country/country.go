package country

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/AbdulWasayUl/country-explorer/internal/api"
	"github.com/AbdulWasayUl/country-explorer/internal/config"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/models"
	"github.com/samber/lo"
)

// listingFields is sent with /all, which the upstream refuses without a field
// list. It covers everything the listing and featured views read.
const listingFields = "name,cca2,cca3,capital,region,subregion,population,area,flags"

// Service is the directory client for the REST Countries API. Each method
// uses exactly one upstream filter mode; callers combine modes client-side.
type Service struct {
	Config  *config.Config
	Client  *api.Client
	BaseURL string
}

func NewService(cfg *config.Config) *Service {
	rlSettings := models.RateLimitSettings{
		MaxRequests: cfg.RestCountriesMaxRequests,
		PerDuration: cfg.RestCountriesPerDuration,
	}

	return &Service{
		Config:  cfg,
		Client:  api.NewClient(rlSettings, cfg.HTTPTimeout),
		BaseURL: strings.TrimRight(cfg.RestCountriesAPIBaseURL, "/"),
	}
}

// FetchAll returns the full, unfiltered dataset.
func (s *Service) FetchAll(ctx context.Context) ([]Record, error) {
	records, _, err := s.fetchList(ctx, s.BaseURL+"/all?fields="+listingFields)
	return records, err
}

// FetchByRegion filters server-side. The caller is responsible for passing one
// of Regions.
func (s *Service) FetchByRegion(ctx context.Context, region Region) ([]Record, error) {
	endpoint := fmt.Sprintf("%s/region/%s", s.BaseURL, url.PathEscape(string(region)))
	records, _, err := s.fetchList(ctx, endpoint)
	return records, err
}

// SearchByName matches on name upstream. No matches is an empty result.
func (s *Service) SearchByName(ctx context.Context, query string) ([]Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	endpoint := fmt.Sprintf("%s/name/%s", s.BaseURL, url.PathEscape(query))
	records, _, err := s.fetchList(ctx, endpoint)
	return records, err
}

// FetchByCode looks up a single country by alpha2 or alpha3 code.
func (s *Service) FetchByCode(ctx context.Context, code string) (Record, error) {
	code = normalizeCode(code)
	if !validCode(code) {
		return Record{}, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}

	records, matched, err := s.fetchList(ctx, fmt.Sprintf("%s/alpha/%s", s.BaseURL, code))
	if err != nil {
		return Record{}, err
	}
	if !matched || len(records) == 0 {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}

	rec, ok := lo.Find(records, func(r Record) bool { return r.HasCode(code) })
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	return rec, nil
}

// FetchByCodes resolves a batch of codes in one request. Codes without an
// upstream match are left out; the result follows the order of codes.
func (s *Service) FetchByCodes(ctx context.Context, codes []string) ([]Record, error) {
	wanted := lo.Uniq(lo.Filter(lo.Map(codes, func(c string, _ int) string {
		return normalizeCode(c)
	}), func(c string, _ int) bool {
		return validCode(c)
	}))
	if len(wanted) == 0 {
		return []Record{}, nil
	}

	endpoint := fmt.Sprintf("%s/alpha?codes=%s", s.BaseURL, strings.Join(wanted, ","))
	// the batch endpoint answers 400 when none of the codes exist
	records, _, err := s.fetchList(ctx, endpoint, http.StatusBadRequest)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(wanted))
	used := make(map[string]struct{}, len(records))
	for _, code := range wanted {
		rec, ok := lo.Find(records, func(r Record) bool { return r.HasCode(code) })
		if !ok {
			logger.Debug("country code %s did not resolve upstream", code)
			continue
		}
		if _, dup := used[rec.Codes.Alpha3]; dup {
			continue
		}
		used[rec.Codes.Alpha3] = struct{}{}
		out = append(out, rec)
	}
	return out, nil
}

// fetchList runs one GET and normalizes the body. A 404, or any of the extra
// miss statuses, means nothing matched: it yields an empty result and
// matched=false rather than an error.
func (s *Service) fetchList(ctx context.Context, endpoint string, miss ...int) ([]Record, bool, error) {
	body, err := s.Client.Do(ctx, endpoint, map[string]string{"Accept": "application/json"})
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) && (se.StatusCode == http.StatusNotFound || lo.Contains(miss, se.StatusCode)) {
			return []Record{}, false, nil
		}
		return nil, false, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	records, err := NormalizeBatch(body)
	if err != nil {
		return nil, false, err
	}
	return records, true, nil
}
