package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/AbdulWasayUl/country-explorer/services/country"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	known map[string]country.Record
	calls [][]string
}

func (d *fakeDirectory) FetchByCodes(ctx context.Context, codes []string) ([]country.Record, error) {
	d.calls = append(d.calls, codes)
	out := []country.Record{}
	for _, c := range codes {
		if r, ok := d.known[c]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func record(alpha3, name string) country.Record {
	return country.Record{Names: country.Names{Common: name}, Codes: country.Codes{Alpha3: alpha3}}
}

type failingStore struct{ err error }

func (s failingStore) Load(ctx context.Context, userID string) ([]string, error) { return nil, s.err }
func (s failingStore) Save(ctx context.Context, userID string, codes []string) error {
	return s.err
}

type saveFailStore struct {
	*MemoryStore
}

func (s saveFailStore) Save(ctx context.Context, userID string, codes []string) error {
	return errors.New("write rejected")
}

func TestToggleFavorite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "user-1", []string{"FRA", "DEU"}))
	svc := NewService(store, &fakeDirectory{})

	added, err := svc.ToggleFavorite(ctx, "user-1", "FRA")
	require.NoError(t, err)
	assert.False(t, added)

	codes, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"DEU"}, codes)

	added, err = svc.ToggleFavorite(ctx, "user-1", "fra")
	require.NoError(t, err)
	assert.True(t, added)

	codes, err = store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"DEU", "FRA"}, codes)
}

func TestToggleFavorite_CreatesListLazily(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewService(store, &fakeDirectory{})

	added, err := svc.ToggleFavorite(ctx, "new-user", "PER")
	require.NoError(t, err)
	assert.True(t, added)

	codes, err := store.Load(ctx, "new-user")
	require.NoError(t, err)
	assert.Equal(t, []string{"PER"}, codes)
}

func TestToggleFavorite_Errors(t *testing.T) {
	tests := []struct {
		name    string
		store   Store
		userID  string
		code    string
		wantErr error
		wantMsg string
	}{
		{name: "anonymous", store: NewMemoryStore(), userID: "", code: "FRA", wantErr: ErrUnauthenticated},
		{name: "empty code", store: NewMemoryStore(), userID: "u", code: " ", wantMsg: "empty country code"},
		{name: "load fails", store: failingStore{err: errors.New("db down")}, userID: "u", code: "FRA", wantMsg: "db down"},
		{name: "save fails", store: saveFailStore{NewMemoryStore()}, userID: "u", code: "FRA", wantMsg: "write rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.store, &fakeDirectory{})

			added, err := svc.ToggleFavorite(context.Background(), tt.userID, tt.code)

			require.Error(t, err)
			assert.False(t, added)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestIsFavorite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "user-1", []string{"FRA"}))
	svc := NewService(store, &fakeDirectory{})

	tests := []struct {
		name   string
		userID string
		code   string
		want   bool
	}{
		{"member", "user-1", "FRA", true},
		{"member lower case", "user-1", "fra", true},
		{"not a member", "user-1", "DEU", false},
		{"no document", "user-2", "FRA", false},
		{"anonymous", "", "FRA", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsFavorite(ctx, tt.userID, tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandFavorites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "user-1", []string{"DEU", "XXX", "FRA"}))
	require.NoError(t, store.Save(ctx, "user-empty", []string{}))

	dir := &fakeDirectory{known: map[string]country.Record{
		"FRA": record("FRA", "France"),
		"DEU": record("DEU", "Germany"),
	}}
	svc := NewService(store, dir)

	tests := []struct {
		name      string
		userID    string
		wantCodes []string
		wantCalls int
	}{
		{"resolves known codes", "user-1", []string{"DEU", "FRA"}, 1},
		{"anonymous is empty", "", []string{}, 0},
		{"no document is empty", "user-none", []string{}, 0},
		{"empty list is empty", "user-empty", []string{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir.calls = nil

			records, err := svc.ExpandFavorites(ctx, tt.userID)

			require.NoError(t, err)
			got := make([]string, 0, len(records))
			for _, r := range records {
				got = append(got, r.Codes.Alpha3)
			}
			assert.Equal(t, tt.wantCodes, got)
			assert.Len(t, dir.calls, tt.wantCalls)
		})
	}
}

func TestExpandFavorites_StoreError(t *testing.T) {
	svc := NewService(failingStore{err: errors.New("db down")}, &fakeDirectory{})

	_, err := svc.ExpandFavorites(context.Background(), "user-1")
	assert.Error(t, err)
}
