package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/visited-countries/internal/errs"
	"github.com/deppfellow/visited-countries/internal/model"
	"github.com/deppfellow/visited-countries/internal/repository"
	"github.com/deppfellow/visited-countries/internal/server"
)

func newTestServices(t *testing.T) (*Services, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore(
		model.Country{Code: "FR", Name: "France"},
		model.Country{Code: "NE", Name: "Niger"},
		model.Country{Code: "NG", Name: "Nigeria"},
		model.Country{Code: "CI", Name: "Côte d'Ivoire"},
		model.Country{Code: "US", Name: "United States"},
	)
	return NewServicesWithStores(store, store), store
}

func requireHTTPError(t *testing.T, err error, status int, message string) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
	return httpErr
}

func TestNewServices(t *testing.T) {
	logger := zerolog.Nop()
	s := &server.Server{Logger: &logger}

	_, err := NewServices(s, nil)
	assert.Error(t, err)

	_, err = NewServices(s, &repository.Repositories{Users: repository.NewUserRepository(nil)})
	assert.Error(t, err)

	svc, err := NewServices(s, &repository.Repositories{
		Users:     repository.NewUserRepository(nil),
		Countries: repository.NewCountryRepository(nil),
	})
	require.NoError(t, err)
	assert.NotNil(t, svc.Users)
	assert.NotNil(t, svc.Visited)
}

func TestUserServiceListDeduplicates(t *testing.T) {
	svc, store := newTestServices(t)
	store.SeedUser(model.User{ID: 1, Name: "Ana", Color: "blue"})
	store.SeedUser(model.User{ID: 2, Name: "Bea", Color: "red"})
	store.SeedUser(model.User{ID: 1, Name: "Ana", Color: "blue"})

	users, err := svc.Users.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.User{
		{ID: 1, Name: "Ana", Color: "blue"},
		{ID: 2, Name: "Bea", Color: "red"},
	}, users)
}

func TestUserServiceGetMissing(t *testing.T) {
	svc, _ := newTestServices(t)

	_, err := svc.Users.GetByID(context.Background(), 42)
	requireHTTPError(t, err, http.StatusNotFound, MsgUserNotFound)

	_, err = svc.Users.GetByName(context.Background(), "Nobody")
	requireHTTPError(t, err, http.StatusNotFound, MsgUserNotFound)
}

func TestUserServiceCreateAndFetch(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	created, err := svc.Users.Create(ctx, "Ana", "blue")
	require.NoError(t, err)

	byID, err := svc.Users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byName, err := svc.Users.GetByName(ctx, "Ana")
	require.NoError(t, err)
	assert.Equal(t, created, byName)
}

func TestUserServiceCreateMissingColor(t *testing.T) {
	svc, _ := newTestServices(t)

	_, err := svc.Users.Create(context.Background(), "Ana", "")
	httpErr := requireHTTPError(t, err, http.StatusPreconditionFailed, MsgUserDataRequired)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "color", httpErr.Errors[0].Field)
}

func TestUserServiceRenameRequiresCurrentName(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	user, err := svc.Users.Create(ctx, "Ana", "blue")
	require.NoError(t, err)

	updated, err := svc.Users.Rename(ctx, user.ID, "Wrong", "Bea")
	require.NoError(t, err)
	assert.Empty(t, updated)

	updated, err = svc.Users.Rename(ctx, user.ID, "Ana", "Bea")
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "Bea", updated[0].Name)
}

func TestUserServiceChangeColor(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	user, err := svc.Users.Create(ctx, "Ana", "blue")
	require.NoError(t, err)

	updated, err := svc.Users.ChangeColor(ctx, user.ID, "green")
	require.NoError(t, err)
	assert.Equal(t, []model.User{{ID: user.ID, Name: "Ana", Color: "green"}}, updated)

	updated, err = svc.Users.ChangeColor(ctx, 999, "green")
	require.NoError(t, err)
	assert.Empty(t, updated)
}

func TestUserServiceDeleteCascades(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	user, err := svc.Users.Create(ctx, "Ana", "blue")
	require.NoError(t, err)
	_, err = svc.Visited.Add(ctx, user.ID, "France")
	require.NoError(t, err)

	require.NoError(t, svc.Users.Delete(ctx, user.ID))

	_, err = svc.Users.GetByID(ctx, user.ID)
	requireHTTPError(t, err, http.StatusNotFound, MsgUserNotFound)

	_, err = svc.Visited.List(ctx, user.ID)
	requireHTTPError(t, err, http.StatusNotFound, MsgUserNotFound)
}

func TestUserServiceDeleteUnknown(t *testing.T) {
	svc, _ := newTestServices(t)
	assert.NoError(t, svc.Users.Delete(context.Background(), 999))
}

func TestVisitedServiceList(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Visited.List(ctx, 1)
	requireHTTPError(t, err, http.StatusNotFound, MsgUserNotFound)

	user, err := svc.Users.Create(ctx, "Ana", "blue")
	require.NoError(t, err)

	_, err = svc.Visited.List(ctx, user.ID)
	requireHTTPError(t, err, http.StatusNotFound, MsgNoVisitedCountries)

	_, err = svc.Visited.Add(ctx, user.ID, "fra")
	require.NoError(t, err)
	_, err = svc.Visited.Add(ctx, user.ID, "UNITED")
	require.NoError(t, err)

	codes, err := svc.Visited.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"FR", "US"}, codes)
}

func TestVisitedServiceAdd(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	user, err := svc.Users.Create(ctx, "Ana", "blue")
	require.NoError(t, err)

	tests := []struct {
		name     string
		userID   int
		country  string
		wantCode string
		status   int
		message  string
	}{
		{name: "fragment", userID: user.ID, country: "FRAN", wantCode: "FR"},
		{name: "exact name wins over longer match", userID: user.ID, country: "niger", wantCode: "NE"},
		{name: "duplicate", userID: user.ID, country: "France", status: http.StatusPreconditionFailed, message: MsgVisitAlreadyExists},
		{name: "unknown country", userID: user.ID, country: "Atlantis", status: http.StatusPreconditionFailed, message: MsgCountryNotInList},
		{name: "unknown user", userID: 999, country: "Nigeria", status: http.StatusNotFound, message: MsgUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visited, err := svc.Visited.Add(ctx, tt.userID, tt.country)
			if tt.status != 0 {
				requireHTTPError(t, err, tt.status, tt.message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &model.VisitedCountry{UserID: tt.userID, CountryCode: tt.wantCode}, visited)
		})
	}
}

func TestVisitedServiceRemove(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	user, err := svc.Users.Create(ctx, "Ana", "blue")
	require.NoError(t, err)
	_, err = svc.Visited.Add(ctx, user.ID, "france")
	require.NoError(t, err)

	err = svc.Visited.Remove(ctx, user.ID, "Atlantis")
	requireHTTPError(t, err, http.StatusNotFound, MsgCountryDoesNotExist)

	err = svc.Visited.Remove(ctx, user.ID, "nigeria")
	requireHTTPError(t, err, http.StatusNotFound, MsgVisitNotFound)

	require.NoError(t, svc.Visited.Remove(ctx, user.ID, "france"))

	err = svc.Visited.Remove(ctx, user.ID, "France")
	requireHTTPError(t, err, http.StatusNotFound, MsgVisitNotFound)
}

func TestVisitedServiceRemoveLeavesOtherRows(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	ana, err := svc.Users.Create(ctx, "Ana", "blue")
	require.NoError(t, err)
	bea, err := svc.Users.Create(ctx, "Bea", "red")
	require.NoError(t, err)

	for _, country := range []string{"france", "nigeria"} {
		_, err = svc.Visited.Add(ctx, ana.ID, country)
		require.NoError(t, err)
	}
	_, err = svc.Visited.Add(ctx, bea.ID, "france")
	require.NoError(t, err)

	require.NoError(t, svc.Visited.Remove(ctx, ana.ID, "france"))

	codes, err := svc.Visited.List(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"NG"}, codes)

	codes, err = svc.Visited.List(ctx, bea.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"FR"}, codes)
}

func TestCapitalizeFirst(t *testing.T) {
	tests := map[string]string{
		"france":        "France",
		"united States": "United States",
		"côte d'Ivoire": "Côte d'Ivoire",
		"éire":          "Éire",
		"":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, capitalizeFirst(in), in)
	}
}
