// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// input from the handler, applies the domain rules (country name
// resolution, constraint to error mapping, the user delete cascade) and
// calls the stores. Every error it returns for an expected outcome is an
// *errs.HTTPError; anything else is an unexpected store failure.
package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/deppfellow/visited-countries/internal/model"
	"github.com/deppfellow/visited-countries/internal/repository"
	"github.com/deppfellow/visited-countries/internal/server"
)

// UserStore persists users.
type UserStore interface {
	ListDeduplicated(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByName(ctx context.Context, name string) (*model.User, error)
	Create(ctx context.Context, name, color string) (*model.User, error)
	Rename(ctx context.Context, id int, name, newName string) ([]model.User, error)
	ChangeColor(ctx context.Context, id int, color string) ([]model.User, error)
	Delete(ctx context.Context, id int) error
}

// CountryStore reads the reference countries and persists visits.
type CountryStore interface {
	FindByNameFragment(ctx context.Context, fragment string) (*model.Country, error)
	FindByName(ctx context.Context, name string) (*model.Country, error)
	ListVisitedCodes(ctx context.Context, userID int) ([]string, error)
	AddVisited(ctx context.Context, userID int, code string) (*model.VisitedCountry, error)
	DeleteVisited(ctx context.Context, userID int, code string) (bool, error)
	DeleteAllVisited(ctx context.Context, userID int) error
}

type Services struct {
	Users   *UserService
	Visited *VisitedService
}

// NewServices builds the services on top of the server's repositories.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	if repos == nil || repos.Users == nil || repos.Countries == nil {
		return nil, errors.New("repositories are not initialized")
	}

	if s != nil && s.Logger != nil {
		s.Logger.Debug().Msg("services initialized")
	}
	return NewServicesWithStores(repos.Users, repos.Countries), nil
}

// NewServicesWithStores wires the services to arbitrary stores, e.g. a
// repository.MemoryStore.
func NewServicesWithStores(users UserStore, countries CountryStore) *Services {
	return &Services{
		Users:   NewUserService(users, countries),
		Visited: NewVisitedService(users, countries),
	}
}
