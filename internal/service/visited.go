package service

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/visited-countries/internal/errs"
	"github.com/deppfellow/visited-countries/internal/model"
	"github.com/deppfellow/visited-countries/internal/sqlerr"
)

type VisitedService struct {
	users     UserStore
	countries CountryStore
}

func NewVisitedService(users UserStore, countries CountryStore) *VisitedService {
	return &VisitedService{users: users, countries: countries}
}

// List returns the country codes the user visited, in store order.
func (s *VisitedService) List(ctx context.Context, userID int) ([]string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "get user %d", userID)
	}
	if user == nil {
		return nil, errUserNotFound()
	}

	codes, err := s.countries.ListVisitedCodes(ctx, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "list visits of user %d", userID)
	}
	if len(codes) == 0 {
		return nil, errs.NewNotFoundError(MsgNoVisitedCountries, true, &codeNoVisitedCountries)
	}

	return codes, nil
}

// Add resolves country by a case-insensitive name fragment and records the visit.
func (s *VisitedService) Add(ctx context.Context, userID int, country string) (*model.VisitedCountry, error) {
	fragment := strings.ToLower(country)

	match, err := s.countries.FindByNameFragment(ctx, fragment)
	if err != nil {
		return nil, errors.Wrapf(err, "find country %q", fragment)
	}
	if match == nil {
		return nil, errs.NewPreconditionFailedError(MsgCountryNotInList, true, &codeCountryUnknown, nil)
	}

	visited, err := s.countries.AddVisited(ctx, userID, match.Code)
	if err != nil {
		switch sqlerr.ErrCode(err) {
		case sqlerr.UniqueViolation:
			return nil, errs.NewPreconditionFailedError(MsgVisitAlreadyExists, true, &codeVisitAlreadyExists, nil)
		case sqlerr.ForeignKeyViolation:
			return nil, errUserNotFound()
		}
		return nil, errors.Wrapf(err, "add %s to user %d", match.Code, userID)
	}

	zerolog.Ctx(ctx).Info().
		Int("user_id", userID).
		Str("country_code", visited.CountryCode).
		Msg("visited country added")

	return visited, nil
}

// Remove resolves country by its exact name, after upper-casing its first
// letter, and deletes the visit.
func (s *VisitedService) Remove(ctx context.Context, userID int, country string) error {
	name := capitalizeFirst(country)

	match, err := s.countries.FindByName(ctx, name)
	if err != nil {
		return errors.Wrapf(err, "find country %q", name)
	}
	if match == nil {
		return errs.NewNotFoundError(MsgCountryDoesNotExist, true, &codeCountryUnknown)
	}

	deleted, err := s.countries.DeleteVisited(ctx, userID, match.Code)
	if err != nil {
		return errors.Wrapf(err, "remove %s from user %d", match.Code, userID)
	}
	if !deleted {
		return errs.NewNotFoundError(MsgVisitNotFound, true, &codeVisitNotFound)
	}

	zerolog.Ctx(ctx).Info().
		Int("user_id", userID).
		Str("country_code", match.Code).
		Msg("visited country removed")

	return nil
}

// capitalizeFirst upper-cases the first rune and leaves the rest untouched.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
