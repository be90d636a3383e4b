package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/visited-countries/internal/model"
	"github.com/deppfellow/visited-countries/internal/sqlerr"
)

type CountryRepository struct {
	db DBTX
}

func NewCountryRepository(db DBTX) *CountryRepository {
	return &CountryRepository{db: db}
}

// FindByNameFragment returns the first reference country whose name contains
// fragment, ignoring case. nil, nil when nothing matches.
func (r *CountryRepository) FindByNameFragment(ctx context.Context, fragment string) (*model.Country, error) {
	return r.findOne(ctx, findCountryByNameFragmentQuery, fragment)
}

// FindByName matches country_name exactly.
func (r *CountryRepository) FindByName(ctx context.Context, name string) (*model.Country, error) {
	return r.findOne(ctx, findCountryByNameQuery, name)
}

func (r *CountryRepository) ListVisitedCodes(ctx context.Context, userID int) ([]string, error) {
	rows, err := r.db.Query(ctx, listVisitedCountryCodesQuery, userID)
	if err != nil {
		return nil, sqlerr.Classify(err)
	}

	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, sqlerr.Classify(err)
	}

	out := make([]string, 0, len(codes))
	for _, code := range codes {
		out = append(out, strings.TrimSpace(code))
	}
	return out, nil
}

func (r *CountryRepository) AddVisited(ctx context.Context, userID int, code string) (*model.VisitedCountry, error) {
	rows, err := r.db.Query(ctx, insertVisitedCountryQuery, userID, code)
	if err != nil {
		return nil, sqlerr.Classify(err)
	}

	visited, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.VisitedCountry])
	if err != nil {
		return nil, sqlerr.Classify(err)
	}
	visited.CountryCode = strings.TrimSpace(visited.CountryCode)

	return &visited, nil
}

// DeleteVisited reports whether a row was removed.
func (r *CountryRepository) DeleteVisited(ctx context.Context, userID int, code string) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteVisitedCountryQuery, userID, code)
	if err != nil {
		return false, sqlerr.Classify(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CountryRepository) DeleteAllVisited(ctx context.Context, userID int) error {
	if _, err := r.db.Exec(ctx, deleteAllVisitedCountriesQuery, userID); err != nil {
		return sqlerr.Classify(err)
	}
	return nil
}

func (r *CountryRepository) findOne(ctx context.Context, query, arg string) (*model.Country, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, sqlerr.Classify(err)
	}

	country, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Country])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, sqlerr.Classify(err)
	}
	country.Code = strings.TrimSpace(country.Code)

	return &country, nil
}
