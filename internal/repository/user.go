package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/visited-countries/internal/model"
	"github.com/deppfellow/visited-countries/internal/sqlerr"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// ListDeduplicated returns every user once, keeping the first row seen per id.
func (r *UserRepository) ListDeduplicated(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, listUsersQuery)
	if err != nil {
		return nil, sqlerr.Classify(err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, sqlerr.Classify(err)
	}

	return dedupeUsers(users), nil
}

// GetByID returns nil, nil when no user has the id.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return r.getOne(ctx, getUserByIDQuery, id)
}

// GetByName matches the name exactly. It returns nil, nil when nobody matches.
func (r *UserRepository) GetByName(ctx context.Context, name string) (*model.User, error) {
	return r.getOne(ctx, getUserByNameQuery, name)
}

func (r *UserRepository) Create(ctx context.Context, name, color string) (*model.User, error) {
	rows, err := r.db.Query(ctx, insertUserQuery, name, color)
	if err != nil {
		return nil, sqlerr.Classify(err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, sqlerr.Classify(err)
	}

	return &user, nil
}

// Rename only touches the row whose id and current name both match.
func (r *UserRepository) Rename(ctx context.Context, id int, name, newName string) ([]model.User, error) {
	return r.update(ctx, renameUserQuery, newName, name, id)
}

func (r *UserRepository) ChangeColor(ctx context.Context, id int, color string) ([]model.User, error) {
	return r.update(ctx, changeUserColorQuery, color, id)
}

// Delete succeeds when no row matched.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.Exec(ctx, deleteUserQuery, id); err != nil {
		return sqlerr.Classify(err)
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, sqlerr.Classify(err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, sqlerr.Classify(err)
	}

	return &user, nil
}

func (r *UserRepository) update(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, sqlerr.Classify(err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, sqlerr.Classify(err)
	}
	if users == nil {
		users = []model.User{}
	}

	return users, nil
}

func dedupeUsers(users []model.User) []model.User {
	seen := make(map[int]struct{}, len(users))
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}
	return out
}
