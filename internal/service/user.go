package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/visited-countries/internal/errs"
	"github.com/deppfellow/visited-countries/internal/model"
	"github.com/deppfellow/visited-countries/internal/sqlerr"
)

type UserService struct {
	users     UserStore
	countries CountryStore
}

func NewUserService(users UserStore, countries CountryStore) *UserService {
	return &UserService{users: users, countries: countries}
}

// List returns every user once, in store order.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.ListDeduplicated(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get user %d", id)
	}
	if user == nil {
		return nil, errUserNotFound()
	}
	return user, nil
}

func (s *UserService) GetByName(ctx context.Context, name string) (*model.User, error) {
	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(err, "get user %q", name)
	}
	if user == nil {
		return nil, errUserNotFound()
	}
	return user, nil
}

// Create inserts a user. A missing name or color rejected by the store is a 412.
func (s *UserService) Create(ctx context.Context, name, color string) (*model.User, error) {
	user, err := s.users.Create(ctx, name, color)
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.NotNullViolation {
			var sqlErr *sqlerr.Error
			var fieldErrors []errs.FieldError
			if errors.As(err, &sqlErr) && sqlErr.ColumnName != "" {
				fieldErrors = []errs.FieldError{{Field: sqlErr.ColumnName, Error: "is required"}}
			}
			return nil, errs.NewPreconditionFailedError(MsgUserDataRequired, true, nil, fieldErrors)
		}
		return nil, errors.Wrap(err, "create user")
	}

	zerolog.Ctx(ctx).Info().
		Int("user_id", user.ID).
		Msg("user created")

	return user, nil
}

// Rename applies only when id and the current name match. It returns the
// updated rows, empty when nothing matched.
func (s *UserService) Rename(ctx context.Context, id int, name, newName string) ([]model.User, error) {
	users, err := s.users.Rename(ctx, id, name, newName)
	if err != nil {
		return nil, errors.Wrapf(err, "rename user %d", id)
	}
	return users, nil
}

func (s *UserService) ChangeColor(ctx context.Context, id int, color string) ([]model.User, error) {
	users, err := s.users.ChangeColor(ctx, id, color)
	if err != nil {
		return nil, errors.Wrapf(err, "change color of user %d", id)
	}
	return users, nil
}

// Delete removes the user's visits and then the user. The two statements
// are not atomic. Deleting an unknown id succeeds.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.countries.DeleteAllVisited(ctx, id); err != nil {
		return errors.Wrapf(err, "delete visits of user %d", id)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return errors.Wrapf(err, "delete user %d", id)
	}

	zerolog.Ctx(ctx).Info().
		Int("user_id", id).
		Msg("user deleted")

	return nil
}
