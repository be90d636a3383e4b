package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/visited-countries/internal/model"
	"github.com/deppfellow/visited-countries/internal/sqlerr"
)

var userColumns = []string{"id", "name", "color"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestUserRepositoryListDeduplicated(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(listUsersQuery).WillReturnRows(
		pgxmock.NewRows(userColumns).
			AddRow(1, "Ana", "blue").
			AddRow(2, "Bea", "red").
			AddRow(1, "Ana", "blue"),
	)

	users, err := NewUserRepository(mock).ListDeduplicated(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.User{
		{ID: 1, Name: "Ana", Color: "blue"},
		{ID: 2, Name: "Bea", Color: "red"},
	}, users)
}

func TestUserRepositoryListEmpty(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(listUsersQuery).WillReturnRows(pgxmock.NewRows(userColumns))

	users, err := NewUserRepository(mock).ListDeduplicated(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepositoryGetByID(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(getUserByIDQuery).WithArgs(1).
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(1, "Ana", "blue"))

	user, err := NewUserRepository(mock).GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ana", user.Name)
}

func TestUserRepositoryGetByIDMissing(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(getUserByIDQuery).WithArgs(42).
		WillReturnRows(pgxmock.NewRows(userColumns))

	user, err := NewUserRepository(mock).GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepositoryGetByName(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(getUserByNameQuery).WithArgs("Bea").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(2, "Bea", "red"))

	user, err := NewUserRepository(mock).GetByName(context.Background(), "Bea")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 2, user.ID)
}

func TestUserRepositoryCreate(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(insertUserQuery).WithArgs("Ana", "blue").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(7, "Ana", "blue"))

	user, err := NewUserRepository(mock).Create(context.Background(), "Ana", "blue")
	require.NoError(t, err)
	assert.Equal(t, &model.User{ID: 7, Name: "Ana", Color: "blue"}, user)
}

func TestUserRepositoryCreateNotNull(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(insertUserQuery).WithArgs("", "blue").
		WillReturnError(&pgconn.PgError{Code: "23502", TableName: "users", ColumnName: "name"})

	_, err := NewUserRepository(mock).Create(context.Background(), "", "blue")
	require.Error(t, err)
	assert.Equal(t, sqlerr.NotNullViolation, sqlerr.ErrCode(err))
}

func TestUserRepositoryRename(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(renameUserQuery).WithArgs("Bea", "Ana", 1).
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(1, "Bea", "blue"))

	users, err := NewUserRepository(mock).Rename(context.Background(), 1, "Ana", "Bea")
	require.NoError(t, err)
	assert.Equal(t, []model.User{{ID: 1, Name: "Bea", Color: "blue"}}, users)
}

func TestUserRepositoryRenameNoMatch(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(renameUserQuery).WithArgs("Bea", "Zed", 1).
		WillReturnRows(pgxmock.NewRows(userColumns))

	users, err := NewUserRepository(mock).Rename(context.Background(), 1, "Zed", "Bea")
	require.NoError(t, err)
	assert.Equal(t, []model.User{}, users)
}

func TestUserRepositoryChangeColor(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(changeUserColorQuery).WithArgs("green", 1).
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(1, "Ana", "green"))

	users, err := NewUserRepository(mock).ChangeColor(context.Background(), 1, "green")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "green", users[0].Color)
}

func TestUserRepositoryDelete(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec(deleteUserQuery).WithArgs(99).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, NewUserRepository(mock).Delete(context.Background(), 99))
}
