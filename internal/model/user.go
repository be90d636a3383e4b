package model

import "github.com/deppfellow/visited-countries/internal/validation"

// User is a row of the users table.
type User struct {
	ID    int    `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Color string `json:"color" db:"color"`
}

// GetUserByIDPayload addresses a user by the :userId path parameter.
type GetUserByIDPayload struct {
	ID int `param:"userId" json:"-" form:"-"`
}

func (p *GetUserByIDPayload) Validate() error {
	return validation.Struct(p)
}

// GetUserByNamePayload addresses a user by the :userName path parameter.
type GetUserByNamePayload struct {
	Name string `param:"userName" json:"-" form:"-" validate:"required"`
}

func (p *GetUserByNamePayload) Validate() error {
	return validation.Struct(p)
}

// ListUsersPayload carries no input.
type ListUsersPayload struct{}

func (p *ListUsersPayload) Validate() error {
	return nil
}

// UserDataRequiredMessage is reported when a new user lacks a name or color.
const UserDataRequiredMessage = "User name and color data required"

// CreateUserPayload is the body of POST /users/newUser.
type CreateUserPayload struct {
	Name  string `json:"name" form:"name" validate:"required"`
	Color string `json:"color" form:"color" validate:"required"`
}

func (p *CreateUserPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return validation.Failed(UserDataRequiredMessage, nil, err)
	}
	return nil
}

// RenameUserPayload is the body of PUT /users/id/:userId. The rename only
// applies when both the id and the current name match.
type RenameUserPayload struct {
	ID      int    `param:"userId" json:"-" form:"-"`
	Name    string `json:"name" form:"name" validate:"required"`
	NewName string `json:"newName" form:"newName" validate:"required"`
}

func (p *RenameUserPayload) Validate() error {
	return validation.Struct(p)
}

// ChangeColorPayload is the body of PUT /users/color/:userId.
type ChangeColorPayload struct {
	ID    int    `param:"userId" json:"-" form:"-"`
	Color string `json:"color" form:"color" validate:"required"`
}

func (p *ChangeColorPayload) Validate() error {
	return validation.Struct(p)
}

// DeleteUserPayload addresses the user removed by DELETE /users/id/:userId.
type DeleteUserPayload struct {
	ID int `param:"userId" json:"-" form:"-"`
}

func (p *DeleteUserPayload) Validate() error {
	return validation.Struct(p)
}
