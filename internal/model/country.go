package model

import "github.com/deppfellow/visited-countries/internal/validation"

// Country is a row of the world_countries reference table.
type Country struct {
	Code string `json:"country_code" db:"country_code"`
	Name string `json:"country_name" db:"country_name"`
}

// VisitedCountry is a row of visited_countries. (UserID, CountryCode) is unique.
type VisitedCountry struct {
	UserID      int    `json:"user_id" db:"user_id"`
	CountryCode string `json:"country_code" db:"country_code"`
}

// ListVisitedPayload addresses GET /users/countries/:userId.
type ListVisitedPayload struct {
	UserID int `param:"userId" json:"-" form:"-"`
}

func (p *ListVisitedPayload) Validate() error {
	return validation.Struct(p)
}

// AddVisitedPayload is the body of POST /users/newCountry.
type AddVisitedPayload struct {
	UserID  int    `json:"id" form:"id" validate:"required,min=1"`
	Country string `json:"country" form:"country" validate:"required"`
}

func (p *AddVisitedPayload) Validate() error {
	return validation.Struct(p)
}

// RemoveVisitedPayload is DELETE /users/countries/:userId with a {country} body.
type RemoveVisitedPayload struct {
	UserID  int    `param:"userId" json:"-" form:"-"`
	Country string `json:"country" form:"country" validate:"required"`
}

func (p *RemoveVisitedPayload) Validate() error {
	return validation.Struct(p)
}
