package service

import (
	"github.com/deppfellow/visited-countries/internal/errs"
	"github.com/deppfellow/visited-countries/internal/model"
)

// Machine codes clients can switch on.
var (
	codeUserNotFound       = "USER_NOT_FOUND"
	codeNoVisitedCountries = "VISITED_COUNTRIES_NOT_FOUND"
	codeCountryUnknown     = "COUNTRY_NOT_FOUND"
	codeVisitAlreadyExists = "VISITED_COUNTRY_ALREADY_EXISTS"
	codeVisitNotFound      = "VISITED_COUNTRY_NOT_FOUND"
)

const (
	MsgUserNotFound        = "User not found"
	MsgUserDataRequired    = model.UserDataRequiredMessage
	MsgNoVisitedCountries  = "No countries visited"
	MsgCountryNotInList    = "Country not found in the reference list"
	MsgVisitAlreadyExists  = "This country already exists in your list of visited countries"
	MsgCountryDoesNotExist = "The country doesn't exist."
	MsgVisitNotFound       = "Country cannot be deleted as it's not in the visited countries list."
	MsgUserDeleted         = "User successfully deleted."
	MsgVisitDeleted        = "Country successfully deleted."
)

func errUserNotFound() error {
	return errs.NewNotFoundError(MsgUserNotFound, true, &codeUserNotFound)
}
