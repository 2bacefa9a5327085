// Package service
package service

import (
	c "github.com/flybg-dev/flyingsites/internal/interfaces/config"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/service"
)

type FieldValidator struct {
	Min, Max          int
	ErrShort, ErrLong *ApiStatus
}

func (v *FieldValidator) CheckString(value string) *ApiStatus {
	length := len(value)
	if length > v.Max {
		return v.ErrLong
	}
	if length < v.Min {
		return v.ErrShort
	}
	return nil
}

var (
	usernameValidator *FieldValidator
	passwordValidator *FieldValidator
	emailValidator    *FieldValidator
)

func InitValidator(config *c.HttpServerLimit) {
	usernameValidator = &FieldValidator{
		Min:      config.UsernameLengthMin,
		Max:      config.UsernameLengthMax,
		ErrShort: &ApiStatus{StatusName: "USERNAME_TOO_SHORT", Description: "username too short", HttpCode: BadRequest},
		ErrLong:  &ApiStatus{StatusName: "USERNAME_TOO_LONG", Description: "username too long", HttpCode: BadRequest},
	}
	passwordValidator = &FieldValidator{
		Min:      config.PasswordLengthMin,
		Max:      config.PasswordLengthMax,
		ErrShort: &ApiStatus{StatusName: "PASSWORD_TOO_SHORT", Description: "password too short", HttpCode: BadRequest},
		ErrLong:  &ApiStatus{StatusName: "PASSWORD_TOO_LONG", Description: "password too long", HttpCode: BadRequest},
	}
	emailValidator = &FieldValidator{
		Min:      config.EmailLengthMin,
		Max:      config.EmailLengthMax,
		ErrShort: &ApiStatus{StatusName: "EMAIL_TOO_SHORT", Description: "email too short", HttpCode: BadRequest},
		ErrLong:  &ApiStatus{StatusName: "EMAIL_TOO_LONG", Description: "email too long", HttpCode: BadRequest},
	}
}
