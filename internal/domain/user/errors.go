package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrInvalidEmailFormat     = errors.New("invalid email format")
	ErrInvalidPasswordLength  = errors.New("password must be at least 8 characters")
	ErrPasswordIncorrect      = errors.New("current password is incorrect")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
