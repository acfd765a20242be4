package auth

import "errors"

var (
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
	ErrUserNotFound         = errors.New("user not found")
	ErrOldPasswordIncorrect = errors.New("old password is incorrect")
	ErrSamePassword         = errors.New("new password cannot be the same as old password")
)
