package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid staff ID or password")
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrTokenExpired       = errors.New("token expired")
)
