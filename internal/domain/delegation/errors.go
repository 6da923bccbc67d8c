package delegation

import "errors"

var (
	ErrDelegationNotFound = errors.New("delegation not found")
	ErrUnauthorized       = errors.New("actor is not allowed to act on this delegation")
	ErrInvalidState       = errors.New("delegation has already been processed")
	ErrSelfDelegation     = errors.New("cannot delegate approval authority to yourself")
)
