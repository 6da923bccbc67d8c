package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrCredentialNotFound = errors.New("credential not found")
)
