package wfh

import "errors"

var (
	ErrRequestNotFound  = errors.New("WFH request not found")
	ErrEntryNotFound    = errors.New("WFH request entry not found")
	ErrUnauthorized     = errors.New("actor is not allowed to perform this action")
	ErrInvalidState     = errors.New("transition is not legal from the entry's current status")
	ErrDuplicateRequest = errors.New("an active WFH entry already exists for this date")
)
