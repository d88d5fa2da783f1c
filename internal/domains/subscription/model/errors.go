package model

import "errors"

var (
	// ErrInvalidContact is returned when neither email nor phone is supplied.
	ErrInvalidContact = errors.New("either email or phone is required")

	ErrInvalidEmail          = errors.New("email address is invalid")
	ErrAuthorNotFound        = errors.New("author not found")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrDuplicateSubscription = errors.New("subscription already exists")
)
