package model

import "errors"

var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrDatabaseQuery  = errors.New("database query error")
)
