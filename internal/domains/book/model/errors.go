package model

import "errors"

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrISBNAlreadyExists = errors.New("ISBN already exists")
	ErrNoAuthorsSelected = errors.New("at least one author is required")
	ErrAuthorNotFound    = errors.New("author not found")
	ErrImageUploadFailed = errors.New("cover image upload failed")
)
