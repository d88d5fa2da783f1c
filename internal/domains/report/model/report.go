package model

import "github.com/google/uuid"

// AuthorRank is one row of the top-authors report.
type AuthorRank struct {
	AuthorID   uuid.UUID `json:"author_id" db:"author_id"`
	LastName   string    `json:"last_name" db:"last_name"`
	FirstName  string    `json:"first_name" db:"first_name"`
	MiddleName *string   `json:"middle_name,omitempty" db:"middle_name"`
	BookCount  int       `json:"book_count" db:"book_count"`
}

// TopAuthorsReport is the report payload: the ranking for the requested
// year plus every year that has at least one published book.
type TopAuthorsReport struct {
	Year           int          `json:"year"`
	Authors        []AuthorRank `json:"authors"`
	AvailableYears []int        `json:"available_years"`
}
