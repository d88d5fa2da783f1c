package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Book represents a catalog entry. A book with a nil ID has never been
// persisted; assigning the ID is the only state transition done by the
// repository.
type Book struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Year        int       `json:"year" db:"year"`
	Description *string   `json:"description" db:"description"`
	ISBN        *string   `json:"isbn" db:"isbn"`
	CoverImage  *string   `json:"cover_image" db:"cover_image"`

	// AuthorIDs is the full link set for this book, loaded alongside the row.
	AuthorIDs []uuid.UUID `json:"author_ids" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (b *Book) IsNew() bool {
	return b.ID == uuid.Nil
}

// Validate checks record-level rules. The ISBN rule verifies the checksum;
// uniqueness is checked against the repository by the service.
func (b Book) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&b.Year, validation.Required, validation.Min(1000), validation.Max(9999)),
		validation.Field(&b.ISBN, validation.Length(0, 20), validation.By(isbnRule)),
		validation.Field(&b.CoverImage, validation.Length(0, 255)),
	)
}

func isbnRule(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}

	s, _ := v.(string)
	_, err := ValidateISBN(s)
	return err
}

// ImageUpload carries a candidate cover image through the publish pipeline.
type ImageUpload struct {
	Data        []byte
	Extension   string
	ContentType string
}

// BookResponse is a Book together with the public URL of its cover asset.
type BookResponse struct {
	Book
	CoverURL *string `json:"cover_url"`
}
