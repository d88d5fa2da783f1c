package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateISBN(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		normalized string
		wantErr    error
	}{
		{"empty is valid", "", "", nil},
		{"valid isbn-10", "0-306-40615-2", "0306406152", nil},
		{"isbn-10 bad checksum", "0-306-40615-3", "", ErrIsbn10Checksum},
		{"valid isbn-13", "978-0-306-40615-7", "9780306406157", nil},
		{"isbn-13 bad checksum", "978-0-306-40615-8", "", ErrIsbn13Checksum},
		{"isbn-10 with checksum letter", "043942089X", "043942089X", nil},
		{"spaces stripped", "0 306 40615 2", "0306406152", nil},
		{"letters rejected", "030640615a", "", ErrIsbnCharacters},
		{"x in the middle rejected", "04394X0892", "", ErrIsbnCharacters},
		{"x in isbn-13 rejected", "978030640615X", "", ErrIsbnCharacters},
		{"wrong length", "12345", "", ErrIsbnLength},
		{"eleven digits", "03064061521", "", ErrIsbnLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateISBN(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.normalized, got)
		})
	}
}

func TestBook_Validate(t *testing.T) {
	valid := func() Book {
		isbn := "9780306406157"
		return Book{Title: "Война и мир", Year: 1869, ISBN: &isbn}
	}

	t.Run("valid book", func(t *testing.T) {
		b := valid()
		assert.NoError(t, b.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		b := valid()
		b.Title = ""
		assert.Error(t, b.Validate())
	})

	t.Run("year out of range", func(t *testing.T) {
		b := valid()
		b.Year = 999
		assert.Error(t, b.Validate())

		b.Year = 10000
		assert.Error(t, b.Validate())
	})

	t.Run("nil isbn is fine", func(t *testing.T) {
		b := valid()
		b.ISBN = nil
		assert.NoError(t, b.Validate())
	})

	t.Run("invalid isbn checksum", func(t *testing.T) {
		b := valid()
		bad := "9780306406158"
		b.ISBN = &bad
		assert.Error(t, b.Validate())
	})
}
