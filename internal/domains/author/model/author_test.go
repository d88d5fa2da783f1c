package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	middle := "Васильевич"

	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{
			name:   "all parts",
			author: Author{LastName: "Гоголь", FirstName: "Николай", MiddleName: &middle},
			want:   "Гоголь Николай Васильевич",
		},
		{
			name:   "no middle name",
			author: Author{LastName: "Гоголь", FirstName: "Николай"},
			want:   "Гоголь Николай",
		},
		{
			name:   "blank middle name skipped",
			author: Author{LastName: "Гоголь", FirstName: "Николай", MiddleName: strPtr("  ")},
			want:   "Гоголь Николай",
		},
		{
			name:   "last name only",
			author: Author{LastName: "Гоголь"},
			want:   "Гоголь",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.author.FullName())
		})
	}
}

func TestCreateAuthorRequestValidate(t *testing.T) {
	valid := CreateAuthorRequest{LastName: "Гоголь", FirstName: "Николай"}
	assert.NoError(t, valid.Validate())

	missing := CreateAuthorRequest{FirstName: "Николай"}
	assert.Error(t, missing.Validate())
}

func strPtr(s string) *string { return &s }
