package model

import (
	"errors"
	"strings"
)

// ISBN validation failure reasons.
var (
	ErrIsbnCharacters   = errors.New("ISBN may contain only digits, hyphens, spaces and a trailing X")
	ErrIsbnLength       = errors.New("ISBN must contain 10 or 13 characters, hyphens excluded")
	ErrIsbn10Checksum   = errors.New("invalid ISBN-10 checksum")
	ErrIsbn13Checksum   = errors.New("invalid ISBN-13 checksum")
)

// ValidateISBN checks an ISBN-10/13 candidate and returns its normalized form
// with hyphens and spaces stripped. The empty string is valid, since an ISBN
// is optional, and normalizes to the empty string.
func ValidateISBN(candidate string) (string, error) {
	if candidate == "" {
		return "", nil
	}

	clean := strings.NewReplacer("-", "", " ", "").Replace(candidate)

	for i, c := range clean {
		if c >= '0' && c <= '9' {
			continue
		}
		// X is only legal as the checksum digit of an ISBN-10.
		if c == 'X' && i == 9 && len(clean) == 10 {
			continue
		}
		return "", ErrIsbnCharacters
	}

	switch len(clean) {
	case 10:
		if !validIsbn10(clean) {
			return "", ErrIsbn10Checksum
		}
	case 13:
		if !validIsbn13(clean) {
			return "", ErrIsbn13Checksum
		}
	default:
		return "", ErrIsbnLength
	}

	return clean, nil
}

func validIsbn10(isbn string) bool {
	check := 0
	for i := 0; i < 10; i++ {
		digit := 10
		if isbn[i] != 'X' {
			digit = int(isbn[i] - '0')
		}
		check += digit * (10 - i)
	}
	return check%11 == 0
}

func validIsbn13(isbn string) bool {
	check := 0
	for i := 0; i < 13; i++ {
		digit := int(isbn[i] - '0')
		if i%2 == 0 {
			check += digit
		} else {
			check += digit * 3
		}
	}
	return check%10 == 0
}
