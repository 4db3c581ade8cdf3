package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when no book matches the requested id.
	ErrNotFound = errors.New("book not found")
	// ErrNoBooks is returned when a requested page holds no books.
	ErrNoBooks = errors.New("no books found")
	// ErrAlreadyExists is returned when a book with the same title and author is already stored.
	ErrAlreadyExists = errors.New("book already exists")
	// ErrInvalidPage is returned for a page or limit below one.
	ErrInvalidPage = errors.New("page and the results-per-page limit must be greater than zero")
	// ErrIncompleteInput is returned when a payload is missing a required field.
	ErrIncompleteInput = errors.New("missing required book field")
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Book represents a stored book.
type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publication_year"`
}

// Input is the client payload for creating or replacing a book.
// Fields are pointers so that an absent field differs from an empty one.
type Input struct {
	Title           *string `json:"title" validate:"required"`
	Author          *string `json:"author" validate:"required"`
	PublicationYear *int    `json:"publication_year" validate:"required"`
}

// UnmarshalJSON accepts publication_year as a JSON number or a numeric string.
func (in *Input) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title           *string         `json:"title"`
		Author          *string         `json:"author"`
		PublicationYear json.RawMessage `json:"publication_year"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	year, err := parseYear(raw.PublicationYear)
	if err != nil {
		return err
	}
	*in = Input{Title: raw.Title, Author: raw.Author, PublicationYear: year}
	return nil
}

func parseYear(raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		year, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("publication_year: %q is not an integer", s)
		}
		return &year, nil
	}
	var year int
	if err := json.Unmarshal(raw, &year); err != nil {
		return nil, err
	}
	return &year, nil
}

// Book builds the book described by the input. Every field must be present.
func (in Input) Book() (Book, error) {
	if in.Title == nil || in.Author == nil || in.PublicationYear == nil {
		return Book{}, ErrIncompleteInput
	}
	return Book{
		Title:           *in.Title,
		Author:          *in.Author,
		PublicationYear: *in.PublicationYear,
	}, nil
}

// Page is one slice of the catalog together with the catalog size.
type Page struct {
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalBooks int    `json:"total_books"`
	Books      []Book `json:"books"`
}
