package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	FilmTitleMax       = 19
	FilmDescriptionMax = 499
	FilmYearMin        = 1901
	FilmYearMax        = 2029
)

// ErrInvalidFilm wraps every validation failure produced by
// Film.Validate so handlers can map it to a 400 response.
var ErrInvalidFilm = errors.New("invalid film")

// Film represents a motion picture.  Films are identified by a UUID
// primary key and are unique on the (title, year) pair.  This struct
// corresponds to a row in the `films` table.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – film title, at most 19 characters.
//  Description – synopsis, at most 499 characters.
//  Year        – release year, between 1901 and 2029 inclusive.
//  CreatedAt   – timestamp when the row was created.
//  UpdatedAt   – timestamp of last update.
type Film struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Year        int       `json:"year"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate normalizes the text fields and checks the same bounds the
// database enforces.
func (f *Film) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	switch {
	case f.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidFilm)
	case utf8.RuneCountInString(f.Title) > FilmTitleMax:
		return fmt.Errorf("%w: title must be under %d characters", ErrInvalidFilm, FilmTitleMax+1)
	case f.Description == "":
		return fmt.Errorf("%w: description is required", ErrInvalidFilm)
	case utf8.RuneCountInString(f.Description) > FilmDescriptionMax:
		return fmt.Errorf("%w: description must be under %d characters", ErrInvalidFilm, FilmDescriptionMax+1)
	case f.Year < FilmYearMin || f.Year > FilmYearMax:
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidFilm, FilmYearMin, FilmYearMax)
	}
	return nil
}
