package model

import (
	"errors"
	"strings"
	"testing"
)

func TestFilmValidate(t *testing.T) {
	tests := []struct {
		name    string
		film    Film
		wantErr bool
	}{
		{"valid", Film{Title: "Casablanca", Description: "A wartime romance.", Year: 1942}, false},
		{"at limits", Film{Title: strings.Repeat("t", FilmTitleMax), Description: strings.Repeat("d", FilmDescriptionMax), Year: FilmYearMax}, false},
		// Multibyte text counts characters, not bytes: 12 runes, 23 bytes.
		{"cyrillic title within limits", Film{Title: "Ночной дозор", Description: "Свет против тьмы.", Year: 2004}, false},
		{"cyrillic title too long", Film{Title: strings.Repeat("я", FilmTitleMax+1), Description: "Свет против тьмы.", Year: 2004}, true},
		{"cyrillic description too long", Film{Title: "Ночной дозор", Description: strings.Repeat("я", FilmDescriptionMax+1), Year: 2004}, true},
		{"empty title", Film{Title: " ", Description: "A wartime romance.", Year: 1942}, true},
		{"title too long", Film{Title: strings.Repeat("t", FilmTitleMax+1), Description: "A wartime romance.", Year: 1942}, true},
		{"empty description", Film{Title: "Casablanca", Description: "", Year: 1942}, true},
		{"description too long", Film{Title: "Casablanca", Description: strings.Repeat("d", FilmDescriptionMax+1), Year: 1942}, true},
		{"year too early", Film{Title: "Casablanca", Description: "A wartime romance.", Year: FilmYearMin - 1}, true},
		{"year too late", Film{Title: "Casablanca", Description: "A wartime romance.", Year: FilmYearMax + 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.film.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if !errors.Is(err, ErrInvalidFilm) {
					t.Errorf("error %v does not wrap ErrInvalidFilm", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
