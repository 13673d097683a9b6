package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Column length and range limits enforced both here and by the
// check constraints in the initial migration.  Limits count
// characters, not bytes, matching Postgres length().
const (
	ActorFirstNameMax = 19
	ActorLastNameMax  = 24
	ActorAgeMin       = 1
	ActorAgeMax       = 100
)

// ErrInvalidActor wraps every validation failure produced by
// Actor.Validate so handlers can map it to a 400 response.
var ErrInvalidActor = errors.New("invalid actor")

// Actor represents a performer.  Actors are identified by a UUID
// primary key and are unique on the (first_name, last_name, age)
// triple.  This struct corresponds to a row in the `actors` table.
//
// Fields:
//  ID        – primary key identifier.
//  FirstName – given name, at most 19 characters.
//  LastName  – family name, at most 24 characters.
//  Age       – age in years, between 1 and 100 inclusive.
//  CreatedAt – timestamp when the row was created.
//  UpdatedAt – timestamp of last update.
type Actor struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate normalizes the name fields and checks the same bounds the
// database enforces, so bad input fails before a round trip.
func (a *Actor) Validate() error {
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	switch {
	case a.FirstName == "":
		return fmt.Errorf("%w: first_name is required", ErrInvalidActor)
	case utf8.RuneCountInString(a.FirstName) > ActorFirstNameMax:
		return fmt.Errorf("%w: first_name must be under %d characters", ErrInvalidActor, ActorFirstNameMax+1)
	case a.LastName == "":
		return fmt.Errorf("%w: last_name is required", ErrInvalidActor)
	case utf8.RuneCountInString(a.LastName) > ActorLastNameMax:
		return fmt.Errorf("%w: last_name must be under %d characters", ErrInvalidActor, ActorLastNameMax+1)
	case a.Age < ActorAgeMin || a.Age > ActorAgeMax:
		return fmt.Errorf("%w: age must be between %d and %d", ErrInvalidActor, ActorAgeMin, ActorAgeMax)
	}
	return nil
}
