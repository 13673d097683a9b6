// Package queue defines message payloads exchanged over the message broker.
package queue

// CastAddedEvent is published when an actor is linked to a film.  It
// carries enough information for downstream consumers to log or trigger
// analytics without querying the primary database.
type CastAddedEvent struct {
	LinkID         string `json:"link_id"`
	FilmID         string `json:"film_id"`
	FilmTitle      string `json:"film_title"`
	FilmYear       int    `json:"film_year"`
	ActorID        string `json:"actor_id"`
	ActorFirstName string `json:"actor_first_name"`
	ActorLastName  string `json:"actor_last_name"`
	AddedAt        string `json:"added_at"`
}
