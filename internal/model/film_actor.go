package model

import (
	"time"

	"github.com/google/uuid"
)

// FilmActor links a film to one member of its cast.  There is at
// most one row per (film_id, actor_id) pair.  This struct
// corresponds to a row in the `film_actors` table.
//
// Fields:
//  ID        – primary key identifier.
//  FilmID    – film side of the link.
//  ActorID   – actor side of the link.
//  CreatedAt – timestamp when the link was created.
type FilmActor struct {
	ID        uuid.UUID `json:"id"`
	FilmID    uuid.UUID `json:"film_id"`
	ActorID   uuid.UUID `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}
