package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/rubsun/film-catalog/internal/database"
	"github.com/rubsun/film-catalog/internal/model"
)

// ErrLinkNotFound is returned when a film is not part of an actor's
// filmography.
var ErrLinkNotFound = errors.New("film is not linked to actor")

// ErrLinkExists is returned when the actor already appears in the film.
var ErrLinkExists = errors.New("actor already linked to film")

// FilmActorRepo manages the cast links between films and actors.
type FilmActorRepo struct {
	db *sql.DB
}

func NewFilmActorRepo(db *sql.DB) *FilmActorRepo { return &FilmActorRepo{db: db} }

// Link adds an actor to a film's cast.  ErrLinkExists is returned when
// the pair is already present.
func (r *FilmActorRepo) Link(ctx context.Context, filmID, actorID uuid.UUID) (*model.FilmActor, error) {
	const q = `INSERT INTO film_actors (film_id, actor_id)
	           VALUES ($1, $2)
	           RETURNING id, created_at`
	fa := &model.FilmActor{FilmID: filmID, ActorID: actorID}
	err := r.db.QueryRowContext(ctx, q, filmID, actorID).Scan(&fa.ID, &fa.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "unique_film_actor") {
			return nil, ErrLinkExists
		}
		return nil, err
	}
	return fa, nil
}

// Unlink removes an actor from a film's cast.  Only the link row is
// deleted; the film itself stays even when its cast becomes empty,
// matching the explicit per-film removal operation.
func (r *FilmActorRepo) Unlink(ctx context.Context, filmID, actorID uuid.UUID) error {
	const q = `DELETE FROM film_actors WHERE film_id = $1 AND actor_id = $2`
	res, err := r.db.ExecContext(ctx, q, filmID, actorID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// ActorHasTitle reports whether the actor already appears in any film
// with the given title, regardless of year.
func (r *FilmActorRepo) ActorHasTitle(ctx context.Context, actorID uuid.UUID, title string) (bool, error) {
	const q = `SELECT EXISTS (
	               SELECT 1 FROM film_actors fa
	               JOIN films f ON f.id = fa.film_id
	               WHERE fa.actor_id = $1 AND f.title = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, actorID, title).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
