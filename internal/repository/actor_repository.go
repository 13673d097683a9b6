// Package repository contains data access logic separated from HTTP handlers.
// Repositories are plain structs over *sql.DB; every method takes a context
// and returns sentinel errors that handlers translate into HTTP statuses.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/rubsun/film-catalog/internal/database"
	"github.com/rubsun/film-catalog/internal/model"
)

// ErrActorNotFound is returned when no actor matches the lookup.
var ErrActorNotFound = errors.New("actor not found")

// ErrActorExists is returned when an insert or update collides with
// the unique (first_name, last_name, age) triple.
var ErrActorExists = errors.New("actor already exists")

// ActorRepo encapsulates all database queries related to actors.
type ActorRepo struct {
	db *sql.DB
}

func NewActorRepo(db *sql.DB) *ActorRepo { return &ActorRepo{db: db} }

const actorColumns = "id, first_name, last_name, age, created_at, updated_at"

func scanActor(row interface{ Scan(...any) error }, a *model.Actor) error {
	return row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Age, &a.CreatedAt, &a.UpdatedAt)
}

// GetOrCreate finds the actor with the given name/age triple or inserts a
// new row.  It reports whether a row was created.  A concurrent insert of
// the same triple is resolved by re-reading the winner.
func (r *ActorRepo) GetOrCreate(ctx context.Context, a *model.Actor) (bool, error) {
	existing, err := r.GetByTriple(ctx, a.FirstName, a.LastName, a.Age)
	if err == nil {
		*a = *existing
		return false, nil
	}
	if !errors.Is(err, ErrActorNotFound) {
		return false, err
	}

	const q = `INSERT INTO actors (first_name, last_name, age)
	           VALUES ($1, $2, $3)
	           RETURNING id, created_at, updated_at`
	err = r.db.QueryRowContext(ctx, q, a.FirstName, a.LastName, a.Age).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err == nil {
		return true, nil
	}
	if database.IsUniqueViolation(err, "unique_actor") {
		existing, err = r.GetByTriple(ctx, a.FirstName, a.LastName, a.Age)
		if err != nil {
			return false, err
		}
		*a = *existing
		return false, nil
	}
	return false, err
}

// GetByID fetches an actor by primary key.
func (r *ActorRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Actor, error) {
	const q = "SELECT " + actorColumns + " FROM actors WHERE id = $1"
	var a model.Actor
	if err := scanActor(r.db.QueryRowContext(ctx, q, id), &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetByTriple fetches an actor by the unique name/age triple.
func (r *ActorRepo) GetByTriple(ctx context.Context, firstName, lastName string, age int) (*model.Actor, error) {
	const q = "SELECT " + actorColumns + ` FROM actors
	           WHERE first_name = $1 AND last_name = $2 AND age = $3`
	var a model.Actor
	if err := scanActor(r.db.QueryRowContext(ctx, q, firstName, lastName, age), &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns all actors ordered by last then first name.
func (r *ActorRepo) List(ctx context.Context) ([]*model.Actor, error) {
	const q = "SELECT " + actorColumns + " FROM actors ORDER BY last_name, first_name, age"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Actor
	for rows.Next() {
		a := new(model.Actor)
		if err := scanActor(rows, a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByFilm returns the cast of a film ordered by last then first name.
func (r *ActorRepo) ListByFilm(ctx context.Context, filmID uuid.UUID) ([]*model.Actor, error) {
	const q = `SELECT a.id, a.first_name, a.last_name, a.age, a.created_at, a.updated_at
	           FROM actors a
	           JOIN film_actors fa ON fa.actor_id = a.id
	           WHERE fa.film_id = $1
	           ORDER BY a.last_name, a.first_name`
	rows, err := r.db.QueryContext(ctx, q, filmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Actor
	for rows.Next() {
		a := new(model.Actor)
		if err := scanActor(rows, a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the name/age triple of an existing actor.  It returns
// ErrActorNotFound when the id is unknown and ErrActorExists when the new
// triple already belongs to another row.
func (r *ActorRepo) Update(ctx context.Context, id uuid.UUID, firstName, lastName string, age int) error {
	const q = `UPDATE actors
	           SET first_name = $1, last_name = $2, age = $3, updated_at = now()
	           WHERE id = $4`
	res, err := r.db.ExecContext(ctx, q, firstName, lastName, age, id)
	if err != nil {
		if database.IsUniqueViolation(err, "unique_actor") {
			return ErrActorExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrActorNotFound
	}
	return nil
}

// DeleteCascade removes an actor together with their film links and any
// film that would be left with an empty cast, all in one transaction.
func (r *ActorRepo) DeleteCascade(ctx context.Context, id uuid.UUID) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var exists bool
	if err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM actors WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrActorNotFound
	}

	// Films where this actor is the only cast member become orphans.
	rows, err := tx.QueryContext(ctx,
		`SELECT fa.film_id FROM film_actors fa
		 WHERE fa.actor_id = $1
		   AND NOT EXISTS (
		       SELECT 1 FROM film_actors o
		       WHERE o.film_id = fa.film_id AND o.actor_id <> $1)`, id)
	if err != nil {
		return err
	}
	var orphans []uuid.UUID
	for rows.Next() {
		var filmID uuid.UUID
		if err = rows.Scan(&filmID); err != nil {
			rows.Close()
			return err
		}
		orphans = append(orphans, filmID)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM film_actors WHERE actor_id = $1`, id); err != nil {
		return err
	}
	for _, filmID := range orphans {
		if _, err = tx.ExecContext(ctx, `DELETE FROM films WHERE id = $1`, filmID); err != nil {
			return err
		}
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM actors WHERE id = $1`, id)
	return err
}
