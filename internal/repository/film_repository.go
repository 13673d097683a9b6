package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/rubsun/film-catalog/internal/database"
	"github.com/rubsun/film-catalog/internal/model"
)

// ErrFilmNotFound is returned when no film matches the lookup.
var ErrFilmNotFound = errors.New("film not found")

// ErrFilmExists is returned when an insert or update collides with
// the unique (title, year) pair.
var ErrFilmExists = errors.New("film already exists")

// FilmRepo encapsulates all database queries related to films.
type FilmRepo struct {
	db *sql.DB
}

func NewFilmRepo(db *sql.DB) *FilmRepo { return &FilmRepo{db: db} }

const filmColumns = "id, title, description, year, created_at, updated_at"

func scanFilm(row interface{ Scan(...any) error }, f *model.Film) error {
	return row.Scan(&f.ID, &f.Title, &f.Description, &f.Year, &f.CreatedAt, &f.UpdatedAt)
}

// GetOrCreate finds the film with the given title/year pair or inserts a
// new row.  It reports whether a row was created.  A concurrent insert of
// the same pair is resolved by re-reading the winner.
func (r *FilmRepo) GetOrCreate(ctx context.Context, f *model.Film) (bool, error) {
	existing, err := r.GetByTitleYear(ctx, f.Title, f.Year)
	if err == nil {
		*f = *existing
		return false, nil
	}
	if !errors.Is(err, ErrFilmNotFound) {
		return false, err
	}

	const q = `INSERT INTO films (title, description, year)
	           VALUES ($1, $2, $3)
	           RETURNING id, created_at, updated_at`
	err = r.db.QueryRowContext(ctx, q, f.Title, f.Description, f.Year).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err == nil {
		return true, nil
	}
	if database.IsUniqueViolation(err, "unique_film") {
		existing, err = r.GetByTitleYear(ctx, f.Title, f.Year)
		if err != nil {
			return false, err
		}
		*f = *existing
		return false, nil
	}
	return false, err
}

// GetByID fetches a film by primary key.
func (r *FilmRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Film, error) {
	const q = "SELECT " + filmColumns + " FROM films WHERE id = $1"
	var f model.Film
	if err := scanFilm(r.db.QueryRowContext(ctx, q, id), &f); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}
	return &f, nil
}

// GetByTitleYear fetches a film by the unique title/year pair.
func (r *FilmRepo) GetByTitleYear(ctx context.Context, title string, year int) (*model.Film, error) {
	const q = "SELECT " + filmColumns + " FROM films WHERE title = $1 AND year = $2"
	var f model.Film
	if err := scanFilm(r.db.QueryRowContext(ctx, q, title, year), &f); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}
	return &f, nil
}

// List returns all films ordered by title then year.
func (r *FilmRepo) List(ctx context.Context) ([]*model.Film, error) {
	const q = "SELECT " + filmColumns + " FROM films ORDER BY title, year"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Film
	for rows.Next() {
		f := new(model.Film)
		if err := scanFilm(rows, f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByActor returns the filmography of an actor ordered by year.
func (r *FilmRepo) ListByActor(ctx context.Context, actorID uuid.UUID) ([]*model.Film, error) {
	const q = `SELECT f.id, f.title, f.description, f.year, f.created_at, f.updated_at
	           FROM films f
	           JOIN film_actors fa ON fa.film_id = f.id
	           WHERE fa.actor_id = $1
	           ORDER BY f.year, f.title`
	rows, err := r.db.QueryContext(ctx, q, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Film
	for rows.Next() {
		f := new(model.Film)
		if err := scanFilm(rows, f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the title, description and year of an existing film.
// It returns ErrFilmNotFound when the id is unknown and ErrFilmExists when
// the new title/year pair already belongs to another row.
func (r *FilmRepo) Update(ctx context.Context, id uuid.UUID, title, description string, year int) error {
	const q = `UPDATE films
	           SET title = $1, description = $2, year = $3, updated_at = now()
	           WHERE id = $4`
	res, err := r.db.ExecContext(ctx, q, title, description, year, id)
	if err != nil {
		if database.IsUniqueViolation(err, "unique_film") {
			return ErrFilmExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFilmNotFound
	}
	return nil
}

// Delete removes a film and its cast links in one transaction.
func (r *FilmRepo) Delete(ctx context.Context, id uuid.UUID) (err error) {
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
		`SELECT EXISTS (SELECT 1 FROM films WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrFilmNotFound
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM film_actors WHERE film_id = $1`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM films WHERE id = $1`, id)
	return err
}
