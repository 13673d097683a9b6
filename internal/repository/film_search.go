package repository

import (
	"context"
	"fmt"
	"strings"
)

// FilmSearchQuery defines filters & pagination for searching films.
type FilmSearchQuery struct {
	Title    string
	Actor    string
	YearFrom int
	YearTo   int
	Page     int
	PageSize int
}

// FilmSearchRow is one search hit together with its cast size.
type FilmSearchRow struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Year     int    `json:"year"`
	CastSize int    `json:"cast_size"`
}

// Search returns films matching the query plus the total hit count for
// pagination.  Filters are combined with AND; empty filters are skipped.
func (r *FilmRepo) Search(ctx context.Context, q FilmSearchQuery) ([]FilmSearchRow, int64, error) {
	where := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Title != "" {
		where = append(where, "LOWER(f.title) LIKE "+arg("%"+strings.ToLower(q.Title)+"%"))
	}
	if q.Actor != "" {
		p := arg("%" + strings.ToLower(q.Actor) + "%")
		where = append(where, `EXISTS (
			SELECT 1 FROM film_actors fa
			JOIN actors a ON a.id = fa.actor_id
			WHERE fa.film_id = f.id
			  AND LOWER(a.first_name || ' ' || a.last_name) LIKE `+p+")")
	}
	if q.YearFrom > 0 {
		where = append(where, "f.year >= "+arg(q.YearFrom))
	}
	if q.YearTo > 0 {
		where = append(where, "f.year <= "+arg(q.YearTo))
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM films f WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			f.id,
			f.title,
			f.year,
			(SELECT COUNT(*) FROM film_actors fa WHERE fa.film_id = f.id) AS cast_size
		FROM films f
		WHERE ` + cond + `
		ORDER BY f.year, f.title
		LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]FilmSearchRow, 0, limit)
	for rows.Next() {
		var d FilmSearchRow
		if err := rows.Scan(&d.ID, &d.Title, &d.Year, &d.CastSize); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
