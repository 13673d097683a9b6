package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rubsun/film-catalog/internal/model"
	"github.com/rubsun/film-catalog/internal/queue"
	"github.com/rubsun/film-catalog/internal/rating"
	"github.com/rubsun/film-catalog/internal/repository"
	queue_publisher "github.com/rubsun/film-catalog/internal/service"
)

// FilmHandler serves the film side of the catalog, including cast links
// and the external rating lookup on detail pages.
type FilmHandler struct {
	Films  *repository.FilmRepo
	Actors *repository.ActorRepo
	Links  *repository.FilmActorRepo
	Rating *rating.Client
}

func NewFilmHandler(films *repository.FilmRepo, actors *repository.ActorRepo, links *repository.FilmActorRepo, rc *rating.Client) *FilmHandler {
	if films == nil || actors == nil || links == nil {
		panic("nil repository passed to NewFilmHandler")
	}
	return &FilmHandler{Films: films, Actors: actors, Links: links, Rating: rc}
}

type filmReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Year        int    `json:"year"`
}

// createFilmReq names the actor the new film is attached to: a film
// enters the catalog as part of somebody's filmography.
type createFilmReq struct {
	filmReq
	ActorFirstName string `json:"actor_first_name"`
	ActorLastName  string `json:"actor_last_name"`
	ActorAge       int    `json:"actor_age"`
}

// List handles GET /v1/films and returns all films.
func (h *FilmHandler) List(c echo.Context) error {
	items, err := h.Films.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.Film{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Detail handles GET /v1/films/detail?title=&year= and returns the film,
// its cast and the external rating (null when the lookup fails).
func (h *FilmHandler) Detail(c echo.Context) error {
	title := c.QueryParam("title")
	yearStr := c.QueryParam("year")
	if title == "" || yearStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required parameters"})
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year must be an integer"})
	}

	ctx := c.Request().Context()
	film, err := h.Films.GetByTitleYear(ctx, title, year)
	if err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	actors, err := h.Actors.ListByFilm(ctx, film.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if actors == nil {
		actors = []*model.Actor{}
	}

	var score *rating.Movie
	if h.Rating != nil {
		// Best effort; a failed lookup renders as null.
		score, _ = h.Rating.Lookup(ctx, film.Title)
	}
	return c.JSON(http.StatusOK, echo.Map{"film": film, "actors": actors, "rating": score})
}

// Create handles POST /v1/films.  The payload names an existing actor;
// the film is get-or-create on (title, year) and a cast link is added.
// 404 when the actor is unknown, 409 when the actor already appears in a
// film with the same title.
func (h *FilmHandler) Create(c echo.Context) error {
	var req createFilmReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	film := &model.Film{Title: req.Title, Description: req.Description, Year: req.Year}
	if err := film.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	actor, err := h.Actors.GetByTriple(ctx, req.ActorFirstName, req.ActorLastName, req.ActorAge)
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "actor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	hasTitle, err := h.Links.ActorHasTitle(ctx, actor.ID, film.Title)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if hasTitle {
		return c.JSON(http.StatusConflict, echo.Map{"error": "actor already has a film with this title"})
	}

	if _, err := h.Films.GetOrCreate(ctx, film); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create film"})
	}
	link, err := h.Links.Link(ctx, film.ID, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrLinkExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "actor already linked to film"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not link actor"})
	}

	h.publishCastAdded(link, film, actor)

	return c.JSON(http.StatusCreated, echo.Map{"film": film, "link": link})
}

// Update handles PUT/PATCH /v1/films/:id.  404 for an unknown id, 409
// when the new (title, year) pair already belongs to another film.
func (h *FilmHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req filmReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	film := &model.Film{Title: req.Title, Description: req.Description, Year: req.Year}
	if err := film.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	if err := h.Films.Update(ctx, id, film.Title, film.Description, film.Year); err != nil {
		switch {
		case errors.Is(err, repository.ErrFilmNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		case errors.Is(err, repository.ErrFilmExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "film already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Films.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/films/:id and removes the film with its
// cast links.
func (h *FilmHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Films.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveFromActor handles DELETE /v1/films/:film_id/actors/:actor_id and
// removes a single cast link, leaving the film in place.
func (h *FilmHandler) RemoveFromActor(c echo.Context) error {
	filmID, err := uuid.Parse(c.Param("film_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid film id"})
	}
	actorID, err := uuid.Parse(c.Param("actor_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid actor id"})
	}

	ctx := c.Request().Context()
	if _, err := h.Actors.GetByID(ctx, actorID); err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "actor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Links.Unlink(ctx, filmID, actorID); err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found for this actor"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Search handles GET /v1/search/films with title/actor/year filters and
// pagination.
func (h *FilmHandler) Search(c echo.Context) error {
	q := repository.FilmSearchQuery{
		Title:    c.QueryParam("title"),
		Actor:    c.QueryParam("actor"),
		YearFrom: atoiDefault(c.QueryParam("year_from"), 0),
		YearTo:   atoiDefault(c.QueryParam("year_to"), 0),
		Page:     atoiDefault(c.QueryParam("page"), 1),
		PageSize: atoiDefault(c.QueryParam("page_size"), 20),
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}

	items, total, err := h.Films.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":     items,
		"total":     total,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
}

// publishCastAdded emits the cast event off the request path; delivery
// failures only affect the broker log, never the API response.
func (h *FilmHandler) publishCastAdded(link *model.FilmActor, film *model.Film, actor *model.Actor) {
	ev := queue.CastAddedEvent{
		LinkID:         link.ID.String(),
		FilmID:         film.ID.String(),
		FilmTitle:      film.Title,
		FilmYear:       film.Year,
		ActorID:        actor.ID.String(),
		ActorFirstName: actor.FirstName,
		ActorLastName:  actor.LastName,
		AddedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishCastAdded(ctx, ev)
	}()
}

func atoiDefault(s string, d int) int {
	if s == "" {
		return d
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return d
}
