package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rubsun/film-catalog/internal/model"
	"github.com/rubsun/film-catalog/internal/repository"
)

// ActorHandler serves the actor side of the catalog.
type ActorHandler struct {
	Actors *repository.ActorRepo
	Films  *repository.FilmRepo
}

func NewActorHandler(actors *repository.ActorRepo, films *repository.FilmRepo) *ActorHandler {
	if actors == nil || films == nil {
		panic("nil repository passed to NewActorHandler")
	}
	return &ActorHandler{Actors: actors, Films: films}
}

type actorReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
}

// List handles GET /v1/actors and returns all actors.
func (h *ActorHandler) List(c echo.Context) error {
	items, err := h.Actors.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.Actor{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Detail handles GET /v1/actors/detail?first_name=&last_name=&age= and
// returns the actor together with their filmography.  All three query
// parameters are required.
func (h *ActorHandler) Detail(c echo.Context) error {
	firstName := c.QueryParam("first_name")
	lastName := c.QueryParam("last_name")
	ageStr := c.QueryParam("age")
	if firstName == "" || lastName == "" || ageStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required parameters"})
	}
	age, err := strconv.Atoi(ageStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "age must be an integer"})
	}

	ctx := c.Request().Context()
	actor, err := h.Actors.GetByTriple(ctx, firstName, lastName, age)
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "actor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	films, err := h.Films.ListByActor(ctx, actor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if films == nil {
		films = []*model.Film{}
	}
	return c.JSON(http.StatusOK, echo.Map{"actor": actor, "films": films})
}

// Create handles POST /v1/actors.  Creation is get-or-create on the
// unique name/age triple: posting an existing actor returns 200 with the
// stored row instead of an error.
func (h *ActorHandler) Create(c echo.Context) error {
	var req actorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	actor := &model.Actor{FirstName: req.FirstName, LastName: req.LastName, Age: req.Age}
	if err := actor.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	created, err := h.Actors.GetOrCreate(c.Request().Context(), actor)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create actor"})
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, actor)
}

// Update handles PUT/PATCH /v1/actors/:id and replaces the name/age
// triple.  It returns 404 for an unknown id and 409 when the new triple
// already belongs to another actor.
func (h *ActorHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req actorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	actor := &model.Actor{FirstName: req.FirstName, LastName: req.LastName, Age: req.Age}
	if err := actor.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	if err := h.Actors.Update(ctx, id, actor.FirstName, actor.LastName, actor.Age); err != nil {
		switch {
		case errors.Is(err, repository.ErrActorNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "actor not found"})
		case errors.Is(err, repository.ErrActorExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "actor already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Actors.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/actors/:id.  The actor's film links are
// removed and any film left with an empty cast is deleted as well.
func (h *ActorHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Actors.DeleteCascade(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "actor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
