package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/rubsun/film-catalog/internal/model"
)

func TestActorRepo_GetOrCreate(t *testing.T) {
	db := openTestDB(t)
	repo := NewActorRepo(db)
	ctx := context.Background()

	a := &model.Actor{FirstName: "Tim", LastName: "Robbins", Age: 65}
	created, err := repo.GetOrCreate(ctx, a)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !created {
		t.Error("expected a new row on first call")
	}
	if a.ID == uuid.Nil {
		t.Error("expected a generated id")
	}

	again := &model.Actor{FirstName: "Tim", LastName: "Robbins", Age: 65}
	created, err = repo.GetOrCreate(ctx, again)
	if err != nil {
		t.Fatalf("GetOrCreate (second): %v", err)
	}
	if created {
		t.Error("expected the existing row on second call")
	}
	if again.ID != a.ID {
		t.Errorf("second call returned id %s, want %s", again.ID, a.ID)
	}
}

func TestActorRepo_GetByTriple_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewActorRepo(db)

	_, err := repo.GetByTriple(context.Background(), "No", "Body", 50)
	if !errors.Is(err, ErrActorNotFound) {
		t.Errorf("err = %v, want ErrActorNotFound", err)
	}
}

func TestActorRepo_Update(t *testing.T) {
	db := openTestDB(t)
	repo := NewActorRepo(db)
	ctx := context.Background()

	a := &model.Actor{FirstName: "Tim", LastName: "Robbins", Age: 65}
	if _, err := repo.GetOrCreate(ctx, a); err != nil {
		t.Fatalf("seed actor: %v", err)
	}
	b := &model.Actor{FirstName: "Morgan", LastName: "Freeman", Age: 86}
	if _, err := repo.GetOrCreate(ctx, b); err != nil {
		t.Fatalf("seed actor: %v", err)
	}

	if err := repo.Update(ctx, a.ID, "Timothy", "Robbins", 65); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FirstName != "Timothy" {
		t.Errorf("first name = %q after update", got.FirstName)
	}

	// Moving onto another actor's triple must fail.
	err = repo.Update(ctx, a.ID, "Morgan", "Freeman", 86)
	if !errors.Is(err, ErrActorExists) {
		t.Errorf("err = %v, want ErrActorExists", err)
	}

	// Resubmitting the actor's own current values is a no-op, not a conflict.
	if err := repo.Update(ctx, a.ID, "Timothy", "Robbins", 65); err != nil {
		t.Errorf("self-identical update: %v", err)
	}

	err = repo.Update(ctx, uuid.New(), "Ghost", "Actor", 30)
	if !errors.Is(err, ErrActorNotFound) {
		t.Errorf("err = %v, want ErrActorNotFound", err)
	}
}

func TestActorRepo_DeleteCascade(t *testing.T) {
	db := openTestDB(t)
	actors := NewActorRepo(db)
	films := NewFilmRepo(db)
	links := NewFilmActorRepo(db)
	ctx := context.Background()

	tim := &model.Actor{FirstName: "Tim", LastName: "Robbins", Age: 65}
	morgan := &model.Actor{FirstName: "Morgan", LastName: "Freeman", Age: 86}
	for _, a := range []*model.Actor{tim, morgan} {
		if _, err := actors.GetOrCreate(ctx, a); err != nil {
			t.Fatalf("seed actor: %v", err)
		}
	}

	// solo is only Tim's; shared has both actors.
	solo := &model.Film{Title: "Jacob's Ladder", Description: "A veteran unravels.", Year: 1990}
	shared := &model.Film{Title: "Shawshank", Description: "Prison drama.", Year: 1994}
	for _, f := range []*model.Film{solo, shared} {
		if _, err := films.GetOrCreate(ctx, f); err != nil {
			t.Fatalf("seed film: %v", err)
		}
	}
	mustLink := func(filmID, actorID uuid.UUID) {
		t.Helper()
		if _, err := links.Link(ctx, filmID, actorID); err != nil {
			t.Fatalf("link: %v", err)
		}
	}
	mustLink(solo.ID, tim.ID)
	mustLink(shared.ID, tim.ID)
	mustLink(shared.ID, morgan.ID)

	if err := actors.DeleteCascade(ctx, tim.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}

	if _, err := actors.GetByID(ctx, tim.ID); !errors.Is(err, ErrActorNotFound) {
		t.Errorf("deleted actor lookup: err = %v, want ErrActorNotFound", err)
	}
	// The solo film lost its only cast member and must be gone.
	if _, err := films.GetByID(ctx, solo.ID); !errors.Is(err, ErrFilmNotFound) {
		t.Errorf("orphaned film lookup: err = %v, want ErrFilmNotFound", err)
	}
	// The shared film still has Morgan and must survive.
	if _, err := films.GetByID(ctx, shared.ID); err != nil {
		t.Errorf("shared film lookup: %v", err)
	}
	cast, err := actors.ListByFilm(ctx, shared.ID)
	if err != nil {
		t.Fatalf("ListByFilm: %v", err)
	}
	if len(cast) != 1 || cast[0].ID != morgan.ID {
		t.Errorf("shared film cast = %v, want only Morgan", cast)
	}

	if err := actors.DeleteCascade(ctx, uuid.New()); !errors.Is(err, ErrActorNotFound) {
		t.Errorf("err = %v, want ErrActorNotFound", err)
	}
}
