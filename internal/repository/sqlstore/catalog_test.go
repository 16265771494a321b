package sqlstore

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
)

func TestCreatePlanet(t *testing.T) {
	db := newTestDB(t)

	planet := &model.Planet{Name: "Tatooine", Population: "200000", Terrain: "desert"}
	if err := db.CreatePlanet(context.Background(), planet); err != nil {
		t.Fatalf("CreatePlanet() error = %v", err)
	}

	if planet.ID == 0 {
		t.Error("CreatePlanet() did not set planet.ID")
	}
}

func TestGetPlanet(t *testing.T) {
	db := newTestDB(t)
	created := createTestPlanet(t, db, "Tatooine")

	found, err := db.GetPlanet(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetPlanet() error = %v", err)
	}

	if *found != *created {
		t.Errorf("GetPlanet() = %+v, want %+v", *found, *created)
	}
}

func TestGetPlanet_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetPlanet(context.Background(), 404)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetPlanet() error = %v, want ErrNotFound", err)
	}
}

func TestListPlanets_Empty(t *testing.T) {
	db := newTestDB(t)

	planets, err := db.ListPlanets(context.Background())
	if err != nil {
		t.Fatalf("ListPlanets() error = %v", err)
	}
	if planets == nil {
		t.Error("ListPlanets() returned nil, want an empty slice")
	}
	if len(planets) != 0 {
		t.Errorf("ListPlanets() returned %d planets, want 0", len(planets))
	}
}

func TestListPlanets_InsertionOrder(t *testing.T) {
	db := newTestDB(t)
	names := []string{"Tatooine", "Alderaan", "Yavin IV"}
	for _, name := range names {
		createTestPlanet(t, db, name)
	}

	planets, err := db.ListPlanets(context.Background())
	if err != nil {
		t.Fatalf("ListPlanets() error = %v", err)
	}
	if len(planets) != len(names) {
		t.Fatalf("ListPlanets() returned %d planets, want %d", len(planets), len(names))
	}
	for i, name := range names {
		if planets[i].Name != name {
			t.Errorf("planets[%d].Name = %q, want %q", i, planets[i].Name, name)
		}
	}
}

func TestGetPerson(t *testing.T) {
	db := newTestDB(t)
	created := createTestPerson(t, db, "Luke Skywalker")

	found, err := db.GetPerson(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetPerson() error = %v", err)
	}

	if found.Name != "Luke Skywalker" {
		t.Errorf("Name = %q, want %q", found.Name, "Luke Skywalker")
	}
	if found.BirthYear != "19BBY" {
		t.Errorf("BirthYear = %q, want %q", found.BirthYear, "19BBY")
	}
}

func TestGetPerson_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetPerson(context.Background(), 1)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetPerson() error = %v, want ErrNotFound", err)
	}
}

func TestListPeople(t *testing.T) {
	db := newTestDB(t)
	createTestPerson(t, db, "Luke Skywalker")
	createTestPerson(t, db, "Leia Organa")

	people, err := db.ListPeople(context.Background())
	if err != nil {
		t.Fatalf("ListPeople() error = %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("ListPeople() returned %d people, want 2", len(people))
	}
	if people[0].Name != "Luke Skywalker" || people[1].Name != "Leia Organa" {
		t.Errorf("ListPeople() order = [%q, %q]", people[0].Name, people[1].Name)
	}
}
