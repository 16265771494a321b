package sqlstore

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
)

func addTestFavorite(t *testing.T, db *DB, userID int64, target model.FavoriteTarget) *model.Favorite {
	t.Helper()
	fav := &model.Favorite{UserID: userID, Target: target}
	if err := db.CreateFavorite(context.Background(), fav); err != nil {
		t.Fatalf("failed to create test favorite: %v", err)
	}
	return fav
}

func TestCreateFavorite_Planet(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "luke")
	planet := createTestPlanet(t, db, "Tatooine")

	fav := addTestFavorite(t, db, user.ID, model.TargetsPlanet(planet.ID))
	if fav.ID == 0 {
		t.Error("CreateFavorite() did not set favorite.ID")
	}

	// Only one of the two columns may be written.
	var planetID, personID *int64
	err := db.conn.QueryRowContext(context.Background(),
		`SELECT planet_id, people_id FROM favorites WHERE id = ?`, fav.ID,
	).Scan(&planetID, &personID)
	if err != nil {
		t.Fatalf("reading favorite columns: %v", err)
	}
	if planetID == nil || *planetID != planet.ID {
		t.Errorf("planet_id = %v, want %d", planetID, planet.ID)
	}
	if personID != nil {
		t.Errorf("people_id = %d, want NULL", *personID)
	}
}

func TestCreateFavorite_InvalidTarget(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "luke")

	err := db.CreateFavorite(context.Background(), &model.Favorite{UserID: user.ID})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("CreateFavorite() error = %v, want ErrValidation", err)
	}
}

func TestCreateFavorite_MissingReferences(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "luke")
	planet := createTestPlanet(t, db, "Tatooine")

	tests := []struct {
		name string
		fav  *model.Favorite
	}{
		{"missing user", &model.Favorite{UserID: 999, Target: model.TargetsPlanet(planet.ID)}},
		{"missing planet", &model.Favorite{UserID: user.ID, Target: model.TargetsPlanet(999)}},
		{"missing person", &model.Favorite{UserID: user.ID, Target: model.TargetsPerson(999)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.CreateFavorite(context.Background(), tt.fav)
			if !errors.Is(err, apperror.ErrConstraint) {
				t.Errorf("CreateFavorite() error = %v, want ErrConstraint", err)
			}
		})
	}
}

func TestListFavorites_ExpandsTargets(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "luke")
	planet := createTestPlanet(t, db, "Tatooine")
	person := createTestPerson(t, db, "Leia Organa")

	addTestFavorite(t, db, user.ID, model.TargetsPlanet(planet.ID))
	addTestFavorite(t, db, user.ID, model.TargetsPerson(person.ID))

	favorites, err := db.ListFavorites(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListFavorites() error = %v", err)
	}
	if len(favorites) != 2 {
		t.Fatalf("ListFavorites() returned %d favorites, want 2", len(favorites))
	}

	first := favorites[0]
	if first.Planet == nil || *first.Planet != *planet {
		t.Errorf("favorites[0].Planet = %+v, want %+v", first.Planet, *planet)
	}
	if first.Person != nil {
		t.Errorf("favorites[0].Person = %+v, want nil", first.Person)
	}

	second := favorites[1]
	if second.Person == nil || *second.Person != *person {
		t.Errorf("favorites[1].Person = %+v, want %+v", second.Person, *person)
	}
	if second.Planet != nil {
		t.Errorf("favorites[1].Planet = %+v, want nil", second.Planet)
	}
}

func TestListFavorites_OnlyThatUser(t *testing.T) {
	db := newTestDB(t)
	luke := createTestUser(t, db, "luke")
	leia := createTestUser(t, db, "leia")
	planet := createTestPlanet(t, db, "Tatooine")

	addTestFavorite(t, db, leia.ID, model.TargetsPlanet(planet.ID))

	favorites, err := db.ListFavorites(context.Background(), luke.ID)
	if err != nil {
		t.Fatalf("ListFavorites() error = %v", err)
	}
	if len(favorites) != 0 {
		t.Errorf("ListFavorites() returned %d favorites, want 0", len(favorites))
	}
}

func TestFindFavorite(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "luke")
	planet := createTestPlanet(t, db, "Tatooine")
	person := createTestPerson(t, db, "Luke Skywalker")

	created := addTestFavorite(t, db, user.ID, model.TargetsPlanet(planet.ID))

	found, err := db.FindFavorite(context.Background(), user.ID, model.TargetsPlanet(planet.ID))
	if err != nil {
		t.Fatalf("FindFavorite() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("FindFavorite().ID = %d, want %d", found.ID, created.ID)
	}
	if found.Target != model.TargetsPlanet(planet.ID) {
		t.Errorf("FindFavorite().Target = %+v", found.Target)
	}

	// The planet and the person share id 1; a person lookup must not match
	// the planet favorite.
	_, err = db.FindFavorite(context.Background(), user.ID, model.TargetsPerson(person.ID))
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("FindFavorite(person) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteFavorite(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "luke")
	planet := createTestPlanet(t, db, "Tatooine")
	fav := addTestFavorite(t, db, user.ID, model.TargetsPlanet(planet.ID))

	if err := db.DeleteFavorite(context.Background(), fav.ID); err != nil {
		t.Fatalf("DeleteFavorite() error = %v", err)
	}

	_, err := db.FindFavorite(context.Background(), user.ID, model.TargetsPlanet(planet.ID))
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("FindFavorite() after delete error = %v, want ErrNotFound", err)
	}

	if err := db.DeleteFavorite(context.Background(), fav.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second DeleteFavorite() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteFavorite_RemovesOnlyThatRow(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "luke")
	planet := createTestPlanet(t, db, "Tatooine")

	first := addTestFavorite(t, db, user.ID, model.TargetsPlanet(planet.ID))
	second := addTestFavorite(t, db, user.ID, model.TargetsPlanet(planet.ID))

	if err := db.DeleteFavorite(context.Background(), first.ID); err != nil {
		t.Fatalf("DeleteFavorite() error = %v", err)
	}

	favorites, err := db.ListFavorites(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListFavorites() error = %v", err)
	}
	if len(favorites) != 1 || favorites[0].ID != second.ID {
		t.Errorf("ListFavorites() = %+v, want only favorite %d", favorites, second.ID)
	}
}

func TestCascade_DeletingPlanetRemovesFavorites(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "luke")
	planet := createTestPlanet(t, db, "Alderaan")
	addTestFavorite(t, db, user.ID, model.TargetsPlanet(planet.ID))

	if _, err := db.conn.ExecContext(context.Background(),
		`DELETE FROM planets WHERE id = ?`, planet.ID); err != nil {
		t.Fatalf("deleting planet: %v", err)
	}

	favorites, err := db.ListFavorites(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListFavorites() error = %v", err)
	}
	if len(favorites) != 0 {
		t.Errorf("ListFavorites() returned %d favorites after the planet was deleted, want 0", len(favorites))
	}
}
