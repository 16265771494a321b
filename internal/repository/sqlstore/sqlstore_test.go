package sqlstore

import (
	"context"
	"testing"

	"github.com/sakif/starwars-api/internal/model"
)

// newTestDB opens a fresh in-memory SQLite store. Every test gets its own
// database, so tests never see each other's rows.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestPlanet(t *testing.T, db *DB, name string) *model.Planet {
	t.Helper()
	planet := &model.Planet{Name: name, Population: "200000", Terrain: "desert"}
	if err := db.CreatePlanet(context.Background(), planet); err != nil {
		t.Fatalf("failed to create test planet: %v", err)
	}
	return planet
}

func createTestPerson(t *testing.T, db *DB, name string) *model.Person {
	t.Helper()
	person := &model.Person{Name: name, Gender: "male", BirthYear: "19BBY"}
	if err := db.CreatePerson(context.Background(), person); err != nil {
		t.Fatalf("failed to create test person: %v", err)
	}
	return person
}

func createTestUser(t *testing.T, db *DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$04$not-a-real-hash",
		IsActive:     true,
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	db := newTestDB(t)

	if err := db.migrate(context.Background()); err != nil {
		t.Fatalf("second migrate() error = %v", err)
	}
}

func TestOpen_RejectsUnknownScheme(t *testing.T) {
	if _, err := Open(context.Background(), "redis://localhost:6379/0"); err == nil {
		t.Fatal("Open() should reject a redis:// URL")
	}
}

func TestDialect(t *testing.T) {
	db := newTestDB(t)

	if db.Dialect() != SQLite {
		t.Errorf("Dialect() = %s, want sqlite", db.Dialect().Name())
	}
	if err := db.PingContext(context.Background()); err != nil {
		t.Errorf("PingContext() error = %v", err)
	}
}
