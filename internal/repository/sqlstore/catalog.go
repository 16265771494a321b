package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
)

// ListPeople returns every person in insertion order.
func (db *DB) ListPeople(ctx context.Context) ([]model.Person, error) {
	rows, err := db.query(ctx,
		`SELECT id, name, gender, birth_year FROM people ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing people: %w", err)
	}
	defer rows.Close()

	people := make([]model.Person, 0)
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Gender, &p.BirthYear); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning person row: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating people: %w", err)
	}

	return people, nil
}

// GetPerson returns apperror.ErrNotFound if no person has this id.
func (db *DB) GetPerson(ctx context.Context, id int64) (*model.Person, error) {
	var p model.Person

	err := db.queryRow(ctx,
		`SELECT id, name, gender, birth_year FROM people WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Gender, &p.BirthYear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("person", id)
		}
		return nil, fmt.Errorf("sqlstore: getting person %d: %w", id, err)
	}

	return &p, nil
}

// CreatePerson inserts the person and sets person.ID.
func (db *DB) CreatePerson(ctx context.Context, person *model.Person) error {
	id, err := db.insert(ctx,
		`INSERT INTO people (name, gender, birth_year) VALUES (?, ?, ?)`,
		person.Name, person.Gender, person.BirthYear,
	)
	if err != nil {
		if isConstraintError(err) {
			return apperror.ConstraintViolation("person violates a table constraint", err)
		}
		return fmt.Errorf("sqlstore: creating person %q: %w", person.Name, err)
	}

	person.ID = id
	return nil
}

// ListPlanets returns every planet in insertion order.
func (db *DB) ListPlanets(ctx context.Context) ([]model.Planet, error) {
	rows, err := db.query(ctx,
		`SELECT id, name, population, terrain FROM planets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing planets: %w", err)
	}
	defer rows.Close()

	planets := make([]model.Planet, 0)
	for rows.Next() {
		var p model.Planet
		if err := rows.Scan(&p.ID, &p.Name, &p.Population, &p.Terrain); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning planet row: %w", err)
		}
		planets = append(planets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating planets: %w", err)
	}

	return planets, nil
}

// GetPlanet returns apperror.ErrNotFound if no planet has this id.
func (db *DB) GetPlanet(ctx context.Context, id int64) (*model.Planet, error) {
	var p model.Planet

	err := db.queryRow(ctx,
		`SELECT id, name, population, terrain FROM planets WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Population, &p.Terrain)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("planet", id)
		}
		return nil, fmt.Errorf("sqlstore: getting planet %d: %w", id, err)
	}

	return &p, nil
}

// CreatePlanet inserts the planet and sets planet.ID.
func (db *DB) CreatePlanet(ctx context.Context, planet *model.Planet) error {
	id, err := db.insert(ctx,
		`INSERT INTO planets (name, population, terrain) VALUES (?, ?, ?)`,
		planet.Name, planet.Population, planet.Terrain,
	)
	if err != nil {
		if isConstraintError(err) {
			return apperror.ConstraintViolation("planet violates a table constraint", err)
		}
		return fmt.Errorf("sqlstore: creating planet %q: %w", planet.Name, err)
	}

	planet.ID = id
	return nil
}
