// Package repository declares the storage interfaces the services depend on.
// The SQL implementation lives in repository/sqlstore; tests swap in fakes.
//
// Lookups by id return apperror.ErrNotFound when the row is absent. That is
// an expected outcome, not a failure: callers turn it into a 404.
package repository

import (
	"context"

	"github.com/sakif/starwars-api/internal/model"
)

type PersonRepository interface {
	ListPeople(ctx context.Context) ([]model.Person, error)
	GetPerson(ctx context.Context, id int64) (*model.Person, error)
	CreatePerson(ctx context.Context, person *model.Person) error
}

type PlanetRepository interface {
	ListPlanets(ctx context.Context) ([]model.Planet, error)
	GetPlanet(ctx context.Context, id int64) (*model.Planet, error)
	CreatePlanet(ctx context.Context, planet *model.Planet) error
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	// CreateUser fails with apperror.ErrConstraint when the username or
	// email is already taken.
	CreateUser(ctx context.Context, user *model.User) error
}

type FavoriteRepository interface {
	// ListFavorites returns the user's favorites with the targeted planet
	// or person expanded.
	ListFavorites(ctx context.Context, userID int64) ([]model.Favorite, error)
	CreateFavorite(ctx context.Context, favorite *model.Favorite) error
	FindFavorite(ctx context.Context, userID int64, target model.FavoriteTarget) (*model.Favorite, error)
	DeleteFavorite(ctx context.Context, id int64) error
}

// Store is everything the application persists.
type Store interface {
	PersonRepository
	PlanetRepository
	UserRepository
	FavoriteRepository
}
