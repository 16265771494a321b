package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/model"
)

// Store is the write side Apply needs. *sqlstore.DB satisfies it.
type Store interface {
	CreateUser(ctx context.Context, user *model.User) error
	CreatePlanet(ctx context.Context, planet *model.Planet) error
	CreatePerson(ctx context.Context, person *model.Person) error
}

// Result counts the records Apply inserted.
type Result struct {
	Users   int
	Planets int
	People  int
}

// Apply inserts the dataset in file order: users, then planets, then
// people, so ids follow the order records appear in. Plaintext passwords are
// hashed with passwords; values that are already bcrypt hashes are stored
// unchanged.
//
// Apply stops at the first failure. Records inserted before it stay; a
// duplicate username or email surfaces as apperror.ErrConstraint.
func Apply(ctx context.Context, store Store, ds *Dataset, passwords *auth.PasswordService, logger *slog.Logger) (Result, error) {
	var res Result

	for _, u := range ds.Users {
		hash := u.Password
		if !auth.IsHash(hash) {
			var err error
			if hash, err = passwords.Hash(u.Password); err != nil {
				return res, fmt.Errorf("hashing password for %q: %w", u.Username, err)
			}
		}

		active := true
		if u.IsActive != nil {
			active = *u.IsActive
		}

		user := &model.User{
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: hash,
			IsActive:     active,
		}
		if err := store.CreateUser(ctx, user); err != nil {
			return res, fmt.Errorf("creating user %q: %w", u.Username, err)
		}
		logger.Debug("seeded user", slog.Int64("id", user.ID), slog.String("username", user.Username))
		res.Users++
	}

	for _, p := range ds.Planets {
		planet := &model.Planet{Name: p.Name, Population: p.Population, Terrain: p.Terrain}
		if err := store.CreatePlanet(ctx, planet); err != nil {
			return res, fmt.Errorf("creating planet %q: %w", p.Name, err)
		}
		logger.Debug("seeded planet", slog.Int64("id", planet.ID), slog.String("name", planet.Name))
		res.Planets++
	}

	for _, p := range ds.People {
		person := &model.Person{Name: p.Name, Gender: p.Gender, BirthYear: p.BirthYear}
		if err := store.CreatePerson(ctx, person); err != nil {
			return res, fmt.Errorf("creating person %q: %w", p.Name, err)
		}
		logger.Debug("seeded person", slog.Int64("id", person.ID), slog.String("name", person.Name))
		res.People++
	}

	logger.Info("dataset applied",
		slog.Int("users", res.Users),
		slog.Int("planets", res.Planets),
		slog.Int("people", res.People),
	)
	return res, nil
}
