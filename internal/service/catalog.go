// Package service contains the business logic layer of the application.
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → enforces rules, picks error wording
//	Repository (Data layer)  → reads/writes the database
//
// Services accept repository interfaces, never *sqlstore.DB, so tests can hand
// them in-memory fakes. They return apperror values and never HTTP statuses.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

// Messages the API promises for missing records.
const (
	msgPlanetNotFound    = "Planet not found"
	msgCharacterNotFound = "Character not found"
	msgUserNotFound      = "User not found"
)

// CatalogReader is the read side of the store the catalog endpoints need.
type CatalogReader interface {
	repository.PersonRepository
	repository.PlanetRepository
	repository.UserRepository
}

// CatalogService serves the read-only seed dataset: people, planets and users.
type CatalogService struct {
	repo   CatalogReader
	logger *slog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo CatalogReader, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

func (s *CatalogService) ListPeople(ctx context.Context) ([]model.Person, error) {
	people, err := s.repo.ListPeople(ctx)
	if err != nil {
		s.logger.Error("failed to list people", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing people: %w", err)
	}
	return people, nil
}

// GetPerson returns apperror.ErrNotFound ("Character not found") for an
// unknown id.
func (s *CatalogService) GetPerson(ctx context.Context, id int64) (*model.Person, error) {
	person, err := s.repo.GetPerson(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFoundMessage(msgCharacterNotFound)
		}
		s.logger.Error("failed to get person", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("getting person %d: %w", id, err)
	}
	return person, nil
}

func (s *CatalogService) ListPlanets(ctx context.Context) ([]model.Planet, error) {
	planets, err := s.repo.ListPlanets(ctx)
	if err != nil {
		s.logger.Error("failed to list planets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing planets: %w", err)
	}
	return planets, nil
}

// GetPlanet returns apperror.ErrNotFound ("Planet not found") for an
// unknown id.
func (s *CatalogService) GetPlanet(ctx context.Context, id int64) (*model.Planet, error) {
	planet, err := s.repo.GetPlanet(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFoundMessage(msgPlanetNotFound)
		}
		s.logger.Error("failed to get planet", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("getting planet %d: %w", id, err)
	}
	return planet, nil
}

func (s *CatalogService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}
