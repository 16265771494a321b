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

// FavoriteService manages a user's bookmarks.
//
// Every method takes the user id explicitly. Today it is always the fixed
// current user (see auth.CurrentUser); the service doesn't know or care.
//
// CONCURRENCY:
// Add and Remove are check-then-write without a transaction. Two concurrent
// adds of the same target can both succeed and leave a duplicate; a remove
// then deletes one of them. That is accepted: the store stays consistent
// (foreign keys hold) and a second remove cleans up.
type FavoriteService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(store repository.Store, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		store:  store,
		logger: logger,
	}
}

// List returns the user's favorites with targets expanded. An unknown user
// simply has no favorites.
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]model.Favorite, error) {
	favorites, err := s.store.ListFavorites(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list favorites",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	return favorites, nil
}

// Add bookmarks target for the user.
//
// Both the user and the target must exist; a missing one is reported as
// apperror.ErrNotFound with the wording the API returns ("Planet not found",
// "Character not found", "User not found") and nothing is written.
func (s *FavoriteService) Add(ctx context.Context, userID int64, target model.FavoriteTarget) (*model.Favorite, error) {
	if err := target.Validate(); err != nil {
		return nil, apperror.ValidationFailed("target", err.Error())
	}

	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, s.notFoundAs(err, msgUserNotFound, "looking up user")
	}

	switch target.Kind {
	case model.TargetPlanet:
		if _, err := s.store.GetPlanet(ctx, target.ID); err != nil {
			return nil, s.notFoundAs(err, msgPlanetNotFound, "looking up planet")
		}
	case model.TargetPerson:
		if _, err := s.store.GetPerson(ctx, target.ID); err != nil {
			return nil, s.notFoundAs(err, msgCharacterNotFound, "looking up person")
		}
	}

	favorite := &model.Favorite{UserID: userID, Target: target}
	if err := s.store.CreateFavorite(ctx, favorite); err != nil {
		s.logger.Error("failed to create favorite",
			slog.Int64("userID", userID),
			slog.String("kind", string(target.Kind)),
			slog.Int64("targetID", target.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating favorite: %w", err)
	}

	s.logger.Info("favorite added",
		slog.Int64("id", favorite.ID),
		slog.Int64("userID", userID),
		slog.String("kind", string(target.Kind)),
		slog.Int64("targetID", target.ID),
	)
	return favorite, nil
}

// Remove deletes the user's favorite for target.
//
// The favorite is looked up first; if there is none the result is
// apperror.ErrNotFound ("Favorite planet not found" / "Favorite character
// not found"). Removing the same pair twice therefore fails the second time.
func (s *FavoriteService) Remove(ctx context.Context, userID int64, target model.FavoriteTarget) error {
	if err := target.Validate(); err != nil {
		return apperror.ValidationFailed("target", err.Error())
	}

	msg := "Favorite planet not found"
	if target.Kind == model.TargetPerson {
		msg = "Favorite character not found"
	}

	favorite, err := s.store.FindFavorite(ctx, userID, target)
	if err != nil {
		return s.notFoundAs(err, msg, "finding favorite")
	}

	if err := s.store.DeleteFavorite(ctx, favorite.ID); err != nil {
		// Deleted by a concurrent request between the lookup and now.
		return s.notFoundAs(err, msg, "deleting favorite")
	}

	s.logger.Info("favorite removed",
		slog.Int64("id", favorite.ID),
		slog.Int64("userID", userID),
		slog.String("kind", string(target.Kind)),
		slog.Int64("targetID", target.ID),
	)
	return nil
}

// notFoundAs rewords a not-found error with the message the API promises and
// wraps anything else.
func (s *FavoriteService) notFoundAs(err error, message, action string) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.NotFoundMessage(message)
	}
	s.logger.Error("favorite operation failed",
		slog.String("action", action),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("%s: %w", action, err)
}
