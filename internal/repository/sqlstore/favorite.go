package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
)

// ListFavorites returns the user's favorites in insertion order, each with
// its planet or person expanded.
//
// LEFT JOIN keeps a favorite row even though only one of the two joins can
// match; the other side comes back as NULLs.
func (db *DB) ListFavorites(ctx context.Context, userID int64) ([]model.Favorite, error) {
	rows, err := db.query(ctx,
		`SELECT f.id, f.user_id, f.planet_id, f.people_id,
		        pl.name, pl.population, pl.terrain,
		        pe.name, pe.gender, pe.birth_year
		 FROM favorites f
		 LEFT JOIN planets pl ON pl.id = f.planet_id
		 LEFT JOIN people pe  ON pe.id = f.people_id
		 WHERE f.user_id = ?
		 ORDER BY f.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing favorites of user %d: %w", userID, err)
	}
	defer rows.Close()

	favorites := make([]model.Favorite, 0)
	for rows.Next() {
		var (
			f                           model.Favorite
			planetID, personID          *int64
			plName, plPop, plTerrain    sql.NullString
			peName, peGender, peBirthYr sql.NullString
		)
		if err := rows.Scan(
			&f.ID, &f.UserID, &planetID, &personID,
			&plName, &plPop, &plTerrain,
			&peName, &peGender, &peBirthYr,
		); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning favorite row: %w", err)
		}

		target, err := model.TargetFromColumns(planetID, personID)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: favorite %d: %w", f.ID, err)
		}
		f.Target = target

		switch target.Kind {
		case model.TargetPlanet:
			f.Planet = &model.Planet{
				ID:         target.ID,
				Name:       plName.String,
				Population: plPop.String,
				Terrain:    plTerrain.String,
			}
		case model.TargetPerson:
			f.Person = &model.Person{
				ID:        target.ID,
				Name:      peName.String,
				Gender:    peGender.String,
				BirthYear: peBirthYr.String,
			}
		}

		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating favorites: %w", err)
	}

	return favorites, nil
}

// CreateFavorite inserts the favorite and sets favorite.ID.
//
// The target must name exactly one planet or person; anything else is
// rejected before touching the database. A user, planet or person id that
// doesn't exist trips a foreign key and comes back as apperror.ErrConstraint.
func (db *DB) CreateFavorite(ctx context.Context, favorite *model.Favorite) error {
	if err := favorite.Target.Validate(); err != nil {
		return apperror.ValidationFailed("target", err.Error())
	}
	planetID, personID := favorite.Target.Columns()

	id, err := db.insert(ctx,
		`INSERT INTO favorites (user_id, planet_id, people_id) VALUES (?, ?, ?)`,
		favorite.UserID, planetID, personID,
	)
	if err != nil {
		if isConstraintError(err) {
			return apperror.ConstraintViolation(
				fmt.Sprintf("favorite references a missing user, planet or person (user %d, %s %d)",
					favorite.UserID, favorite.Target.Kind, favorite.Target.ID), err)
		}
		return fmt.Errorf("sqlstore: creating favorite for user %d: %w", favorite.UserID, err)
	}

	favorite.ID = id
	return nil
}

// FindFavorite returns the user's first favorite pointing at target, or
// apperror.ErrNotFound. Only the column matching the target kind is matched.
func (db *DB) FindFavorite(ctx context.Context, userID int64, target model.FavoriteTarget) (*model.Favorite, error) {
	if err := target.Validate(); err != nil {
		return nil, apperror.ValidationFailed("target", err.Error())
	}

	column := "planet_id"
	if target.Kind == model.TargetPerson {
		column = "people_id"
	}

	var (
		f                  model.Favorite
		planetID, personID *int64
	)
	err := db.queryRow(ctx,
		`SELECT id, user_id, planet_id, people_id FROM favorites
		 WHERE user_id = ? AND `+column+` = ?
		 ORDER BY id LIMIT 1`,
		userID, target.ID,
	).Scan(&f.ID, &f.UserID, &planetID, &personID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFoundMessage(
				fmt.Sprintf("favorite %s %d not found for user %d", target.Kind, target.ID, userID))
		}
		return nil, fmt.Errorf("sqlstore: finding favorite %s %d for user %d: %w", target.Kind, target.ID, userID, err)
	}

	if f.Target, err = model.TargetFromColumns(planetID, personID); err != nil {
		return nil, fmt.Errorf("sqlstore: favorite %d: %w", f.ID, err)
	}
	return &f, nil
}

// DeleteFavorite removes one favorite by id. It returns apperror.ErrNotFound
// when nothing was deleted; callers look the favorite up first.
func (db *DB) DeleteFavorite(ctx context.Context, id int64) error {
	result, err := db.exec(ctx, `DELETE FROM favorites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlstore: deleting favorite %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("favorite", id)
	}

	return nil
}
