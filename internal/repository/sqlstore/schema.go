package sqlstore

import (
	"context"
	"fmt"
	"strings"
)

// migrate creates the four tables if they don't exist yet.
//
// CREATE TABLE IF NOT EXISTS is safe to run on every start. Statements run
// one at a time because not every driver accepts several in one Exec.
//
// Every favorite foreign key cascades: deleting a user, planet or person
// removes the favorites that point at it. The alternative (restrict) would
// leave the seed loader unable to replace a dataset that users bookmarked.
//
// The "exactly one of planet_id / people_id" rule is checked in
// CreateFavorite rather than with a CHECK constraint, because MySQL refuses
// CHECK constraints on columns used by a cascading foreign key.
func (db *DB) migrate(ctx context.Context) error {
	statements := []struct {
		name string
		sql  string
	}{
		{"users table", `
			CREATE TABLE IF NOT EXISTS users (
				id        {pk},
				username  VARCHAR(50)  NOT NULL UNIQUE,
				email     VARCHAR(120) NOT NULL UNIQUE,
				password  VARCHAR(80)  NOT NULL,
				is_active BOOLEAN      NOT NULL DEFAULT TRUE
			)`},
		{"planets table", `
			CREATE TABLE IF NOT EXISTS planets (
				id         {pk},
				name       VARCHAR(100) NOT NULL,
				population VARCHAR(50)  NOT NULL DEFAULT '',
				terrain    VARCHAR(100) NOT NULL DEFAULT ''
			)`},
		{"people table", `
			CREATE TABLE IF NOT EXISTS people (
				id         {pk},
				name       VARCHAR(100) NOT NULL,
				gender     VARCHAR(50)  NOT NULL DEFAULT '',
				birth_year VARCHAR(50)  NOT NULL DEFAULT ''
			)`},
		{"favorites table", `
			CREATE TABLE IF NOT EXISTS favorites (
				id        {pk},
				user_id   {ref} NOT NULL,
				planet_id {ref},
				people_id {ref},
				CONSTRAINT fk_favorites_user   FOREIGN KEY (user_id)   REFERENCES users(id)   ON DELETE CASCADE,
				CONSTRAINT fk_favorites_planet FOREIGN KEY (planet_id) REFERENCES planets(id) ON DELETE CASCADE,
				CONSTRAINT fk_favorites_people FOREIGN KEY (people_id) REFERENCES people(id)  ON DELETE CASCADE
			)`},
	}

	if db.dialect.IndexIfNotExists() {
		statements = append(statements, struct {
			name string
			sql  string
		}{"favorites user_id index", `CREATE INDEX IF NOT EXISTS idx_favorites_user_id ON favorites(user_id)`})
	}

	ddl := strings.NewReplacer(
		"{pk}", db.dialect.PrimaryKey(),
		"{ref}", db.dialect.ReferenceType(),
	)

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, ddl.Replace(stmt.sql)); err != nil {
			return fmt.Errorf("creating %s: %w", stmt.name, err)
		}
	}
	return nil
}
