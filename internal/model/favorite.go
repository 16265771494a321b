package model

import "fmt"

// TargetKind says what a favorite points at.
type TargetKind string

const (
	TargetPlanet TargetKind = "planet"
	TargetPerson TargetKind = "person"
)

// FavoriteTarget is the thing a favorite bookmarks: exactly one planet OR
// exactly one person, never both and never neither.
//
// In the database this is stored as two nullable columns (planet_id and
// people_id). In Go we keep it as a small tagged value so code can't build
// a favorite that points at two things at once.
type FavoriteTarget struct {
	Kind TargetKind
	ID   int64
}

// TargetsPlanet builds a target for the planet with the given id.
func TargetsPlanet(id int64) FavoriteTarget {
	return FavoriteTarget{Kind: TargetPlanet, ID: id}
}

// TargetsPerson builds a target for the person with the given id.
func TargetsPerson(id int64) FavoriteTarget {
	return FavoriteTarget{Kind: TargetPerson, ID: id}
}

// Validate reports whether the target names exactly one existing kind with a
// positive id.
func (t FavoriteTarget) Validate() error {
	switch t.Kind {
	case TargetPlanet, TargetPerson:
	default:
		return fmt.Errorf("favorite target kind %q is not planet or person", t.Kind)
	}
	if t.ID <= 0 {
		return fmt.Errorf("favorite target id must be positive, got %d", t.ID)
	}
	return nil
}

// Columns splits the target into the (planet_id, people_id) column pair.
// Exactly one of the returned pointers is non-nil for a valid target.
func (t FavoriteTarget) Columns() (planetID, personID *int64) {
	id := t.ID
	switch t.Kind {
	case TargetPlanet:
		return &id, nil
	case TargetPerson:
		return nil, &id
	}
	return nil, nil
}

// TargetFromColumns rebuilds a target from the nullable column pair.
// It fails when both or neither column is set.
func TargetFromColumns(planetID, personID *int64) (FavoriteTarget, error) {
	switch {
	case planetID != nil && personID == nil:
		return TargetsPlanet(*planetID), nil
	case personID != nil && planetID == nil:
		return TargetsPerson(*personID), nil
	case planetID != nil && personID != nil:
		return FavoriteTarget{}, fmt.Errorf("favorite references both planet %d and person %d", *planetID, *personID)
	default:
		return FavoriteTarget{}, fmt.Errorf("favorite references neither a planet nor a person")
	}
}

// Favorite links one user to one planet or person.
//
// Planet and Person are the expanded target records, filled in when the
// favorite is loaded through a listing. At most one of them is non-nil and it
// always matches Target.Kind.
type Favorite struct {
	ID     int64
	UserID int64
	Target FavoriteTarget

	Planet *Planet
	Person *Person
}
