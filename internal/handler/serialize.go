package handler

import "github.com/sakif/starwars-api/internal/model"

// The response types below are the public JSON shape of each entity.
// Handlers never encode model structs directly: whatever a model grows, the
// API only changes when these do. UserResponse in particular has no field
// for the password hash.

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type PlanetResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Population string `json:"population"`
	Terrain    string `json:"terrain"`
}

type PersonResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	BirthYear string `json:"birth_year"`
}

// FavoriteResponse always carries both "planet" and "people"; the one the
// favorite doesn't target is null. The raw planet_id / people_id columns are
// not part of the shape.
type FavoriteResponse struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"user_id"`
	Planet *PlanetResponse `json:"planet"`
	People *PersonResponse `json:"people"`
}

func serializeUser(u model.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func serializePlanet(p model.Planet) PlanetResponse {
	return PlanetResponse{ID: p.ID, Name: p.Name, Population: p.Population, Terrain: p.Terrain}
}

func serializePerson(p model.Person) PersonResponse {
	return PersonResponse{ID: p.ID, Name: p.Name, Gender: p.Gender, BirthYear: p.BirthYear}
}

func serializeFavorite(f model.Favorite) FavoriteResponse {
	resp := FavoriteResponse{ID: f.ID, UserID: f.UserID}
	if f.Planet != nil {
		p := serializePlanet(*f.Planet)
		resp.Planet = &p
	}
	if f.Person != nil {
		p := serializePerson(*f.Person)
		resp.People = &p
	}
	return resp
}

// serializeAll maps fn over items. The result is never nil, so an empty
// list encodes as [] rather than null.
func serializeAll[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
