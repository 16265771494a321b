package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

// fakeStore is an in-memory repository.Store. Slices keep insertion order the
// way the SQL store does; failErr makes every call fail, to simulate a
// database outage.
type fakeStore struct {
	people    []model.Person
	planets   []model.Planet
	users     []model.User
	favorites []model.Favorite
	nextID    int64

	failErr error
}

var _ repository.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) ListPeople(context.Context) ([]model.Person, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	return append([]model.Person{}, f.people...), nil
}

func (f *fakeStore) GetPerson(_ context.Context, id int64) (*model.Person, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	for _, p := range f.people {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, apperror.NotFound("person", id)
}

func (f *fakeStore) CreatePerson(_ context.Context, person *model.Person) error {
	person.ID = f.id()
	f.people = append(f.people, *person)
	return nil
}

func (f *fakeStore) ListPlanets(context.Context) ([]model.Planet, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	return append([]model.Planet{}, f.planets...), nil
}

func (f *fakeStore) GetPlanet(_ context.Context, id int64) (*model.Planet, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	for _, p := range f.planets {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, apperror.NotFound("planet", id)
}

func (f *fakeStore) CreatePlanet(_ context.Context, planet *model.Planet) error {
	planet.ID = f.id()
	f.planets = append(f.planets, *planet)
	return nil
}

func (f *fakeStore) ListUsers(context.Context) ([]model.User, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	return append([]model.User{}, f.users...), nil
}

func (f *fakeStore) GetUser(_ context.Context, id int64) (*model.User, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

func (f *fakeStore) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperror.ConstraintViolation("already taken", errors.New("unique"))
		}
	}
	user.ID = f.id()
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeStore) ListFavorites(_ context.Context, userID int64) ([]model.Favorite, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	result := make([]model.Favorite, 0)
	for _, fav := range f.favorites {
		if fav.UserID != userID {
			continue
		}
		switch fav.Target.Kind {
		case model.TargetPlanet:
			fav.Planet, _ = f.GetPlanet(context.Background(), fav.Target.ID)
		case model.TargetPerson:
			fav.Person, _ = f.GetPerson(context.Background(), fav.Target.ID)
		}
		result = append(result, fav)
	}
	return result, nil
}

func (f *fakeStore) CreateFavorite(_ context.Context, favorite *model.Favorite) error {
	if f.failErr != nil {
		return f.failErr
	}
	favorite.ID = f.id()
	f.favorites = append(f.favorites, *favorite)
	return nil
}

func (f *fakeStore) FindFavorite(_ context.Context, userID int64, target model.FavoriteTarget) (*model.Favorite, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	for _, fav := range f.favorites {
		if fav.UserID == userID && fav.Target == target {
			return &fav, nil
		}
	}
	return nil, apperror.NotFoundMessage("favorite not found")
}

func (f *fakeStore) DeleteFavorite(_ context.Context, id int64) error {
	if f.failErr != nil {
		return f.failErr
	}
	for i, fav := range f.favorites {
		if fav.ID == id {
			f.favorites = append(f.favorites[:i], f.favorites[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("favorite", id)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// seedFakeStore adds user 1, planet "Tatooine" and person "Luke Skywalker".
func seedFakeStore(t *testing.T) (*fakeStore, *model.User, *model.Planet, *model.Person) {
	t.Helper()
	store := newFakeStore()
	ctx := context.Background()

	user := &model.User{Username: "luke", Email: "luke@example.com", PasswordHash: "hash", IsActive: true}
	planet := &model.Planet{Name: "Tatooine", Population: "200000", Terrain: "desert"}
	person := &model.Person{Name: "Luke Skywalker", Gender: "male", BirthYear: "19BBY"}

	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	if err := store.CreatePlanet(ctx, planet); err != nil {
		t.Fatalf("seeding planet: %v", err)
	}
	if err := store.CreatePerson(ctx, person); err != nil {
		t.Fatalf("seeding person: %v", err)
	}
	return store, user, planet, person
}
