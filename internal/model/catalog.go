package model

// Planet is a record of the seed dataset. Population and Terrain are free text
// ("200000", "unknown", "desert, mountains").
type Planet struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	Population string `db:"population"`
	Terrain    string `db:"terrain"`
}

// Person is a character of the seed dataset.
// BirthYear is free text in the in-universe calendar, e.g. "19BBY".
type Person struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Gender    string `db:"gender"`
	BirthYear string `db:"birth_year"`
}
