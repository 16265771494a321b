// Package seed loads the people, planets and users the API serves.
//
// The API has no create endpoints for its catalog; records come from a
// dataset file (YAML, TOML or JSON) applied by cmd/seed, or from the dataset
// embedded in the binary.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

//go:embed default.yaml
var defaultDataset []byte

// Dataset is the on-disk shape of a seed file.
type Dataset struct {
	Users   []User   `json:"users" yaml:"users" toml:"users"`
	Planets []Planet `json:"planets" yaml:"planets" toml:"planets"`
	People  []Person `json:"people" yaml:"people" toml:"people"`
}

// User is a seed user. Password is either plaintext, hashed on apply, or
// an existing bcrypt hash stored as-is.
type User struct {
	Username string `json:"username" yaml:"username" toml:"username"`
	Email    string `json:"email" yaml:"email" toml:"email"`
	Password string `json:"password" yaml:"password" toml:"password"`
	// IsActive defaults to true when omitted.
	IsActive *bool `json:"is_active,omitempty" yaml:"is_active,omitempty" toml:"is_active,omitempty"`
}

// Planet is a seed planet.
type Planet struct {
	Name       string `json:"name" yaml:"name" toml:"name"`
	Population string `json:"population" yaml:"population" toml:"population"`
	Terrain    string `json:"terrain" yaml:"terrain" toml:"terrain"`
}

// Person is a seed character.
type Person struct {
	Name      string `json:"name" yaml:"name" toml:"name"`
	Gender    string `json:"gender" yaml:"gender" toml:"gender"`
	BirthYear string `json:"birth_year" yaml:"birth_year" toml:"birth_year"`
}

// Format is a dataset encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for file extensions Load doesn't recognise.
var ErrUnknownFormat = errors.New("unknown dataset format")

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads and validates the dataset at path.
func Load(path string) (*Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	ds, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ds, nil
}

// Default returns the dataset embedded in the binary.
func Default() (*Dataset, error) {
	return Parse(defaultDataset, FormatYAML)
}

// Parse decodes data in the given format and validates it. Unknown keys are
// rejected so a typo in a field name doesn't silently drop data.
func Parse(data []byte, format Format) (*Dataset, error) {
	var ds Dataset

	switch format {
	case FormatYAML:
		if err := yaml.UnmarshalWithOptions(data, &ds, yaml.DisallowUnknownField()); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &ds)
		if err != nil {
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decoding toml: unknown key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&ds); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Column limits, matching the schema.
const (
	maxUsername = 50
	maxEmail    = 120
	maxName     = 100
)

// Validate checks required fields, length limits and uniqueness of
// usernames and emails. It reports every problem at once.
func (ds *Dataset) Validate() error {
	var errs []error

	usernames := make(map[string]bool)
	emails := make(map[string]bool)
	for i, u := range ds.Users {
		at := fmt.Sprintf("users[%d]", i)
		errs = append(errs,
			required(at, "username", u.Username, maxUsername),
			required(at, "email", u.Email, maxEmail),
		)
		if u.Password == "" {
			errs = append(errs, fmt.Errorf("%s: password is required", at))
		}
		if usernames[u.Username] {
			errs = append(errs, fmt.Errorf("%s: duplicate username %q", at, u.Username))
		}
		if emails[u.Email] {
			errs = append(errs, fmt.Errorf("%s: duplicate email %q", at, u.Email))
		}
		usernames[u.Username] = true
		emails[u.Email] = true
	}
	for i, p := range ds.Planets {
		errs = append(errs, required(fmt.Sprintf("planets[%d]", i), "name", p.Name, maxName))
	}
	for i, p := range ds.People {
		errs = append(errs, required(fmt.Sprintf("people[%d]", i), "name", p.Name, maxName))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid dataset: %w", err)
	}
	return nil
}

func required(at, field, value string, max int) error {
	switch {
	case strings.TrimSpace(value) == "":
		return fmt.Errorf("%s: %s is required", at, field)
	case utf8.RuneCountInString(value) > max:
		return fmt.Errorf("%s: %s is longer than %d characters", at, field, max)
	}
	return nil
}
