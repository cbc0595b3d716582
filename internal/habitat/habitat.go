// Package habitat holds the zoo's habitat catalogue.
//
// The catalogue is static data loaded from a Source: the built-in JSON
// document, a file on disk, or an object in S3. A Store keeps the loaded
// catalogue in memory and can reload it when the file changes.
package habitat

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a habitat or animal id is unknown.
var ErrNotFound = errors.New("habitat: not found")

// Habitat is an enclosure and the animals living in it.
type Habitat struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Climate     string   `json:"climate"`
	Description string   `json:"description"`
	Animals     []Animal `json:"animals"`
}

// Animal is a single animal in a habitat.
type Animal struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Diet    string `json:"diet"`
}

// Source loads the catalogue.
type Source interface {
	Load(ctx context.Context) ([]Habitat, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Habitat, error)

// Load implements Source.
func (f SourceFunc) Load(ctx context.Context) ([]Habitat, error) {
	return f(ctx)
}
