package habitat

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed habitats.json
var builtinCatalogue []byte

// EmbeddedSource loads the catalogue compiled into the binary.
type EmbeddedSource struct{}

// Load implements Source.
func (EmbeddedSource) Load(ctx context.Context) ([]Habitat, error) {
	return Decode(bytes.NewReader(builtinCatalogue))
}

// FileSource loads the catalogue from a JSON file.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(ctx context.Context) ([]Habitat, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening habitat file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a JSON array of habitats and checks that ids are present
// and unique.
func Decode(r io.Reader) ([]Habitat, error) {
	var habitats []Habitat
	if err := json.NewDecoder(r).Decode(&habitats); err != nil {
		return nil, fmt.Errorf("decoding habitats: %w", err)
	}
	if err := validate(habitats); err != nil {
		return nil, err
	}
	return habitats, nil
}

func validate(habitats []Habitat) error {
	seenHabitat := make(map[string]bool, len(habitats))
	seenAnimal := make(map[string]bool)
	for i, h := range habitats {
		if h.ID == "" {
			return fmt.Errorf("habitat %d: missing id", i)
		}
		if seenHabitat[h.ID] {
			return fmt.Errorf("habitat %q: duplicate id", h.ID)
		}
		seenHabitat[h.ID] = true
		for j, a := range h.Animals {
			if a.ID == "" {
				return fmt.Errorf("habitat %q animal %d: missing id", h.ID, j)
			}
			if seenAnimal[a.ID] {
				return fmt.Errorf("animal %q: duplicate id", a.ID)
			}
			seenAnimal[a.ID] = true
		}
	}
	return nil
}
