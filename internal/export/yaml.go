package export

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
)

// Document is the YAML form of a snapshot.
type Document struct {
	ExportedAt time.Time             `yaml:"exported_at"`
	Clients    []schema.Client       `yaml:"clients"`
	Vehicles   []schema.Vehicle      `yaml:"vehicles"`
	Orders     []schema.ServiceOrder `yaml:"orders"`
}

// WriteYAML encodes snap as a Document. Statuses are written by name, e.g.
// "InRepair".
func WriteYAML(w io.Writer, snap *Snapshot) error {
	doc := Document{
		ExportedAt: snap.TakenAt.UTC(),
		Clients:    nonNil(snap.Clients),
		Vehicles:   nonNil(snap.Vehicles),
		Orders:     nonNil(snap.Orders),
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush yaml: %w", err)
	}
	return nil
}

// nonNil makes empty collections encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
