package outline

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var _ Source = (*Fixture)(nil)

// Fixture is a static catalog read from a YAML file, used when no API is
// configured.
//
//	collections:
//	  - id: eng
//	    name: Engineering
//	documents:
//	  - id: onboarding
//	    title: Onboarding
//	    collectionId: eng
//	    publishedAt: 2024-01-02T15:04:05Z
type Fixture struct {
	Collections []Collection `yaml:"collections"`
	Documents   []Document   `yaml:"documents"`
}

// LoadFixture parses the YAML catalog at path.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

func (f *Fixture) ListDocuments(context.Context) ([]Document, error) {
	out := make([]Document, len(f.Documents))
	copy(out, f.Documents)
	return out, nil
}

func (f *Fixture) ListCollections(context.Context) ([]Collection, error) {
	out := make([]Collection, len(f.Collections))
	copy(out, f.Collections)
	return out, nil
}
