// Package content loads the authored question bank and result profiles and
// prepares them for scoring. Loading validates and normalizes exactly once;
// the resulting Content is read-only.
package content

import (
	"careertest/internal/model"
	"careertest/internal/scoring"
	_ "embed"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed bundle.yaml
var embeddedBundle []byte

var validate = validator.New()

// Content is the normalized question bank plus the profile table.
type Content struct {
	Version   string
	Questions []model.Question
	profiles  map[model.Dimension]model.Profile
}

// Profile looks up the authored profile for d.
func (c *Content) Profile(d model.Dimension) (*model.Profile, bool) {
	p, ok := c.profiles[d]
	if !ok {
		return nil, false
	}
	return &p, true
}

// Profiles returns every profile in canonical dimension order.
func (c *Content) Profiles() []model.Profile {
	out := make([]model.Profile, 0, len(c.profiles))
	for _, d := range model.Dimensions {
		if p, ok := c.profiles[d]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Decode parses a YAML content bundle.
func Decode(data []byte) (*model.ContentBundle, error) {
	var b model.ContentBundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode content bundle: %w", err)
	}
	return &b, nil
}

// EmbeddedBundle returns the bundle compiled into the binary.
func EmbeddedBundle() (*model.ContentBundle, error) {
	return Decode(embeddedBundle)
}

// Embedded builds Content from the bundle compiled into the binary.
func Embedded() (*Content, error) {
	b, err := EmbeddedBundle()
	if err != nil {
		return nil, err
	}
	return Build(b)
}

// Build validates b and normalizes every choice score.
func Build(b *model.ContentBundle) (*Content, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}

	profiles := make(map[model.Dimension]model.Profile, len(b.Profiles))
	for _, p := range b.Profiles {
		profiles[p.Dimension] = p
	}

	return &Content{
		Version:   b.Version,
		Questions: scoring.NormalizeBank(b.Questions),
		profiles:  profiles,
	}, nil
}
