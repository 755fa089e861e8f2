// Package preset loads hand-written surveys from a YAML file.
package preset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"surveybot/survey"
)

// Question is one question of a preset.
type Question struct {
	Text    string   `yaml:"text"`
	Options []string `yaml:"options"`
}

// Preset is a named manual survey.
type Preset struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Questions   []Question `yaml:"questions"`
}

type file struct {
	Presets []Preset `yaml:"presets"`
}

// Set is a collection of presets keyed by lowercase name.
type Set struct {
	byName map[string]Preset
}

// Load reads presets from path. A missing file yields an empty set.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Set{byName: map[string]Preset{}}, nil
		}
		return nil, fmt.Errorf("preset: read %s: %w", path, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("preset: %s: %w", path, err)
	}
	return set, nil
}

// Parse decodes a presets document. Names must be present and unique;
// question counts are checked later by the survey compiler.
func Parse(data []byte) (*Set, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	set := &Set{byName: make(map[string]Preset, len(f.Presets))}
	for i, p := range f.Presets {
		key := normalize(p.Name)
		if key == "" {
			return nil, fmt.Errorf("preset %d has no name", i+1)
		}
		if _, dup := set.byName[key]; dup {
			return nil, fmt.Errorf("duplicate preset %q", p.Name)
		}
		set.byName[key] = p
	}
	return set, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup returns the drafts of the named preset.
func (s *Set) Lookup(name string) ([]survey.Draft, bool) {
	p, ok := s.byName[normalize(name)]
	if !ok {
		return nil, false
	}
	return p.Drafts(), true
}

// Names lists the preset names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.byName))
	for _, p := range s.byName {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of presets.
func (s *Set) Len() int {
	return len(s.byName)
}

// Drafts converts the preset into compiler input.
func (p Preset) Drafts() []survey.Draft {
	out := make([]survey.Draft, len(p.Questions))
	for i, q := range p.Questions {
		out[i] = survey.Draft{Text: strings.TrimSpace(q.Text), Options: append([]string(nil), q.Options...)}
	}
	return out
}

// Validate runs the compiler's structural checks on every preset and
// returns one error per invalid preset, keyed by name.
func (s *Set) Validate() map[string]error {
	bad := map[string]error{}
	for _, p := range s.byName {
		if err := survey.ValidateQuestions(p.Drafts()); err != nil {
			bad[p.Name] = err
		}
	}
	return bad
}
