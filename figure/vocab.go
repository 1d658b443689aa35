package figure

import (
	"fmt"
	"strings"

	"gmr/canvas"
)

// Entry is one member of a closed vocabulary with its display color.
type Entry struct {
	Name  string
	Color string
}

// Vocabulary is a closed, ordered set of names. Order and colors live in one
// slice so a name can never lack a color.
type Vocabulary struct {
	label   string
	entries []Entry
}

// NewVocabulary checks that names are non-empty and unique and that every
// color parses.
func NewVocabulary(label string, entries ...Entry) (Vocabulary, error) {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return Vocabulary{}, fmt.Errorf("%s: empty name", label)
		}
		if seen[e.Name] {
			return Vocabulary{}, fmt.Errorf("%s: duplicate name %q", label, e.Name)
		}
		seen[e.Name] = true
		if _, err := canvas.ParseColor(e.Color); err != nil {
			return Vocabulary{}, fmt.Errorf("%s: %q: %w", label, e.Name, err)
		}
	}
	return Vocabulary{label: label, entries: entries}, nil
}

func mustVocabulary(label string, entries ...Entry) Vocabulary {
	v, err := NewVocabulary(label, entries...)
	if err != nil {
		panic(err)
	}
	return v
}

// Label names the vocabulary in error messages.
func (v Vocabulary) Label() string { return v.label }

func (v Vocabulary) Len() int { return len(v.entries) }

// Entries returns the vocabulary in display order.
func (v Vocabulary) Entries() []Entry {
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Names returns the names in display order.
func (v Vocabulary) Names() []string {
	names := make([]string, len(v.entries))
	for i, e := range v.entries {
		names[i] = e.Name
	}
	return names
}

// Color returns the color of name after trimming surrounding spaces.
func (v Vocabulary) Color(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, e := range v.entries {
		if e.Name == name {
			return e.Color, true
		}
	}
	return "", false
}

func (v Vocabulary) Contains(name string) bool {
	_, ok := v.Color(name)
	return ok
}

var (
	InterventionTypes = mustVocabulary("intervention type",
		Entry{"Physical game", "#9bf6ff"},
		Entry{"Cognitive training", "#bdb2ff"},
		Entry{"Distraction", "#ffd6a5"},
		Entry{"CBT", "#5ee3d3"},
	)
	EngagementTypes = mustVocabulary("engagement type",
		Entry{"Affective", "#ffadad"},
		Entry{"Cognitive", "#caffbf"},
		Entry{"Behavioral", "#a0c4ff"},
		Entry{"Socio-cultural", "#fdffb6"},
	)
)
