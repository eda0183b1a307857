package formation

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed formations.yaml
var builtinFormations []byte

// ErrUnknownFormation is returned when a formation id is not in the catalog.
var ErrUnknownFormation = errors.New("unknown formation")

// Catalog is the read-only, ordered set of formation templates.
type Catalog struct {
	templates []Template
	byID      map[string]int
}

// NewCatalog decodes and validates a YAML list of templates.
func NewCatalog(data []byte) (*Catalog, error) {
	var templates []Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("decode formations: %w", err)
	}
	if len(templates) == 0 {
		return nil, errors.New("formation catalog is empty")
	}

	c := &Catalog{templates: templates, byID: make(map[string]int, len(templates))}
	for i, t := range templates {
		if err := validateTemplate(t); err != nil {
			return nil, err
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("formation %q: duplicate id", t.ID)
		}
		c.byID[t.ID] = i
	}
	return c, nil
}

// Builtin returns the catalog embedded in the binary.
func Builtin() (*Catalog, error) {
	return NewCatalog(builtinFormations)
}

func validateTemplate(t Template) error {
	if t.ID == "" {
		return errors.New("formation with empty id")
	}
	if len(t.Slots) == 0 {
		return fmt.Errorf("formation %q: no slots", t.ID)
	}
	seen := make(map[string]struct{}, len(t.Slots))
	for _, s := range t.Slots {
		if s.ID == "" {
			return fmt.Errorf("formation %q: slot with empty id", t.ID)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("formation %q: duplicate slot %q", t.ID, s.ID)
		}
		seen[s.ID] = struct{}{}
		if !s.Position.Valid() {
			return fmt.Errorf("formation %q: slot %q has unknown position %q", t.ID, s.ID, s.Position)
		}
		if s.X < 0 || s.X > 100 || s.Y < 0 || s.Y > 100 {
			return fmt.Errorf("formation %q: slot %q placed outside the pitch", t.ID, s.ID)
		}
	}
	return nil
}

// List returns the templates in catalog order. The returned slice is a copy.
func (c *Catalog) List() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Find looks a template up by id.
func (c *Catalog) Find(id string) (Template, error) {
	i, ok := c.byID[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownFormation, id)
	}
	return c.templates[i], nil
}

// Default is the first template of the catalog.
func (c *Catalog) Default() Template {
	return c.templates[0]
}
