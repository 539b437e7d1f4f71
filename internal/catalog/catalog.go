// Package catalog holds the immutable registry of published assessment
// definitions and the rules a definition must satisfy to be published.
package catalog

import (
	"fmt"

	"mindhaven/internal/model"
)

// Catalog is an immutable registry of validated assessment definitions.
// Construction validates every definition; once built, the catalog is
// read-only and safe for concurrent use.
type Catalog struct {
	byID    map[string]*model.AssessmentDefinition
	ordered []*model.AssessmentDefinition
}

// New builds a catalog from definitions, validating each one. Any violation
// rejects the whole catalog: partial publishes would leave lookups
// inconsistent across restarts.
func New(defs ...*model.AssessmentDefinition) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*model.AssessmentDefinition, len(defs))}
	for _, def := range defs {
		if err := Validate(def); err != nil {
			return nil, err
		}
		if _, dup := c.byID[def.ID]; dup {
			return nil, &IntegrityError{
				DefinitionID: def.ID,
				Problems:     []string{fmt.Sprintf("duplicate definition id %q", def.ID)},
			}
		}
		c.byID[def.ID] = def
		c.ordered = append(c.ordered, def)
	}
	return c, nil
}

// Get returns the definition with the given id
func (c *Catalog) Get(id string) (*model.AssessmentDefinition, bool) {
	def, ok := c.byID[id]
	return def, ok
}

// ListByCategory returns definitions in the given category, in load order
func (c *Catalog) ListByCategory(cat model.Category) []*model.AssessmentDefinition {
	var out []*model.AssessmentDefinition
	for _, def := range c.ordered {
		if def.Category == cat {
			out = append(out, def)
		}
	}
	return out
}

// List returns every published definition in load order
func (c *Catalog) List() []*model.AssessmentDefinition {
	out := make([]*model.AssessmentDefinition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of published definitions
func (c *Catalog) Len() int {
	return len(c.ordered)
}
