// Package catalog holds the read-only project listing and the built-in
// author profile served by the site.
package catalog

import (
	"errors"
	"fmt"

	"github.com/artamananda/portfolio/internal/domain/model"
)

// Sentinel errors for catalog lookups and construction.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrDuplicateSlug   = errors.New("duplicate project slug")
)

// Catalog is an ordered, immutable list of projects. Order is display order.
// It is safe for concurrent use without locking.
type Catalog struct {
	projects []model.Project
	bySlug   map[string]int
}

// New validates projects and returns a catalog holding a private copy.
func New(projects []model.Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]model.Project, len(projects)),
		bySlug:   make(map[string]int, len(projects)),
	}
	for i, p := range projects {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("project %d: %w", i, err)
		}
		slug := p.Slug()
		if j, ok := c.bySlug[slug]; ok {
			return nil, fmt.Errorf("%w: %q used by projects %d and %d", ErrDuplicateSlug, slug, j, i)
		}
		c.bySlug[slug] = i
		c.projects[i] = clone(p)
	}
	return c, nil
}

// MustNew is like New but panics if projects are invalid. It is meant for
// built-in listings.
func MustNew(projects []model.Project) *Catalog {
	c, err := New(projects)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns a catalog of the built-in projects.
func Default() *Catalog {
	return MustNew(DefaultProjects())
}

// All returns the projects in display order. The result is a copy.
func (c *Catalog) All() []model.Project {
	out := make([]model.Project, len(c.projects))
	for i, p := range c.projects {
		out[i] = clone(p)
	}
	return out
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	return len(c.projects)
}

// Find returns the project with the given slug.
func (c *Catalog) Find(slug string) (model.Project, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return model.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, slug)
	}
	return clone(c.projects[i]), nil
}

// clone deep-copies the optional fields so callers cannot mutate the catalog.
func clone(p model.Project) model.Project {
	if p.Href != nil {
		p.Href = model.Ref(*p.Href)
	}
	if p.ImgSrc != nil {
		p.ImgSrc = model.Ref(*p.ImgSrc)
	}
	return p
}
