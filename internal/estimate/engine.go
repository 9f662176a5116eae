// Package estimate computes labor hours and cost for heating distribution
// hubs and radiator units from the norms catalog, and explains every figure
// as an ordered list of additive rows followed by a coefficient chain.
//
// All functions are pure: they read the norms table and the values passed in
// and return new values.
package estimate

import (
	"fmt"

	"github.com/Simplici0/heatquote/internal/norms"
)

// Engine evaluates estimates against one norms table.
type Engine struct {
	norms *norms.Table
}

// New returns an Engine over a copy of t. A nil table selects the standard
// catalog.
func New(t *norms.Table) *Engine {
	if t == nil {
		return &Engine{norms: norms.Standard()}
	}
	return &Engine{norms: t.Clone()}
}

// Norms returns a copy of the table the engine evaluates against.
func (e *Engine) Norms() *norms.Table {
	return e.norms.Clone()
}

// siteFactors appends wall × congestion × distance.
func (e *Engine) siteFactors(t *trail, f Factors) {
	start := len(t.factors)
	defer func() {
		for i := range t.factors[start:] {
			t.factors[start+i].Site = true
		}
	}()

	wall, ok := e.norms.Wall(f.Wall)
	t.lookup("Стены", "wall", string(f.Wall), wall, ok)

	cramped, ok := e.norms.Congestion(f.Congestion)
	t.lookup("Стеснённость", "congestion", string(f.Congestion), cramped, ok)

	t.factor("Удалённость", fmt.Sprintf("%s км", formatNumber(f.DistanceKm)), e.norms.DistanceCoefficient(f.DistanceKm))
}

// SiteCoefficient returns the product of the project-wide coefficients.
func (e *Engine) SiteCoefficient(f Factors) float64 {
	t := newTrail("project")
	e.siteFactors(t, f)
	c := 1.0
	for _, x := range t.factors {
		c *= x.Value
	}
	return c
}

func (e *Engine) pipeFactors(t *trail, material norms.PipeMaterial, diameter norms.PipeDiameter, laying norms.Laying) {
	mat, ok := e.norms.PipeMaterial(material)
	t.lookup("Материал труб", "pipe_material", string(material), mat, ok)

	dia, ok := e.norms.PipeDiameter(diameter)
	t.lookup("Диаметр", "pipe_diameter", string(diameter), dia, ok)

	lay, ok := e.norms.Laying(laying)
	t.lookup("Прокладка", "laying", string(laying), lay, ok)
}
