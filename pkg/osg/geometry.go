package osg

import (
	"fmt"
	"sort"
)

// VertexArray holds vertex positions.
type VertexArray [][3]float64

// NormalArray holds per-vertex normals.
type NormalArray [][3]float64

// ColorArray holds per-vertex RGBA colors.
type ColorArray [][4]float64

// TexCoordArray holds the texture coordinates of one unit.
type TexCoordArray struct {
	Unit   int
	Coords [][2]float64
}

// Geometry is a drawable mesh. Empty arrays are not written.
type Geometry struct {
	Object
	StateSet   *StateSet
	Primitives []*DrawElements
	Vertices   VertexArray
	Normals    NormalArray
	Colors     ColorArray
	TexCoords  map[int]*TexCoordArray
}

// NewGeometry creates an empty geometry.
func (s *Session) NewGeometry() *Geometry {
	return &Geometry{Object: s.newObject("Geometry")}
}

func (g *Geometry) drawable() *Geometry {
	return g
}

// AddPrimitive appends a primitive set.
func (g *Geometry) AddPrimitive(d *DrawElements) {
	g.Primitives = append(g.Primitives, d)
}

// SetTexCoords stores coords for the given unit, replacing earlier ones.
func (g *Geometry) SetTexCoords(unit int, coords [][2]float64) {
	if g.TexCoords == nil {
		g.TexCoords = make(map[int]*TexCoordArray)
	}
	g.TexCoords[unit] = &TexCoordArray{Unit: unit, Coords: coords}
}

func (g *Geometry) write(e *emitter) {
	e.open(0, "Geometry")
	e.writeIdentity(&g.Object, g.ID())
	e.writeGeometry(g)
	e.close(0)
}

// writeGeometry emits the geometry fields shared with RigGeometry.
func (e *emitter) writeGeometry(g *Geometry) {
	if g.StateSet != nil {
		e.node(1, g.StateSet)
	}
	if len(g.Primitives) > 0 {
		for i, p := range g.Primitives {
			if p != nil && p.Type == PrimitiveUnset {
				e.fail(newNodeError(&g.Object, g.ID(), fmt.Errorf("primitive %d: %w", i, ErrPrimitiveTypeUnset)))
				return
			}
		}
		e.open(1, "Primitives %d", len(g.Primitives))
		for _, p := range g.Primitives {
			if p != nil {
				e.writeDrawElements(p)
			}
		}
		e.close(1)
	}
	if len(g.Vertices) > 0 {
		e.open(1, "VertexArray %d", len(g.Vertices))
		for _, v := range g.Vertices {
			e.line(2, "%s", e.floats(v[:]...))
		}
		e.close(1)
	}
	if len(g.Normals) > 0 {
		e.line(1, "NormalBinding PER_VERTEX")
		e.open(1, "NormalArray %d", len(g.Normals))
		for _, n := range g.Normals {
			e.line(2, "%s", e.floats(n[:]...))
		}
		e.close(1)
	}
	units := make([]int, 0, len(g.TexCoords))
	for u, tc := range g.TexCoords {
		if tc != nil && len(tc.Coords) > 0 {
			units = append(units, u)
		}
	}
	sort.Ints(units)
	for _, u := range units {
		tc := g.TexCoords[u]
		e.open(1, "TexCoordArray %d Vec2Array %d", tc.Unit, len(tc.Coords))
		for _, c := range tc.Coords {
			e.line(2, "%s", e.floats(c[:]...))
		}
		e.close(1)
	}
	if len(g.Colors) > 0 {
		e.open(1, "ColorArray Vec4Array %d", len(g.Colors))
		for _, c := range g.Colors {
			e.line(2, "%s", e.floats(c[:]...))
		}
		e.close(1)
	}
}
