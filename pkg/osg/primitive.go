package osg

import (
	"strconv"
	"strings"
)

// PrimitiveType is the topology of a DrawElements set.
type PrimitiveType int

const (
	// PrimitiveUnset is the zero value; rendering it is an error.
	PrimitiveUnset PrimitiveType = iota
	Points
	Lines
	LineStrip
	LineLoop
	Triangles
	TriangleStrip
	TriangleFan
	Quads
	QuadStrip
	Polygon
)

var primitiveNames = [...]string{
	PrimitiveUnset: "UNSET",
	Points:         "POINTS",
	Lines:          "LINES",
	LineStrip:      "LINE_STRIP",
	LineLoop:       "LINE_LOOP",
	Triangles:      "TRIANGLES",
	TriangleStrip:  "TRIANGLE_STRIP",
	TriangleFan:    "TRIANGLE_FAN",
	Quads:          "QUADS",
	QuadStrip:      "QUAD_STRIP",
	Polygon:        "POLYGON",
}

func (p PrimitiveType) String() string {
	if p < 0 || int(p) >= len(primitiveNames) {
		return "UNKNOWN"
	}
	return primitiveNames[p]
}

// Arity is the number of indices written per output row.
func (p PrimitiveType) Arity() int {
	switch p {
	case Triangles:
		return 3
	case Quads:
		return 4
	default:
		return 1
	}
}

// Width is the integer size of an encoded index.
type Width int

const (
	UByte  Width = 1
	UShort Width = 2
	UInt   Width = 4
)

// ElementName is the OSG class name for an index list of this width.
func (w Width) ElementName() string {
	switch w {
	case UByte:
		return "DrawElementsUByte"
	case UShort:
		return "DrawElementsUShort"
	default:
		return "DrawElementsUInt"
	}
}

// IndexWidth returns the smallest width able to hold every index.
func IndexWidth(indices []uint32) Width {
	var max uint32
	for _, i := range indices {
		if i > max {
			max = i
		}
	}
	switch {
	case max <= 0xff:
		return UByte
	case max <= 0xffff:
		return UShort
	default:
		return UInt
	}
}

// DrawElements is an indexed primitive set owned by a Geometry.
type DrawElements struct {
	Type    PrimitiveType
	Indices []uint32
}

// NewDrawElements creates a primitive set of the given type.
func NewDrawElements(t PrimitiveType, indices ...uint32) *DrawElements {
	return &DrawElements{Type: t, Indices: indices}
}

// Width returns the encoding width for the current indices.
func (d *DrawElements) Width() Width {
	return IndexWidth(d.Indices)
}

// Groups returns the number of complete rows that will be written.
func (d *DrawElements) Groups() int {
	return len(d.Indices) / d.Type.Arity()
}

// Dropped returns how many trailing indices do not fill a row. They are
// counted in the header but not written.
func (d *DrawElements) Dropped() int {
	return len(d.Indices) % d.Type.Arity()
}

// writeDrawElements renders d inside the Primitives block of the geometry
// being written.
func (e *emitter) writeDrawElements(d *DrawElements) {
	n := d.Type.Arity()
	e.open(2, "%s %s %d", d.Width().ElementName(), d.Type, len(d.Indices))
	row := make([]string, n)
	for g := 0; g < d.Groups(); g++ {
		for a := 0; a < n; a++ {
			row[a] = strconv.FormatUint(uint64(d.Indices[g*n+a]), 10)
		}
		e.line(3, "%s", strings.Join(row, " "))
	}
	e.close(2)
}
