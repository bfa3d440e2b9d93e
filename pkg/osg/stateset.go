package osg

import "sort"

// Mode is a GL mode switch written as `NAME VALUE`, e.g. GL_LIGHTING OFF.
type Mode struct {
	Name  string
	Value string
}

// StateSet groups render modes and state attributes for a node or geometry.
type StateSet struct {
	Object
	Modes      []Mode
	Attributes []StateAttribute
	// TextureAttributes maps a texture unit to its attributes. Unit 0 always
	// exists; units without attributes are not written.
	TextureAttributes map[int][]StateAttribute
}

// NewStateSet creates an empty state set.
func (s *Session) NewStateSet() *StateSet {
	return &StateSet{
		Object:            s.newObject("StateSet"),
		TextureAttributes: map[int][]StateAttribute{0: nil},
	}
}

// AddMode appends a mode.
func (ss *StateSet) AddMode(name, value string) {
	ss.Modes = append(ss.Modes, Mode{Name: name, Value: value})
}

// AddAttribute appends a non-texture attribute.
func (ss *StateSet) AddAttribute(a StateAttribute) {
	ss.Attributes = append(ss.Attributes, a)
}

// AddTextureAttribute appends a to the given texture unit.
func (ss *StateSet) AddTextureAttribute(unit int, a StateAttribute) {
	if ss.TextureAttributes == nil {
		ss.TextureAttributes = map[int][]StateAttribute{0: nil}
	}
	ss.TextureAttributes[unit] = append(ss.TextureAttributes[unit], a)
}

// AddTexture binds t to its own Unit. A nil texture is ignored.
func (ss *StateSet) AddTexture(t *Texture2D) {
	if t == nil {
		return
	}
	ss.AddTextureAttribute(t.Unit, t)
}

func (ss *StateSet) units() []int {
	units := make([]int, 0, len(ss.TextureAttributes))
	for u, attrs := range ss.TextureAttributes {
		if len(attrs) > 0 {
			units = append(units, u)
		}
	}
	sort.Ints(units)
	return units
}

func (ss *StateSet) write(e *emitter) {
	e.open(0, "StateSet")
	e.writeIdentity(&ss.Object, ss.ID())
	for _, m := range ss.Modes {
		e.line(1, "%s %s", m.Name, m.Value)
	}
	for _, a := range ss.Attributes {
		e.node(1, a)
	}
	for _, u := range ss.units() {
		e.open(1, "textureUnit %d", u)
		for _, a := range ss.TextureAttributes[u] {
			e.node(2, a)
		}
		e.close(1)
	}
	e.close(0)
}
