package osg

import "github.com/Faultbox/osgexport/pkg/math"

// NodeBase holds the fields of osg::Node shared by all structural nodes.
type NodeBase struct {
	Object
	CullingActive   bool
	StateSet        *StateSet
	UpdateCallbacks []Callback
}

func (s *Session) newNodeBase(class string) NodeBase {
	return NodeBase{Object: s.newObject(class), CullingActive: true}
}

func (n *NodeBase) structural() *NodeBase {
	return n
}

// AddUpdateCallback appends cb to the node's update callbacks.
func (n *NodeBase) AddUpdateCallback(cb Callback) {
	n.UpdateCallbacks = append(n.UpdateCallbacks, cb)
}

// writeNode emits the osg::Node layer. Callbacks sit inside an implicit
// UpdateCallbacks block and therefore render two levels down.
func (e *emitter) writeNode(n *NodeBase) {
	e.line(1, "cullingActive %s", boolWord(n.CullingActive))
	if n.StateSet != nil {
		e.node(1, n.StateSet)
	}
	if len(n.UpdateCallbacks) > 0 {
		e.open(1, "UpdateCallbacks")
		for _, cb := range n.UpdateCallbacks {
			e.node(2, cb)
		}
		e.close(1)
	}
}

// Group is a structural node with ordered children.
type Group struct {
	NodeBase
	children []Structural
}

// NewGroup creates an empty group.
func (s *Session) NewGroup() *Group {
	return &Group{NodeBase: s.newNodeBase("Group")}
}

// AddChild appends children in order; output order is insertion order.
func (g *Group) AddChild(children ...Structural) {
	g.children = append(g.children, children...)
}

// Children returns the children in output order.
func (g *Group) Children() []Structural {
	return g.children
}

func (e *emitter) writeGroup(g *Group) {
	e.line(1, "num_children %d", len(g.children))
	for _, c := range g.children {
		e.node(1, c)
	}
}

func (g *Group) write(e *emitter) {
	e.open(0, "Group")
	e.writeIdentity(&g.Object, g.ID())
	e.writeNode(&g.NodeBase)
	e.writeGroup(g)
	e.close(0)
}

// Geode is a leaf holding drawables.
type Geode struct {
	NodeBase
	// Drawables may contain nil entries; they are counted but not written.
	Drawables []Drawable
}

// NewGeode creates an empty geode.
func (s *Session) NewGeode() *Geode {
	return &Geode{NodeBase: s.newNodeBase("Geode")}
}

// SetName prefixes the name with the class name, so a mesh "Cube" becomes
// "GeodeCube" and does not collide with its transform.
func (g *Geode) SetName(name string) {
	g.Name = g.class + name
}

// AddDrawable appends d.
func (g *Geode) AddDrawable(d Drawable) {
	g.Drawables = append(g.Drawables, d)
}

func (g *Geode) write(e *emitter) {
	e.open(0, "Geode")
	e.writeIdentity(&g.Object, g.ID())
	e.writeNode(&g.NodeBase)
	e.line(1, "num_drawables %d", len(g.Drawables))
	for _, d := range g.Drawables {
		e.node(1, d)
	}
	e.close(0)
}

// MatrixTransform is a group with a local transform.
type MatrixTransform struct {
	Group
	Matrix math.Mat4
}

// NewMatrixTransform creates a transform initialised to identity.
func (s *Session) NewMatrixTransform() *MatrixTransform {
	return &MatrixTransform{
		Group:  Group{NodeBase: s.newNodeBase("MatrixTransform")},
		Matrix: math.Identity(),
	}
}

func (e *emitter) writeMatrix(m math.Mat4) {
	e.open(1, "Matrix")
	for r := 0; r < 4; r++ {
		row := m.Row(r)
		e.line(2, "%s", e.floats(row[:]...))
	}
	e.close(1)
}

func (t *MatrixTransform) write(e *emitter) {
	e.open(0, "MatrixTransform")
	e.writeIdentity(&t.Object, t.ID())
	e.writeNode(&t.NodeBase)
	e.writeMatrix(t.Matrix)
	e.writeGroup(&t.Group)
	e.close(0)
}

// LightSource is a group that positions a Light in the scene.
type LightSource struct {
	Group
	Light *Light
}

// NewLightSource creates a light source with a default light. Culling is
// off so the light is never culled away.
func (s *Session) NewLightSource() *LightSource {
	ls := &LightSource{Group: Group{NodeBase: s.newNodeBase("LightSource")}}
	ls.CullingActive = false
	ls.Light = s.NewLight()
	return ls
}

func (l *LightSource) write(e *emitter) {
	e.open(0, "LightSource")
	e.writeIdentity(&l.Object, l.ID())
	e.writeNode(&l.NodeBase)
	if l.Light != nil {
		e.node(1, l.Light)
	}
	e.writeGroup(&l.Group)
	e.close(0)
}

// UpdateBone drives a bone from an animation channel of the same name.
type UpdateBone struct {
	Object
}

// NewUpdateBone creates a bone update callback targeting name.
func (s *Session) NewUpdateBone(name string) *UpdateBone {
	cb := &UpdateBone{Object: s.newObject("UpdateBone")}
	cb.Name = name
	return cb
}

func (*UpdateBone) callback() {}

func (u *UpdateBone) write(e *emitter) {
	e.open(0, "%s", e.ns("UpdateBone"))
	e.writeIdentity(&u.Object, u.ID())
	e.close(0)
}

// UpdateTransform drives a MatrixTransform from an animation.
type UpdateTransform struct {
	Object
}

// NewUpdateTransform creates a transform update callback targeting name.
func (s *Session) NewUpdateTransform(name string) *UpdateTransform {
	cb := &UpdateTransform{Object: s.newObject("UpdateTransform")}
	cb.Name = name
	return cb
}

func (*UpdateTransform) callback() {}

func (u *UpdateTransform) write(e *emitter) {
	e.open(0, "%s", e.ns("UpdateTransform"))
	e.writeIdentity(&u.Object, u.ID())
	e.close(0)
}
