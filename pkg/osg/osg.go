// Package osg builds OpenSceneGraph scene graphs in memory and writes them in
// the OSG ASCII interchange format.
//
// Nodes are created through a Session, which hands out the unique IDs used in
// UniqueID headers. A Writer renders a finished tree into a single document.
// The package is write-only: it never parses the format back.
package osg

import "reflect"

// Node is implemented by every serializable scene-graph object. The set of
// node kinds is closed; all implementations live in this package.
type Node interface {
	// ClassName is the OSG class name used in IDs and block headers.
	ClassName() string
	// Base returns the identity layer shared by all nodes.
	Base() *Object

	write(e *emitter)
}

// Structural is a node that can be placed in a Group: Group, Geode,
// MatrixTransform, LightSource, Bone, Skeleton and AnimationManager.
type Structural interface {
	Node
	structural() *NodeBase
}

// Container is a structural node with ordered children. FindObject only
// descends into containers.
type Container interface {
	Structural
	Children() []Structural
	AddChild(children ...Structural)
}

// StateAttribute is a render-state modifier attachable through a StateSet.
type StateAttribute interface {
	Node
	stateAttribute()
}

// Drawable is a geometry attachable to a Geode.
type Drawable interface {
	Node
	drawable() *Geometry
}

// Callback is an update callback attached to a structural node.
type Callback interface {
	Node
	callback()
}

var (
	_ Container  = (*Group)(nil)
	_ Container  = (*MatrixTransform)(nil)
	_ Container  = (*LightSource)(nil)
	_ Container  = (*Bone)(nil)
	_ Container  = (*Skeleton)(nil)
	_ Container  = (*AnimationManager)(nil)
	_ Structural = (*Geode)(nil)

	_ StateAttribute = (*Material)(nil)
	_ StateAttribute = (*LightModel)(nil)
	_ StateAttribute = (*Light)(nil)
	_ StateAttribute = (*Texture2D)(nil)

	_ Drawable = (*Geometry)(nil)
	_ Drawable = (*RigGeometry)(nil)

	_ Callback = (*UpdateBone)(nil)
	_ Callback = (*UpdateTransform)(nil)

	_ Node = (*StateSet)(nil)
	_ Node = (*VertexGroup)(nil)
	_ Node = (*Animation)(nil)
	_ Node = (*Channel)(nil)
)

// isNil reports whether n is nil or holds a nil pointer. Lists of children,
// drawables and attributes may contain either; both are skipped on output.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
