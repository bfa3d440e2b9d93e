package osg

import "strconv"

// DataVariance tells OSG whether an object may change after loading.
type DataVariance int

const (
	// Static is the default and is not written to the file.
	Static DataVariance = iota
	// Dynamic marks animated or skinned content.
	Dynamic
)

// String returns the OSG keyword for the variance.
func (d DataVariance) String() string {
	if d == Dynamic {
		return "DYNAMIC"
	}
	return "UNKNOWN"
}

// Object is the identity layer embedded in every node.
type Object struct {
	// Name is written as `name "..."`; the empty string means unset.
	Name         string
	DataVariance DataVariance
	// Comment is kept for callers and never written.
	Comment string

	class   string
	counter uint64
}

// Base returns o.
func (o *Object) Base() *Object {
	return o
}

// ClassName returns the OSG class name of the node.
func (o *Object) ClassName() string {
	return o.class
}

// Counter returns the session counter value assigned at construction.
func (o *Object) Counter() uint64 {
	return o.counter
}

// ID returns the generated unique ID, e.g. "uniqid_Group_3".
func (o *Object) ID() string {
	return "uniqid_" + o.class + "_" + strconv.FormatUint(o.counter, 10)
}

// SetName sets the node name.
func (o *Object) SetName(name string) {
	o.Name = name
}

// writeIdentity emits the identity layer. An empty id suppresses the
// UniqueID line for classes that never carry one.
func (e *emitter) writeIdentity(o *Object, id string) {
	if id != "" {
		e.line(1, "UniqueID %s", id)
	}
	if o.DataVariance != Static {
		e.line(1, "DataVariance %s", o.DataVariance)
	}
	if o.Name != "" {
		e.line(1, "name \"%s\"", o.Name)
	}
}
