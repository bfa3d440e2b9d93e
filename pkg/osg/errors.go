package osg

import (
	"errors"
	"fmt"
)

// Precondition errors. They are always returned wrapped in a *NodeError.
var (
	ErrPrimitiveTypeUnset   = errors.New("primitive type not set")
	ErrMissingRestTransform = errors.New("bone has no bone-space rest transform")
)

// NodeError identifies the node that violated a precondition.
type NodeError struct {
	Class string
	ID    string
	Name  string
	Err   error
}

func newNodeError(o *Object, id string, err error) *NodeError {
	return &NodeError{Class: o.class, ID: id, Name: o.Name, Err: err}
}

func (e *NodeError) Error() string {
	who := e.Class
	if e.ID != "" {
		who += " " + e.ID
	}
	if e.Name != "" {
		who += fmt.Sprintf(" %q", e.Name)
	}
	return fmt.Sprintf("osg: %s: %v", who, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
