package osg

// FindObject returns the first node named name in a pre-order walk of root.
// Only containers are descended into, so drawables, state and callbacks are
// never matched below the root.
func FindObject(name string, root Node) (Node, bool) {
	if isNil(root) {
		return nil, false
	}
	if root.Base().Name == name {
		return root, true
	}
	c, ok := root.(Container)
	if !ok {
		return nil, false
	}
	for _, child := range c.Children() {
		if n, found := FindObject(name, child); found {
			return n, true
		}
	}
	return nil, false
}
