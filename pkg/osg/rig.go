package osg

// VertexWeight is one skinned vertex of a VertexGroup.
type VertexWeight struct {
	Index  uint32
	Weight float64
}

// VertexGroup lists the vertices a bone influences. Its name is the name of
// the target bone.
type VertexGroup struct {
	Object
	Target   string
	Vertices []VertexWeight
}

// NewVertexGroup creates an influence group for the bone named target.
func (s *Session) NewVertexGroup(target string) *VertexGroup {
	vg := &VertexGroup{Object: s.newObject("VertexGroup"), Target: target}
	vg.Name = target
	return vg
}

// ID is derived from the target so influences can be cross-referenced by
// bone name, e.g. "uniqid_VertexGroupArm_L".
func (vg *VertexGroup) ID() string {
	return "uniqid_" + vg.class + vg.Target
}

// Add appends a weighted vertex.
func (vg *VertexGroup) Add(index uint32, weight float64) {
	vg.Vertices = append(vg.Vertices, VertexWeight{Index: index, Weight: weight})
}

func (vg *VertexGroup) write(e *emitter) {
	e.open(0, "%s \"%s\" %d", e.ns("VertexInfluence"), vg.Target, len(vg.Vertices))
	for _, v := range vg.Vertices {
		e.line(1, "%d %s", v.Index, e.float(v.Weight))
	}
	e.close(0)
}

// RigGeometry is a geometry skinned by a Skeleton. It is always Dynamic.
type RigGeometry struct {
	Geometry
	influences []*VertexGroup
	byTarget   map[string]int
}

// NewRigGeometry creates an empty skinned geometry.
func (s *Session) NewRigGeometry() *RigGeometry {
	rg := &RigGeometry{
		Geometry: Geometry{Object: s.newObject("RigGeometry")},
		byTarget: make(map[string]int),
	}
	rg.DataVariance = Dynamic
	return rg
}

// AddInfluence stores vg under its target, replacing an earlier group with
// the same target in place.
func (rg *RigGeometry) AddInfluence(vg *VertexGroup) {
	if rg.byTarget == nil {
		rg.byTarget = make(map[string]int)
	}
	if i, ok := rg.byTarget[vg.Target]; ok {
		rg.influences[i] = vg
		return
	}
	rg.byTarget[vg.Target] = len(rg.influences)
	rg.influences = append(rg.influences, vg)
}

// Influence returns the group targeting the named bone.
func (rg *RigGeometry) Influence(target string) (*VertexGroup, bool) {
	i, ok := rg.byTarget[target]
	if !ok {
		return nil, false
	}
	return rg.influences[i], true
}

// Influences returns the groups in insertion order.
func (rg *RigGeometry) Influences() []*VertexGroup {
	return rg.influences
}

func (rg *RigGeometry) write(e *emitter) {
	e.open(0, "%s", e.ns("RigGeometry"))
	e.writeIdentity(&rg.Object, rg.ID())
	e.line(1, "num_influences %d", len(rg.influences))
	for _, vg := range rg.influences {
		e.node(1, vg)
	}
	e.writeGeometry(&rg.Geometry)
	e.close(0)
}
