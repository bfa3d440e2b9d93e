package scene

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/osgexport/pkg/osg"
)

// part is the slice of a mesh that uses one material.
type part struct {
	material int
	faces    []*Face
}

// split groups faces by material in ascending material order.
func split(m *Mesh) []part {
	byMaterial := make(map[int]*part)
	var order []int
	for i := range m.Faces {
		f := &m.Faces[i]
		mat := f.Material
		if mat < 0 || mat >= len(m.Materials) {
			mat = -1
		}
		p, ok := byMaterial[mat]
		if !ok {
			p = &part{material: mat}
			byMaterial[mat] = p
			order = append(order, mat)
		}
		p.faces = append(p.faces, f)
	}
	sort.Ints(order)
	parts := make([]part, len(order))
	for i, mat := range order {
		parts[i] = *byMaterial[mat]
	}
	return parts
}

// geode builds one Geometry per material of m. Skinned meshes get
// RigGeometry drawables carrying the mesh's vertex groups.
func (b *Builder) geode(name string, m *Mesh, skinned bool) (*osg.Geode, error) {
	geode := b.s.NewGeode()
	geode.SetName(name)
	for _, p := range split(m) {
		d, err := b.geometry(m, p, skinned)
		if err != nil {
			return nil, errors.Wrapf(err, "mesh %s", m.Name)
		}
		geode.AddDrawable(d)
		b.stats.Geometries++
	}
	return geode, nil
}

func (b *Builder) geometry(m *Mesh, p part, skinned bool) (osg.Drawable, error) {
	// Vertices are renumbered in order of first use within the part.
	remap := make(map[uint32]uint32)
	var used []uint32
	index := func(v uint32) (uint32, error) {
		if int(v) >= len(m.Vertices) {
			return 0, errors.Errorf("vertex index %d out of range (%d vertices)", v, len(m.Vertices))
		}
		if n, ok := remap[v]; ok {
			return n, nil
		}
		n := uint32(len(used))
		remap[v] = n
		used = append(used, v)
		return n, nil
	}

	var tris, quads []uint32
	skipped := 0
	for _, f := range p.faces {
		poly := make([]uint32, len(f.Vertices))
		for i, v := range f.Vertices {
			n, err := index(v)
			if err != nil {
				return nil, err
			}
			poly[i] = n
		}
		switch {
		case len(poly) == 3:
			tris = append(tris, poly...)
		case len(poly) == 4:
			quads = append(quads, poly...)
		case len(poly) > 4:
			for i := 1; i+1 < len(poly); i++ {
				tris = append(tris, poly[0], poly[i], poly[i+1])
			}
		default:
			skipped++
		}
	}
	if skipped > 0 {
		b.log.Warn("skipped degenerate faces",
			zap.String("mesh", m.Name),
			zap.Int("faces", skipped))
	}

	var (
		d    osg.Drawable
		geom *osg.Geometry
	)
	if skinned {
		rg := b.s.NewRigGeometry()
		for _, vg := range m.Groups {
			if g := b.s.NewVertexGroup(vg.Name); b.influence(g, vg, remap) {
				rg.AddInfluence(g)
			}
		}
		d, geom = rg, &rg.Geometry
	} else {
		geom = b.s.NewGeometry()
		d = geom
	}
	geom.Name = m.Name

	if p.material >= 0 {
		geom.StateSet = b.stateSet(m.Materials[p.material])
	}

	for _, prim := range []*osg.DrawElements{
		osg.NewDrawElements(osg.Triangles, tris...),
		osg.NewDrawElements(osg.Quads, quads...),
	} {
		if len(prim.Indices) == 0 {
			continue
		}
		if n := prim.Dropped(); n > 0 {
			b.stats.Dropped += n
			b.log.Warn("primitive indices dropped",
				zap.String("mesh", m.Name),
				zap.Stringer("type", prim.Type),
				zap.Int("dropped", n))
		}
		geom.AddPrimitive(prim)
	}

	scale := b.opts.ScaleFactor
	geom.Vertices = make(osg.VertexArray, len(used))
	for i, v := range used {
		pos := m.Vertices[v]
		geom.Vertices[i] = [3]float64{pos[0] * scale, pos[1] * scale, pos[2] * scale}
	}
	if len(m.Normals) == len(m.Vertices) {
		geom.Normals = make(osg.NormalArray, len(used))
		for i, v := range used {
			geom.Normals[i] = m.Normals[v]
		}
	}
	if len(m.UVs) == len(m.Vertices) {
		uvs := make([][2]float64, len(used))
		for i, v := range used {
			uvs[i] = m.UVs[v]
		}
		geom.SetTexCoords(0, uvs)
	}
	if len(m.Colors) == len(m.Vertices) {
		geom.Colors = make(osg.ColorArray, len(used))
		for i, v := range used {
			geom.Colors[i] = m.Colors[v]
		}
	}
	return d, nil
}

// influence fills g with the weights of src that fall in this part,
// renumbered. It reports whether any weight survived.
func (b *Builder) influence(g *osg.VertexGroup, src VertexGroup, remap map[uint32]uint32) bool {
	if !b.bones[src.Name] {
		b.log.Debug("vertex group without bone", zap.String("group", src.Name))
	}
	for _, w := range src.Weights {
		if n, ok := remap[w.Index]; ok && w.Weight != 0 {
			g.Add(n, w.Weight)
		}
	}
	return len(g.Vertices) > 0
}

// stateSet builds the material state for the material named name. Unknown
// names get a default material.
func (b *Builder) stateSet(name string) *osg.StateSet {
	ss := b.s.NewStateSet()
	mat := b.s.NewMaterial()
	mat.Name = name
	ss.AddAttribute(mat)

	src, ok := b.desc.Material(name)
	if !ok {
		b.log.Warn("material not found, using defaults", zap.String("material", name))
		return ss
	}
	if src.Ambient != nil {
		mat.Ambient = *src.Ambient
	}
	if src.Diffuse != nil {
		mat.Diffuse = *src.Diffuse
	}
	if src.Specular != nil {
		mat.Specular = *src.Specular
	}
	if src.Emission != nil {
		mat.Emission = *src.Emission
	}
	mat.Shininess = src.Shininess
	if mat.Diffuse[3] < 1 {
		ss.AddMode("GL_BLEND", "ON")
	}
	if src.Texture != "" {
		ss.AddTexture(b.s.NewTexture2D(b.opts.TexturePrefix + src.Texture))
	}
	return ss
}
