package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/osgexport/internal/logger"
	"github.com/Faultbox/osgexport/pkg/math"
)

// ImportGLTF reads a .gltf or .glb file into a Description.
//
// Every skin becomes an armature object whose bones are the skin's joints;
// joint nodes do not appear as objects of their own. Meshes are flattened
// to triangles. Coordinates are taken as they are, without an axis change.
func ImportGLTF(path string) (*Description, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open gltf %s", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	d, err := FromGLTF(doc, name)
	if err != nil {
		return nil, errors.Wrapf(err, "import gltf %s", path)
	}
	return d, nil
}

// FromGLTF converts an opened glTF document.
func FromGLTF(doc *gltf.Document, name string) (*Description, error) {
	imp := &gltfImporter{
		doc:     doc,
		log:     logger.Named("gltf"),
		desc:    &Description{Name: name},
		parent:  make(map[uint32]uint32),
		joint:   make(map[uint32]int),
		nodeNam: make([]string, len(doc.Nodes)),
	}
	return imp.run()
}

type gltfImporter struct {
	doc  *gltf.Document
	log  *zap.Logger
	desc *Description

	parent  map[uint32]uint32 // child node -> parent node
	joint   map[uint32]int    // joint node -> skin
	nodeNam []string
}

func (imp *gltfImporter) run() (*Description, error) {
	doc := imp.doc
	for i, n := range doc.Nodes {
		imp.nodeNam[i] = n.Name
		if n.Name == "" {
			imp.nodeNam[i] = fmt.Sprintf("node%d", i)
		}
		for _, c := range n.Children {
			imp.parent[c] = uint32(i)
		}
	}
	for si, skin := range doc.Skins {
		for _, j := range skin.Joints {
			imp.joint[j] = si
		}
	}

	imp.materials()
	for si := range doc.Skins {
		imp.desc.Objects = append(imp.desc.Objects, imp.armature(si))
	}

	for i, n := range doc.Nodes {
		idx := uint32(i)
		if _, ok := imp.joint[idx]; ok {
			continue
		}
		obj := Object{Name: imp.nodeNam[i], Matrix: nodeMatrix(n)}
		if p, ok := imp.parent[idx]; ok {
			if _, isJoint := imp.joint[p]; !isJoint {
				obj.Parent = imp.nodeNam[p]
			}
		}
		if n.Mesh != nil {
			mesh, err := imp.mesh(int(*n.Mesh), n.Skin)
			if err != nil {
				return nil, errors.Wrapf(err, "node %s", obj.Name)
			}
			mesh.Name = fmt.Sprintf("%s_mesh%d", obj.Name, *n.Mesh)
			imp.desc.Meshes = append(imp.desc.Meshes, *mesh)
			obj.Mesh = mesh.Name
			if n.Skin != nil {
				obj.Armature = skinName(doc, int(*n.Skin))
				// Skinned meshes are positioned by their skeleton.
				obj.Parent = ""
			}
		}
		imp.desc.Objects = append(imp.desc.Objects, obj)
	}
	imp.log.Debug("gltf imported",
		zap.Int("nodes", len(doc.Nodes)),
		zap.Int("objects", len(imp.desc.Objects)),
		zap.Int("meshes", len(imp.desc.Meshes)),
		zap.Int("skins", len(doc.Skins)))
	return imp.desc, nil
}

func skinName(doc *gltf.Document, i int) string {
	if n := doc.Skins[i].Name; n != "" {
		return n
	}
	return fmt.Sprintf("Armature%d", i)
}

// armature turns skin si into an armature object. Joints whose parent is
// not a joint of the same skin are roots.
func (imp *gltfImporter) armature(si int) Object {
	skin := imp.doc.Skins[si]
	obj := Object{Name: skinName(imp.doc, si)}
	if skin.Skeleton != nil {
		if p, ok := imp.parent[*skin.Skeleton]; ok {
			obj.Matrix = nodeMatrix(imp.doc.Nodes[p])
		}
	}
	for _, j := range skin.Joints {
		if p, ok := imp.parent[j]; ok {
			if s, isJoint := imp.joint[p]; isJoint && s == si {
				continue
			}
		}
		obj.Bones = append(obj.Bones, imp.bone(j, si))
	}
	return obj
}

// bone converts a joint. The rest matrix is the node's local transform and
// the head its local translation; glTF joints have no length, so the tail
// sits on the head.
func (imp *gltfImporter) bone(j uint32, si int) Bone {
	n := imp.doc.Nodes[j]
	local := math.Identity()
	if m := nodeMatrix(n); m != nil {
		local = math.Mat4(*m)
	}
	rest := [16]float64(local)
	b := Bone{
		Name: imp.nodeNam[j],
		Rest: &rest,
		Head: local.Translation().Array(),
		Tail: local.Translation().Array(),
	}
	for _, c := range n.Children {
		if s, ok := imp.joint[c]; ok && s == si {
			b.Children = append(b.Children, imp.bone(c, si))
		}
	}
	return b
}

func (imp *gltfImporter) materials() {
	for i, m := range imp.doc.Materials {
		mat := Material{Name: m.Name}
		if mat.Name == "" {
			mat.Name = fmt.Sprintf("material%d", i)
		}
		if pbr := m.PBRMetallicRoughness; pbr != nil {
			if c := pbr.BaseColorFactor; c != nil {
				mat.Diffuse = &[4]float64{float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3])}
			}
			if t := pbr.BaseColorTexture; t != nil {
				mat.Texture = imp.texture(int(t.Index))
			}
		}
		if e := m.EmissiveFactor; e != [3]float32{} {
			mat.Emission = &[4]float64{float64(e[0]), float64(e[1]), float64(e[2]), 1}
		}
		imp.desc.Materials = append(imp.desc.Materials, mat)
	}
}

// texture returns the image file of texture i. Embedded images are named
// after their index.
func (imp *gltfImporter) texture(i int) string {
	if i >= len(imp.doc.Textures) || imp.doc.Textures[i].Source == nil {
		return ""
	}
	src := int(*imp.doc.Textures[i].Source)
	if src >= len(imp.doc.Images) {
		return ""
	}
	img := imp.doc.Images[src]
	if img.URI != "" && !strings.HasPrefix(img.URI, "data:") {
		return img.URI
	}
	if img.Name != "" {
		return img.Name + ".png"
	}
	return fmt.Sprintf("image%d.png", src)
}

func (imp *gltfImporter) materialNames() []string {
	names := make([]string, len(imp.desc.Materials))
	for i, m := range imp.desc.Materials {
		names[i] = m.Name
	}
	return names
}

// mesh concatenates the triangle primitives of mesh mi. Joint weights of a
// skinned mesh become vertex groups named after the joint nodes.
func (imp *gltfImporter) mesh(mi int, skin *uint32) (*Mesh, error) {
	doc := imp.doc
	src := doc.Meshes[mi]
	out := &Mesh{Materials: imp.materialNames()}
	groups := make(map[string]int)

	for pi, prim := range src.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			imp.log.Warn("skipping non-triangle primitive",
				zap.String("mesh", src.Name),
				zap.Int("primitive", pi))
			continue
		}
		posIdx, ok := prim.Attributes["POSITION"]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, errors.Wrapf(err, "primitive %d positions", pi)
		}
		base := uint32(len(out.Vertices))
		count := len(positions)
		for _, p := range positions {
			out.Vertices = append(out.Vertices, vec3(p))
		}

		if idx, ok := prim.Attributes["NORMAL"]; ok {
			normals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "primitive %d normals", pi)
			}
			out.Normals = appendPadded3(out.Normals, normals, int(base), count)
		}
		if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
			uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "primitive %d uvs", pi)
			}
			// glTF puts the texture origin top left, OSG bottom left.
			for len(out.UVs) < int(base) {
				out.UVs = append(out.UVs, [2]float64{})
			}
			for _, uv := range uvs {
				out.UVs = append(out.UVs, [2]float64{float64(uv[0]), 1 - float64(uv[1])})
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "primitive %d indices", pi)
			}
		} else {
			indices = make([]uint32, count)
			for i := range indices {
				indices[i] = uint32(i)
			}
		}
		material := -1
		if prim.Material != nil {
			material = int(*prim.Material)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			out.Faces = append(out.Faces, Face{
				Vertices: []uint32{base + indices[i], base + indices[i+1], base + indices[i+2]},
				Material: material,
			})
		}

		if skin != nil {
			if err := imp.weights(out, groups, prim, int(*skin), base); err != nil {
				return nil, errors.Wrapf(err, "primitive %d skin", pi)
			}
		}
	}
	return out, nil
}

func (imp *gltfImporter) weights(out *Mesh, groups map[string]int, prim *gltf.Primitive, si int, base uint32) error {
	doc := imp.doc
	jIdx, ok := prim.Attributes["JOINTS_0"]
	if !ok {
		return nil
	}
	wIdx, ok := prim.Attributes["WEIGHTS_0"]
	if !ok {
		return nil
	}
	joints, err := modeler.ReadJoints(doc, doc.Accessors[jIdx], nil)
	if err != nil {
		return err
	}
	weights, err := modeler.ReadWeights(doc, doc.Accessors[wIdx], nil)
	if err != nil {
		return err
	}
	skin := doc.Skins[si]
	for v := range joints {
		if v >= len(weights) {
			break
		}
		for k := 0; k < 4; k++ {
			w := weights[v][k]
			j := int(joints[v][k])
			if w == 0 || j >= len(skin.Joints) {
				continue
			}
			name := imp.nodeNam[skin.Joints[j]]
			g, ok := groups[name]
			if !ok {
				g = len(out.Groups)
				groups[name] = g
				out.Groups = append(out.Groups, VertexGroup{Name: name})
			}
			out.Groups[g].Weights = append(out.Groups[g].Weights, Weight{
				Index:  base + uint32(v),
				Weight: float64(w),
			})
		}
	}
	return nil
}

// nodeMatrix returns the local transform of n, nil when it is the identity.
func nodeMatrix(n *gltf.Node) *[16]float64 {
	var m math.Mat4
	if n.Matrix != [16]float32{} && n.Matrix != gltfIdentity {
		for i, v := range n.Matrix {
			m[i] = float64(v)
		}
	} else {
		scale := math.V3(float64(n.Scale[0]), float64(n.Scale[1]), float64(n.Scale[2]))
		if scale == (math.Vec3{}) {
			scale = math.V3(1, 1, 1)
		}
		rot := math.Quat{X: float64(n.Rotation[0]), Y: float64(n.Rotation[1]), Z: float64(n.Rotation[2]), W: float64(n.Rotation[3])}
		if rot == (math.Quat{}) {
			rot = math.QuatIdentity()
		}
		t := n.Translation
		m = math.Scale(scale.X, scale.Y, scale.Z).
			Mul(rot.ToMat4()).
			Mul(math.Translate(float64(t[0]), float64(t[1]), float64(t[2])))
	}
	if m.ApproxEqual(math.Identity(), 0) {
		return nil
	}
	out := [16]float64(m)
	return &out
}

var gltfIdentity = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func vec3(v [3]float32) [3]float64 {
	return [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
}

// appendPadded3 appends src to dst, first padding dst to base entries so
// the array stays aligned with the vertices.
func appendPadded3(dst [][3]float64, src [][3]float32, base, count int) [][3]float64 {
	for len(dst) < base {
		dst = append(dst, [3]float64{})
	}
	for i := 0; i < count; i++ {
		if i < len(src) {
			dst = append(dst, vec3(src[i]))
		} else {
			dst = append(dst, [3]float64{})
		}
	}
	return dst
}
