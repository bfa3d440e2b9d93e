// Package scene converts source scenes into OSG node trees. A scene is read
// either from a YAML description or from a glTF file and then built into a
// tree by a Builder.
package scene

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Description is the exporter's source scene.
type Description struct {
	Name       string      `yaml:"name"`
	Objects    []Object    `yaml:"objects"`
	Meshes     []Mesh      `yaml:"meshes,omitempty"`
	Materials  []Material  `yaml:"materials,omitempty"`
	Animations []Animation `yaml:"animations,omitempty"`
}

// Object is a placed scene object. It becomes a Skeleton when it has bones,
// a light when Light is set and a MatrixTransform otherwise.
type Object struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent,omitempty"`
	// Matrix is the local transform, row-major with the translation in the
	// last row. Identity when omitted.
	Matrix   *[16]float64 `yaml:"matrix,omitempty"`
	Mesh     string       `yaml:"mesh,omitempty"`
	Armature string       `yaml:"armature,omitempty"`
	Bones    []Bone       `yaml:"bones,omitempty"`
	Light    *Light       `yaml:"light,omitempty"`
}

// Bone is a rest-pose bone of an armature object.
type Bone struct {
	Name     string       `yaml:"name"`
	Rest     *[16]float64 `yaml:"rest"`
	Head     [3]float64   `yaml:"head"`
	Tail     [3]float64   `yaml:"tail"`
	Children []Bone       `yaml:"children,omitempty"`
}

// Mesh is an indexed polygon mesh. Per-vertex arrays whose length differs
// from Vertices are ignored.
type Mesh struct {
	Name      string        `yaml:"name"`
	Vertices  [][3]float64  `yaml:"vertices"`
	Normals   [][3]float64  `yaml:"normals,omitempty"`
	UVs       [][2]float64  `yaml:"uvs,omitempty"`
	Colors    [][4]float64  `yaml:"colors,omitempty"`
	Faces     []Face        `yaml:"faces"`
	Materials []string      `yaml:"materials,omitempty"`
	Groups    []VertexGroup `yaml:"groups,omitempty"`
}

// Face is a polygon. Material indexes Mesh.Materials; a negative index
// means no material.
type Face struct {
	Vertices []uint32 `yaml:"vertices"`
	Material int      `yaml:"material"`
}

// VertexGroup binds vertices to the bone of the same name.
type VertexGroup struct {
	Name    string   `yaml:"name"`
	Weights []Weight `yaml:"weights"`
}

// Weight is one vertex of a group.
type Weight struct {
	Index  uint32  `yaml:"index"`
	Weight float64 `yaml:"weight"`
}

// Material is a fixed-function material. Unset colors keep the OpenGL
// defaults.
type Material struct {
	Name      string      `yaml:"name"`
	Ambient   *[4]float64 `yaml:"ambient,omitempty"`
	Diffuse   *[4]float64 `yaml:"diffuse,omitempty"`
	Specular  *[4]float64 `yaml:"specular,omitempty"`
	Emission  *[4]float64 `yaml:"emission,omitempty"`
	Shininess float64     `yaml:"shininess,omitempty"`
	Texture   string      `yaml:"texture,omitempty"`
}

// LightType is the kind of a light object.
type LightType string

const (
	LightPoint LightType = "point"
	LightSun   LightType = "sun"
	LightSpot  LightType = "spot"
)

// Light describes a lamp.
type Light struct {
	Type     LightType   `yaml:"type"`
	Color    *[3]float64 `yaml:"color,omitempty"`
	Energy   float64     `yaml:"energy,omitempty"`
	Distance float64     `yaml:"distance,omitempty"`
	// SpotSize is the full cone angle in degrees.
	SpotSize  float64 `yaml:"spot_size,omitempty"`
	SpotBlend float64 `yaml:"spot_blend,omitempty"`
}

// Animation is a named action.
type Animation struct {
	Name     string    `yaml:"name"`
	Channels []Channel `yaml:"channels"`
}

// Channel animates one property of a bone or object. Each key is the time
// in seconds followed by the value.
type Channel struct {
	Target string      `yaml:"target"`
	Name   string      `yaml:"name"`
	Type   string      `yaml:"type"`
	Keys   [][]float64 `yaml:"keys"`
}

// Parse decodes a YAML scene description.
func Parse(data []byte) (*Description, error) {
	var d Description
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "parse scene description")
	}
	if d.Name == "" {
		d.Name = "Scene"
	}
	return &d, nil
}

// Load reads a YAML scene description from path.
func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene %s", path)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	return d, nil
}

// Open loads a scene from path. glTF files (.gltf, .glb) are imported,
// everything else is read as a YAML description.
func Open(path string) (*Description, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return ImportGLTF(path)
	default:
		return Load(path)
	}
}

// Mesh returns the mesh named name.
func (d *Description) Mesh(name string) (*Mesh, bool) {
	for i := range d.Meshes {
		if d.Meshes[i].Name == name {
			return &d.Meshes[i], true
		}
	}
	return nil, false
}

// Material returns the material named name.
func (d *Description) Material(name string) (*Material, bool) {
	for i := range d.Materials {
		if d.Materials[i].Name == name {
			return &d.Materials[i], true
		}
	}
	return nil, false
}

// Save writes d as YAML to path.
func (d *Description) Save(path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return errors.Wrap(err, "encode scene description")
	}
	return os.WriteFile(path, data, 0644)
}
