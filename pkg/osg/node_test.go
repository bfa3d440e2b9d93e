package osg

import (
	"testing"

	"github.com/Faultbox/osgexport/pkg/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIDs(t *testing.T) {
	s := NewSession()
	for i := uint64(0); i < 10; i++ {
		assert.Equal(t, i, s.NextID())
	}
	assert.Equal(t, uint64(10), s.Issued())

	s.Reset()
	assert.Equal(t, uint64(0), s.NextID())
}

func TestNodeIDsFollowConstructionOrder(t *testing.T) {
	s := NewSession()
	nodes := []Node{
		s.NewGroup(),
		s.NewGeode(),
		s.NewMatrixTransform(),
		s.NewStateSet(),
		s.NewMaterial(),
		s.NewGeometry(),
	}
	seen := make(map[uint64]bool)
	for i, n := range nodes {
		c := n.Base().Counter()
		assert.Equal(t, uint64(i), c)
		assert.False(t, seen[c])
		seen[c] = true
	}
	assert.Equal(t, "uniqid_Geode_1", nodes[1].Base().ID())
	assert.Equal(t, "MatrixTransform", nodes[2].ClassName())
}

func TestSessionsAreIsolated(t *testing.T) {
	a, b := NewSession(), NewSession()
	a.NewGroup()
	a.NewGroup()
	assert.Equal(t, "uniqid_Group_0", b.NewGroup().ID())
}

func TestMaterialDefaults(t *testing.T) {
	want := doc(
		"Material {",
		"  UniqueID uniqid_Material_0",
		"  ColorMode OFF",
		"  ambientColor 0.20000 0.20000 0.20000 1.00000",
		"  diffuseColor 0.80000 0.80000 0.80000 1.00000",
		"  specularColor 0.00000 0.00000 0.00000 1.00000",
		"  emissionColor 0.00000 0.00000 0.00000 1.00000",
		"  shininess 0.00000",
		"}",
	)
	assert.Equal(t, want, render(t, NewSession().NewMaterial()))
}

func TestLightSourceHasNoLightID(t *testing.T) {
	want := doc(
		"LightSource {",
		"  UniqueID uniqid_LightSource_0",
		`  name "Lamp"`,
		"  cullingActive FALSE",
		"  Light {",
		"    light_num 1",
		"    ambient 0.05000 0.05000 0.05000 1.00000",
		"    diffuse 0.80000 0.80000 0.80000 1.00000",
		"    specular 1.00000 1.00000 1.00000 1.00000",
		"    position 0.00000 0.00000 1.00000 0.00000",
		"    direction 0.00000 0.00000 -1.00000",
		"    constant_attenuation 1.00000",
		"    linear_attenuation 0.00000",
		"    quadratic_attenuation 0.00000",
		"    spot_exponent 0.00000",
		"    spot_cutoff 180.00000",
		"  }",
		"  num_children 0",
		"}",
	)
	ls := NewSession().NewLightSource()
	ls.Name = "Lamp"
	ls.Light.Num = 1
	assert.Equal(t, want, render(t, ls))
}

func TestStateSetTextureUnits(t *testing.T) {
	s := NewSession()
	ss := s.NewStateSet()
	ss.AddMode("GL_CULL_FACE", "ON")
	ss.AddAttribute(s.NewLightModel())
	tex := s.NewTexture2D("textures/skin.png")
	tex.Unit = 1
	ss.AddTexture(tex)

	want := doc(
		"StateSet {",
		"  UniqueID uniqid_StateSet_0",
		"  GL_CULL_FACE ON",
		"  LightModel {",
		"    UniqueID uniqid_LightModel_1",
		"    ambientIntensity 0.20000 0.20000 0.20000 1.00000",
		"    colorControl SEPARATE_SPECULAR_COLOR",
		"    localViewer FALSE",
		"  }",
		"  textureUnit 1 {",
		"    GL_TEXTURE_2D ON",
		"    Texture2D {",
		"      UniqueID uniqid_Texture2D_2",
		`      file "textures/skin.png"`,
		"      wrap_s REPEAT",
		"      wrap_t REPEAT",
		"      wrap_r REPEAT",
		"      min_filter LINEAR_MIPMAP_LINEAR",
		"      mag_filter LINEAR",
		"      internalFormatMode USE_IMAGE_DATA_FORMAT",
		"      subloadMode OFF",
		"    }",
		"  }",
		"}",
	)
	assert.Equal(t, want, render(t, ss))
	assert.Contains(t, ss.TextureAttributes, 0)
}

func TestGeodeSkipsNilDrawables(t *testing.T) {
	s := NewSession()
	geode := s.NewGeode()
	geode.AddDrawable(nil)
	geode.AddDrawable(s.NewGeometry())

	want := doc(
		"Geode {",
		"  UniqueID uniqid_Geode_0",
		"  cullingActive TRUE",
		"  num_drawables 2",
		"  Geometry {",
		"    UniqueID uniqid_Geometry_1",
		"  }",
		"}",
	)
	assert.Equal(t, want, render(t, geode))
}

func TestTypedNilEntriesAreSkipped(t *testing.T) {
	s := NewSession()
	var geom *Geometry
	var rig *RigGeometry
	var mat *Material
	var tex *Texture2D
	var bone *Bone

	geode := s.NewGeode()
	geode.AddDrawable(geom)
	geode.AddDrawable(rig)
	ss := s.NewStateSet()
	ss.AddAttribute(mat)
	ss.AddTexture(tex)
	geode.StateSet = ss

	root := s.NewGroup()
	var child *Group
	root.AddChild(child, geode)
	sk := s.NewSkeleton("Armature", math.Identity())
	sk.AddChild(bone)
	sk.CollectBones()
	assert.Empty(t, sk.Bones())

	want := doc(
		"Group {",
		"  UniqueID uniqid_Group_2",
		"  cullingActive TRUE",
		"  num_children 2",
		"  Geode {",
		"    UniqueID uniqid_Geode_0",
		"    cullingActive TRUE",
		"    StateSet {",
		"      UniqueID uniqid_StateSet_1",
		"    }",
		"    num_drawables 2",
		"  }",
		"}",
	)
	assert.Equal(t, want, render(t, root))

	_, ok := FindObject("Armature", child)
	assert.False(t, ok)

	out, err := NewWriter(DefaultFormat()).Render(geom, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUpdateCallbacksNestTwoLevels(t *testing.T) {
	s := NewSession()
	mt := s.NewMatrixTransform()
	mt.Name = "Door"
	mt.DataVariance = Dynamic
	mt.AddUpdateCallback(s.NewUpdateTransform("Door"))

	want := doc(
		"MatrixTransform {",
		"  UniqueID uniqid_MatrixTransform_0",
		"  DataVariance DYNAMIC",
		`  name "Door"`,
		"  cullingActive TRUE",
		"  UpdateCallbacks {",
		"    osgATK::UpdateTransform {",
		"      UniqueID uniqid_UpdateTransform_1",
		`      name "Door"`,
		"    }",
		"  }",
		"  Matrix {",
		"    1.00000 0.00000 0.00000 0.00000",
		"    0.00000 1.00000 0.00000 0.00000",
		"    0.00000 0.00000 1.00000 0.00000",
		"    0.00000 0.00000 0.00000 1.00000",
		"  }",
		"  num_children 0",
		"}",
	)
	assert.Equal(t, want, render(t, mt))
}

func TestGeometryArrays(t *testing.T) {
	s := NewSession()
	geom := s.NewGeometry()
	geom.Normals = NormalArray{{0, 0, 1}}
	geom.Colors = ColorArray{{1, 0, 0, 1}}
	geom.SetTexCoords(1, [][2]float64{{0.5, 1}})
	geom.SetTexCoords(0, [][2]float64{{0, 0.25}})

	want := doc(
		"Geometry {",
		"  UniqueID uniqid_Geometry_0",
		"  NormalBinding PER_VERTEX",
		"  NormalArray 1 {",
		"    0.00000 0.00000 1.00000",
		"  }",
		"  TexCoordArray 0 Vec2Array 1 {",
		"    0.00000 0.25000",
		"  }",
		"  TexCoordArray 1 Vec2Array 1 {",
		"    0.50000 1.00000",
		"  }",
		"  ColorArray Vec4Array 1 {",
		"    1.00000 0.00000 0.00000 1.00000",
		"  }",
		"}",
	)
	assert.Equal(t, want, render(t, geom))
}

func TestRigGeometry(t *testing.T) {
	s := NewSession()
	rg := s.NewRigGeometry()
	arm := s.NewVertexGroup("Arm")
	arm.Add(0, 1)
	arm.Add(2, 0.5)
	rg.AddInfluence(arm)

	assert.Equal(t, "uniqid_VertexGroupArm", arm.ID())
	got, ok := rg.Influence("Arm")
	assert.True(t, ok)
	assert.Same(t, arm, got)

	want := doc(
		"osgATK::RigGeometry {",
		"  UniqueID uniqid_RigGeometry_0",
		"  DataVariance DYNAMIC",
		"  num_influences 1",
		`  osgATK::VertexInfluence "Arm" 2 {`,
		"    0 1.00000",
		"    2 0.50000",
		"  }",
		"}",
	)
	assert.Equal(t, want, render(t, rg))
}

func TestRigGeometryReplacesInfluence(t *testing.T) {
	s := NewSession()
	rg := s.NewRigGeometry()
	rg.AddInfluence(s.NewVertexGroup("Arm"))
	rg.AddInfluence(s.NewVertexGroup("Leg"))
	replaced := s.NewVertexGroup("Arm")
	rg.AddInfluence(replaced)

	assert.Len(t, rg.Influences(), 2)
	assert.Same(t, replaced, rg.Influences()[0])
}
