package osg

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/osgexport/pkg/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, n Node) string {
	t.Helper()
	out, err := NewWriter(DefaultFormat()).Render(n, 0)
	require.NoError(t, err)
	return out
}

// doc joins lines into the expected text of a render.
func doc(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func cubeScene(s *Session) *Group {
	root := s.NewGroup()
	root.Name = "Root"
	mt := s.NewMatrixTransform()
	mt.Name = "Cube"
	mt.Matrix = math.Translate(1, 2, 3)
	geode := s.NewGeode()
	geode.SetName("Cube")
	geom := s.NewGeometry()
	geom.AddPrimitive(NewDrawElements(Triangles, 0, 1, 2))
	geom.Vertices = VertexArray{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	geode.AddDrawable(geom)
	mt.AddChild(geode)
	root.AddChild(mt)
	return root
}

func TestRenderScene(t *testing.T) {
	want := doc(
		"Group {",
		"  UniqueID uniqid_Group_0",
		`  name "Root"`,
		"  cullingActive TRUE",
		"  num_children 1",
		"  MatrixTransform {",
		"    UniqueID uniqid_MatrixTransform_1",
		`    name "Cube"`,
		"    cullingActive TRUE",
		"    Matrix {",
		"      1.00000 0.00000 0.00000 0.00000",
		"      0.00000 1.00000 0.00000 0.00000",
		"      0.00000 0.00000 1.00000 0.00000",
		"      1.00000 2.00000 3.00000 1.00000",
		"    }",
		"    num_children 1",
		"    Geode {",
		"      UniqueID uniqid_Geode_2",
		`      name "GeodeCube"`,
		"      cullingActive TRUE",
		"      num_drawables 1",
		"      Geometry {",
		"        UniqueID uniqid_Geometry_3",
		"        Primitives 1 {",
		"          DrawElementsUByte TRIANGLES 3 {",
		"            0 1 2",
		"          }",
		"        }",
		"        VertexArray 3 {",
		"          0.00000 0.00000 0.00000",
		"          1.00000 0.00000 0.00000",
		"          0.00000 1.00000 0.00000",
		"        }",
		"      }",
		"    }",
		"  }",
		"}",
	)
	assert.Equal(t, want, render(t, cubeScene(NewSession())))
}

func TestRenderIsStable(t *testing.T) {
	root := cubeScene(NewSession())
	first := render(t, root)
	assert.Equal(t, first, render(t, root))
}

func TestRenderDepthShiftsEveryLine(t *testing.T) {
	root := cubeScene(NewSession())
	w := NewWriter(DefaultFormat())

	flat, err := w.Render(root, 0)
	require.NoError(t, err)
	nested, err := w.Render(root, 3)
	require.NoError(t, err)

	flatLines := strings.Split(strings.TrimSuffix(flat, "\n"), "\n")
	nestedLines := strings.Split(strings.TrimSuffix(nested, "\n"), "\n")
	require.Len(t, nestedLines, len(flatLines))
	for i := range flatLines {
		assert.Equal(t, "      "+flatLines[i], nestedLines[i])
	}
}

func TestBracesBalance(t *testing.T) {
	s := NewSession()
	root := cubeScene(s)
	sk := s.NewSkeleton("Armature", math.Identity())
	require.NoError(t, sk.BuildBones(s, twoBoneChain()))
	root.AddChild(sk)

	out := render(t, root)
	assert.Equal(t, strings.Count(out, "{"), strings.Count(out, "}"))
}

func TestFloatFormat(t *testing.T) {
	e := &emitter{f: DefaultFormat()}
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00000"},
		{1, "1.00000"},
		{-1.5, "-1.50000"},
		{0.123456, "0.12346"},
		{0.123454, "0.12345"},
		{180, "180.00000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.float(tt.in))
	}

	e.f.Precision = 2
	assert.Equal(t, "3.14", e.float(3.14159))
}

func TestCustomFormat(t *testing.T) {
	s := NewSession()
	cb := s.NewUpdateBone("Arm")
	out, err := NewWriter(Format{Indent: 4, Precision: 2, Namespace: "osgAnimation"}).Render(cb, 0)
	require.NoError(t, err)
	want := doc(
		"osgAnimation::UpdateBone {",
		"    UniqueID uniqid_UpdateBone_0",
		`    name "Arm"`,
		"}",
	)
	assert.Equal(t, want, out)
}

func TestWriteStopsOnError(t *testing.T) {
	s := NewSession()
	geode := s.NewGeode()
	geom := s.NewGeometry()
	geom.AddPrimitive(&DrawElements{Indices: []uint32{0, 1, 2}})
	geode.AddDrawable(geom)

	var buf bytes.Buffer
	err := NewWriter(DefaultFormat()).Write(&buf, geode)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrimitiveTypeUnset))
	assert.Zero(t, buf.Len())
}
