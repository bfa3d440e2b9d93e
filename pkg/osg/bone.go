package osg

import "github.com/Faultbox/osgexport/pkg/math"

// Space selects one of the transforms kept by a Bone.
type Space int

const (
	// BoneSpace is the transform relative to the parent bone.
	BoneSpace Space = iota
	// ArmatureSpace is the transform relative to the skeleton root.
	ArmatureSpace
)

func (s Space) String() string {
	if s == ArmatureSpace {
		return "ARMATURE_SPACE"
	}
	return "BONE_SPACE"
}

// SourceBone is a bone of the authoring rig the skeleton is built from.
// Head and Tail are expressed in the bone's own bone space.
type SourceBone struct {
	Name     string
	Rest     *math.Mat4
	Head     math.Vec3
	Tail     math.Vec3
	Children []*SourceBone
}

// Bone is an animated joint. Children of a bone are bones.
type Bone struct {
	Group
	Source *SourceBone

	boneSpace math.Mat4
	armature  math.Mat4
	built     bool
	parent    int // index into the skeleton's bone list, -1 at top level
}

func (s *Session) newBone(class string) Bone {
	b := Bone{
		Group:     Group{NodeBase: s.newNodeBase(class)},
		boneSpace: math.Identity(),
		parent:    -1,
	}
	b.DataVariance = Dynamic
	return b
}

// NewBone creates a bone for src, named after it and driven by an
// UpdateBone callback of the same name. Its transforms stay unset until
// the owning skeleton builds it.
func (s *Session) NewBone(src *SourceBone) *Bone {
	b := s.newBone("Bone")
	b.Source = src
	if src != nil {
		b.Name = src.Name
		b.AddUpdateCallback(s.NewUpdateBone(src.Name))
	}
	return &b
}

// Matrix returns the transform for space. The boolean is false for
// ArmatureSpace until the bone has been built.
func (b *Bone) Matrix(space Space) (math.Mat4, bool) {
	if space == ArmatureSpace {
		return b.armature, b.built
	}
	return b.boneSpace, true
}

// SetBoneSpace replaces the bone-space transform.
func (b *Bone) SetBoneSpace(m math.Mat4) {
	b.boneSpace = m
}

// BindPose returns the bind rotation and position taken from the bone-space
// transform. The bind scale is always (1, 1, 1).
func (b *Bone) BindPose() (math.Quat, math.Vec3) {
	return b.boneSpace.Quat(), b.boneSpace.Translation()
}

func (e *emitter) writeBindPose(b *Bone) {
	q, p := b.BindPose()
	e.line(1, "bindQuaternion %s", e.floats(q.X, q.Y, q.Z, q.W))
	e.line(1, "bindPosition %s", e.floats(p.X, p.Y, p.Z))
	e.line(1, "bindScale %s", e.floats(1, 1, 1))
}

func (b *Bone) write(e *emitter) {
	e.open(0, "%s", e.ns("Bone"))
	e.writeIdentity(&b.Object, b.ID())
	e.writeNode(&b.NodeBase)
	e.writeBindPose(b)
	e.writeGroup(&b.Group)
	e.close(0)
}

// Skeleton is the root of a bone hierarchy. Its own transform places the
// armature in the scene.
type Skeleton struct {
	Bone
	bones []*Bone
}

// NewSkeleton creates a named skeleton with the given transform.
func (s *Session) NewSkeleton(name string, m math.Mat4) *Skeleton {
	sk := &Skeleton{Bone: s.newBone("Skeleton")}
	sk.Name = name
	sk.boneSpace = m
	return sk
}

// BuildBones builds a bone subtree for every root and appends it to the
// skeleton, then refreshes the bone list. Bones are built parent first.
// Nil roots and nil children are skipped. A source bone without a rest
// transform aborts the build with ErrMissingRestTransform.
func (sk *Skeleton) BuildBones(s *Session, roots ...*SourceBone) error {
	defer sk.CollectBones()
	for _, src := range roots {
		if src == nil {
			continue
		}
		b, err := buildBone(s, src, nil)
		if err != nil {
			return err
		}
		sk.AddChild(b)
	}
	return nil
}

func buildBone(s *Session, src *SourceBone, parent *Bone) (*Bone, error) {
	b := s.NewBone(src)
	if src.Rest == nil {
		return nil, newNodeError(&b.Object, b.ID(), ErrMissingRestTransform)
	}

	if parent == nil {
		b.boneSpace = src.Rest.WithTranslation(src.Head)
		b.armature = b.boneSpace
	} else {
		// Parent head and tail, taken back out of the parent's rotation.
		inv := parent.boneSpace.Rotation().Inverse()
		tail := inv.TransformDirection(parent.Source.Tail)
		head := inv.TransformDirection(parent.Source.Head)
		pos := tail.Sub(head).Add(src.Head)

		b.boneSpace = src.Rest.WithTranslation(pos)
		b.armature = b.boneSpace.Mul(parent.armature)
	}
	b.built = true

	for _, c := range src.Children {
		if c == nil {
			continue
		}
		child, err := buildBone(s, c, b)
		if err != nil {
			return nil, err
		}
		b.AddChild(child)
	}
	return b, nil
}

// CollectBones rebuilds the flat bone list in pre-order. Call it after any
// structural change to the hierarchy.
func (sk *Skeleton) CollectBones() {
	sk.bones = sk.bones[:0]
	for _, c := range sk.children {
		if b, ok := c.(*Bone); ok && b != nil {
			sk.collect(b, -1)
		}
	}
}

func (sk *Skeleton) collect(b *Bone, parent int) {
	b.parent = parent
	idx := len(sk.bones)
	sk.bones = append(sk.bones, b)
	for _, c := range b.children {
		if cb, ok := c.(*Bone); ok && cb != nil {
			sk.collect(cb, idx)
		}
	}
}

// Bones returns the bone list as of the last CollectBones.
func (sk *Skeleton) Bones() []*Bone {
	return sk.bones
}

// Parent returns the parent bone of b. Top-level bones have no parent.
func (sk *Skeleton) Parent(b *Bone) (*Bone, bool) {
	if b.parent < 0 || b.parent >= len(sk.bones) {
		return nil, false
	}
	return sk.bones[b.parent], true
}

func (sk *Skeleton) write(e *emitter) {
	e.open(0, "%s", e.ns("Skeleton"))
	e.writeIdentity(&sk.Object, sk.ID())
	e.writeNode(&sk.NodeBase)
	e.writeBindPose(&sk.Bone)
	e.writeGroup(&sk.Group)
	e.close(0)
}
