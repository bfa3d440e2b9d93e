package osg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannel(t *testing.T) {
	s := NewSession()
	c := s.NewChannel("position", "Arm", KeyframeVec3)
	c.AddKey(0, 1, 2, 3)
	c.AddKey(0.5, 1, 2, 3.5)
	c.AddKey(0.5, 1, 2, 4)

	want := doc(
		"Channel {",
		`  name "position"`,
		`  target "Arm"`,
		`  Keyframes "Vec3" 3 {`,
		"    key 0.00000 1.00000 2.00000 3.00000",
		"    key 0.50000 1.00000 2.00000 3.50000",
		"    key 0.50000 1.00000 2.00000 4.00000",
		"  }",
		"}",
	)
	assert.Equal(t, want, render(t, c))
}

func TestAnimationManager(t *testing.T) {
	s := NewSession()
	mgr := s.NewAnimationManager()
	walk := s.NewAnimation("Walk")
	rot := s.NewChannel("quaternion", "Hip", KeyframeQuat)
	rot.AddKey(0, 0, 0, 0, 1)
	walk.AddChannel(rot)
	mgr.AddAnimation(walk)
	mgr.AddChild(s.NewGroup())

	want := doc(
		"osgATK::AnimationManager {",
		"  UniqueID uniqid_AnimationManager_0",
		"  num_animations 1",
		"  osgATK::Animation {",
		"    UniqueID uniqid_Animation_1",
		`    name "Walk"`,
		"    num_channels 1",
		"    Channel {",
		`      name "quaternion"`,
		`      target "Hip"`,
		`      Keyframes "Quat" 1 {`,
		"        key 0.00000 0.00000 0.00000 0.00000 1.00000",
		"      }",
		"    }",
		"  }",
		"  num_children 1",
		"  Group {",
		"    UniqueID uniqid_Group_3",
		"    cullingActive TRUE",
		"    num_children 0",
		"  }",
		"}",
	)
	assert.Equal(t, want, render(t, mgr))
}

func TestKeyframeTypeSize(t *testing.T) {
	assert.Equal(t, 1, KeyframeFloat.Size())
	assert.Equal(t, 3, KeyframeVec3.Size())
	assert.Equal(t, 4, KeyframeQuat.Size())
	assert.Equal(t, 0, KeyframeUnknown.Size())
}
