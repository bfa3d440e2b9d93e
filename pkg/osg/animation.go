package osg

// KeyframeType names the value shape of a channel's keys.
type KeyframeType string

const (
	KeyframeUnknown KeyframeType = "Unknown"
	KeyframeFloat   KeyframeType = "Float"
	KeyframeVec3    KeyframeType = "Vec3"
	KeyframeQuat    KeyframeType = "Quat"
)

// Size returns the number of values per key, or 0 if unknown.
func (k KeyframeType) Size() int {
	switch k {
	case KeyframeFloat:
		return 1
	case KeyframeVec3:
		return 3
	case KeyframeQuat:
		return 4
	default:
		return 0
	}
}

// Keyframe is one sample of a channel. Times are non-decreasing within a
// channel but may repeat.
type Keyframe struct {
	Time  float64
	Value []float64
}

// Channel animates one property of a target node, e.g. the "position" of
// bone "Arm_L". It is written without a UniqueID.
type Channel struct {
	Object
	Target    string
	Type      KeyframeType
	Keyframes []Keyframe
}

// NewChannel creates a channel named name (the animated property) for the
// node named target.
func (s *Session) NewChannel(name, target string, t KeyframeType) *Channel {
	c := &Channel{Object: s.newObject("Channel"), Target: target, Type: t}
	c.Name = name
	return c
}

// AddKey appends a keyframe.
func (c *Channel) AddKey(time float64, value ...float64) {
	c.Keyframes = append(c.Keyframes, Keyframe{Time: time, Value: value})
}

func (c *Channel) write(e *emitter) {
	e.open(0, "Channel")
	e.line(1, "name \"%s\"", c.Name)
	e.line(1, "target \"%s\"", c.Target)
	e.open(1, "Keyframes \"%s\" %d", c.Type, len(c.Keyframes))
	for _, k := range c.Keyframes {
		e.line(2, "key %s", e.floats(append([]float64{k.Time}, k.Value...)...))
	}
	e.close(1)
	e.close(0)
}

// Animation is a named set of channels played together.
type Animation struct {
	Object
	Channels []*Channel
}

// NewAnimation creates an empty animation.
func (s *Session) NewAnimation(name string) *Animation {
	a := &Animation{Object: s.newObject("Animation")}
	a.Name = name
	return a
}

// AddChannel appends c.
func (a *Animation) AddChannel(c *Channel) {
	a.Channels = append(a.Channels, c)
}

func (a *Animation) write(e *emitter) {
	e.open(0, "%s", e.ns("Animation"))
	e.writeIdentity(&a.Object, a.ID())
	e.line(1, "num_channels %d", len(a.Channels))
	for _, c := range a.Channels {
		e.node(1, c)
	}
	e.close(0)
}

// AnimationManager owns the animations of a scene and is usually its root.
type AnimationManager struct {
	Group
	Animations []*Animation
}

// NewAnimationManager creates an empty animation manager.
func (s *Session) NewAnimationManager() *AnimationManager {
	return &AnimationManager{Group: Group{NodeBase: s.newNodeBase("AnimationManager")}}
}

// AddAnimation appends a.
func (m *AnimationManager) AddAnimation(a *Animation) {
	m.Animations = append(m.Animations, a)
}

// write omits the node layer: the manager carries no culling flag,
// state set or callbacks in the file.
func (m *AnimationManager) write(e *emitter) {
	e.open(0, "%s", e.ns("AnimationManager"))
	e.writeIdentity(&m.Object, m.ID())
	e.line(1, "num_animations %d", len(m.Animations))
	for _, a := range m.Animations {
		e.node(1, a)
	}
	e.writeGroup(&m.Group)
	e.close(0)
}
