package scene

import (
	gomath "math"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/osgexport/internal/bake"
	"github.com/Faultbox/osgexport/internal/logger"
	"github.com/Faultbox/osgexport/pkg/math"
	"github.com/Faultbox/osgexport/pkg/osg"
)

// Options controls how a Description is turned into nodes.
type Options struct {
	// ScaleFactor multiplies every position: vertices, translations, bone
	// heads and tails, and position channels.
	ScaleFactor float64
	// TexturePrefix is prepended to every texture file name.
	TexturePrefix string
	// Lights exports light objects. When false they become plain transforms.
	Lights bool
	// Animations exports channels under an AnimationManager root. When false
	// the scene group is the root and no object is marked as animated.
	Animations bool
	// Bake resamples every channel on a fixed grid when set.
	Bake *bake.Options
	// Logger defaults to the "scene" logger.
	Logger *zap.Logger
}

// DefaultOptions returns options that export everything at unit scale.
func DefaultOptions() Options {
	return Options{ScaleFactor: 1, Lights: true, Animations: true}
}

// Stats counts what a build produced.
type Stats struct {
	Objects    int
	Geometries int
	Bones      int
	Lights     int
	Channels   int
	Keys       int
	// Dropped counts indices left out of a primitive because they did not
	// form a whole polygon.
	Dropped int
}

// Builder turns one Description into an OSG tree. All nodes come from the
// builder's session, so two builds sharing a session never reuse an ID.
type Builder struct {
	s    *osg.Session
	desc *Description
	opts Options
	log  *zap.Logger

	objects  []osg.Structural          // one per description object
	nodes    map[string]osg.Structural // by name, first object wins
	bones    map[string]bool
	animated map[string]bool
	parents  map[string]string
	lightNum int
	stats    Stats
}

// NewBuilder prepares a build of d.
func NewBuilder(s *osg.Session, d *Description, opts Options) *Builder {
	if opts.ScaleFactor == 0 {
		opts.ScaleFactor = 1
	}
	log := opts.Logger
	if log == nil {
		log = logger.Named("scene")
	}
	return &Builder{
		s:    s,
		desc: d,
		opts: opts,
		log:  log,
	}
}

// reset drops everything a previous build recorded, so each Build starts
// from the description alone.
func (b *Builder) reset() {
	b.objects = nil
	b.nodes = make(map[string]osg.Structural)
	b.bones = make(map[string]bool)
	b.animated = make(map[string]bool)
	b.parents = make(map[string]string)
	b.lightNum = 0
	b.stats = Stats{}
}

// Build converts d into a tree using a fresh session.
func Build(d *Description, opts Options) (osg.Structural, Stats, error) {
	b := NewBuilder(osg.NewSession(), d, opts)
	root, err := b.Build()
	return root, b.Stats(), err
}

// Stats returns the counters of the last build.
func (b *Builder) Stats() Stats {
	return b.stats
}

// Build creates the tree. The objects hang off a Group named after the
// scene. When the scene has animations an AnimationManager wraps that
// group and becomes the root. A Builder may build again; every build
// creates new nodes from the same session.
func (b *Builder) Build() (osg.Structural, error) {
	b.reset()
	b.collectTargets()

	var mgr *osg.AnimationManager
	if b.opts.Animations && len(b.desc.Animations) > 0 {
		mgr = b.s.NewAnimationManager()
	}
	group := b.s.NewGroup()
	group.Name = b.desc.Name

	for i := range b.desc.Objects {
		obj := &b.desc.Objects[i]
		n, err := b.object(obj)
		if err != nil {
			return nil, errors.Wrapf(err, "object %s", obj.Name)
		}
		if _, dup := b.nodes[obj.Name]; dup {
			b.log.Warn("duplicate object name", zap.String("object", obj.Name))
		} else {
			b.nodes[obj.Name] = n
		}
		b.objects = append(b.objects, n)
		b.stats.Objects++
	}
	b.link(group)

	if b.lightNum > 0 {
		ss := b.s.NewStateSet()
		ss.AddMode("GL_LIGHTING", "ON")
		for i := 0; i < b.lightNum; i++ {
			ss.AddMode(lightMode(i), "ON")
		}
		ss.AddAttribute(b.s.NewLightModel())
		group.StateSet = ss
	}

	var root osg.Structural = group
	if mgr != nil {
		for i := range b.desc.Animations {
			mgr.AddAnimation(b.animation(&b.desc.Animations[i]))
		}
		mgr.AddChild(group)
		root = mgr
	}

	b.log.Debug("scene built",
		zap.String("scene", b.desc.Name),
		zap.Int("objects", b.stats.Objects),
		zap.Int("geometries", b.stats.Geometries),
		zap.Int("bones", b.stats.Bones),
		zap.Int("channels", b.stats.Channels),
		zap.Uint64("ids", b.s.Issued()))
	return root, nil
}

// collectTargets records bone names and the non-bone objects some channel
// animates.
func (b *Builder) collectTargets() {
	var walk func(bones []Bone)
	walk = func(bones []Bone) {
		for i := range bones {
			b.bones[bones[i].Name] = true
			walk(bones[i].Children)
		}
	}
	for i := range b.desc.Objects {
		walk(b.desc.Objects[i].Bones)
	}
	if !b.opts.Animations {
		return
	}
	for _, a := range b.desc.Animations {
		for _, c := range a.Channels {
			if !b.bones[c.Target] {
				b.animated[c.Target] = true
			}
		}
	}
}

// link attaches every node to its parent. Objects without a known parent
// hang off the root. Skinned meshes without an explicit parent go under
// their armature's skeleton.
func (b *Builder) link(root *osg.Group) {
	for i := range b.desc.Objects {
		obj := &b.desc.Objects[i]
		p := obj.Parent
		if p == "" {
			p = obj.Armature
		}
		b.parents[obj.Name] = p
	}

	for i := range b.desc.Objects {
		obj := &b.desc.Objects[i]
		n := b.objects[i]

		parentName := b.parents[obj.Name]
		if parentName == "" {
			root.AddChild(n)
			continue
		}
		parent, ok := b.nodes[parentName].(osg.Container)
		if !ok {
			b.log.Warn("parent not found, attaching to root",
				zap.String("object", obj.Name),
				zap.String("parent", parentName))
			root.AddChild(n)
			continue
		}
		if b.cyclic(obj.Name) {
			b.log.Warn("parent cycle, attaching to root",
				zap.String("object", obj.Name),
				zap.String("parent", parentName))
			b.parents[obj.Name] = ""
			root.AddChild(n)
			continue
		}
		parent.AddChild(n)
	}
}

// cyclic reports whether following parents from name leads back to name.
func (b *Builder) cyclic(name string) bool {
	seen := map[string]bool{name: true}
	for p := b.parents[name]; p != ""; p = b.parents[p] {
		if seen[p] {
			return p == name
		}
		seen[p] = true
	}
	return false
}

func (b *Builder) object(obj *Object) (osg.Structural, error) {
	m := b.matrix(obj.Matrix)

	if len(obj.Bones) > 0 {
		return b.skeleton(obj, m)
	}

	mt := b.s.NewMatrixTransform()
	mt.Name = obj.Name
	mt.Matrix = m
	if b.animated[obj.Name] {
		mt.DataVariance = osg.Dynamic
		mt.AddUpdateCallback(b.s.NewUpdateTransform(obj.Name))
	}

	if obj.Light != nil && b.opts.Lights {
		mt.AddChild(b.light(obj.Name, obj.Light))
	}

	if obj.Mesh != "" {
		mesh, ok := b.desc.Mesh(obj.Mesh)
		if !ok {
			return nil, errors.Errorf("mesh %q not found", obj.Mesh)
		}
		geode, err := b.geode(obj.Name, mesh, obj.Armature != "")
		if err != nil {
			return nil, err
		}
		mt.AddChild(geode)
	}
	b.log.Debug("object",
		zap.String("object", obj.Name),
		zap.Int("children", len(mt.Children())))
	return mt, nil
}

func (b *Builder) skeleton(obj *Object, m math.Mat4) (osg.Structural, error) {
	sk := b.s.NewSkeleton(obj.Name, m)
	roots := make([]*osg.SourceBone, 0, len(obj.Bones))
	for i := range obj.Bones {
		roots = append(roots, b.sourceBone(&obj.Bones[i]))
	}
	if err := sk.BuildBones(b.s, roots...); err != nil {
		return nil, err
	}
	b.stats.Bones += len(sk.Bones())
	return sk, nil
}

func (b *Builder) sourceBone(bone *Bone) *osg.SourceBone {
	src := &osg.SourceBone{
		Name: bone.Name,
		Head: math.Vec3FromArray(bone.Head).Scale(b.opts.ScaleFactor),
		Tail: math.Vec3FromArray(bone.Tail).Scale(b.opts.ScaleFactor),
	}
	if bone.Rest != nil {
		rest := b.matrix(bone.Rest)
		src.Rest = &rest
	}
	for i := range bone.Children {
		src.Children = append(src.Children, b.sourceBone(&bone.Children[i]))
	}
	return src
}

// matrix converts a description matrix and scales its translation.
func (b *Builder) matrix(m *[16]float64) math.Mat4 {
	if m == nil {
		return math.Identity()
	}
	out := math.Mat4(*m)
	return out.WithTranslation(out.Translation().Scale(b.opts.ScaleFactor))
}

func lightMode(num int) string {
	return "GL_LIGHT" + strconv.Itoa(num)
}

func (b *Builder) light(name string, src *Light) *osg.LightSource {
	ls := b.s.NewLightSource()
	ls.Name = name
	l := ls.Light
	l.Num = b.lightNum
	b.lightNum++
	b.stats.Lights++

	color := [3]float64{1, 1, 1}
	if src.Color != nil {
		color = *src.Color
	}
	energy := src.Energy
	if energy == 0 {
		energy = 1
	}
	l.Diffuse = [4]float64{color[0] * energy, color[1] * energy, color[2] * energy, 1}
	l.Specular = l.Diffuse

	switch src.Type {
	case LightSun:
		l.Position = [4]float64{0, 0, 1, 0}
	case LightSpot:
		l.Position = [4]float64{0, 0, 0, 1}
		size := src.SpotSize
		if size <= 0 || size > 180 {
			size = 45
		}
		l.SpotCutoff = size / 2
		l.SpotExponent = gomath.Min(gomath.Max(src.SpotBlend, 0), 1) * 128
	default:
		l.Position = [4]float64{0, 0, 0, 1}
	}
	if src.Type != LightSun && src.Distance > 0 {
		l.LinearAttenuation = 1 / (src.Distance * b.opts.ScaleFactor)
	}
	return ls
}

func (b *Builder) animation(src *Animation) *osg.Animation {
	a := b.s.NewAnimation(src.Name)
	for _, sc := range src.Channels {
		typ := channelType(sc)
		c := b.s.NewChannel(sc.Name, sc.Target, typ)
		scale := 1.0
		if isPosition(sc.Name) {
			scale = b.opts.ScaleFactor
		}
		for _, key := range sc.Keys {
			if len(key) == 0 {
				continue
			}
			values := make([]float64, len(key)-1)
			for i, v := range key[1:] {
				values[i] = v * scale
			}
			c.AddKey(key[0], values...)
		}
		a.AddChannel(c)
	}
	if b.opts.Bake != nil {
		bake.Animation(a, *b.opts.Bake)
	}
	for _, c := range a.Channels {
		b.stats.Channels++
		b.stats.Keys += len(c.Keyframes)
	}
	return a
}

// channelType reads the declared keyframe type and otherwise infers it from
// the width of the first key.
func channelType(c Channel) osg.KeyframeType {
	switch osg.KeyframeType(c.Type) {
	case osg.KeyframeFloat, osg.KeyframeVec3, osg.KeyframeQuat:
		return osg.KeyframeType(c.Type)
	}
	if len(c.Keys) == 0 {
		return osg.KeyframeUnknown
	}
	switch len(c.Keys[0]) - 1 {
	case 1:
		return osg.KeyframeFloat
	case 3:
		return osg.KeyframeVec3
	case 4:
		return osg.KeyframeQuat
	default:
		return osg.KeyframeUnknown
	}
}

func isPosition(name string) bool {
	switch name {
	case "position", "translate", "translation":
		return true
	}
	return false
}
