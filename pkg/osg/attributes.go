package osg

// ColorMode selects which material color follows glColor.
type ColorMode string

const (
	ColorModeOff               ColorMode = "OFF"
	ColorModeAmbient           ColorMode = "AMBIENT"
	ColorModeDiffuse           ColorMode = "DIFFUSE"
	ColorModeSpecular          ColorMode = "SPECULAR"
	ColorModeEmission          ColorMode = "EMISSION"
	ColorModeAmbientAndDiffuse ColorMode = "AMBIENT_AND_DIFFUSE"
)

// Material is the fixed-function material attribute.
type Material struct {
	Object
	ColorMode ColorMode
	Ambient   [4]float64
	Diffuse   [4]float64
	Specular  [4]float64
	Emission  [4]float64
	Shininess float64
}

// NewMaterial creates a material with the OpenGL defaults.
func (s *Session) NewMaterial() *Material {
	return &Material{
		Object:    s.newObject("Material"),
		ColorMode: ColorModeOff,
		Ambient:   [4]float64{0.2, 0.2, 0.2, 1},
		Diffuse:   [4]float64{0.8, 0.8, 0.8, 1},
		Specular:  [4]float64{0, 0, 0, 1},
		Emission:  [4]float64{0, 0, 0, 1},
	}
}

func (*Material) stateAttribute() {}

func (m *Material) write(e *emitter) {
	e.open(0, "Material")
	e.writeIdentity(&m.Object, m.ID())
	e.line(1, "ColorMode %s", m.ColorMode)
	e.line(1, "ambientColor %s", e.floats(m.Ambient[:]...))
	e.line(1, "diffuseColor %s", e.floats(m.Diffuse[:]...))
	e.line(1, "specularColor %s", e.floats(m.Specular[:]...))
	e.line(1, "emissionColor %s", e.floats(m.Emission[:]...))
	e.line(1, "shininess %s", e.float(m.Shininess))
	e.close(0)
}

// LightModel holds the global lighting parameters.
type LightModel struct {
	Object
	AmbientIntensity [4]float64
	ColorControl     string
	LocalViewer      bool
}

// NewLightModel creates a light model with separate specular color.
func (s *Session) NewLightModel() *LightModel {
	return &LightModel{
		Object:           s.newObject("LightModel"),
		AmbientIntensity: [4]float64{0.2, 0.2, 0.2, 1},
		ColorControl:     "SEPARATE_SPECULAR_COLOR",
	}
}

func (*LightModel) stateAttribute() {}

func (l *LightModel) write(e *emitter) {
	e.open(0, "LightModel")
	e.writeIdentity(&l.Object, l.ID())
	e.line(1, "ambientIntensity %s", e.floats(l.AmbientIntensity[:]...))
	e.line(1, "colorControl %s", l.ColorControl)
	e.line(1, "localViewer %s", boolWord(l.LocalViewer))
	e.close(0)
}

// Light is an OpenGL light. It never carries a UniqueID.
type Light struct {
	Object
	Num       int
	Ambient   [4]float64
	Diffuse   [4]float64
	Specular  [4]float64
	Position  [4]float64
	Direction [3]float64

	ConstantAttenuation  float64
	LinearAttenuation    float64
	QuadraticAttenuation float64

	SpotExponent float64
	SpotCutoff   float64
}

// NewLight creates a directional light pointing down -Z.
func (s *Session) NewLight() *Light {
	return &Light{
		Object:              s.newObject("Light"),
		Ambient:             [4]float64{0.05, 0.05, 0.05, 1},
		Diffuse:             [4]float64{0.8, 0.8, 0.8, 1},
		Specular:            [4]float64{1, 1, 1, 1},
		Position:            [4]float64{0, 0, 1, 0},
		Direction:           [3]float64{0, 0, -1},
		ConstantAttenuation: 1,
		SpotCutoff:          180,
	}
}

func (*Light) stateAttribute() {}

func (l *Light) write(e *emitter) {
	e.open(0, "Light")
	e.writeIdentity(&l.Object, "")
	e.line(1, "light_num %d", l.Num)
	e.line(1, "ambient %s", e.floats(l.Ambient[:]...))
	e.line(1, "diffuse %s", e.floats(l.Diffuse[:]...))
	e.line(1, "specular %s", e.floats(l.Specular[:]...))
	e.line(1, "position %s", e.floats(l.Position[:]...))
	e.line(1, "direction %s", e.floats(l.Direction[:]...))
	e.line(1, "constant_attenuation %s", e.float(l.ConstantAttenuation))
	e.line(1, "linear_attenuation %s", e.float(l.LinearAttenuation))
	e.line(1, "quadratic_attenuation %s", e.float(l.QuadraticAttenuation))
	e.line(1, "spot_exponent %s", e.float(l.SpotExponent))
	e.line(1, "spot_cutoff %s", e.float(l.SpotCutoff))
	e.close(0)
}

// Texture2D is a 2D texture bound to a texture unit.
type Texture2D struct {
	Object
	Unit               int
	File               string
	WrapS              string
	WrapT              string
	WrapR              string
	MinFilter          string
	MagFilter          string
	InternalFormatMode string
}

// NewTexture2D creates a repeating, mipmapped texture for file.
func (s *Session) NewTexture2D(file string) *Texture2D {
	return &Texture2D{
		Object:             s.newObject("Texture2D"),
		File:               file,
		WrapS:              "REPEAT",
		WrapT:              "REPEAT",
		WrapR:              "REPEAT",
		MinFilter:          "LINEAR_MIPMAP_LINEAR",
		MagFilter:          "LINEAR",
		InternalFormatMode: "USE_IMAGE_DATA_FORMAT",
	}
}

func (*Texture2D) stateAttribute() {}

// write emits the GL_TEXTURE_2D mode ahead of the block; OSG reads it as a
// texture mode of the enclosing unit.
func (t *Texture2D) write(e *emitter) {
	e.line(0, "GL_TEXTURE_2D ON")
	e.open(0, "Texture2D")
	e.writeIdentity(&t.Object, t.ID())
	e.line(1, "file \"%s\"", t.File)
	e.line(1, "wrap_s %s", t.WrapS)
	e.line(1, "wrap_t %s", t.WrapT)
	e.line(1, "wrap_r %s", t.WrapR)
	e.line(1, "min_filter %s", t.MinFilter)
	e.line(1, "mag_filter %s", t.MagFilter)
	e.line(1, "internalFormatMode %s", t.InternalFormatMode)
	e.line(1, "subloadMode OFF")
	e.close(0)
}
