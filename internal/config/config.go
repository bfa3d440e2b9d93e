// Package config handles exporter configuration loading and management.
package config

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/osgexport/pkg/encoding"
	"github.com/Faultbox/osgexport/pkg/osg"
)

// Config holds all exporter settings.
type Config struct {
	Output    OutputConfig    `yaml:"output" toml:"output"`
	Animation AnimationConfig `yaml:"animation" toml:"animation"`
	Import    ImportConfig    `yaml:"import" toml:"import"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// OutputConfig controls the written document.
type OutputConfig struct {
	Path      string `yaml:"path" toml:"path"` // "" derives from the input, "-" is stdout
	Indent    int    `yaml:"indent" toml:"indent"`
	Precision int    `yaml:"precision" toml:"precision"`
	Namespace string `yaml:"namespace" toml:"namespace"`
	Encoding  string `yaml:"encoding" toml:"encoding"`
}

// AnimationConfig controls whether animations are exported and how their
// keys are baked.
type AnimationConfig struct {
	Export    bool    `yaml:"export" toml:"export"`
	Bake      bool    `yaml:"bake" toml:"bake"`
	FPS       float64 `yaml:"fps" toml:"fps"`
	FrameStep int     `yaml:"frame_step" toml:"frame_step"`
}

// ImportConfig controls how source scenes are converted.
type ImportConfig struct {
	ScaleFactor   float64 `yaml:"scale_factor" toml:"scale_factor"`
	TexturePrefix string  `yaml:"texture_prefix" toml:"texture_prefix"`
	Lights        bool    `yaml:"lights" toml:"lights"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	f := osg.DefaultFormat()
	return &Config{
		Output: OutputConfig{
			Indent:    f.Indent,
			Precision: f.Precision,
			Namespace: f.Namespace,
			Encoding:  encoding.UTF8,
		},
		Animation: AnimationConfig{
			Export:    true,
			Bake:      false,
			FPS:       25,
			FrameStep: 1,
		},
		Import: ImportConfig{
			ScaleFactor: 1,
			Lights:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Format returns the document layout selected by the output settings.
func (o OutputConfig) Format() osg.Format {
	return osg.Format{
		Indent:    o.Indent,
		Precision: o.Precision,
		Namespace: o.Namespace,
	}
}

// Validate reports the first setting that cannot be used for an export.
func (c *Config) Validate() error {
	switch {
	case c.Output.Indent < 0:
		return errors.Errorf("output.indent must not be negative, got %d", c.Output.Indent)
	case c.Output.Precision < 0 || c.Output.Precision > 17:
		return errors.Errorf("output.precision must be between 0 and 17, got %d", c.Output.Precision)
	case c.Output.Namespace == "":
		return errors.New("output.namespace must not be empty")
	case c.Animation.FPS <= 0:
		return errors.Errorf("animation.fps must be positive, got %g", c.Animation.FPS)
	case c.Animation.FrameStep < 1:
		return errors.Errorf("animation.frame_step must be at least 1, got %d", c.Animation.FrameStep)
	case c.Import.ScaleFactor <= 0:
		return errors.Errorf("import.scale_factor must be positive, got %g", c.Import.ScaleFactor)
	}
	if _, err := encoding.Lookup(c.Output.Encoding); err != nil {
		return errors.Wrap(err, "output.encoding")
	}
	return nil
}
