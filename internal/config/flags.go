package config

import "flag"

// Unset numeric flags keep these values so 0 stays a valid override.
const (
	unsetInt   = -1
	unsetFloat = 0
)

var (
	flagConfig    string
	flagDebug     bool
	flagOutput    string
	flagIndent    = unsetInt
	flagPrecision = unsetInt
	flagNamespace string
	flagEncoding  string
	flagStatic    bool
	flagBake      bool
	flagFPS       float64
	flagScale     float64
	flagLogFile   string
)

// RegisterFlags binds the configuration flags to fs. Each subcommand of the
// CLI registers them on its own flag set before parsing.
func RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Path to config file (.yaml or .toml)")
	fs.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	fs.StringVar(&flagOutput, "output", "", "Output file (- for stdout)")
	fs.IntVar(&flagIndent, "indent", unsetInt, "Spaces per nesting level")
	fs.IntVar(&flagPrecision, "precision", unsetInt, "Digits after the decimal point")
	fs.StringVar(&flagNamespace, "namespace", "", "Namespace of animation classes")
	fs.StringVar(&flagEncoding, "encoding", "", "Output charset (utf-8, latin-1, ...)")
	fs.BoolVar(&flagStatic, "static", false, "Skip animations")
	fs.BoolVar(&flagBake, "bake", false, "Resample animations at the configured frame rate")
	fs.Float64Var(&flagFPS, "fps", unsetFloat, "Animation frame rate")
	fs.Float64Var(&flagScale, "scale", unsetFloat, "Scale factor applied to imported positions")
	fs.StringVar(&flagLogFile, "log", "", "Log file path")
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagOutput != "" {
		cfg.Output.Path = flagOutput
	}
	if flagIndent > unsetInt {
		cfg.Output.Indent = flagIndent
	}
	if flagPrecision > unsetInt {
		cfg.Output.Precision = flagPrecision
	}
	if flagNamespace != "" {
		cfg.Output.Namespace = flagNamespace
	}
	if flagEncoding != "" {
		cfg.Output.Encoding = flagEncoding
	}
	if flagStatic {
		cfg.Animation.Export = false
	}
	if flagBake {
		cfg.Animation.Bake = true
	}
	if flagFPS > unsetFloat {
		cfg.Animation.FPS = flagFPS
	}
	if flagScale > unsetFloat {
		cfg.Import.ScaleFactor = flagScale
	}
	if flagLogFile != "" {
		cfg.Logging.LogFile = flagLogFile
	}
}
