// osgexport converts scene descriptions and glTF files into OpenSceneGraph
// ASCII documents.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/Faultbox/osgexport/internal/config"
	"github.com/Faultbox/osgexport/internal/export"
	"github.com/Faultbox/osgexport/internal/logger"
	"github.com/Faultbox/osgexport/internal/scene"
	"github.com/Faultbox/osgexport/pkg/encoding"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "export", "x":
		cmdExport(args)
	case "watch", "w":
		cmdWatch(args)
	case "dump":
		cmdDump(args)
	case "config":
		cmdConfig(args)
	case "encodings":
		cmdEncodings()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`osgexport - OpenSceneGraph ASCII exporter

Usage:
  osgexport <command> [options] <input>

Commands:
  export <scene>     Export a scene (.yaml, .gltf, .glb) to .osg
  watch <scene>      Export again every time the scene changes
  dump <scene>       Print the loaded scene description
  config [-save]     Print the effective config, or save it as the user default
  encodings          List the supported output charsets

Options (all commands):
  -config <file>     Config file (.yaml or .toml)
  -output <file>     Output file, - for stdout
  -indent <n>        Spaces per nesting level
  -precision <n>     Digits after the decimal point
  -namespace <ns>    Namespace of animation classes
  -encoding <name>   Output charset
  -static            Skip animations
  -bake              Resample animations at -fps
  -fps <rate>        Animation frame rate
  -scale <factor>    Scale applied to positions
  -log <file>        Also log to file
  -debug             Enable debug logging

Examples:
  osgexport export character.glb
  osgexport export -output - -precision 3 scene.yaml
  osgexport watch -bake -fps 30 scene.yaml`)
}

// setup parses the flags of a subcommand, loads the configuration and
// starts logging. It returns the single input argument.
func setup(name string, args []string) (*config.Config, string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	config.RegisterFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: osgexport %s [options] <scene>\n", name)
		os.Exit(1)
	}
	return loadConfig(), fs.Arg(0)
}

// loadConfig loads the configuration for already parsed flags and starts
// logging.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)
	return cfg
}

func cmdExport(args []string) {
	cfg, input := setup("export", args)
	defer logger.Sync()

	if _, err := export.New(cfg).Export(input); err != nil {
		logger.Error("export failed", zap.String("input", input), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func cmdWatch(args []string) {
	cfg, input := setup("watch", args)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := export.New(cfg).Watch(ctx, input, export.DefaultDebounce, func(_ *export.Result, err error) {
		if err != nil {
			logger.Error("export failed", zap.String("input", input), zap.Error(err))
		}
	})
	if err != nil {
		logger.Error("watch failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("watch stopped")
}

func cmdDump(args []string) {
	_, input := setup("dump", args)
	defer logger.Sync()

	d, err := scene.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := spew.NewDefaultConfig()
	cfg.DisableCapacities = true
	cfg.DisablePointerAddresses = true
	fmt.Print(cfg.Sdump(d))
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	config.RegisterFlags(fs)
	save := fs.Bool("save", false, "Save the effective config as the user default")
	asTOML := fs.Bool("toml", false, "Print TOML instead of YAML")
	fs.Parse(args)

	cfg := loadConfig()
	defer logger.Sync()

	if *save {
		if err := cfg.Save(); err != nil {
			logger.Error("save config failed", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", config.UserConfigFile()))
		return
	}

	data, err := cfg.Marshal(*asTOML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}

func cmdEncodings() {
	for _, name := range encoding.List() {
		fmt.Println(name)
	}
}
