// Package export runs the whole pipeline: load a scene, build the node
// tree and write the OSG document in the configured charset.
package export

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/osgexport/internal/bake"
	"github.com/Faultbox/osgexport/internal/config"
	"github.com/Faultbox/osgexport/internal/logger"
	"github.com/Faultbox/osgexport/internal/scene"
	"github.com/Faultbox/osgexport/pkg/encoding"
	"github.com/Faultbox/osgexport/pkg/osg"
)

// Stdout selects standard output as the destination.
const Stdout = "-"

// Result describes one finished export.
type Result struct {
	Input    string
	Output   string
	Stats    scene.Stats
	IDs      uint64
	Bytes    int64
	Duration time.Duration
}

// Exporter exports scenes with one configuration. Every export uses a
// fresh session, so IDs restart at zero in each document.
type Exporter struct {
	cfg *config.Config
	log *zap.Logger

	stdout io.Writer
}

// New creates an exporter for cfg.
func New(cfg *config.Config) *Exporter {
	return &Exporter{
		cfg:    cfg,
		log:    logger.Named("export"),
		stdout: os.Stdout,
	}
}

// Options returns the scene build options selected by the configuration.
func (x *Exporter) Options() scene.Options {
	opts := scene.Options{
		ScaleFactor:   x.cfg.Import.ScaleFactor,
		TexturePrefix: x.cfg.Import.TexturePrefix,
		Lights:        x.cfg.Import.Lights,
		Animations:    x.cfg.Animation.Export,
		Logger:        logger.Named("scene"),
	}
	if x.cfg.Animation.Bake {
		opts.Bake = &bake.Options{FPS: x.cfg.Animation.FPS, Step: x.cfg.Animation.FrameStep}
	}
	return opts
}

// OutputPath returns where the document for input goes. An empty
// configured path places it next to the input with an .osg extension.
func OutputPath(input, configured string) string {
	if configured != "" {
		return configured
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".osg"
}

// Build loads input and builds its node tree.
func (x *Exporter) Build(input string) (osg.Structural, scene.Stats, uint64, error) {
	d, err := scene.Open(input)
	if err != nil {
		return nil, scene.Stats{}, 0, err
	}
	s := osg.NewSession()
	b := scene.NewBuilder(s, d, x.Options())
	root, err := b.Build()
	if err != nil {
		return nil, scene.Stats{}, 0, errors.Wrapf(err, "build %s", input)
	}
	return root, b.Stats(), s.Issued(), nil
}

// Render returns the encoded document for root.
func (x *Exporter) Render(root osg.Node) ([]byte, error) {
	enc, err := encoding.Lookup(x.cfg.Output.Encoding)
	if err != nil {
		return nil, err
	}
	text, err := osg.NewWriter(x.cfg.Output.Format()).Render(root, 0)
	if err != nil {
		return nil, err
	}
	return encoding.EncodeString(enc, text)
}

// WriteTo writes the encoded document for root to w.
func (x *Exporter) WriteTo(w io.Writer, root osg.Node) (int64, error) {
	enc, err := encoding.Lookup(x.cfg.Output.Encoding)
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: w}
	ew := encoding.NewWriter(cw, enc)
	if err := osg.NewWriter(x.cfg.Output.Format()).Write(ew, root); err != nil {
		return cw.n, errors.Wrap(err, "write document")
	}
	if err := ew.Close(); err != nil {
		return cw.n, errors.Wrap(err, "encode document")
	}
	return cw.n, nil
}

// Export converts input and writes the document to the configured output.
// A failed export leaves no partial file behind.
func (x *Exporter) Export(input string) (*Result, error) {
	start := time.Now()
	root, stats, ids, err := x.Build(input)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Input:  input,
		Output: OutputPath(input, x.cfg.Output.Path),
		Stats:  stats,
		IDs:    ids,
	}

	if res.Output == Stdout {
		res.Bytes, err = x.WriteTo(x.stdout, root)
		if err != nil {
			return nil, err
		}
	} else {
		res.Bytes, err = x.writeFile(res.Output, root)
		if err != nil {
			return nil, err
		}
	}
	res.Duration = time.Since(start)

	if stats.Dropped > 0 {
		x.log.Warn("indices dropped from primitives",
			zap.String("input", input),
			zap.Int("dropped", stats.Dropped))
	}
	x.log.Info("exported",
		zap.String("input", res.Input),
		zap.String("output", res.Output),
		zap.Int("objects", stats.Objects),
		zap.Int("geometries", stats.Geometries),
		zap.Int("bones", stats.Bones),
		zap.Int("channels", stats.Channels),
		zap.Uint64("ids", res.IDs),
		zap.Int64("bytes", res.Bytes),
		zap.Duration("took", res.Duration))
	return res, nil
}

func (x *Exporter) writeFile(path string, root osg.Node) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, errors.Wrap(err, "create output directory")
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrap(err, "create output")
	}
	n, err := x.WriteTo(f, root)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "close output")
	}
	if err != nil {
		os.Remove(path)
		return 0, err
	}
	return n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
