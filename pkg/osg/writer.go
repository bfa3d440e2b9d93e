package osg

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format controls how a document is laid out.
type Format struct {
	// Indent is the number of spaces per nesting level.
	Indent int
	// Precision is the number of digits after the decimal point.
	Precision int
	// Namespace prefixes the animation classes (Bone, Skeleton, ...).
	Namespace string
}

// DefaultFormat returns the layout used when nothing is configured.
func DefaultFormat() Format {
	return Format{
		Indent:    2,
		Precision: 5,
		Namespace: "osgATK",
	}
}

// Writer renders node trees as OSG ASCII text.
type Writer struct {
	Format Format
}

// NewWriter creates a writer with the given format.
func NewWriter(f Format) *Writer {
	return &Writer{Format: f}
}

// Render returns the text of n with its own lines indented depth levels.
// Rendering never mutates the tree, so rendering twice gives the same bytes.
// A nil node renders as an empty document.
func (w *Writer) Render(n Node, depth int) (string, error) {
	if isNil(n) {
		return "", nil
	}
	var b strings.Builder
	e := &emitter{buf: &b, f: w.Format, depth: depth}
	n.write(e)
	if e.err != nil {
		return "", e.err
	}
	return b.String(), nil
}

// Write renders n at depth 0 into out. Nothing is written if rendering
// fails.
func (w *Writer) Write(out io.Writer, n Node) error {
	text, err := w.Render(n, 0)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	return err
}

// emitter accumulates the text of one render. Each line is indented by
// (depth + rel) levels: depth is where the current node sits in the tree at
// render time, rel is fixed by the code that authors the line. The first
// error sticks and turns all further writes into no-ops.
type emitter struct {
	buf   *strings.Builder
	f     Format
	depth int
	err   error
}

func (e *emitter) line(rel int, format string, args ...any) {
	if e.err != nil {
		return
	}
	e.buf.WriteString(strings.Repeat(" ", (e.depth+rel)*e.f.Indent))
	fmt.Fprintf(e.buf, format, args...)
	e.buf.WriteByte('\n')
}

// open starts a block; the matching close must use the same rel.
func (e *emitter) open(rel int, format string, args ...any) {
	e.line(rel, format+" {", args...)
}

func (e *emitter) close(rel int) {
	e.line(rel, "}")
}

// node renders a child k levels below the current node.
func (e *emitter) node(k int, n Node) {
	if e.err != nil || isNil(n) {
		return
	}
	e.depth += k
	n.write(e)
	e.depth -= k
}

func (e *emitter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// ns qualifies an animation class name with the configured namespace.
func (e *emitter) ns(class string) string {
	return e.f.Namespace + "::" + class
}

func (e *emitter) float(v float64) string {
	return strconv.FormatFloat(v, 'f', e.f.Precision, 64)
}

func (e *emitter) floats(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = e.float(v)
	}
	return strings.Join(parts, " ")
}

func boolWord(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
