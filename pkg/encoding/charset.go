// Package encoding converts exported documents from UTF-8 to the charset
// requested by the consumer.
package encoding

import (
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// UTF8 is the charset name used when nothing else is configured.
const UTF8 = "utf-8"

var aliases = map[string]encoding.Encoding{
	"utf-8":      unicode.UTF8,
	"utf8":       unicode.UTF8,
	"latin-1":    charmap.ISO8859_1,
	"latin1":     charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
	"cp1252":     charmap.Windows1252,
	"euc-kr":     korean.EUCKR,
}

// Lookup returns the encoding for name. Besides the common aliases
// (utf-8, latin-1, cp1252, euc-kr) every charmap is accepted by its display
// name, e.g. "ISO 8859-15" or "Windows 1250", ignoring case.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return unicode.UTF8, nil
	}
	if enc, ok := aliases[key]; ok {
		return enc, nil
	}
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			if strings.EqualFold(cm.String(), key) {
				return cm, nil
			}
		}
	}
	return nil, errors.Errorf("unknown encoding %q", name)
}

// List returns the accepted charset names, aliases first.
func List() []string {
	names := make([]string, 0, len(aliases)+len(charmap.All))
	for a := range aliases {
		names = append(names, a)
	}
	sort.Strings(names)
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			names = append(names, cm.String())
		}
	}
	return names
}

// EncodeString converts s from UTF-8. Characters the charset cannot
// represent are an error.
func EncodeString(enc encoding.Encoding, s string) ([]byte, error) {
	out, _, err := transform.Bytes(enc.NewEncoder(), []byte(s))
	if err != nil {
		return nil, errors.Wrap(err, "encode document")
	}
	return out, nil
}

// NewWriter returns a writer that encodes everything written to it before
// passing it to w. Close flushes buffered output but does not close w.
func NewWriter(w io.Writer, enc encoding.Encoding) io.WriteCloser {
	return transform.NewWriter(w, enc.NewEncoder())
}
