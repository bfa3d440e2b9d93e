package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want any
	}{
		{"", unicode.UTF8},
		{"UTF-8", unicode.UTF8},
		{"latin-1", charmap.ISO8859_1},
		{" ISO-8859-1 ", charmap.ISO8859_1},
		{"Windows 1250", charmap.Windows1250},
		{"iso 8859-15", charmap.ISO8859_15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, enc)
		})
	}

	_, err := Lookup("klingon")
	assert.Error(t, err)
}

func TestEncodeLatin1(t *testing.T) {
	out, err := EncodeString(charmap.ISO8859_1, `name "Café"`)
	require.NoError(t, err)
	assert.Equal(t, []byte("name \"Caf\xe9\""), out)

	_, err = EncodeString(charmap.ISO8859_1, "日本")
	assert.Error(t, err)
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, charmap.ISO8859_1)
	_, err := w.Write([]byte("Ångström\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, "\xc5ngstr\xf6m\n", buf.String())
}

func TestListContainsAliases(t *testing.T) {
	names := List()
	assert.Contains(t, names, "latin-1")
	assert.Contains(t, names, "ISO 8859-1")
}
