package export

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Encoding is the character encoding of a delimited-text file.
type Encoding string

// Supported encodings.
const (
	UTF8  Encoding = "utf-8"
	ASCII Encoding = "ascii"
	UTF16 Encoding = "utf-16"
)

// AllEncodings lists the supported encodings in output order.
func AllEncodings() []Encoding {
	return []Encoding{UTF8, ASCII, UTF16}
}

// ParseEncoding resolves an encoding name, accepting common spellings.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "ascii", "us-ascii":
		return ASCII, nil
	case "utf-16", "utf16", "utf-16le":
		return UTF16, nil
	}
	return "", eris.Errorf("export: unsupported encoding %q", s)
}

// ParseEncodings resolves a list of encoding names.
func ParseEncodings(names []string) ([]Encoding, error) {
	out := make([]Encoding, 0, len(names))
	for _, n := range names {
		enc, err := ParseEncoding(n)
		if err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	return out, nil
}

// asciiReplacement stands in for every rune outside 7-bit ASCII.
const asciiReplacement = '?'

// transformer returns the transform applied to UTF-8 text written in e.
func (e Encoding) transformer() (transform.Transformer, error) {
	switch e {
	case UTF8, "":
		return nil, nil
	case ASCII:
		return runes.Map(func(r rune) rune {
			if r > 0x7f {
				return asciiReplacement
			}
			return r
		}), nil
	case UTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder(), nil
	}
	return nil, eris.Errorf("export: unsupported encoding %q", e)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewWriter wraps w so UTF-8 text written to it is stored in encoding e.
// Close flushes the transform but does not close w.
func NewWriter(w io.Writer, e Encoding) (io.WriteCloser, error) {
	t, err := e.transformer()
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nopWriteCloser{w}, nil
	}
	return transform.NewWriter(w, t), nil
}
