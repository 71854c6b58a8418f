// Package readback parses exported files again so a run can be checked
// against what it claims to have written.
package readback

import (
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeReader returns a reader yielding UTF-8 text from r, which is stored
// in the named charset. A leading byte order mark overrides the charset and
// is consumed.
func DecodeReader(r io.Reader, charset string) (io.Reader, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, eris.Wrapf(err, "readback: unsupported charset %q", charset)
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}
