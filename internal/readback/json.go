package readback

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// ReadJSONRecords parses a JSON array of objects. Numbers are kept as
// json.Number so money values survive unchanged.
func ReadJSONRecords(r io.Reader) ([]map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "readback: parse json")
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, eris.Wrapf(ErrMismatch, "readback: json starts with %v, want an array", tok)
	}

	var out []map[string]any
	for dec.More() {
		var rec map[string]any
		if err := dec.Decode(&rec); err != nil {
			return out, eris.Wrapf(err, "readback: json record %d", len(out)+1)
		}
		out = append(out, rec)
	}
	if _, err := dec.Token(); err != nil {
		return out, eris.Wrap(err, "readback: unterminated json array")
	}
	return out, nil
}

// OpenJSON reads the JSON records file at path.
func OpenJSON(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "readback: open %s", path)
	}
	defer f.Close()
	return ReadJSONRecords(f)
}
