package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/cre-datagen/internal/model"
)

// DictionaryYAMLName is the file holding every dictionary in one document.
const DictionaryYAMLName = "data_dictionary.yaml"

// DictionaryName returns the conventional file name for a kind's dictionary.
func DictionaryName(k model.Kind) string {
	return fmt.Sprintf("%s_fields.csv", k)
}

// Dictionary writes docs as a two-column CSV: field_name, description.
func (e *Exporter) Dictionary(name string, docs []model.FieldDoc) (Artifact, error) {
	if len(docs) == 0 {
		return Artifact{}, eris.Wrapf(ErrNoRecords, "export: dictionary %s", name)
	}
	a := Artifact{Name: name, Path: e.path(name), Format: FormatCSV, Encoding: UTF8, Variant: "dictionary", Rows: len(docs)}

	f, err := os.Create(a.Path)
	if err != nil {
		return a, eris.Wrapf(err, "export: create %s", name)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"field_name", "description"}); err != nil {
		return a, eris.Wrapf(err, "export: write %s", name)
	}
	for _, d := range docs {
		if err := cw.Write([]string{d.Name, d.Description}); err != nil {
			return a, eris.Wrapf(err, "export: write %s", name)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return a, eris.Wrapf(err, "export: flush %s", name)
	}
	if err := f.Close(); err != nil {
		return a, eris.Wrapf(err, "export: close %s", name)
	}
	return e.finish(a)
}

type kindDictionary struct {
	Kind   model.Kind       `yaml:"kind"`
	Title  string           `yaml:"title"`
	Fields []model.FieldDoc `yaml:"fields"`
}

// DictionaryYAML writes the dictionaries of kinds, in order, as one YAML
// document.
func (e *Exporter) DictionaryYAML(name string, kinds []model.Kind) (Artifact, error) {
	doc := make([]kindDictionary, 0, len(kinds))
	rows := 0
	for _, k := range kinds {
		fields := model.Dictionary(k)
		doc = append(doc, kindDictionary{Kind: k, Title: k.Title(), Fields: fields})
		rows += len(fields)
	}

	b, err := yaml.Marshal(doc)
	if err != nil {
		return Artifact{}, eris.Wrap(err, "export: marshal dictionaries")
	}
	a, err := e.Raw(name, string(b), FormatYAML)
	if err != nil {
		return a, err
	}
	a.Variant = "dictionary"
	a.Rows = rows
	return a, nil
}
