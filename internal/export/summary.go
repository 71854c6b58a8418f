package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cre-datagen/internal/model"
)

// Summary file names.
const (
	SummaryJSONName = "generation_summary.json"
	ReadmeName      = "README.md"
)

// Summary counts the files of one generation run.
type Summary struct {
	GenerationDate      string         `json:"generation_date"`
	RunID               string         `json:"run_id,omitempty"`
	Seed                uint64         `json:"seed"`
	TotalFilesGenerated int            `json:"total_files_generated"`
	FilesByType         map[string]int `json:"files_by_type"`
	FilesByPropertyType map[string]int `json:"files_by_property_type"`
	FilesByEncoding     map[string]int `json:"files_by_encoding"`
	FilesByFormat       map[string]int `json:"files_by_format"`
	Files               []string       `json:"files"`
}

// NewSummary tallies files. Artifacts without a kind, category or encoding
// are left out of that breakdown.
func NewSummary(date time.Time, runID string, seed uint64, files []Artifact) Summary {
	s := Summary{
		GenerationDate:      date.Format(model.DateLayout),
		RunID:               runID,
		Seed:                seed,
		TotalFilesGenerated: len(files),
		FilesByType:         map[string]int{},
		FilesByPropertyType: map[string]int{},
		FilesByEncoding:     map[string]int{},
		FilesByFormat:       map[string]int{},
		Files:               make([]string, 0, len(files)),
	}
	for _, a := range files {
		if a.Kind != "" {
			s.FilesByType[string(a.Kind)]++
		}
		if a.Category != "" {
			s.FilesByPropertyType[string(a.Category)]++
		}
		if a.Encoding != "" {
			s.FilesByEncoding[string(a.Encoding)]++
		}
		s.FilesByFormat[string(a.Format)]++
		s.Files = append(s.Files, a.Name)
	}
	sort.Strings(s.Files)
	return s
}

// WriteSummary writes generation_summary.json and README.md.
func (e *Exporter) WriteSummary(s Summary) ([]Artifact, error) {
	js := Artifact{Name: SummaryJSONName, Path: e.path(SummaryJSONName), Format: FormatJSON}
	if err := e.writeJSON(js.Path, s); err != nil {
		return nil, eris.Wrapf(err, "export: write %s", SummaryJSONName)
	}
	js, err := e.finish(js)
	if err != nil {
		return nil, err
	}

	md, err := e.Raw(ReadmeName, s.Markdown(), FormatMarkdown)
	if err != nil {
		return []Artifact{js}, err
	}
	return []Artifact{js, md}, nil
}

// Markdown renders the human-readable run report.
func (s Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("# Synthetic CRE Dataset - Generation Summary\n\n")
	b.WriteString("## Generation Details\n")
	fmt.Fprintf(&b, "- **Generation Date**: %s\n", s.GenerationDate)
	if s.RunID != "" {
		fmt.Fprintf(&b, "- **Run ID**: %s\n", s.RunID)
	}
	fmt.Fprintf(&b, "- **Seed**: %d\n", s.Seed)
	fmt.Fprintf(&b, "- **Total Files Generated**: %d\n", s.TotalFilesGenerated)

	writeCounts(&b, "Files by Type", s.FilesByType, func(k string) string { return model.Kind(k).Title() })
	writeCounts(&b, "Files by Property Type", s.FilesByPropertyType, func(k string) string { return model.PropertyCategory(k).Title() })
	writeCounts(&b, "Files by Encoding", s.FilesByEncoding, strings.ToUpper)
	writeCounts(&b, "Files by Format", s.FilesByFormat, strings.ToUpper)

	b.WriteString("\n## Generated Files\n")
	for _, f := range s.Files {
		fmt.Fprintf(&b, "- %s\n", f)
	}

	b.WriteString(`
## Usage Notes
- All CSV files include headers
- Data dictionaries document all field meanings and formats
- Files named *_errors_* are intentionally invalid for negative-path tests
- Edge-case rows are appended after the clean rows of each CSV

## Data Relationships
- Tenant roster entries reference occupied rent roll units
- NOI data shows financial performance over time
- Comparables show similar property sales and metrics
`)
	return b.String()
}

func writeCounts(b *strings.Builder, title string, counts map[string]int, label func(string) string) {
	fmt.Fprintf(b, "\n## %s\n", title)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "- **%s**: %d files\n", label(k), counts[k])
	}
}
