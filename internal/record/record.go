// Package record holds the lifespan records drawn on the chart and decodes
// them from loosely typed rows.
//
// A row is decoded using a Fields contract naming the columns that carry the
// name, start value, end value and highlight flag. Rows that cannot produce a
// drawable record are skipped and described in a Report instead of rendering
// as degenerate bars.
package record

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrNoRecords is returned when loading produced no drawable record.
var ErrNoRecords = errors.New("record: no valid records")

// Record is one entity drawn as a horizontal bar.
type Record struct {
	Name        string  `json:"name"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Highlighted bool    `json:"highlighted"`
}

// Lo returns the smaller end of the span.
func (r Record) Lo() float64 { return math.Min(r.Start, r.End) }

// Hi returns the larger end of the span.
func (r Record) Hi() float64 { return math.Max(r.Start, r.End) }

// Fields names the columns of the data contract.
type Fields struct {
	Name      string `yaml:"name"`       // Column holding the display name (band key)
	Start     string `yaml:"start"`      // Column holding the start value
	End       string `yaml:"end"`        // Column holding the end value
	Flag      string `yaml:"flag"`       // Column selecting the highlight colour (optional)
	FlagValue string `yaml:"flag_value"` // String value of Flag that means highlighted
}

// DefaultFields returns the column names of the original lifespan data files.
func DefaultFields() Fields {
	return Fields{
		Name:      "name",
		Start:     "nacimiento_date",
		End:       "muerte_date",
		Flag:      "persona",
		FlagValue: "si",
	}
}

// Raw is one undecoded row keyed by column name.
type Raw map[string]any

// Get returns the value for key, falling back to a case-insensitive match.
func (r Raw) Get(key string) (any, bool) {
	if v, ok := r[key]; ok {
		return v, true
	}
	for k, v := range r {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// SkipKind classifies why a row was skipped.
type SkipKind string

const (
	SkipMissingName  SkipKind = "missing_name"
	SkipMissingValue SkipKind = "missing_value"
	SkipInvalidValue SkipKind = "invalid_value"
)

// Skip describes one rejected row.
type Skip struct {
	Source string
	Row    int // 1-based position of the row within its source
	Kind   SkipKind
	Reason string
}

func (s Skip) String() string {
	return fmt.Sprintf("%s row %d: %s", s.Source, s.Row, s.Reason)
}

// Report summarises a decode.
type Report struct {
	Loaded     int
	Skipped    []Skip
	Duplicates []string // names shared by more than one record
}

// Merge appends the counts of other reports to r.
func (r Report) Merge(others ...Report) Report {
	for _, o := range others {
		r.Loaded += o.Loaded
		r.Skipped = append(r.Skipped, o.Skipped...)
		r.Duplicates = append(r.Duplicates, o.Duplicates...)
	}
	return r
}

// SkippedBy returns the number of skipped rows per kind.
func (r Report) SkippedBy() map[SkipKind]int {
	out := make(map[SkipKind]int)
	for _, s := range r.Skipped {
		out[s.Kind]++
	}
	return out
}

func (r Report) String() string {
	return fmt.Sprintf("%d loaded, %d skipped, %d duplicate names", r.Loaded, len(r.Skipped), len(r.Duplicates))
}

type decodeError struct {
	kind SkipKind
	msg  string
}

func (e *decodeError) Error() string { return e.msg }

// Decode converts rows into records. Rows that cannot be drawn are skipped
// and listed in the report; they never abort the decode.
func Decode(source string, rows []Raw, f Fields) ([]Record, Report) {
	records := make([]Record, 0, len(rows))
	var rep Report
	for i, row := range rows {
		rec, err := decodeRow(row, f)
		if err != nil {
			var de *decodeError
			kind := SkipInvalidValue
			if errors.As(err, &de) {
				kind = de.kind
			}
			rep.Skipped = append(rep.Skipped, Skip{Source: source, Row: i + 1, Kind: kind, Reason: err.Error()})
			continue
		}
		records = append(records, rec)
	}
	rep.Loaded = len(records)
	return records, rep
}

func decodeRow(row Raw, f Fields) (Record, error) {
	var rec Record
	v, ok := row.Get(f.Name)
	if !ok || v == nil {
		return rec, &decodeError{SkipMissingName, fmt.Sprintf("missing %q", f.Name)}
	}
	rec.Name = strings.TrimSpace(fmt.Sprint(v))
	if rec.Name == "" {
		return rec, &decodeError{SkipMissingName, fmt.Sprintf("empty %q", f.Name)}
	}
	var err error
	if rec.Start, err = numberField(row, f.Start); err != nil {
		return rec, err
	}
	if rec.End, err = numberField(row, f.End); err != nil {
		return rec, err
	}
	if f.Flag != "" {
		if v, ok := row.Get(f.Flag); ok {
			rec.Highlighted = flagValue(v, f.FlagValue)
		}
	}
	return rec, nil
}

func numberField(row Raw, key string) (float64, error) {
	v, ok := row.Get(key)
	if !ok || v == nil {
		return 0, &decodeError{SkipMissingValue, fmt.Sprintf("missing %q", key)}
	}
	n, err := Number(v)
	if err != nil {
		return 0, &decodeError{SkipInvalidValue, fmt.Sprintf("%q: %v", key, err)}
	}
	return n, nil
}

// Number converts a decoded JSON, CSV or SQL value into a finite float.
func Number(v any) (float64, error) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int32:
		n = float64(t)
	case int64:
		n = float64(t)
	case interface{ Float64() (float64, error) }: // json.Number
		f, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("not a number: %v", v)
		}
		n = f
	case []byte:
		return Number(string(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, fmt.Errorf("empty value")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", t)
		}
		n = f
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("not finite: %v", n)
	}
	return n, nil
}

func flagValue(v any, want string) bool {
	switch t := v.(type) {
	case bool:
		return t
	case []byte:
		return strings.EqualFold(strings.TrimSpace(string(t)), want)
	case string:
		return strings.EqualFold(strings.TrimSpace(t), want)
	case int64:
		return want == strconv.FormatInt(t, 10)
	default:
		return strings.EqualFold(fmt.Sprint(v), want)
	}
}

// Sort orders records ascending by start value. Equal starts keep their
// load order.
func Sort(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Start < records[j].Start
	})
}

// Duplicates returns the names carried by more than one record, in first
// appearance order.
func Duplicates(records []Record) []string {
	counts := make(map[string]int, len(records))
	var order []string
	for _, r := range records {
		if counts[r.Name] == 0 {
			order = append(order, r.Name)
		}
		counts[r.Name]++
	}
	var dups []string
	for _, name := range order {
		if counts[name] > 1 {
			dups = append(dups, name)
		}
	}
	return dups
}

// Names returns the record names in record order.
func Names(records []Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}

// FormatValue renders a start or end value the way it appears in tooltips.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
