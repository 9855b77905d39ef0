// Package filtering compiles the loosely-typed {column, value} search
// criteria accepted by the list endpoints into typed predicates the pgsql
// repositories turn into WHERE clauses. It is pure: nothing here touches
// storage.
package filtering

import (
	"encoding/json"
	"strconv"
	"time"
)

// DateTimeColumn is the creation-timestamp column; a criterion on it is
// interpreted as a calendar date and matched as a same-day range.
const DateTimeColumn = "dataHora"

// Criterion is one {column, value} search constraint, type-inferred at
// compile time.
type Criterion struct {
	Column string `json:"column"`
	Value  any    `json:"value"`
}

// Kind discriminates the compiled predicate variants.
type Kind int

const (
	// KindExact matches the raw value exactly (booleans and other literals).
	KindExact Kind = iota
	// KindNumber matches a numeric value exactly, including numeric strings.
	KindNumber
	// KindContains matches a case-insensitive substring.
	KindContains
	// KindDateRange matches the closed interval
	// [00:00:00.000, 23:59:59.000] UTC of a calendar date.
	KindDateRange
)

// Predicate is one compiled constraint on a single column.
type Predicate struct {
	Kind   Kind
	Column string

	// Number is set for KindNumber.
	Number float64
	// Text is set for KindContains, without the surrounding wildcards.
	Text string
	// Start and End bound KindDateRange, both inclusive.
	Start time.Time
	End   time.Time
	// Value carries the raw literal for KindExact.
	Value any
}

// Order describes the requested result ordering.
type Order struct {
	Column string `json:"column"`
	Sort   string `json:"sort"`
}

// Where is the AND-combination of compiled predicates, at most one per
// column. Compiling two criteria on the same column keeps only the later
// one (last write wins); that mirrors the upstream API contract and is not
// treated as an error.
type Where struct {
	columns []string
	preds   map[string]Predicate
}

// Compile resolves each criterion, in order, into a predicate. Resolution
// priority per criterion:
//  1. the dataHora column becomes a same-day range regardless of any time
//     component supplied,
//  2. numeric literals and numeric strings become exact numeric equality,
//  3. other strings become case-insensitive substring matches,
//  4. everything else becomes exact equality on the raw value.
//
// No criteria yields a Where that matches every record.
func Compile(criteria ...Criterion) Where {
	w := Where{preds: make(map[string]Predicate, len(criteria))}

	for _, c := range criteria {
		w.put(compileOne(c))
	}
	return w
}

func compileOne(c Criterion) Predicate {
	if c.Column == DateTimeColumn {
		if start, end, ok := dayRange(c.Value); ok {
			return Predicate{Kind: KindDateRange, Column: c.Column, Start: start, End: end}
		}
		// An unparseable date degrades to an exact match on the raw value.
		return Predicate{Kind: KindExact, Column: c.Column, Value: c.Value}
	}

	if n, ok := asNumber(c.Value); ok {
		return Predicate{Kind: KindNumber, Column: c.Column, Number: n}
	}

	if s, ok := c.Value.(string); ok {
		return Predicate{Kind: KindContains, Column: c.Column, Text: s}
	}

	return Predicate{Kind: KindExact, Column: c.Column, Value: c.Value}
}

func (w *Where) put(p Predicate) {
	if _, seen := w.preds[p.Column]; !seen {
		w.columns = append(w.columns, p.Column)
	}
	w.preds[p.Column] = p
}

// Empty reports whether the Where matches every record.
func (w Where) Empty() bool {
	return len(w.columns) == 0
}

// Predicates returns the compiled predicates in first-appearance column
// order.
func (w Where) Predicates() []Predicate {
	out := make([]Predicate, 0, len(w.columns))
	for _, col := range w.columns {
		out = append(out, w.preds[col])
	}
	return out
}

// asNumber reports whether v is a numeric literal or a string holding one.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// dayRange resolves v to the UTC day it names and returns the inclusive
// [00:00:00.000, 23:59:59.000] bounds of that day.
func dayRange(v any) (time.Time, time.Time, bool) {
	var day time.Time

	switch d := v.(type) {
	case time.Time:
		day = d.UTC()
	case string:
		parsed, ok := parseDate(d)
		if !ok {
			return time.Time{}, time.Time{}, false
		}
		day = parsed
	default:
		return time.Time{}, time.Time{}, false
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.UTC)
	return start, end, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
