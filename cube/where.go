// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cube

import "strings"

// Where is a conjunction of parameterized predicates.
// The zero value (and a nil *Where) matches everything.
type Where struct {
	preds []predicate
}

type predicate struct {
	column string
	values []any
	in     bool
}

// NewWhere returns an empty predicate set
func NewWhere() *Where {
	return &Where{}
}

// Eq adds column = value.
func (w *Where) Eq(column string, value any) *Where {
	w.preds = append(w.preds, predicate{column: column, values: []any{value}})
	return w
}

// In adds column IN (values...). With no values it matches nothing.
func (w *Where) In(column string, values ...any) *Where {
	w.preds = append(w.preds, predicate{column: column, values: values, in: true})
	return w
}

// Len returns the number of predicates
func (w *Where) Len() int {
	if w == nil {
		return 0
	}
	return len(w.preds)
}

// Build renders the WHERE clause with placeholders numbered from first.
// It returns "" and no args when there are no predicates.
func (w *Where) Build(d Dialect, first int) (string, []any) {
	if w.Len() == 0 {
		return "", nil
	}

	n := first
	var args []any
	clauses := make([]string, 0, len(w.preds))
	for _, p := range w.preds {
		if !p.in {
			clauses = append(clauses, p.column+" = "+d.Placeholder(n))
			args = append(args, p.values[0])
			n++
			continue
		}
		if len(p.values) == 0 {
			clauses = append(clauses, "1 = 0")
			continue
		}
		marks := make([]string, len(p.values))
		for i, v := range p.values {
			marks[i] = d.Placeholder(n)
			args = append(args, v)
			n++
		}
		clauses = append(clauses, p.column+" IN ("+strings.Join(marks, ", ")+")")
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}
