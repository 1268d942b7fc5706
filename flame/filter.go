package flame

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/pyrelens/pkg"
)

// rowEnv is the expression environment exposed to row filters.
type rowEnv struct {
	Name  string  `expr:"name"`
	Self  uint64  `expr:"self"`
	Total uint64  `expr:"total"`
	Ratio float64 `expr:"ratio"`
}

// RowFilter is a compiled boolean expression evaluated against table rows,
// for example:
//
//	self > 10 && contains(name, "read")
//	ratio >= 0.05
//
// Expressions are compiled once with [expr.Compile] and run per row.
type RowFilter struct {
	// Text is the expression source as entered.
	Text string

	prog *vm.Program
}

// NewRowFilter compiles a filter expression. The expression must evaluate
// to a boolean; compilation failure returns an error wrapping
// [pkg.ErrInvalidFilter] and the caller keeps its previous filter.
func NewRowFilter(text string) (*RowFilter, error) {
	prog, err := expr.Compile(text, expr.Env(rowEnv{}), expr.AsBool())
	if err != nil {
		return nil, pkg.ErrInvalidFilter.Wrap(err)
	}

	return &RowFilter{Text: text, prog: prog}, nil
}

// Keep reports whether the row passes the filter. Runtime evaluation errors
// keep the row: a filter that fails on some rows should narrow the table,
// never silently empty it.
func (f *RowFilter) Keep(r Row) bool {
	if f == nil {
		return true
	}

	out, err := expr.Run(f.prog, rowEnv{
		Name:  r.Name,
		Self:  r.Self,
		Total: r.Total,
		Ratio: r.Ratio,
	})
	if err != nil {
		return true
	}

	keep, ok := out.(bool)

	return !ok || keep
}

// FilterRows returns the rows passing the filter, preserving order.
// A nil filter returns rows unchanged.
func FilterRows(rows []Row, f *RowFilter) []Row {
	if f == nil {
		return rows
	}

	kept := make([]Row, 0, len(rows))

	for _, r := range rows {
		if f.Keep(r) {
			kept = append(kept, r)
		}
	}

	return kept
}
