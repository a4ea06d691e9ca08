// Package query is the shared filter/sort/pagination composer behind every
// ledger search surface. Handlers bind raw parameters, services resolve
// reference keys to internal IDs, and this package turns the result into SQL
// fragments with positional pgx arguments.
package query

import (
	"fmt"
	"strings"
)

// Builder accumulates WHERE conditions combined with AND. Conditions use "?"
// placeholders which are rewritten to positional $n arguments; absent filters
// simply contribute no condition.
type Builder struct {
	conditions []string
	args       []any
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// And appends a condition. Each "?" in expr is replaced with the next
// positional placeholder.
func (b *Builder) And(expr string, vals ...any) *Builder {
	for _, v := range vals {
		b.args = append(b.args, v)
		expr = strings.Replace(expr, "?", fmt.Sprintf("$%d", len(b.args)), 1)
	}
	b.conditions = append(b.conditions, expr)
	return b
}

// WhereSQL renders the accumulated conditions as a WHERE clause, or returns
// the empty string when no condition was added.
func (b *Builder) WhereSQL() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conditions, " AND ")
}

// Args returns the positional arguments matching WhereSQL.
func (b *Builder) Args() []any {
	return b.args
}

// NextPlaceholder returns the placeholder number the next argument would get.
// Callers appending LIMIT/OFFSET after the WHERE clause use it to keep the
// numbering contiguous.
func (b *Builder) NextPlaceholder() int {
	return len(b.args) + 1
}
