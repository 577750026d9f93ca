package querybuilder

import (
	"errors"
	"fmt"
	"strings"
)

type assignment struct {
	column string
	write  func(w *sqlWriter)
}

type UpdateBuilder struct {
	table     string
	sets      []assignment
	where     []Condition
	returning []string
	err       error
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, write: func(w *sqlWriter) { w.bind(value) }})
	return b
}

// SetExpr assigns a raw expression such as "version + 1"; '?' binds args.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, write: func(w *sqlWriter) { w.expr(expr, args) }})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

// ToSQL refuses to build an UPDATE without a WHERE clause.
func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case b.err != nil:
		return "", nil, b.err
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("update table is required")
	case len(b.sets) == 0:
		return "", nil, errors.New("update sets are required")
	case len(b.where) == 0:
		return "", nil, fmt.Errorf("update without where clause on %s", b.table)
	}

	var w sqlWriter
	w.raw("UPDATE ", b.table, " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(s.column, " = ")
		s.write(&w)
	}
	w.where(b.where)
	w.list("RETURNING", b.returning)
	return w.done()
}
