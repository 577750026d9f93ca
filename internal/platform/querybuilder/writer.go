package querybuilder

import (
	"strconv"
	"strings"
)

// sqlWriter accumulates SQL text and its positional ($n) arguments.
type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) raw(parts ...string) {
	for _, p := range parts {
		w.buf.WriteString(p)
	}
}

// bind appends a placeholder for v.
func (w *sqlWriter) bind(v any) {
	w.args = append(w.args, v)
	w.buf.WriteByte('$')
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes expr, binding each '?' to the next value in vals. Surplus
// question marks are written verbatim.
func (w *sqlWriter) expr(expr string, vals []any) {
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && len(vals) > 0 {
			w.bind(vals[0])
			vals = vals[1:]
			continue
		}
		w.buf.WriteByte(expr[i])
	}
}

func (w *sqlWriter) list(keyword string, items []string) {
	if len(items) == 0 {
		return
	}
	w.raw(" ", keyword, " ", strings.Join(items, ", "))
}

func (w *sqlWriter) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.raw(" WHERE ")
		} else {
			w.raw(" AND ")
		}
		c.writeSQL(w)
	}
}

func (w *sqlWriter) done() (string, []any, error) {
	return w.buf.String(), w.args, nil
}
