package postgres

import (
	"fmt"
	"strings"
	"time"
)

// whereBuilder arma cláusulas WHERE con placeholders posicionales ($1, $2, ...).
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereBuilder) addIf(ok bool, cond string, arg any) {
	if ok {
		w.add(cond, arg)
	}
}

func (w *whereBuilder) addDate(cond string, d *time.Time) {
	if d != nil {
		w.add(cond, *d)
	}
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
