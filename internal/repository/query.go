package repository

import (
	"fmt"
	"strings"
)

// Args собирает условия SQL и параметры с позиционными плейсхолдерами $n.
// Каждое "%d" в выражении получает номер следующего параметра.
type Args struct {
	clauses []string
	params  []any
}

// Add добавляет выражение и его параметры.
//
//	a.Add("price >= $%d", 100)                      // price >= $1
//	a.Add("(created_at, id) < ($%d, $%d)", ts, id)  // ... ($2, $3)
func (a *Args) Add(expr string, values ...any) {
	idx := make([]any, len(values))
	for i := range values {
		idx[i] = len(a.params) + i + 1
	}
	a.params = append(a.params, values...)
	a.clauses = append(a.clauses, fmt.Sprintf(expr, idx...))
}

// Bind добавляет параметр без выражения и возвращает его плейсхолдер.
func (a *Args) Bind(value any) string {
	a.params = append(a.params, value)
	return fmt.Sprintf("$%d", len(a.params))
}

func (a *Args) Len() int {
	return len(a.clauses)
}

func (a *Args) Params() []any {
	return a.params
}

// Join соединяет выражения через sep.
func (a *Args) Join(sep string) string {
	return strings.Join(a.clauses, sep)
}

// Where возвращает " WHERE ..." или пустую строку.
func (a *Args) Where() string {
	if len(a.clauses) == 0 {
		return ""
	}
	return " WHERE " + a.Join(" AND ")
}

// Clone копирует накопленное состояние.
func (a *Args) Clone() *Args {
	return &Args{
		clauses: append([]string(nil), a.clauses...),
		params:  append([]any(nil), a.params...),
	}
}
