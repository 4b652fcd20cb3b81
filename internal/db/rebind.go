package db

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Dialect names as reported by gorm's Dialector.Name().
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

var ErrEmptyInList = errors.New("db: empty slice passed to In")

// Rebind rewrites '?' markers into the sequential numbered markers Postgres
// expects ($1, $2, ...). SQLite queries pass through untouched. Only raw
// queries issued against the underlying *sql.DB need this; everything going
// through gorm is bound by the dialector.
func Rebind(dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		fmt.Fprintf(&b, "$%d", n)
	}
	return b.String()
}

// In expands every slice argument into one marker per element, renumbering
// the remaining markers, so "id IN (?)" with a 3-element slice becomes
// "id IN (?,?,?)" with a flattened argument list. Used for the bulk-delete
// style statements where the id set is only known at runtime.
func In(query string, args ...interface{}) (string, []interface{}, error) {
	type expansion struct {
		count int
		elems []interface{}
	}

	expansions := make([]expansion, len(args))
	total := 0
	for i, arg := range args {
		v := reflect.ValueOf(arg)
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() != reflect.Uint8 {
			if v.Len() == 0 {
				return "", nil, ErrEmptyInList
			}
			elems := make([]interface{}, v.Len())
			for j := 0; j < v.Len(); j++ {
				elems[j] = v.Index(j).Interface()
			}
			expansions[i] = expansion{count: v.Len(), elems: elems}
			total += v.Len()
		} else {
			expansions[i] = expansion{count: 1, elems: []interface{}{arg}}
			total++
		}
	}

	var b strings.Builder
	b.Grow(len(query) + total*2)

	flat := make([]interface{}, 0, total)
	argIdx := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		if argIdx >= len(expansions) {
			return "", nil, fmt.Errorf("db: more markers than arguments in %q", query)
		}
		exp := expansions[argIdx]
		for j := 0; j < exp.count; j++ {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('?')
		}
		flat = append(flat, exp.elems...)
		argIdx++
	}

	if argIdx != len(expansions) {
		return "", nil, fmt.Errorf("db: more arguments than markers in %q", query)
	}
	return b.String(), flat, nil
}
