package repositories

import "strings"

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

// qualify prefixes each column with a table alias
func qualify(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}
