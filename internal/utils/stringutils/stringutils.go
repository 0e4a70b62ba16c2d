package stringutils

import (
	"fmt"
	"strings"
)

// INCluse numbers placeholders from start, e.g. start=3 gives $3, $4, ...
func INCluse[T any](list []T, start int) (placeholders []string, args []any) {
	placeholders = make([]string, len(list))
	args = make([]any, len(list))
	for i, id := range list {
		placeholders[i] = fmt.Sprintf("$%d", start+i)
		args[i] = id
	}

	return placeholders, args
}

// EscapeLike escapes the LIKE wildcards in s using backslash.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
