package actions

import "strings"

func lower(s string) string {
	return strings.ToLower(s)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
