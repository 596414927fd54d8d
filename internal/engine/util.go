package engine

import "strings"

func trimLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
