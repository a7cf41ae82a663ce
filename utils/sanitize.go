package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans user or editor supplied HTML before it is persisted.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
