package meta

import (
	"os"
	"strings"
	"unicode"
)

// ExpandEnv replaces all occurrences of ${env.KEY} in the input with the
// value of the environment variable KEY (or "" if unset). Expressions whose
// key contains characters other than letters, digits or '_' are left as-is.
func ExpandEnv(value string) string {
	const prefix = "${env."
	var b strings.Builder
	for {
		idx := strings.Index(value, prefix)
		if idx < 0 {
			b.WriteString(value)
			return b.String()
		}
		b.WriteString(value[:idx])
		rest := value[idx+len(prefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(value[idx:])
			return b.String()
		}
		key := rest[:end]
		if !validKey(key) {
			b.WriteString(prefix)
			value = rest
			continue
		}
		b.WriteString(os.Getenv(key))
		value = rest[end+1:]
	}
}

func validKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
