package core

import (
	"strconv"
	"strings"
)

// ParsePointer splits a slash-delimited path into its decoded segments.
// Both "" and "/" address the root and yield no segments. "~1" and "~0"
// escapes are decoded as in RFC 6901.
func ParsePointer(path string) []string {
	if path == "" || path == "/" {
		return nil
	}
	tokens := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, token := range tokens {
		tokens[i] = UnescapeKey(token)
	}
	return tokens
}

// FormatPointer is the inverse of ParsePointer.
func FormatPointer(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(EscapeKey(s))
	}
	return b.String()
}

func EscapeKey(key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	key = strings.ReplaceAll(key, "/", "~1")
	return key
}

func UnescapeKey(key string) string {
	key = strings.ReplaceAll(key, "~1", "/")
	key = strings.ReplaceAll(key, "~0", "~")
	return key
}

// JoinPath appends raw (unescaped) segments to an existing path.
func JoinPath(parent string, segments ...string) string {
	if parent == "/" {
		parent = ""
	}
	var b strings.Builder
	b.WriteString(parent)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(EscapeKey(s))
	}
	return b.String()
}

// JoinIndex appends an array index to an existing path.
func JoinIndex(parent string, idx int) string {
	return JoinPath(parent, strconv.Itoa(idx))
}

// ParseIndex parses a segment as a non-negative array index.
func ParseIndex(segment string) (int, bool) {
	if segment == "" {
		return 0, false
	}
	idx, err := strconv.Atoi(segment)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// HasPrefix reports whether path equals prefix or lies below it.
func HasPrefix(path, prefix string) bool {
	pp := ParsePointer(path)
	pr := ParsePointer(prefix)
	if len(pr) > len(pp) {
		return false
	}
	for i := range pr {
		if pp[i] != pr[i] {
			return false
		}
	}
	return true
}
