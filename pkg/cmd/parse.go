package cmd

import "strings"

// Parse splits content into a command name and its arguments when content
// starts with prefix. The remainder is split on every single space, so runs
// of spaces yield empty arguments.
func Parse(content, prefix string) (name string, args []string, ok bool) {
	if !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	tokens := strings.Split(content[len(prefix):], " ")
	return tokens[0], tokens[1:], true
}

// FormatUsage expands a usage template. Substitution happens in one pass, so
// text inserted for one placeholder is never expanded again.
func FormatUsage(tmpl, prefix, name string) string {
	if tmpl == "" {
		return ""
	}
	return strings.NewReplacer(
		"%p", prefix,
		"%f", prefix+name,
		"%c", name,
	).Replace(tmpl)
}
