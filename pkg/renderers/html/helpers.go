package html

import (
	"sort"
	"strings"
)

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "ff-" + trimmed
}

func outputID(name string) string {
	id := controlID(name)
	if id == "" {
		return ""
	}
	return id + "-value"
}

func errorID(name string) string {
	id := controlID(name)
	if id == "" {
		return ""
	}
	return id + "-error"
}

// cssVarsDeclarations renders vars as a sorted inline style declaration list.
func cssVarsDeclarations(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.HasPrefix(key, "--") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		if value == "" || strings.ContainsAny(value, ";{}<>") {
			continue
		}
		parts = append(parts, key+": "+value)
	}
	return strings.Join(parts, "; ")
}
