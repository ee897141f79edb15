package project

import (
	"regexp"
	"strings"
)

var expressionPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// maxInterpolationDepth bounds recursive expression resolution (guards against self-referencing properties).
const maxInterpolationDepth = 16

func interpolate(s string, values map[string]string) string {
	return interpolateDepth(s, values, 0)
}

func interpolateDepth(s string, values map[string]string, depth int) string {
	if depth >= maxInterpolationDepth || !strings.Contains(s, "${") {
		return s
	}
	return expressionPattern.ReplaceAllStringFunc(s, func(expr string) string {
		name := strings.TrimSpace(expr[2 : len(expr)-1])
		value, ok := lookup(name, values)
		if !ok {
			return expr
		}
		return interpolateDepth(value, values, depth+1)
	})
}

func lookup(name string, values map[string]string) (string, bool) {
	if v, ok := values[name]; ok {
		return v, true
	}
	// "pom." is a legacy alias of "project."
	if strings.HasPrefix(name, "pom.") {
		v, ok := values["project."+strings.TrimPrefix(name, "pom.")]
		return v, ok
	}
	return "", false
}
