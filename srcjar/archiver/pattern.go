package archiver

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v2"
)

// normalizePattern translates an ant-style pattern into the doublestar dialect: both separators are accepted, a
// trailing separator stands for everything below it, and doublestar-only syntax (classes and alternatives) is taken
// literally.
func normalizePattern(pattern string) string {
	p := strings.TrimSpace(pattern)
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	if strings.HasSuffix(p, "/") {
		p += "**"
	}
	for strings.Contains(p, "**/**") {
		p = strings.ReplaceAll(p, "**/**", "**")
	}

	var sb strings.Builder
	for _, r := range p {
		switch r {
		case '{', '}', '[', ']':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

type matcher struct {
	includes []string
	excludes []string
}

func newMatcher(includes, excludes []string) (*matcher, error) {
	m := &matcher{}
	for _, p := range includes {
		if strings.TrimSpace(p) == "" {
			continue
		}
		n := normalizePattern(p)
		if _, err := doublestar.Match(n, ""); err != nil {
			return nil, fmt.Errorf("bad include pattern %q: %w", p, err)
		}
		m.includes = append(m.includes, n)
	}
	if len(m.includes) == 0 {
		m.includes = []string{"**"}
	}
	for _, p := range excludes {
		if strings.TrimSpace(p) == "" {
			continue
		}
		n := normalizePattern(p)
		if _, err := doublestar.Match(n, ""); err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", p, err)
		}
		m.excludes = append(m.excludes, n)
	}
	return m, nil
}

// selects reports whether the slash separated relative path matches an include and no exclude.
func (m *matcher) selects(rel string) bool {
	return matchesAny(m.includes, rel) && !matchesAny(m.excludes, rel)
}

func matchesAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if match(p, rel) {
			return true
		}
		// "dir/**" also selects dir itself
		if base := strings.TrimSuffix(p, "/**"); base != p && match(base, rel) {
			return true
		}
	}
	return false
}

func match(pattern, rel string) bool {
	ok, err := doublestar.Match(pattern, rel)
	return err == nil && ok
}
