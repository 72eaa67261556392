package pattern

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher checks relative file paths against include and ignore globs
type Matcher interface {
	Match(path string) bool
	MatchDir(dirPath string) bool
}

// matcher implements the Matcher interface
type matcher struct {
	includes []glob.Glob
	ignores  []glob.Glob
}

// NewMatcher compiles include and ignore globs, a '**/' segment also matches zero directories
func NewMatcher(includes, ignores []string) (Matcher, error) {
	inc, err := compileAll(expand(includes), '/')
	if err != nil {
		return nil, err
	}

	ign, err := compileAll(expand(ignores), '/')
	if err != nil {
		return nil, err
	}

	return &matcher{includes: inc, ignores: ign}, nil
}

// Match returns true if the path matches any include and no ignore
func (m *matcher) Match(path string) bool {
	path = Normalize(path)

	if matchAny(m.ignores, path) {
		return false
	}

	return matchAny(m.includes, path)
}

// MatchDir returns true if a directory is ignored and should not be descended into
func (m *matcher) MatchDir(dirPath string) bool {
	dirPath = Normalize(dirPath)
	if dirPath == "" || dirPath == "." {
		return false
	}

	return matchAny(m.ignores, dirPath+"/_probe")
}

// NameMatcher selects names by glob, an empty matcher selects everything
type NameMatcher struct {
	globs []glob.Glob
}

// NewNameMatcher compiles name globs such as 'route*' or '{has right title,route by name}'
func NewNameMatcher(patterns ...string) (*NameMatcher, error) {
	nonEmpty := make([]string, 0, len(patterns))

	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	globs, err := compileAll(nonEmpty)
	if err != nil {
		return nil, err
	}

	return &NameMatcher{globs: globs}, nil
}

// Match reports whether the name is selected
func (n *NameMatcher) Match(name string) bool {
	if n == nil || len(n.globs) == 0 {
		return true
	}

	return matchAny(n.globs, name)
}

// Normalize converts separators to '/' and strips a leading './'
func Normalize(path string) string {
	path = filepath.ToSlash(path)

	return strings.TrimPrefix(path, "./")
}

func expand(patterns []string) []string {
	expanded := make([]string, 0, len(patterns)*2)

	for _, p := range patterns {
		expanded = append(expanded, p)

		if rest, ok := strings.CutPrefix(p, "**/"); ok {
			expanded = append(expanded, rest)
		}

		if strings.Contains(p, "/**/") {
			expanded = append(expanded, strings.ReplaceAll(p, "/**/", "/"))
		}
	}

	return expanded
}

func compileAll(patterns []string, separators ...rune) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))

	for _, p := range patterns {
		g, err := glob.Compile(p, separators...)
		if err != nil {
			return nil, err
		}

		globs = append(globs, g)
	}

	return globs, nil
}

func matchAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}

	return false
}
