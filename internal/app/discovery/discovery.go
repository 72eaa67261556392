package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/pattern"
	"dozzlecheck/internal/app/registry"
	"dozzlecheck/internal/config"
)

const templateExt = ".vue"

// tagPattern matches opening tags written in kebab-case with at least one dash
var tagPattern = regexp.MustCompile(`<([a-z][a-z0-9]*(?:-[a-z0-9]+)+)[\s/>]`)

// Discovery builds a component registry from a front-end source tree
//
//go:generate mockgen -source=discovery.go -destination=discovery_mock.go -package=discovery
type Discovery interface {
	Scan(dir string) (registry.Registry, error)
	Matcher() pattern.Matcher
}

// discovery implements the Discovery interface
type discovery struct {
	matcher     pattern.Matcher
	ignore      pattern.Matcher
	collections []string
}

// NewDiscovery creates a discovery from the components config
func NewDiscovery(cfg *config.Config) (Discovery, error) {
	matcher, err := pattern.NewMatcher(cfg.Components.Include, cfg.Components.Ignore)
	if err != nil {
		return nil, fmt.Errorf("%w: components include/ignore: %w", errors.ErrInvalidConfig, err)
	}

	ignore, err := pattern.NewMatcher([]string{"**"}, cfg.Components.Ignore)
	if err != nil {
		return nil, fmt.Errorf("%w: components ignore: %w", errors.ErrInvalidConfig, err)
	}

	collections := append([]string(nil), cfg.Components.IconCollections...)

	// longest prefix first so mdi-light wins over mdi
	sort.Slice(collections, func(i, j int) bool {
		if len(collections[i]) != len(collections[j]) {
			return len(collections[i]) > len(collections[j])
		}

		return collections[i] < collections[j]
	})

	return &discovery{
		matcher:     matcher,
		ignore:      ignore,
		collections: collections,
	}, nil
}

// Matcher returns the include/ignore matcher used for component files
func (d *discovery) Matcher() pattern.Matcher {
	return d.matcher
}

// Scan walks dir declaring component files and the icon components their templates use
func (d *discovery) Scan(dir string) (registry.Registry, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: '%s'", errors.ErrComponentsDirNotExist, dir)
	}

	reg := registry.New()

	err = filepath.WalkDir(dir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}

		rel = pattern.Normalize(rel)

		if entry.IsDir() {
			if d.ignore.MatchDir(rel) {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.EqualFold(path.Ext(rel), templateExt) || !d.ignore.Match(rel) {
			return nil
		}

		if d.matcher.Match(rel) {
			if err := reg.Add(componentFor(rel)); err != nil {
				return err
			}
		}

		return d.addIcons(reg, p)
	})
	if err != nil {
		return nil, err
	}

	return reg, nil
}

// addIcons declares every icon tag found in a template file
func (d *discovery) addIcons(reg registry.Registry, file string) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	for _, m := range tagPattern.FindAllSubmatch(content, -1) {
		c, ok := d.IconFor(string(m[1]))
		if !ok {
			continue
		}

		if err := reg.Add(c); err != nil {
			return err
		}
	}

	return nil
}

// IconFor maps a kebab-case tag such as 'mdi-light-chevron-left' to its icon component
func (d *discovery) IconFor(tag string) (registry.Component, bool) {
	for _, collection := range d.collections {
		icon, ok := strings.CutPrefix(tag, collection+"-")
		if !ok || icon == "" {
			continue
		}

		return registry.Component{
			Name: PascalCase(tag),
			Path: registry.IconPrefix + collection + "/" + icon,
		}, true
	}

	return registry.Component{}, false
}

// componentFor declares a component named after the file's base name
func componentFor(rel string) registry.Component {
	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))

	return registry.Component{
		Name: PascalCase(base),
		Path: "./" + rel,
	}
}

// PascalCase converts 'log-viewer', 'log_viewer' or 'LogViewer' to 'LogViewer'
func PascalCase(s string) string {
	var b strings.Builder

	upper := true

	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '.':
			upper = true
		case upper:
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
