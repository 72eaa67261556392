package generator

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/registry"
	"dozzlecheck/internal/config"
	"dozzlecheck/internal/config/logger"
)

const (
	templatePath    = "templates/components.d.ts.tmpl"
	generatedMarker = "// generated by "
)

//go:embed templates/components.d.ts.tmpl
var templateFS embed.FS

var declaration = template.Must(template.ParseFS(templateFS, templatePath))

// Options controls how the declaration file is written
type Options struct {
	Output string
	Force  bool
	DryRun bool
	Check  bool
}

// Result describes the outcome of a generation
type Result struct {
	Path       string
	Components int
	Changed    bool
}

// Generator renders and writes the component declaration file
//
//go:generate mockgen -source=generator.go -destination=generator_mock.go -package=generator
type Generator interface {
	Render(reg registry.Registry) ([]byte, error)
	Generate(reg registry.Registry, opts Options) (Result, error)
}

type generator struct {
	out io.Writer
	log logger.Logger
}

// NewGenerator creates a new generator instance printing dry runs to stdout
func NewGenerator(log logger.Logger) Generator {
	return NewGeneratorWithOutput(log, os.Stdout)
}

// NewGeneratorWithOutput creates a generator printing dry runs to out
func NewGeneratorWithOutput(log logger.Logger, out io.Writer) Generator {
	return &generator{
		out: out,
		log: log.WithComponent("GENERATOR"),
	}
}

// Render emits the TypeScript declaration for the registry
func (g *generator) Render(reg registry.Registry) ([]byte, error) {
	data := struct {
		Tool       string
		Components []registry.Component
	}{
		Tool:       config.AppName,
		Components: reg.Components(),
	}

	var buf bytes.Buffer
	if err := declaration.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}

// Generate renders the registry and writes, prints or verifies the declaration file
func (g *generator) Generate(reg registry.Registry, opts Options) (Result, error) {
	result := Result{Path: opts.Output, Components: reg.Len()}

	content, err := g.Render(reg)
	if err != nil {
		return result, err
	}

	if opts.DryRun {
		_, err := g.out.Write(content)
		return result, err
	}

	existing, err := os.ReadFile(opts.Output)
	exists := err == nil

	if err != nil && !os.IsNotExist(err) {
		return result, fmt.Errorf("failed to read %s: %w", opts.Output, err)
	}

	result.Changed = !exists || !bytes.Equal(existing, content)

	if opts.Check {
		if result.Changed {
			return result, fmt.Errorf("%w: %s", errors.ErrDeclarationStale, opts.Output)
		}

		return result, nil
	}

	if !result.Changed {
		g.log.Debug().Msgf("%s is up to date", opts.Output)
		return result, nil
	}

	if exists && !opts.Force && !isGenerated(existing) {
		return result, fmt.Errorf("%w: %s, use --force to overwrite", errors.ErrDeclarationExists, opts.Output)
	}

	if err := writeFile(opts.Output, content); err != nil {
		return result, err
	}

	g.log.Info().Msgf("Generated %s with %d components", opts.Output, result.Components)

	return result, nil
}

// isGenerated reports whether the file starts with a generator header
func isGenerated(content []byte) bool {
	line, _, _ := bufio.NewReader(bytes.NewReader(content)).ReadLine()

	return strings.HasPrefix(strings.TrimSpace(string(line)), generatedMarker)
}

// writeFile replaces the file wholesale through a temporary sibling
func writeFile(path string, content []byte) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".components-*.d.ts")
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
