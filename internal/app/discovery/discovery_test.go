package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/registry"
	"dozzlecheck/internal/config"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}

	return root
}

func newTestDiscovery(t *testing.T) *discovery {
	t.Helper()

	d, err := NewDiscovery(config.DefaultConfig())
	require.NoError(t, err)

	return d.(*discovery)
}

func Test_Scan(t *testing.T) {
	root := writeTree(t, map[string]string{
		"App.vue": `<template><side-menu></side-menu><mdi-light-cog /></template>`,
		"components/SideMenu.vue": `<template>
  <aside>
    <mdi-light-chevron-left class="icon"/>
    <octicon-container24></octicon-container24>
    <router-link to="/">x</router-link>
  </aside>
</template>`,
		"components/LogViewer/LogItem.vue":    `<template><cil-find-in-page/></template>`,
		"components/scroll-progress.vue":      `<template><div/></template>`,
		"components/Search.spec.vue":          `<template><carbon-caret-down/></template>`,
		"node_modules/lib/components/Lib.vue": `<template><mdi-dots-vertical/></template>`,
		"components/README.md":                `<mdi-magnify>`,
	})

	reg, err := newTestDiscovery(t).Scan(root)
	require.NoError(t, err)

	expected := map[string]string{
		"SideMenu":            "./components/SideMenu.vue",
		"LogItem":             "./components/LogViewer/LogItem.vue",
		"ScrollProgress":      "./components/scroll-progress.vue",
		"MdiLightCog":         "~icons/mdi-light/cog",
		"MdiLightChevronLeft": "~icons/mdi-light/chevron-left",
		"OcticonContainer24":  "~icons/octicon/container24",
		"CilFindInPage":       "~icons/cil/find-in-page",
	}

	assert.Equal(t, len(expected), reg.Len())

	for name, path := range expected {
		c, ok := reg.Resolve(name)
		if assert.True(t, ok, name) {
			assert.Equal(t, path, c.Path, name)
		}
	}

	_, ok := reg.Resolve("App")
	assert.False(t, ok, "root files are not components")

	_, ok = reg.Resolve("RouterLink")
	assert.False(t, ok, "tags outside icon collections are ignored")

	_, ok = reg.Resolve("CarbonCaretDown")
	assert.False(t, ok, "ignored files are not scanned")
}

func Test_Scan_Conflict(t *testing.T) {
	root := writeTree(t, map[string]string{
		"components/Search.vue":        `<template/>`,
		"components/legacy/Search.vue": `<template/>`,
	})

	_, err := newTestDiscovery(t).Scan(root)
	assert.ErrorIs(t, err, errors.ErrDuplicateComponent)
}

func Test_Scan_MissingDir(t *testing.T) {
	_, err := newTestDiscovery(t).Scan(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, errors.ErrComponentsDirNotExist)
}

func Test_IconFor(t *testing.T) {
	d := newTestDiscovery(t)

	tests := []struct {
		tag      string
		expected registry.Component
		ok       bool
	}{
		{tag: "mdi-light-chevron-left", expected: registry.Component{Name: "MdiLightChevronLeft", Path: "~icons/mdi-light/chevron-left"}, ok: true},
		{tag: "mdi-dots-vertical", expected: registry.Component{Name: "MdiDotsVertical", Path: "~icons/mdi/dots-vertical"}, ok: true},
		{tag: "carbon-caret-down", expected: registry.Component{Name: "CarbonCaretDown", Path: "~icons/carbon/caret-down"}, ok: true},
		{tag: "octicon-trash24", expected: registry.Component{Name: "OcticonTrash24", Path: "~icons/octicon/trash24"}, ok: true},
		{tag: "log-viewer", ok: false},
		{tag: "mdilight-cog", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			c, ok := d.IconFor(tt.tag)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func Test_PascalCase(t *testing.T) {
	assert.Equal(t, "LogViewer", PascalCase("log-viewer"))
	assert.Equal(t, "LogViewer", PascalCase("LogViewer"))
	assert.Equal(t, "LogViewer", PascalCase("log_viewer"))
	assert.Equal(t, "MdiLightChevronDoubleDown", PascalCase("mdi-light-chevron-double-down"))
	assert.Equal(t, "OcticonDownload24", PascalCase("octicon-download24"))
}

func Test_NewDiscovery_InvalidGlob(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Components.Include = []string{"[bad"}

	_, err := NewDiscovery(cfg)
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)
}
