package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/registry"
	"dozzlecheck/internal/config/logger"
)

const expectedSmall = `// generated by dozzlecheck
// We suggest you to commit this file into source control
// Regenerate with: dozzlecheck components generate

declare module "vue" {
  export interface GlobalComponents {
    MdiLightCog: typeof import("~icons/mdi-light/cog")["default"];
    Search: typeof import("./components/Search.vue")["default"];
  }
}

export {};
`

func newTestLogger(ctrl *gomock.Controller) *logger.MockLogger {
	mockLog := logger.NewMockLogger(ctrl)
	mockLog.EXPECT().WithComponent("GENERATOR").Return(mockLog).AnyTimes()
	mockLog.EXPECT().Debug().Return(nil).AnyTimes()
	mockLog.EXPECT().Info().Return(nil).AnyTimes()

	return mockLog
}

func smallRegistry(t *testing.T) registry.Registry {
	t.Helper()

	reg, err := registry.FromComponents(
		registry.Component{Name: "Search", Path: "./components/Search.vue"},
		registry.Component{Name: "MdiLightCog", Path: "~icons/mdi-light/cog"},
	)
	require.NoError(t, err)

	return reg
}

func Test_Render(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := NewGenerator(newTestLogger(ctrl))

	content, err := gen.Render(smallRegistry(t))
	require.NoError(t, err)

	assert.Equal(t, expectedSmall, string(content))
}

func Test_Render_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	content, err := NewGenerator(newTestLogger(ctrl)).Render(registry.New())
	require.NoError(t, err)

	assert.Contains(t, string(content), "export interface GlobalComponents {\n  }\n")
}

func Test_Render_Builtin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	content, err := NewGenerator(newTestLogger(ctrl)).Render(registry.Builtin())
	require.NoError(t, err)

	lines := strings.Split(string(content), "\n")

	var entries []string
	for _, line := range lines {
		if strings.HasPrefix(line, "    ") {
			entries = append(entries, strings.TrimSpace(line))
		}
	}

	require.Len(t, entries, 29)
	assert.Equal(t, `CarbonCaretDown: typeof import("~icons/carbon/caret-down")["default"];`, entries[0])
	assert.Equal(t, `ScrollableView: typeof import("./components/ScrollableView.vue")["default"];`, entries[25])
	assert.Equal(t, `ScrollProgress: typeof import("./components/ScrollProgress.vue")["default"];`, entries[26])
	assert.Equal(t, `SideMenu: typeof import("./components/SideMenu.vue")["default"];`, entries[28])
	assert.True(t, strings.HasSuffix(string(content), "export {};\n"))
}

func Test_Generate(t *testing.T) {
	tests := []struct {
		name     string
		existing *string
		opts     Options
		error    error
		changed  bool
		written  bool
	}{
		{
			name:    "creates missing file",
			changed: true,
			written: true,
		},
		{
			name:     "refuses foreign file",
			existing: ptr("export const x = 1\n"),
			error:    errors.ErrDeclarationExists,
			changed:  true,
		},
		{
			name:     "force overwrites foreign file",
			existing: ptr("export const x = 1\n"),
			opts:     Options{Force: true},
			changed:  true,
			written:  true,
		},
		{
			name:     "overwrites previously generated file",
			existing: ptr("// generated by unplugin-vue-components\ndeclare module \"vue\" {}\n"),
			changed:  true,
			written:  true,
		},
		{
			name:     "unchanged file is left alone",
			existing: ptr(expectedSmall),
		},
		{
			name:    "check reports stale missing file",
			opts:    Options{Check: true},
			error:   errors.ErrDeclarationStale,
			changed: true,
		},
		{
			name:     "check reports stale content",
			existing: ptr("// generated by dozzlecheck\n"),
			opts:     Options{Check: true},
			error:    errors.ErrDeclarationStale,
			changed:  true,
		},
		{
			name:     "check passes on fresh content",
			existing: ptr(expectedSmall),
			opts:     Options{Check: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			output := filepath.Join(t.TempDir(), "assets", "components.d.ts")

			if tt.existing != nil {
				require.NoError(t, os.MkdirAll(filepath.Dir(output), 0755))
				require.NoError(t, os.WriteFile(output, []byte(*tt.existing), 0644))
			}

			opts := tt.opts
			opts.Output = output

			result, err := NewGenerator(newTestLogger(ctrl)).Generate(smallRegistry(t), opts)

			if tt.error != nil {
				assert.ErrorIs(t, err, tt.error)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.changed, result.Changed)
			assert.Equal(t, 2, result.Components)
			assert.Equal(t, output, result.Path)

			content, readErr := os.ReadFile(output)

			switch {
			case tt.written:
				require.NoError(t, readErr)
				assert.Equal(t, expectedSmall, string(content))
			case tt.existing != nil:
				require.NoError(t, readErr)
				assert.Equal(t, *tt.existing, string(content))
			default:
				assert.True(t, os.IsNotExist(readErr))
			}
		})
	}
}

func Test_Generate_DryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var out bytes.Buffer

	output := filepath.Join(t.TempDir(), "components.d.ts")
	require.NoError(t, os.WriteFile(output, []byte("existing"), 0644))

	gen := NewGeneratorWithOutput(newTestLogger(ctrl), &out)

	_, err := gen.Generate(smallRegistry(t), Options{Output: output, DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, expectedSmall, out.String())

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(content))
}

func Test_IsGenerated(t *testing.T) {
	assert.True(t, isGenerated([]byte("// generated by unplugin-vue-components\n")))
	assert.True(t, isGenerated([]byte("// generated by dozzlecheck")))
	assert.False(t, isGenerated([]byte("declare module \"vue\" {}\n")))
	assert.False(t, isGenerated(nil))
}

func ptr(s string) *string {
	return &s
}
