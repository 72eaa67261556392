package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dozzlecheck/internal/app/errors"
)

func Test_Parse(t *testing.T) {
	tests := []struct {
		name      string
		selector  string
		steps     []Step
		canonical string
	}{
		{
			name:      "role with name",
			selector:  `role=link[name="Settings"]`,
			steps:     []Step{{Kind: KindRole, Value: "link", Name: "Settings", HasName: true}},
			canonical: `role=link[name="Settings"]`,
		},
		{
			name:      "role with single quoted name",
			selector:  `role=heading[name='About']`,
			steps:     []Step{{Kind: KindRole, Value: "heading", Name: "About", HasName: true}},
			canonical: `role=heading[name="About"]`,
		},
		{
			name:      "bare role",
			selector:  "role=dialog",
			steps:     []Step{{Kind: KindRole, Value: "dialog"}},
			canonical: "role=dialog",
		},
		{
			name:      "bare css",
			selector:  "body",
			steps:     []Step{{Kind: KindCSS, Value: "body"}},
			canonical: "css=body",
		},
		{
			name:      "css with attribute value",
			selector:  `a[href="/settings"]`,
			steps:     []Step{{Kind: KindCSS, Value: `a[href="/settings"]`}},
			canonical: `css=a[href="/settings"]`,
		},
		{
			name:     "chained placeholder",
			selector: "css=.modal >> placeholder=Search containers (⌘ + k, ⌃k)",
			steps: []Step{
				{Kind: KindCSS, Value: ".modal"},
				{Kind: KindPlaceholder, Value: "Search containers (⌘ + k, ⌃k)"},
			},
			canonical: "css=.modal >> placeholder=Search containers (⌘ + k, ⌃k)",
		},
		{
			name:     "chained text",
			selector: "css=.menu-label [aria-current] >> text=Contenedores",
			steps: []Step{
				{Kind: KindCSS, Value: ".menu-label [aria-current]"},
				{Kind: KindText, Value: "Contenedores"},
			},
			canonical: "css=.menu-label [aria-current] >> text=Contenedores",
		},
		{
			name:      "exact text",
			selector:  `text="Say \"hi\""`,
			steps:     []Step{{Kind: KindText, Value: `Say "hi"`, Exact: true}},
			canonical: `text="Say \"hi\""`,
		},
		{
			name:      "apostrophe in text",
			selector:  "text=Don't follow",
			steps:     []Step{{Kind: KindText, Value: "Don't follow"}},
			canonical: "text=Don't follow",
		},
		{
			name:      "separator inside quotes",
			selector:  `role=button[name="a >> b"]`,
			steps:     []Step{{Kind: KindRole, Value: "button", Name: "a >> b", HasName: true}},
			canonical: `role=button[name="a >> b"]`,
		},
		{
			name:     "no spaces around separator",
			selector: "css=nav>>text=Logs",
			steps: []Step{
				{Kind: KindCSS, Value: "nav"},
				{Kind: KindText, Value: "Logs"},
			},
			canonical: "css=nav >> text=Logs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Parse(tt.selector)
			require.NoError(t, err)

			assert.Equal(t, tt.steps, l.Steps)
			assert.Equal(t, tt.canonical, l.String())

			again, err := Parse(l.String())
			require.NoError(t, err)
			assert.Equal(t, l, again)
		})
	}
}

func Test_Parse_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		selector string
	}{
		{name: "empty", selector: ""},
		{name: "blank", selector: "   "},
		{name: "empty step", selector: "css=.modal >> "},
		{name: "leading separator", selector: ">> text=x"},
		{name: "empty engine value", selector: "text="},
		{name: "unterminated quote", selector: `text="Contenedores`},
		{name: "unterminated role quote", selector: `role=link[name="Settings]`},
		{name: "unterminated role attribute", selector: `role=link[name="Settings"`},
		{name: "unknown role attribute", selector: `role=link[level="2"]`},
		{name: "unquoted role name", selector: `role=link[name=Settings]`},
		{name: "invalid role", selector: `role=Link Button`},
		{name: "text after quote", selector: `text="a"b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.selector)
			assert.ErrorIs(t, err, errors.ErrInvalidSelector)
		})
	}
}

func Test_MustParse(t *testing.T) {
	assert.NotPanics(t, func() { MustParse("css=body") })
	assert.Panics(t, func() { MustParse("") })
}
