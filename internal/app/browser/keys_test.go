package browser

import (
	"testing"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp/kb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dozzlecheck/internal/app/errors"
)

func Test_ParseKeys(t *testing.T) {
	tests := []struct {
		name      string
		keys      string
		key       string
		modifiers []input.Modifier
	}{
		{name: "control shortcut", keys: "Control+k", key: "k", modifiers: []input.Modifier{input.ModifierCtrl}},
		{name: "meta shortcut", keys: "Meta+k", key: "k", modifiers: []input.Modifier{input.ModifierMeta}},
		{name: "several modifiers", keys: "Ctrl+Shift+p", key: "p", modifiers: []input.Modifier{input.ModifierCtrl, input.ModifierShift}},
		{name: "repeated modifier", keys: "Control+Ctrl+k", key: "k", modifiers: []input.Modifier{input.ModifierCtrl}},
		{name: "single key", keys: "a", key: "a"},
		{name: "named key", keys: "Escape", key: kb.Escape},
		{name: "named key with modifier", keys: "Shift+Tab", key: kb.Tab, modifiers: []input.Modifier{input.ModifierShift}},
		{name: "plus key", keys: "Shift++", key: "+", modifiers: []input.Modifier{input.ModifierShift}},
		{name: "bare plus", keys: "+", key: "+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo, err := ParseKeys(tt.keys)
			require.NoError(t, err)

			assert.Equal(t, tt.key, combo.Key)
			assert.Equal(t, tt.modifiers, combo.Modifiers)
			assert.NotNil(t, combo.Action())
		})
	}
}

func Test_ParseKeys_Invalid(t *testing.T) {
	for _, keys := range []string{"", "Hyper+k", "Control+", "Control+kk"} {
		t.Run(keys, func(t *testing.T) {
			_, err := ParseKeys(keys)
			assert.ErrorIs(t, err, errors.ErrInvalidKeyCombo)
		})
	}
}
