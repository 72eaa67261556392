package browser

import (
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"dozzlecheck/internal/app/errors"
)

// Combo is a parsed key combination such as 'Control+k'
type Combo struct {
	Key       string
	Modifiers []input.Modifier
}

var modifiers = map[string]input.Modifier{
	"control": input.ModifierCtrl,
	"ctrl":    input.ModifierCtrl,
	"shift":   input.ModifierShift,
	"alt":     input.ModifierAlt,
	"option":  input.ModifierAlt,
	"meta":    input.ModifierMeta,
	"command": input.ModifierMeta,
	"cmd":     input.ModifierMeta,
}

var namedKeys = map[string]string{
	"enter":      kb.Enter,
	"escape":     kb.Escape,
	"esc":        kb.Escape,
	"tab":        kb.Tab,
	"backspace":  kb.Backspace,
	"delete":     kb.Delete,
	"arrowup":    kb.ArrowUp,
	"arrowdown":  kb.ArrowDown,
	"arrowleft":  kb.ArrowLeft,
	"arrowright": kb.ArrowRight,
	"home":       kb.Home,
	"end":        kb.End,
	"pageup":     kb.PageUp,
	"pagedown":   kb.PageDown,
	"space":      " ",
}

// ParseKeys parses a '+' separated combination, modifiers first and the key last
func ParseKeys(keys string) (Combo, error) {
	keys = strings.TrimSpace(keys)
	if keys == "" {
		return Combo{}, fmt.Errorf("%w: empty", errors.ErrInvalidKeyCombo)
	}

	var parts []string
	if strings.HasSuffix(keys, "++") {
		parts = append(strings.Split(strings.TrimSuffix(keys, "++"), "+"), "+")
	} else if keys == "+" {
		parts = []string{"+"}
	} else {
		parts = strings.Split(keys, "+")
	}

	combo := Combo{}
	seen := make(map[input.Modifier]bool)

	for _, part := range parts[:len(parts)-1] {
		mod, ok := modifiers[strings.ToLower(strings.TrimSpace(part))]
		if !ok {
			return Combo{}, fmt.Errorf("%w: unknown modifier '%s' in '%s'", errors.ErrInvalidKeyCombo, part, keys)
		}

		if !seen[mod] {
			seen[mod] = true
			combo.Modifiers = append(combo.Modifiers, mod)
		}
	}

	key := parts[len(parts)-1]
	if key != " " {
		key = strings.TrimSpace(key)
	}

	if named, ok := namedKeys[strings.ToLower(key)]; ok {
		combo.Key = named
		return combo, nil
	}

	if len([]rune(key)) != 1 {
		return Combo{}, fmt.Errorf("%w: unknown key '%s' in '%s'", errors.ErrInvalidKeyCombo, key, keys)
	}

	combo.Key = key

	return combo, nil
}

// Action returns the chromedp key action dispatching the combination
func (c Combo) Action() chromedp.KeyAction {
	if len(c.Modifiers) == 0 {
		return chromedp.KeyEvent(c.Key)
	}

	return chromedp.KeyEvent(c.Key, chromedp.KeyModifiers(c.Modifiers...))
}
