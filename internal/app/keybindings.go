package app

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// ---------------------------------------------------------------------------
// Action constants
// ---------------------------------------------------------------------------
//
// Actions sit between physical key presses and behavior: a key is looked up
// in keyToAction and the resulting action is dispatched in handleKey.
// ---------------------------------------------------------------------------

const (
	// actionQuit exits the application.
	actionQuit = "app.quit"

	// actionResetSplit restores the default divider position, the keyboard
	// equivalent of double-clicking the divider.
	actionResetSplit = "split.reset"

	// actionFocusToggle moves keyboard focus to the other pane.
	actionFocusToggle = "pane.focus.toggle"

	actionScrollUp       = "pane.scroll.up"
	actionScrollDown     = "pane.scroll.down"
	actionScrollPageUp   = "pane.scroll.page_up"
	actionScrollPageDown = "pane.scroll.page_down"

	// actionHelp toggles the full key reference in the footer.
	actionHelp = "help.toggle"
)

// defaultActionKeys maps each action to its key bindings, in Bubble Tea key
// notation.
var defaultActionKeys = map[string][]string{
	actionQuit:           {"q", "ctrl+c"},
	actionResetSplit:     {"="},
	actionFocusToggle:    {"tab"},
	actionScrollUp:       {"up", "k"},
	actionScrollDown:     {"down", "j"},
	actionScrollPageUp:   {"pgup"},
	actionScrollPageDown: {"pgdown"},
	actionHelp:           {"?"},
}

// actionHelpText is the description shown next to each action's keys.
var actionHelpText = map[string]string{
	actionQuit:           "quit",
	actionResetSplit:     "reset split",
	actionFocusToggle:    "switch pane",
	actionScrollUp:       "scroll up",
	actionScrollDown:     "scroll down",
	actionScrollPageUp:   "page up",
	actionScrollPageDown: "page down",
	actionHelp:           "help",
}

// keyMap adapts the action table to bubbles/help.
type keyMap map[string]key.Binding

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k[actionResetSplit], k[actionFocusToggle], k[actionHelp], k[actionQuit]}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k[actionScrollUp], k[actionScrollDown], k[actionScrollPageUp], k[actionScrollPageDown]},
		{k[actionResetSplit], k[actionFocusToggle]},
		{k[actionHelp], k[actionQuit]},
	}
}

// loadKeybindings builds the key↔action maps and the help key map from
// defaultActionKeys. If two actions claim the same key, the first one seen
// keeps it and the conflict is logged.
func (m *Model) loadKeybindings() {
	m.keyForAction = map[string][]string{}
	m.keyToAction = map[string]string{}
	m.keys = keyMap{}

	actions := make([]string, 0, len(defaultActionKeys))
	for action := range defaultActionKeys {
		actions = append(actions, action)
	}
	slices.Sort(actions)

	for _, action := range actions {
		keys := append([]string(nil), defaultActionKeys[action]...)
		m.keyForAction[action] = keys
		for _, k := range keys {
			k = normalizeKeyString(k)
			if existing, ok := m.keyToAction[k]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", k, "action", action, "existing_action", existing)
				continue
			}
			m.keyToAction[k] = action
		}
		m.keys[action] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(m.actionKeyLabels(action), "/"), actionHelpText[action]),
		)
	}
}

// normalizeKeyString converts a key string into the lowercase form used by
// the keybinding maps. A single uppercase letter becomes "shift+<letter>".
func normalizeKeyString(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len([]rune(key)) == 1 && strings.ToUpper(key) == key && strings.ToLower(key) != key {
		return "shift+" + strings.ToLower(key)
	}
	return strings.ToLower(key)
}

// actionForKey returns the action bound to key, or "".
func (m *Model) actionForKey(key string) string {
	if m.keyToAction == nil {
		return ""
	}
	return m.keyToAction[normalizeKeyString(key)]
}

func (m *Model) actionKeyLabels(action string) []string {
	keys, ok := m.keyForAction[action]
	if !ok || len(keys) == 0 {
		return nil
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := humanizeKeyLabel(key)
		if label == "" || slices.Contains(labels, label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

func humanizeKeyLabel(key string) string {
	normalized := normalizeKeyString(key)
	if normalized == "" {
		return ""
	}
	special := map[string]string{
		"up":     "↑",
		"down":   "↓",
		"left":   "←",
		"right":  "→",
		"enter":  "Enter",
		"esc":    "Esc",
		"tab":    "Tab",
		"pgup":   "PgUp",
		"pgdown": "PgDn",
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		default:
			if label, ok := special[part]; ok {
				parts[i] = label
				continue
			}
			runes := []rune(part)
			if len(runes) == 1 && runes[0] >= 'a' && runes[0] <= 'z' {
				parts[i] = strings.ToUpper(part)
			} else if part != "" {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
	}
	return strings.Join(parts, "+")
}
