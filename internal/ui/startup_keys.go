package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyKeys feeds scripted keypresses (Vim-like tokens and literal text) to
// the model. A token such as "<Tab>Inception<CR>" mixes both; a leading
// backslash forces the whole token to be typed literally. Commands returned
// by Update are discarded.
func ApplyKeys(m *Model, keys []string) {
	if len(keys) == 0 || m == nil {
		return
	}
	for _, raw := range keys {
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, `\`) {
			typeText(m, strings.TrimPrefix(raw, `\`))
			continue
		}
		for _, segment := range parseTokenSegments(raw) {
			if !segment.isKey {
				typeText(m, segment.text)
				continue
			}
			if msgs, ok := keyMsgsFromToken(segment.text); ok {
				for _, msg := range msgs {
					m.Update(msg)
				}
				continue
			}
			typeText(m, segment.text)
		}
	}
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

type tokenSegment struct {
	text  string
	isKey bool
}

// parseTokenSegments splits a token into <...> keys and literal text.
// Example: "<Tab>Heat" -> [{"<Tab>", key}, {"Heat", text}]
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token
	for len(remaining) > 0 {
		start := strings.Index(remaining, "<")
		if start == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if start > 0 {
			segments = append(segments, tokenSegment{text: remaining[:start]})
		}
		end := strings.Index(remaining[start:], ">")
		if end == -1 {
			segments = append(segments, tokenSegment{text: remaining[start:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[start : start+end+1], isKey: true})
		remaining = remaining[start+end+1:]
	}
	return segments
}

// keyMsgsFromToken parses a Vim-like token into key messages.
// Examples: "<Esc>", "<CR>", "<Tab>", "<S-Tab>", "<Space>", "<BS>", "<C-s>".
func keyMsgsFromToken(token string) ([]tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return nil, false
	}
	inner := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">"))
	switch inner {
	case "esc", "c-[", "escape":
		return []tea.KeyPressMsg{{Code: tea.KeyEscape}}, true
	case "cr", "enter", "return":
		return []tea.KeyPressMsg{{Code: tea.KeyEnter}}, true
	case "tab":
		return []tea.KeyPressMsg{{Code: tea.KeyTab}}, true
	case "s-tab":
		return []tea.KeyPressMsg{{Code: tea.KeyTab, Mod: tea.ModShift}}, true
	case "space":
		return []tea.KeyPressMsg{{Code: ' ', Text: " "}}, true
	case "bs", "backspace":
		return []tea.KeyPressMsg{{Code: tea.KeyBackspace}}, true
	case "left":
		return []tea.KeyPressMsg{{Code: tea.KeyLeft}}, true
	case "right":
		return []tea.KeyPressMsg{{Code: tea.KeyRight}}, true
	case "up":
		return []tea.KeyPressMsg{{Code: tea.KeyUp}}, true
	case "down":
		return []tea.KeyPressMsg{{Code: tea.KeyDown}}, true
	case "home":
		return []tea.KeyPressMsg{{Code: tea.KeyHome}}, true
	case "end":
		return []tea.KeyPressMsg{{Code: tea.KeyEnd}}, true
	case "c-s":
		return []tea.KeyPressMsg{{Code: 's', Mod: tea.ModCtrl}}, true
	case "c-c":
		return []tea.KeyPressMsg{{Code: 'c', Mod: tea.ModCtrl}}, true
	}
	return nil, false
}
