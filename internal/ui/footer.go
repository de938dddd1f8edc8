package ui

import (
	"strings"
)

// footerBindings lists the key hints shown under the form, in display order.
var footerBindings = []struct{ key, label string }{
	{"tab", "next"},
	{"S-tab", "prev"},
	{"enter", "next/add"},
	{"C-s", "add"},
	{"esc", "quit"},
}

func renderFooter(st styles) string {
	parts := make([]string, 0, len(footerBindings)*2)
	for _, b := range footerBindings {
		parts = append(parts, st.footerKey.Render(b.key), st.muted.Render(b.label))
	}
	return strings.Join(parts, " ")
}
