package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/five82/folio/internal/outline"
)

func documentTitle(doc outline.Document) string {
	if t := strings.TrimSpace(doc.Title); t != "" {
		return t
	}
	return "Untitled"
}

// renderDocument formats a document for the viewport, wrapped to width.
func renderDocument(doc outline.Document, styles Styles, width int, editing bool) string {
	if width < 1 {
		width = 1
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Render(truncate(documentTitle(doc), width)))
	b.WriteString("\n")
	if editing {
		b.WriteString(styles.FaintText.Render("Edit mode (esc to finish)"))
		b.WriteString("\n")
	}

	if body := renderMarkdown(doc.Text, styles, width); body != "" {
		b.WriteString("\n")
		b.WriteString(body)
	}
	return strings.TrimRight(b.String(), "\n")
}

// truncate shortens s to max cells with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if max <= 3 {
		return ansi.Truncate(s, max, "")
	}
	return ansi.Truncate(s, max, "...")
}
