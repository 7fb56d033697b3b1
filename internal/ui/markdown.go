package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// The parser holds only configuration; each Parse call has its own state.
var markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))

const wrapBreakpoints = " ,.;-+|"

func parseMarkdown(source []byte) ast.Node {
	return markdownParser.Parser().Parse(text.NewReader(source))
}

// heading is one entry in a document's table of contents.
type heading struct {
	Level int
	Text  string
}

// extractHeadings returns the ATX and setext headings of a markdown document
// in source order. Headings with no text are skipped.
func extractHeadings(markdown string) []heading {
	source := []byte(markdown)
	r := &markdownRenderer{source: source}

	var out []heading
	_ = ast.Walk(parseMarkdown(source), func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if t := strings.TrimSpace(r.plain(h)); t != "" {
			out = append(out, heading{Level: h.Level, Text: t})
		}
		return ast.WalkSkipChildren, nil
	})
	return out
}

// renderMarkdown renders markdown as styled terminal lines wrapped to width.
func renderMarkdown(markdown string, styles Styles, width int) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}
	source := []byte(markdown)
	r := &markdownRenderer{source: source, styles: styles}
	return strings.Join(r.blocks(parseMarkdown(source), max(width, 10), false), "\n")
}

// markdownRenderer turns goldmark block nodes into lines. Containers
// (lists, blockquotes) render their children at a reduced width and then
// prefix the resulting lines.
type markdownRenderer struct {
	source []byte
	styles Styles
}

// blocks renders every child of parent. Children are separated by a blank
// line unless tight is set.
func (r *markdownRenderer) blocks(parent ast.Node, width int, tight bool) []string {
	var lines []string
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		block := r.block(c, width)
		if len(block) == 0 {
			continue
		}
		if len(lines) > 0 && !tight {
			lines = append(lines, "")
		}
		lines = append(lines, block...)
	}
	return lines
}

func (r *markdownRenderer) block(n ast.Node, width int) []string {
	switch n := n.(type) {
	case *ast.Heading:
		content := strings.TrimSpace(r.plain(n))
		if content == "" {
			return nil
		}
		style := r.styles.AccentText
		if n.Level > 2 {
			style = r.styles.Text.Bold(true)
		}
		return styleLines(wrap(content, width), style)

	case *ast.Paragraph, *ast.TextBlock:
		return wrap(r.inline(n), width)

	case *ast.FencedCodeBlock:
		return r.code(n.Lines(), width)

	case *ast.CodeBlock:
		return r.code(n.Lines(), width)

	case *ast.HTMLBlock:
		return r.code(n.Lines(), width)

	case *ast.Blockquote:
		inner := r.blocks(n, width-2, false)
		return prefixLines(inner, r.styles.FaintText.Render("│ "), r.styles.FaintText.Render("│ "))

	case *ast.List:
		return r.list(n, width)

	case *ast.ThematicBreak:
		return []string{r.styles.FaintText.Render(strings.Repeat("─", max(width, 1)))}

	case *extast.Table:
		return r.table(n, width)

	default:
		if n.HasChildren() {
			return r.blocks(n, width, false)
		}
		return nil
	}
}

func (r *markdownRenderer) list(n *ast.List, width int) []string {
	var lines []string
	number := n.Start
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if n.IsOrdered() {
			marker = strconv.Itoa(number) + ". "
			number++
		}
		markerWidth := ansi.StringWidth(marker)
		indent := strings.Repeat(" ", markerWidth)

		inner := r.blocks(item, width-markerWidth, n.IsTight)
		if len(inner) == 0 {
			inner = []string{""}
		}
		if len(lines) > 0 && !n.IsTight {
			lines = append(lines, "")
		}
		lines = append(lines, prefixLines(inner, r.styles.AccentText.Render(marker), indent)...)
	}
	return lines
}

func (r *markdownRenderer) table(n *extast.Table, width int) []string {
	var lines []string
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(r.plain(cell)))
		}
		line := truncate(strings.Join(cells, " │ "), width)
		if row.Kind() == extast.KindTableHeader {
			lines = append(lines, r.styles.Text.Bold(true).Render(line))
			lines = append(lines, r.styles.FaintText.Render(strings.Repeat("─", min(ansi.StringWidth(line), width))))
			continue
		}
		lines = append(lines, r.styles.Text.Render(line))
	}
	return lines
}

func (r *markdownRenderer) code(segments *text.Segments, width int) []string {
	var b strings.Builder
	for i := 0; i < segments.Len(); i++ {
		seg := segments.At(i)
		b.Write(seg.Value(r.source))
	}
	raw := strings.TrimRight(b.String(), "\n")
	if raw == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		lines = append(lines, r.styles.MutedText.Render(truncate("  "+line, width)))
	}
	return lines
}

// inline renders the inline children of n with emphasis and code styling.
func (r *markdownRenderer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.WriteString(r.styles.Text.Render(string(c.Segment.Value(r.source))))
			switch {
			case c.HardLineBreak():
				b.WriteString("\n")
			case c.SoftLineBreak():
				b.WriteString(" ")
			}
		case *ast.String:
			b.WriteString(r.styles.Text.Render(string(c.Value)))
		case *ast.CodeSpan:
			b.WriteString(r.styles.InfoText.Render(r.plain(c)))
		case *ast.Emphasis:
			style := r.styles.Text.Italic(true)
			if c.Level >= 2 {
				style = r.styles.Text.Bold(true)
			}
			b.WriteString(style.Render(r.plain(c)))
		case *ast.Link:
			b.WriteString(r.styles.AccentText.Render(r.plain(c)))
		case *ast.AutoLink:
			b.WriteString(r.styles.AccentText.Render(string(c.URL(r.source))))
		case *ast.Image:
			b.WriteString(r.styles.FaintText.Render("[" + r.plain(c) + "]"))
		case *ast.RawHTML:
			// Inline HTML is dropped.
		case *extast.TaskCheckBox:
			if c.IsChecked {
				b.WriteString("[x] ")
			} else {
				b.WriteString("[ ] ")
			}
		case *extast.Strikethrough:
			b.WriteString(r.styles.FaintText.Strikethrough(true).Render(r.plain(c)))
		default:
			b.WriteString(r.inline(c))
		}
	}
	return b.String()
}

// plain returns the unstyled text of n's inline content.
func (r *markdownRenderer) plain(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(r.source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.AutoLink:
			b.Write(c.URL(r.source))
		case *ast.RawHTML:
		default:
			b.WriteString(r.plain(c))
		}
	}
	return b.String()
}

func wrap(s string, width int) []string {
	if s == "" {
		return nil
	}
	return strings.Split(ansi.Wrap(s, max(width, 1), wrapBreakpoints), "\n")
}

func styleLines(lines []string, style lipgloss.Style) []string {
	for i, l := range lines {
		lines[i] = style.Render(l)
	}
	return lines
}

// prefixLines puts first before the first line and rest before the others.
func prefixLines(lines []string, first, rest string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		p := rest
		if i == 0 {
			p = first
		}
		out[i] = p + l
	}
	return out
}
