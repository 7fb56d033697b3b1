package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/folio/internal/outline"
	"github.com/five82/folio/internal/uistore"
)

const (
	sidebarWidth = 26
	listWidth    = 36
	tocWidth     = 30
	toastLines   = 3
	chromeLines  = 2 // header + footer
	paneChrome   = 2 // border on each side
	panePadding  = 2 // horizontal padding inside the border
	minDocWidth  = 20
)

// layout holds the outer widths of each body column.
type layout struct {
	sidebar int
	list    int
	toc     int
	doc     int
	height  int
}

func (m Model) layout() layout {
	l := layout{list: listWidth}
	if m.store.MobileSidebarVisible() {
		l.sidebar = sidebarWidth
	}
	if m.store.TOCVisible() && m.store.ActiveDocumentID() != "" {
		l.toc = tocWidth
	}

	l.doc = m.width - l.sidebar - l.list - l.toc
	// Narrow terminals drop the TOC first, then shrink the list.
	if l.doc < minDocWidth && l.toc > 0 {
		l.doc += l.toc
		l.toc = 0
	}
	if l.doc < minDocWidth {
		shrink := min(minDocWidth-l.doc, l.list-minDocWidth)
		if shrink > 0 {
			l.list -= shrink
			l.doc += shrink
		}
	}
	if l.doc < 0 {
		l.doc = 0
	}

	l.height = m.height - chromeLines - toastLines
	if l.height < paneChrome+1 {
		l.height = paneChrome + 1
	}
	return l
}

// resize fits the document viewport into its pane.
func (m *Model) resize() {
	l := m.layout()
	m.docViewport.Width = max(l.doc-paneChrome-panePadding, 1)
	m.docViewport.Height = max(l.height-paneChrome, 1)
	m.help.Width = m.width
}

// loadDocument refreshes the viewport with the active document.
func (m *Model) loadDocument(resetScroll bool) {
	styles := GetTheme(m.store.Theme()).Styles()
	doc, ok := m.snapshot.Document(m.store.ActiveDocumentID())
	if !ok {
		m.docViewport.SetContent(styles.MutedText.Render("Select a document and press enter"))
		m.docViewport.GotoTop()
		return
	}
	m.docViewport.SetContent(renderDocument(doc, styles, m.docViewport.Width, m.store.EditMode()))
	if resetScroll {
		m.docViewport.GotoTop()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	styles := GetTheme(m.store.Theme()).Styles()

	if name, props, ok := m.store.ActiveModal(); ok {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderModal(styles, name, props))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(styles),
		m.renderBody(styles),
		m.renderToasts(styles),
		styles.Footer.Width(m.width).Render(m.help.View(m.keys)),
	)
}

func (m Model) renderHeader(styles Styles) string {
	segments := []string{styles.AccentText.Render("Folio")}

	scope := "All documents"
	if c, ok := m.snapshot.Collection(m.store.ActiveCollectionID()); ok {
		scope = c.Name
	}
	segments = append(segments, styles.Text.Render(scope))

	if m.store.ProgressBarVisible() {
		segments = append(segments, m.spinner.View()+styles.MutedText.Render(" refreshing"))
	}
	if m.store.EditMode() {
		segments = append(segments, styles.Badge.Render("EDITING"))
	}

	switch {
	case !m.snapshot.HasData && m.snapshot.LastError == nil:
		segments = append(segments, styles.FaintText.Render("loading"))
	case m.snapshot.IsOffline():
		segments = append(segments, styles.DangerText.Render("offline"))
	case m.snapshot.LastError != nil:
		segments = append(segments, styles.WarningText.Render("degraded"))
	default:
		segments = append(segments, styles.SuccessText.Render("online"))
	}

	segments = append(segments, styles.FaintText.Render(string(m.store.Theme())))

	return styles.Header.Width(m.width).Render(strings.Join(segments, styles.FaintText.Render(" │ ")))
}

func (m Model) renderBody(styles Styles) string {
	l := m.layout()
	var cols []string
	if l.sidebar > 0 {
		cols = append(cols, m.pane(styles, l.sidebar, l.height, m.renderCollections(styles, l.sidebar-paneChrome-panePadding)))
	}
	cols = append(cols, m.pane(styles, l.list, l.height, m.renderDocumentList(styles, l.list-paneChrome-panePadding, l.height-paneChrome)))
	if l.toc > 0 {
		cols = append(cols, m.pane(styles, l.toc, l.height, m.renderTOC(styles, l.toc-paneChrome-panePadding)))
	}
	if l.doc > 0 {
		cols = append(cols, m.pane(styles, l.doc, l.height, m.docViewport.View()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// pane renders content inside a bordered box of the given outer size.
func (m Model) pane(styles Styles, width, height int, content string) string {
	return styles.Pane.
		Width(max(width-paneChrome, 0)).
		Height(max(height-paneChrome, 0)).
		MaxHeight(height).
		Render(content)
}

func (m Model) renderCollections(styles Styles, width int) string {
	active := m.store.ActiveCollectionID()
	lines := []string{styles.MutedText.Render("Collections")}

	all := truncate("All documents", width)
	if active == "" {
		all = styles.Selected.Render(all)
	}
	lines = append(lines, all)

	for _, c := range m.snapshot.Collections {
		name := truncate(c.Name, width)
		if c.ID == active {
			name = styles.Selected.Render(name)
		} else if c.Color != "" {
			name = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(name)
		}
		lines = append(lines, name)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDocumentList(styles Styles, width, height int) string {
	docs := m.visibleDocuments()
	if len(docs) == 0 {
		if !m.snapshot.HasData {
			return styles.FaintText.Render("Waiting for the wiki...")
		}
		return styles.FaintText.Render("No documents")
	}

	// Keep the cursor inside the visible window.
	start := 0
	if height > 0 && m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := len(docs)
	if height > 0 && start+height < end {
		end = start + height
	}

	activeDoc := m.store.ActiveDocumentID()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderDocumentRow(styles, docs[i], width, i == m.cursor, docs[i].ID == activeDoc))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDocumentRow(styles Styles, doc outline.Document, width int, selected, open bool) string {
	marker := "  "
	if open {
		marker = "▸ "
	}
	suffix := ""
	switch {
	case doc.IsArchived():
		suffix = " (archived)"
	case !doc.IsPublished():
		suffix = " (draft)"
	}

	title := truncate(documentTitle(doc), max(width-len([]rune(marker))-len([]rune(suffix)), 1))
	row := marker + title + suffix
	if selected {
		return styles.Selected.Width(width).Render(row)
	}
	if suffix != "" {
		return marker + styles.Text.Render(title) + styles.FaintText.Render(suffix)
	}
	return styles.Text.Render(row)
}

func (m Model) renderTOC(styles Styles, width int) string {
	doc, ok := m.snapshot.Document(m.store.ActiveDocumentID())
	if !ok {
		return ""
	}
	lines := []string{styles.MutedText.Render("Contents")}
	headings := extractHeadings(doc.Text)
	if len(headings) == 0 {
		lines = append(lines, styles.FaintText.Render("No headings"))
	}
	for _, h := range headings {
		indent := strings.Repeat("  ", h.Level-1)
		lines = append(lines, indent+truncate(h.Text, max(width-len(indent), 1)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderToasts(styles Styles) string {
	toasts := m.store.OrderedToasts()
	lines := make([]string, 0, toastLines)
	for i := 0; i < toastLines; i++ {
		if i >= len(toasts) {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, renderToast(styles, toasts[i], m.keys, m.width))
	}
	return strings.Join(lines, "\n")
}

func renderToast(styles Styles, t uistore.Toast, keys keyMap, width int) string {
	label := strings.ToUpper(string(t.Type))
	if label == "" {
		label = "NOTE"
	}
	line := styles.ToastStyle(t.Type).Render(label) + " " + styles.Text.Render(truncate(t.Message, max(width-40, 10)))
	if t.Action != nil && t.Action.Text != "" {
		line += styles.FaintText.Render(fmt.Sprintf("  [%s] %s", keys.ToastAction.Help().Key, t.Action.Text))
	}
	return " " + line
}

func (m Model) renderModal(styles Styles, name string, props map[string]any) string {
	var body string
	switch name {
	case modalHelp:
		body = styles.AccentText.Render("Keyboard shortcuts") + "\n\n" + m.help.FullHelpView(m.keys.FullHelp())
	case modalDocument:
		body = m.renderDocumentInfo(styles, props)
	default:
		body = styles.Text.Render(name)
	}
	body += "\n\n" + styles.FaintText.Render("esc to close")
	return styles.Modal.Render(body)
}

func (m Model) renderDocumentInfo(styles Styles, props map[string]any) string {
	id, _ := props["id"].(string)
	doc, ok := m.snapshot.Document(id)
	if !ok {
		return styles.WarningText.Render("Document not found")
	}

	status := "Draft"
	switch {
	case doc.IsDeleted():
		status = "Deleted"
	case doc.IsArchived():
		status = "Archived"
	case doc.IsPublished():
		status = "Published"
	}

	collection := outline.CollectionName(m.snapshot.Collections, doc.CollectionID)
	if collection == "" {
		collection = "-"
	}
	updated := "-"
	if !doc.UpdatedAt.IsZero() {
		updated = doc.UpdatedAt.Local().Format("2006-01-02 15:04")
	}

	rows := [][2]string{
		{"Title", documentTitle(doc)},
		{"Collection", collection},
		{"Status", status},
		{"Updated", updated},
		{"Headings", fmt.Sprintf("%d", len(extractHeadings(doc.Text)))},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, styles.MutedText.Render(fmt.Sprintf("%-11s", r[0]))+styles.Text.Render(r[1]))
	}
	return strings.Join(lines, "\n")
}
