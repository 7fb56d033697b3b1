package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/folio/internal/outline"
	"github.com/five82/folio/internal/uistore"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// An open modal swallows everything except its close keys.
	if _, _, open := m.store.ActiveModal(); open {
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Escape, m.keys.Open, m.keys.Help, m.keys.Quit):
			m.store.ClearActiveModal()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.store.SetActiveModal(modalHelp, nil)

	case key.Matches(msg, m.keys.ToggleDark):
		m.store.ToggleDarkMode()
		return m, m.notify(fmt.Sprintf("Switched to %s theme", m.store.Theme()), uistore.ToastOptions{
			Type:    uistore.ToastInfo,
			Timeout: toastTimeout,
		})

	case key.Matches(msg, m.keys.Refresh):
		return m, m.startRefresh()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Open):
		if doc, ok := m.selectedDocument(); ok {
			return m, m.openDocument(doc)
		}

	case key.Matches(msg, m.keys.Info):
		if doc, ok := m.selectedDocument(); ok {
			m.store.SetActiveModal(modalDocument, map[string]any{"id": doc.ID})
		}

	case key.Matches(msg, m.keys.NextCollection):
		m.cycleCollection(1)

	case key.Matches(msg, m.keys.PrevCollection):
		m.cycleCollection(-1)

	case key.Matches(msg, m.keys.ToggleTOC):
		if m.store.TOCVisible() {
			m.store.HideTableOfContents()
		} else {
			m.store.ShowTableOfContents()
		}

	case key.Matches(msg, m.keys.ToggleEdit):
		return m, m.toggleEditMode()

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.store.ToggleMobileSidebar()

	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.docViewport, cmd = m.docViewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.DismissToast):
		if toasts := m.store.OrderedToasts(); len(toasts) > 0 {
			m.store.RemoveToast(toasts[0].ID)
		}

	case key.Matches(msg, m.keys.ToastAction):
		m.runToastAction()

	case key.Matches(msg, m.keys.Escape):
		return m, m.escape()
	}

	return m, nil
}

func (m *Model) openDocument(doc outline.Document) tea.Cmd {
	m.store.SetActiveDocument(doc)
	m.store.HideMobileSidebar()

	switch {
	case doc.IsDeleted():
		return m.notify("This document is in the trash", uistore.ToastOptions{Type: uistore.ToastWarning, Timeout: toastTimeout})
	case doc.IsArchived():
		return m.notify("This document is archived", uistore.ToastOptions{Type: uistore.ToastWarning, Timeout: toastTimeout})
	}
	return nil
}

func (m *Model) toggleEditMode() tea.Cmd {
	if m.store.EditMode() {
		m.store.DisableEditMode()
		return nil
	}
	if m.store.ActiveDocumentID() == "" {
		return m.notify("Open a document to edit it", uistore.ToastOptions{Type: uistore.ToastWarning, Timeout: toastTimeout})
	}
	m.store.EnableEditMode()
	return nil
}

// escape backs out one level: edit mode, then the open document, then the sidebar.
func (m *Model) escape() tea.Cmd {
	switch {
	case m.store.EditMode():
		m.store.DisableEditMode()
		return nil
	case m.store.ActiveDocumentID() != "":
		return m.closeDocument()
	case m.store.MobileSidebarVisible():
		m.store.HideMobileSidebar()
	}
	return nil
}

func (m *Model) closeDocument() tea.Cmd {
	doc, ok := m.snapshot.Document(m.store.ActiveDocumentID())
	m.store.ClearActiveDocument()
	if !ok {
		return nil
	}

	store := m.store
	return m.notify("Closed "+documentTitle(doc), uistore.ToastOptions{
		Type:    uistore.ToastInfo,
		Timeout: toastTimeout,
		Action: &uistore.ToastAction{
			Text:    "Reopen",
			OnClick: func() { store.SetActiveDocument(doc) },
		},
	})
}

func (m *Model) runToastAction() {
	for _, t := range m.store.OrderedToasts() {
		if t.Action == nil {
			continue
		}
		if t.Action.OnClick != nil {
			t.Action.OnClick()
		}
		m.store.RemoveToast(t.ID)
		return
	}
}

// cycleCollection steps the active collection through "all" and every collection.
func (m *Model) cycleCollection(delta int) {
	cols := m.snapshot.Collections
	if len(cols) == 0 {
		return
	}

	// Position 0 is "all documents"; collections follow.
	pos := 0
	active := m.store.ActiveCollectionID()
	for i, c := range cols {
		if c.ID == active {
			pos = i + 1
			break
		}
	}

	n := len(cols) + 1
	pos = ((pos+delta)%n + n) % n
	if pos == 0 {
		m.store.ClearActiveCollection()
	} else {
		m.store.SetActiveCollection(cols[pos-1])
	}
	m.cursor = 0
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.visibleDocuments())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// visibleDocuments lists documents in the active collection, or all of them.
// Trashed documents are hidden.
func (m Model) visibleDocuments() []outline.Document {
	active := m.store.ActiveCollectionID()
	var out []outline.Document
	for _, d := range m.snapshot.Documents {
		if d.IsDeleted() {
			continue
		}
		if active != "" && d.CollectionID != active {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (m Model) selectedDocument() (outline.Document, bool) {
	docs := m.visibleDocuments()
	if m.cursor < 0 || m.cursor >= len(docs) {
		return outline.Document{}, false
	}
	return docs[m.cursor], true
}
