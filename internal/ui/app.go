package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/folio/internal/catalog"
	"github.com/five82/folio/internal/uistore"
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Store    *uistore.Store
	Catalog  *catalog.Store
	Refresh  func(ctx context.Context) error
	PollTick time.Duration
	Logger   *slog.Logger
}

const (
	defaultPollTick   = time.Second
	toastTimeout      = 4 * time.Second
	errorToastTimeout = 8 * time.Second
)

// Modal names understood by the view.
const (
	modalHelp     = "help"
	modalDocument = "document"
)

// Fields whose change invalidates the rendered document pane.
const documentFields = uistore.FieldActiveDocument | uistore.FieldEditMode |
	uistore.FieldTOC | uistore.FieldMobileSidebar | uistore.FieldTheme

type (
	tickMsg         time.Time
	snapshotMsg     catalog.Snapshot
	refreshDoneMsg  struct{ err error }
	toastExpiredMsg struct{ id string }
)

// changeSet accumulates store notifications between updates.
type changeSet struct {
	mu      sync.Mutex
	pending uistore.Field
}

func (c *changeSet) add(f uistore.Field) {
	c.mu.Lock()
	c.pending |= f
	c.mu.Unlock()
}

func (c *changeSet) take() uistore.Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.pending
	c.pending = 0
	return f
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	store    *uistore.Store
	catalog  *catalog.Store
	refresh  func(ctx context.Context) error
	logger   *slog.Logger
	pollTick time.Duration
	keys     keyMap

	// Layout
	width  int
	height int
	ready  bool

	// Data state
	snapshot catalog.Snapshot
	failing  bool
	cursor   int

	docViewport viewport.Model
	spinner     spinner.Model
	help        help.Model

	changes     *changeSet
	unsubscribe func()
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = defaultPollTick
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cat := opts.Catalog
	if cat == nil {
		cat = &catalog.Store{}
	}

	store := opts.Store
	if store == nil {
		store = uistore.New(uistore.Options{Logger: logger})
	}

	changes := &changeSet{}
	unsubscribe := store.Subscribe(documentFields, changes.add)

	return Model{
		ctx:         ctx,
		store:       store,
		catalog:     cat,
		refresh:     opts.Refresh,
		logger:      logger,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		snapshot:    cat.Snapshot(),
		docViewport: viewport.New(0, 0),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:        help.New(),
		changes:     changes,
		unsubscribe: unsubscribe,
	}
}

// Run starts the program and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a ui store")
	}
	if opts.Context == nil {
		opts.Context = ctx
	}

	m := New(opts)
	defer m.unsubscribe()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.pollTick),
		fetchSnapshotCmd(m.catalog),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		m.loadDocument(false)

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.catalog), tickCmd(m.pollTick))

	case snapshotMsg:
		cmd = m.applySnapshot(catalog.Snapshot(msg))

	case refreshDoneMsg:
		m.store.DisableProgressBar()
		if msg.err != nil {
			m.logger.Warn("manual refresh failed", "error", msg.err)
			cmd = m.notify("Refresh failed: "+msg.err.Error(), uistore.ToastOptions{
				Type:    uistore.ToastError,
				Timeout: errorToastTimeout,
			})
		} else {
			m.snapshot = m.catalog.Snapshot()
			m.clampCursor()
			cmd = m.notify("Catalog refreshed", uistore.ToastOptions{
				Type:    uistore.ToastSuccess,
				Timeout: toastTimeout,
			})
		}

	case toastExpiredMsg:
		m.store.RemoveToast(msg.id)

	case spinner.TickMsg:
		if m.store.ProgressBarVisible() {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	}

	m.syncChanges()
	return m, cmd
}

// syncChanges rebuilds the document pane when the store reported a relevant change.
func (m *Model) syncChanges() {
	changed := m.changes.take()
	if !changed.Has(documentFields) {
		return
	}
	m.resize()
	m.loadDocument(changed.Has(uistore.FieldActiveDocument))
}

func (m *Model) applySnapshot(snap catalog.Snapshot) tea.Cmd {
	m.snapshot = snap
	m.clampCursor()
	m.loadDocument(false)

	switch {
	case snap.LastError != nil && !m.failing:
		m.failing = true
		return m.notify("Wiki unreachable: "+snap.LastError.Error(), uistore.ToastOptions{
			Type:    uistore.ToastWarning,
			Timeout: errorToastTimeout,
		})
	case snap.LastError == nil && snap.HasData && m.failing:
		m.failing = false
		return m.notify("Reconnected", uistore.ToastOptions{
			Type:    uistore.ToastSuccess,
			Timeout: toastTimeout,
		})
	}
	return nil
}

// notify shows a toast and, when it has a timeout, schedules its removal.
func (m Model) notify(message string, opts uistore.ToastOptions) tea.Cmd {
	id := m.store.ShowToast(message, opts)
	if id == "" || opts.Timeout <= 0 {
		return nil
	}
	return expireToastCmd(id, opts.Timeout)
}

func (m *Model) startRefresh() tea.Cmd {
	if m.refresh == nil || m.store.ProgressBarVisible() {
		return nil
	}
	m.store.EnableProgressBar()
	return tea.Batch(m.spinner.Tick, refreshCmd(m.ctx, m.refresh))
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func refreshCmd(ctx context.Context, refresh func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: refresh(ctx)}
	}
}

func expireToastCmd(id string, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
