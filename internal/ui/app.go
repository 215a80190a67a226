package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sss654654/rentdeck/internal/derive"
	"github.com/sss654654/rentdeck/internal/gateway"
	"github.com/sss654654/rentdeck/internal/prefs"
	"github.com/sss654654/rentdeck/internal/service"
)

// View represents the current active view.
type View int

const (
	ViewDashboard View = iota
	ViewRentals
	ViewItems
)

// PushStatus reports whether the push channel currently has a live
// connection. Satisfied by push.Listener.
type PushStatus interface {
	Connected() bool
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Service      *service.Service
	Listener     PushStatus
	PollTick     time.Duration
	ThemeName    string
	StatusFilter string
	PrefsPath    string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	svc       *service.Service
	listener  PushStatus
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	rentals     []gateway.Rental
	items       []gateway.Item
	lastUpdated time.Time
	fetchErr    error

	// Rentals view state
	statusFilter string
	searchInput  textinput.Model
	searching    bool
	page         int
	selectedRow  int

	// Items view state
	itemRow int

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	statusFilter := opts.StatusFilter
	switch statusFilter {
	case string(gateway.StatusOngoing), string(gateway.StatusCompleted), string(gateway.StatusOverdue):
	default:
		statusFilter = derive.StatusAll
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Placeholder = "item or renter"
	search.CharLimit = 64
	search.Width = 24

	return Model{
		ctx:          ctx,
		svc:          opts.Service,
		listener:     opts.Listener,
		prefsPath:    prefsPath,
		pollTick:     pollTick,
		theme:        GetTheme(themeName),
		currentView:  ViewDashboard,
		statusFilter: statusFilter,
		searchInput:  search,
		page:         1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	// Fetch snapshot immediately on start
	if m.svc != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.ctx, m.svc))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case storeChangedMsg:
		// The rental collection mutated underneath us; re-read it.
		if m.svc != nil {
			return m, fetchSnapshotCmd(m.ctx, m.svc)
		}
		return m, nil

	case snapshotMsg:
		m.rentals = msg.rentals
		if msg.items != nil {
			m.items = msg.items
		}
		m.lastUpdated = msg.lastUpdated
		m.fetchErr = msg.err
		m.clampSelection()
		return m, nil

	case mutationMsg:
		// The service already posted a notice either way; just refresh.
		if m.svc != nil {
			return m, fetchSnapshotCmd(m.ctx, m.svc)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Search input captures everything except enter/esc
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			m.searchInput.Blur()
			if msg.String() == "esc" {
				m.searchInput.SetValue("")
			}
			m.page = 1
			m.selectedRow = 0
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.page = 1
			m.selectedRow = 0
			return m, cmd
		}
	}

	// Global keys
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		// Cycle theme
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case "tab":
		m.currentView = (m.currentView + 1) % 3
		return m, nil

	case "shift+tab":
		m.currentView = (m.currentView + 2) % 3
		return m, nil

	case "1":
		m.currentView = ViewDashboard
		return m, nil

	case "2":
		m.currentView = ViewRentals
		return m, nil

	case "3":
		m.currentView = ViewItems
		return m, nil

	case "esc":
		m.currentView = ViewDashboard
		return m, nil
	}

	// View-specific keys
	switch m.currentView {
	case ViewRentals:
		return m.handleRentalsKey(msg)
	case ViewItems:
		return m.handleItemsKey(msg)
	}

	return m, nil
}

// handleRentalsKey processes keyboard input for the rentals view.
func (m Model) handleRentalsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "f":
		m.cycleFilter()
		m.page = 1
		m.selectedRow = 0
		m.savePrefs()
		return m, nil

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "left":
		if m.page > 1 {
			m.page--
			m.selectedRow = 0
		}
		return m, nil

	case "right":
		if m.page < derive.TotalPages(len(m.visibleRentals())) {
			m.page++
			m.selectedRow = 0
		}
		return m, nil

	case "j", "down":
		if m.selectedRow < len(m.pageRentals())-1 {
			m.selectedRow++
		}
		return m, nil

	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case "g", "home":
		m.selectedRow = 0
		return m, nil

	case "G", "end":
		if n := len(m.pageRentals()); n > 0 {
			m.selectedRow = n - 1
		}
		return m, nil

	case "r":
		// Mark the selected rental returned; completed ones have nothing to return
		if rental := m.selectedRental(); rental != nil && rental.Status != gateway.StatusCompleted {
			return m, returnRentalCmd(m.ctx, m.svc, rental.ID)
		}
		return m, nil

	case "d":
		if rental := m.selectedRental(); rental != nil {
			return m, deleteRentalCmd(m.ctx, m.svc, rental.ID)
		}
		return m, nil
	}

	return m, nil
}

// handleItemsKey processes keyboard input for the items view.
func (m Model) handleItemsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.itemRow < len(m.items)-1 {
			m.itemRow++
		}
	case "k", "up":
		if m.itemRow > 0 {
			m.itemRow--
		}
	case "g", "home":
		m.itemRow = 0
	case "G", "end":
		if len(m.items) > 0 {
			m.itemRow = len(m.items) - 1
		}
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.svc != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.ctx, m.svc))
	}

	cmds = append(cmds, tickCmd(m.pollTick))

	return m, tea.Batch(cmds...)
}

// cycleFilter cycles through rental status filters.
func (m *Model) cycleFilter() {
	switch m.statusFilter {
	case derive.StatusAll:
		m.statusFilter = string(gateway.StatusOngoing)
	case string(gateway.StatusOngoing):
		m.statusFilter = string(gateway.StatusCompleted)
	case string(gateway.StatusCompleted):
		m.statusFilter = string(gateway.StatusOverdue)
	default:
		m.statusFilter = derive.StatusAll
	}
}

// filterLabel returns the display label for the current filter.
func (m *Model) filterLabel() string {
	switch m.statusFilter {
	case string(gateway.StatusOngoing):
		return "Ongoing"
	case string(gateway.StatusCompleted):
		return "Completed"
	case string(gateway.StatusOverdue):
		return "Overdue"
	default:
		return "All"
	}
}

// visibleRentals applies the status filter and search query.
func (m Model) visibleRentals() []gateway.Rental {
	return derive.FilterRentals(m.rentals, m.statusFilter, m.searchInput.Value())
}

// pageRentals returns the current page of visible rentals.
func (m Model) pageRentals() []gateway.Rental {
	visible := m.visibleRentals()
	page := derive.ClampPage(m.page, derive.TotalPages(len(visible)))
	return derive.PageSlice(visible, page)
}

// selectedRental returns the rental under the cursor, or nil.
func (m Model) selectedRental() *gateway.Rental {
	page := m.pageRentals()
	if m.selectedRow < 0 || m.selectedRow >= len(page) {
		return nil
	}
	return &page[m.selectedRow]
}

// clampSelection keeps page and row inside the visible collection after a
// data refresh.
func (m *Model) clampSelection() {
	visible := m.visibleRentals()
	m.page = derive.ClampPage(m.page, derive.TotalPages(len(visible)))
	if n := len(derive.PageSlice(visible, m.page)); m.selectedRow >= n {
		m.selectedRow = max(0, n-1)
	}
	if len(m.items) == 0 {
		m.itemRow = 0
	} else if m.itemRow >= len(m.items) {
		m.itemRow = len(m.items) - 1
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, StatusFilter: m.statusFilter})
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	// Main content
	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.renderDashboard()
	case ViewRentals:
		return m.renderRentals()
	case ViewItems:
		return m.renderItems()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

// storeChangedMsg is injected from the store's observer callback.
type storeChangedMsg struct{}

type snapshotMsg struct {
	rentals     []gateway.Rental
	items       []gateway.Item
	lastUpdated time.Time
	err         error
}

type mutationMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchSnapshotCmd reads the rental collection from the store and the item
// list through the query cache. Within the staleness window the item fetch
// costs nothing.
func fetchSnapshotCmd(ctx context.Context, svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		msg := snapshotMsg{
			rentals:     svc.Store().Rentals(),
			lastUpdated: svc.Store().LastUpdate(),
		}
		items, err := svc.Items(ctx)
		if err != nil {
			msg.err = err
		} else {
			msg.items = items
		}
		return msg
	}
}

func returnRentalCmd(ctx context.Context, svc *service.Service, id int) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.ReturnRental(ctx, id)
		return mutationMsg{err: err}
	}
}

func deleteRentalCmd(ctx context.Context, svc *service.Service, id int) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{err: svc.DeleteRental(ctx, id)}
	}
}

// Run starts the Bubble Tea program. It subscribes to the rental store so
// push-driven mutations repaint without waiting for the next tick.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if opts.Service != nil {
		unsubscribe := opts.Service.Store().Subscribe(func() {
			p.Send(storeChangedMsg{})
		})
		defer unsubscribe()
	}

	_, err := p.Run()
	return err
}
