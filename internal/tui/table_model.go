package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/tablequery/internal/controller"
	"github.com/rshade/tablequery/internal/options"
	"github.com/rshade/tablequery/internal/query"
	"github.com/rshade/tablequery/internal/source"
)

const (
	defaultWidth       = 100
	defaultHeight      = 24
	defaultColumnWidth = 16
	minTableHeight     = 3

	// chromeHeight is the number of lines around the table: title, filter
	// bar, status, notice and help.
	chromeHeight = 8

	searchCharLimit  = 100
	searchInputWidth = 40
)

// Column describes one table column.
type Column struct {
	Key      string
	Title    string
	Width    int
	Sortable bool
}

// Filter is an enumerated filter cycled from the keyboard.
type Filter struct {
	Name    string
	Label   string
	Options []options.Option
}

// Config configures a TableModel.
type Config struct {
	Title   string
	Columns []Column

	// Filters are bound to the keys 1-9 in order.
	Filters []Filter

	// InitFilters are restored by the reset key.
	InitFilters query.Filters

	// PageSizes are cycled by the page-size key. Empty disables it.
	PageSizes []int
}

// resolvedMsg carries the outcome of a request run as a command.
type resolvedMsg struct {
	res    controller.Resolution
	issued bool
}

// TableModel is the Bubble Tea model for browsing a controller-backed table.
// Every user action moves the query synchronously through the controller and
// runs the resulting fetch as a command, so the screen never shows a query
// the controller does not hold.
type TableModel struct {
	ctx    context.Context //nolint:containedctx // Commands outlive Update calls.
	ctrl   *controller.Controller[source.Record]
	notice *Notice
	cfg    Config

	table   table.Model
	search  textinput.Model
	loading *LoadingState
	printer *message.Printer

	searching bool
	quitting  bool
	width     int
	height    int
}

// NewTableModel creates a model driving ctrl. notice may be nil; when set it
// should be the controller's reporter so failures reach the status line.
func NewTableModel(
	ctx context.Context,
	ctrl *controller.Controller[source.Record],
	notice *Notice,
	cfg Config,
) *TableModel {
	if cfg.Title == "" {
		cfg.Title = "Records"
	}
	m := &TableModel{
		ctx:     ctx,
		ctrl:    ctrl,
		notice:  notice,
		cfg:     cfg,
		search:  newSearchInput(),
		loading: NewLoadingState(),
		printer: message.NewPrinter(language.English),
		width:   defaultWidth,
		height:  defaultHeight,
	}

	m.table = table.New(
		table.WithColumns(m.columns(query.Sort{})),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	m.table.SetStyles(s)

	m.sync()
	return m
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = "/ "
	ti.CharLimit = searchCharLimit
	ti.Width = searchInputWidth
	return ti
}

// Init starts the spinner and mounts the controller.
func (m *TableModel) Init() tea.Cmd {
	mount := func() tea.Msg {
		res, issued := m.ctrl.Mount(m.ctx)
		return resolvedMsg{res: res, issued: issued}
	}
	return tea.Batch(m.loading.Init(), mount)
}

// Update handles messages and updates the model state.
func (m *TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(m.tableHeight())
		return m, nil
	case resolvedMsg:
		m.sync()
		return m, nil
	case spinner.TickMsg:
		return m, m.loading.Update(msg)
	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchInput(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *TableModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case keyQuit, keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case keySlash:
		m.searching = true
		return m, tea.Batch(m.search.Focus(), textinput.Blink)
	case keyNext, keyRight:
		return m, m.turnPage(1)
	case keyPrev, keyLeft:
		return m, m.turnPage(-1)
	case keySort:
		return m, m.cycleSort()
	case keyOrder:
		return m, m.toggleOrder()
	case keyClearSort:
		m.ctrl.ClearSort()
		m.sync()
		return m, m.refresh()
	case keyReset:
		m.search.SetValue("")
		return m, m.stage(query.Reset{Filters: m.cfg.InitFilters.Clone()})
	case keyRefresh:
		return m, m.refresh()
	case keyPageSize:
		return m, m.cyclePageSize()
	}

	if len(key) == 1 && key[0] >= keyFilterBase && key[0] <= '9' {
		return m, m.cycleFilter(int(key[0] - keyFilterBase))
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *TableModel) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		m.searching = false
		m.search.Blur()
		filters := m.ctrl.Filters()
		if v := strings.TrimSpace(m.search.Value()); v != "" {
			filters[source.SearchKey] = v
		} else {
			delete(filters, source.SearchKey)
		}
		return m, m.stage(query.Search{Filters: filters})
	case keyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue(cellText(m.ctrl.Filters()[source.SearchKey]))
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// stage moves the query now and returns the fetch as a command.
func (m *TableModel) stage(ev query.Event) tea.Cmd {
	if m.notice != nil {
		m.notice.Clear()
	}
	call := m.ctrl.Stage(m.ctx, ev)
	m.sync()
	if call == nil {
		return nil
	}
	return func() tea.Msg {
		return resolvedMsg{res: call(), issued: true}
	}
}

func (m *TableModel) refresh() tea.Cmd {
	if m.notice != nil {
		m.notice.Clear()
	}
	return func() tea.Msg {
		return resolvedMsg{res: m.ctrl.Refresh(m.ctx, nil), issued: true}
	}
}

func (m *TableModel) turnPage(delta int) tea.Cmd {
	st := m.ctrl.State()
	p := st.Query.Pagination
	next := p.Page + delta
	if next < query.MinPage || next > p.TotalPages(st.Result.Total) {
		return nil
	}
	return m.stage(query.TableChange{
		Pagination: query.Pagination{Page: next, PageSize: p.PageSize},
		Sort:       st.Query.Sort,
	})
}

// cycleSort moves the sort to the next sortable column, ascending, and past
// the last one back to unsorted.
func (m *TableModel) cycleSort() tea.Cmd {
	sortable := m.sortableColumns()
	if len(sortable) == 0 {
		return nil
	}
	st := m.ctrl.State()

	next := 0
	for i, col := range sortable {
		if col.Key == st.Query.Sort.Field {
			next = i + 1
			break
		}
	}
	var s query.Sort
	if next < len(sortable) {
		s = query.Sort{Field: sortable[next].Key, Direction: query.Ascending}
	}
	return m.stage(query.TableChange{
		Pagination: st.Query.Pagination,
		Sort:       s,
		Action:     query.ActionSort,
	})
}

func (m *TableModel) toggleOrder() tea.Cmd {
	st := m.ctrl.State()
	s := st.Query.Sort
	if s.IsZero() {
		return nil
	}
	s.Direction = s.Direction.Toggle()
	return m.stage(query.TableChange{
		Pagination: st.Query.Pagination,
		Sort:       s,
		Action:     query.ActionSort,
	})
}

// cyclePageSize keeps the page number, so the change classifies as a sort
// and returns to page 1.
func (m *TableModel) cyclePageSize() tea.Cmd {
	if len(m.cfg.PageSizes) == 0 {
		return nil
	}
	st := m.ctrl.State()
	p := st.Query.Pagination

	next := m.cfg.PageSizes[0]
	for i, size := range m.cfg.PageSizes {
		if size == p.PageSize {
			next = m.cfg.PageSizes[(i+1)%len(m.cfg.PageSizes)]
			break
		}
	}
	return m.stage(query.TableChange{
		Pagination: query.Pagination{Page: p.Page, PageSize: next},
		Sort:       st.Query.Sort,
	})
}

// cycleFilter advances filter i to its next option, and past the last one
// back to unset.
func (m *TableModel) cycleFilter(i int) tea.Cmd {
	if i < 0 || i >= len(m.cfg.Filters) {
		return nil
	}
	f := m.cfg.Filters[i]
	if len(f.Options) == 0 {
		return nil
	}

	filters := m.ctrl.Filters()
	next := 0
	if cur, ok := filters[f.Name]; ok {
		next = len(f.Options)
		for j, opt := range f.Options {
			if fmt.Sprint(opt.Value) == fmt.Sprint(cur) {
				next = j + 1
				break
			}
		}
	}
	if next < len(f.Options) {
		filters[f.Name] = f.Options[next].Value
	} else {
		delete(filters, f.Name)
	}
	return m.stage(query.Search{Filters: filters})
}

func (m *TableModel) sortableColumns() []Column {
	var out []Column
	for _, col := range m.cfg.Columns {
		if col.Sortable {
			out = append(out, col)
		}
	}
	return out
}

// sync rebuilds the table from the controller's current snapshot.
func (m *TableModel) sync() {
	st := m.ctrl.State()
	m.table.SetColumns(m.columns(st.Query.Sort))

	rows := make([]table.Row, len(st.Result.Items))
	for i, rec := range st.Result.Items {
		r := make(table.Row, len(m.cfg.Columns))
		for j, col := range m.cfg.Columns {
			r[j] = cellText(rec[col.Key])
		}
		rows[i] = r
	}
	m.table.SetRows(rows)
	if n := len(rows); n > 0 && m.table.Cursor() >= n {
		m.table.SetCursor(n - 1)
	}
}

func (m *TableModel) columns(s query.Sort) []table.Column {
	cols := make([]table.Column, len(m.cfg.Columns))
	for i, col := range m.cfg.Columns {
		title := col.Title
		if title == "" {
			title = col.Key
		}
		if col.Key == s.Field {
			title += " " + sortIndicator(s.Direction)
		}
		width := col.Width
		if width <= 0 {
			width = defaultColumnWidth
		}
		cols[i] = table.Column{Title: title, Width: width}
	}
	return cols
}

func (m *TableModel) tableHeight() int {
	return max(m.height-chromeHeight, minTableHeight)
}

func sortIndicator(d query.Direction) string {
	switch d {
	case query.Ascending:
		return "▲"
	case query.Descending:
		return "▼"
	default:
		return ""
	}
}

func cellText(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
