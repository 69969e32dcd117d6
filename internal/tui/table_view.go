package tui

import (
	"fmt"
	"strings"

	"github.com/rshade/tablequery/internal/controller"
	"github.com/rshade/tablequery/internal/options"
	"github.com/rshade/tablequery/internal/source"
)

const helpText = "n/p page • s sort • o order • c clear sort • / search • 1-9 filters • z page size • r reset • g refresh • q quit"

// View renders the current view.
func (m *TableModel) View() string {
	if m.quitting {
		return ""
	}
	st := m.ctrl.State()

	var b strings.Builder
	b.WriteString(m.renderTitle(st))
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus(st))
	b.WriteString("\n")
	if m.notice != nil {
		if msg := m.notice.Message(); msg != "" {
			b.WriteString(ErrorStyle.Render("Error: " + msg))
		}
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(helpText))
	return b.String()
}

func (m *TableModel) renderTitle(st controller.State[source.Record]) string {
	title := HeaderStyle.Render(m.cfg.Title)
	if st.Loading {
		return title + "  " + m.loading.View()
	}
	return title
}

// renderFilterBar shows the search box and every enumerated filter, with
// active values highlighted.
func (m *TableModel) renderFilterBar() string {
	parts := make([]string, 0, len(m.cfg.Filters)+1)
	if m.searching {
		parts = append(parts, m.search.View())
	} else {
		parts = append(parts, labelled("Search", m.search.Value(), "any"))
	}

	filters := m.ctrl.Filters()
	for i, f := range m.cfg.Filters {
		label := f.Label
		if label == "" {
			label = f.Name
		}
		value := ""
		if v, ok := filters[f.Name]; ok {
			value = optionLabel(f.Options, v)
		}
		parts = append(parts, fmt.Sprintf("%s %s", MutedStyle.Render(fmt.Sprintf("[%d]", i+1)),
			labelled(label, value, "all")))
	}
	return strings.Join(parts, "   ")
}

func (m *TableModel) renderStatus(st controller.State[source.Record]) string {
	p := st.Query.Pagination
	pages := max(p.TotalPages(st.Result.Total), 1)

	sortText := "none"
	if !st.Query.Sort.IsZero() {
		sortText = st.Query.Sort.String()
	}

	return strings.Join([]string{
		LabelStyle.Render("Page ") + ValueStyle.Render(m.printer.Sprintf("%d/%d", p.Page, pages)),
		LabelStyle.Render("Size ") + ValueStyle.Render(m.printer.Sprintf("%d", p.PageSize)),
		ValueStyle.Render(m.printer.Sprintf("%d", st.Result.Total)) + LabelStyle.Render(" records"),
		LabelStyle.Render("Sort ") + ValueStyle.Render(sortText),
	}, MutedStyle.Render(" • "))
}

func labelled(label, value, placeholder string) string {
	if value == "" {
		return LabelStyle.Render(label+": ") + MutedStyle.Render(placeholder)
	}
	return LabelStyle.Render(label+": ") + ActiveStyle.Render(value)
}

func optionLabel(opts []options.Option, v any) string {
	want := fmt.Sprint(v)
	for _, opt := range opts {
		if fmt.Sprint(opt.Value) == want {
			return opt.Label
		}
	}
	return want
}
