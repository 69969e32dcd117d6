package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/tablequery/internal/config"
	"github.com/rshade/tablequery/internal/controller"
	"github.com/rshade/tablequery/internal/logging"
	"github.com/rshade/tablequery/internal/query"
	"github.com/rshade/tablequery/internal/source"
	"github.com/rshade/tablequery/internal/tui"
)

// Output formats for the list command.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

const tabPadding = 2

// ErrInvalidFilter is returned for a --filter value that is not key=value.
var ErrInvalidFilter = errors.New("filter must be key=value")

type listParams struct {
	page     int
	pageSize int
	sort     string
	filters  []string
	search   string
	output   string
}

// NewListCmd creates the "list" command, which prints one page of records.
func NewListCmd() *cobra.Command {
	var params listParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of records",
		Long: `Print one page of records. Filters from the config's table.init_filters
apply unless overridden with --filter.`,
		Example: `  tablequery list --data people.json --page 2 --page-size 5
  tablequery list --data people.json --sort age:desc --filter status=active
  tablequery list --data people.json --search grace --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, params)
		},
	}

	cmd.Flags().IntVar(&params.page, "page", 0, "page number (default from config)")
	cmd.Flags().IntVar(&params.pageSize, "page-size", 0, "records per page (default from config)")
	cmd.Flags().StringVar(&params.sort, "sort", "", "sort as field or field:order (asc, desc)")
	cmd.Flags().StringArrayVar(&params.filters, "filter", nil, "filter as key=value (repeatable)")
	cmd.Flags().StringVar(&params.search, "search", "", "case-insensitive search across all fields")
	cmd.Flags().StringVar(&params.output, "output", OutputTable, "output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, params listParams) error {
	if params.output != OutputTable && params.output != OutputJSON {
		return fmt.Errorf("unsupported output format: %s", params.output)
	}
	sort, err := query.ParseSort(params.sort)
	if err != nil {
		return err
	}
	extra, err := parseFilters(params.filters)
	if err != nil {
		return err
	}

	dataPath, _ := cmd.Flags().GetString("data")
	sess, err := openSession(config.GetGlobalConfig(), dataPath)
	if err != nil {
		return err
	}
	ctrl, err := sess.controller(nil)
	if err != nil {
		return err
	}

	p := ctrl.Pagination()
	if params.page != 0 {
		p.Page = params.page
	}
	if params.pageSize != 0 {
		p.PageSize = params.pageSize
	}
	if err = p.Validate(); err != nil {
		return err
	}

	filters := ctrl.Filters()
	for k, v := range extra {
		filters[k] = v
	}
	if params.search != "" {
		filters[source.SearchKey] = params.search
	}

	ctrl.SetFilters(filters)
	ctrl.SetPagination(p)
	ctrl.SetSort(sort)

	res := ctrl.Refresh(cmd.Context(), nil)
	if res.Status == controller.StatusFailed {
		return res.Err
	}
	logging.FromContext(cmd.Context()).Debug().
		Str("request_id", res.RequestID).
		Int("total", ctrl.Total()).
		Msg("page listed")

	st := ctrl.State()
	if params.output == OutputJSON {
		return renderJSON(cmd.OutOrStdout(), st)
	}
	return renderTable(cmd.OutOrStdout(), sess.columns(), st)
}

// parseFilters turns key=value pairs into filters. Values stay strings.
func parseFilters(pairs []string) (query.Filters, error) {
	out := make(query.Filters, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, pair)
		}
		out[key] = value
	}
	return out, nil
}

type listOutput struct {
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	Total    int             `json:"total"`
	Sort     string          `json:"sort,omitempty"`
	Filters  query.Filters   `json:"filters,omitempty"`
	Data     []source.Record `json:"data"`
}

func renderJSON(w io.Writer, st controller.State[source.Record]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(listOutput{
		Page:     st.Query.Pagination.Page,
		PageSize: st.Query.Pagination.PageSize,
		Total:    st.Result.Total,
		Sort:     st.Query.Sort.String(),
		Filters:  st.Query.Filters,
		Data:     st.Result.Items,
	})
}

func renderTable(w io.Writer, columns []tui.Column, st controller.State[source.Record]) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	titles := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, col := range columns {
		title := col.Title
		if title == "" {
			title = col.Key
		}
		if d := st.Query.SortOrder(col.Key); d != query.DirectionNone {
			title += " (" + d.String() + ")"
		}
		titles[i] = title
		rules[i] = strings.Repeat("-", len(title))
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))

	for _, rec := range st.Result.Items {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := rec[col.Key]; ok && v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	p := st.Query.Pagination
	printer := message.NewPrinter(language.English)
	footer := printer.Sprintf("\nPage %d of %d (%d records)\n",
		p.Page, max(p.TotalPages(st.Result.Total), 1), st.Result.Total)
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		footer = tui.MutedStyle.Render(footer)
	}
	_, err := io.WriteString(w, footer)
	return err
}
