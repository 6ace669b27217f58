package render

import "html/template"

// Column describes one table column. Value may return a string, a number or
// template.HTML produced by this package; plain values are escaped.
type Column[T any] struct {
	Label string
	Value func(T) any
}

// Action is a per-row control. PostTo renders a small form, Href a link.
type Action struct {
	Label    string
	Class    string
	Href     string
	PostTo   string
	Confirm  string
	Disabled bool
	Fields   map[string]string
	CSRF     template.HTML
}

type TableConfig[T any] struct {
	Columns      []Column[T]
	Rows         []T
	Actions      func(T) []Action
	EmptyMessage string
}

type tableRow struct {
	Cells   []any
	Actions []Action
}

type tableData struct {
	Headers    []string
	Rows       []tableRow
	HasActions bool
	Empty      string
}

// Table renders cfg as an HTML table, or the empty message when there are no rows.
func Table[T any](cfg TableConfig[T]) template.HTML {
	data := tableData{
		Headers:    make([]string, 0, len(cfg.Columns)),
		Rows:       make([]tableRow, 0, len(cfg.Rows)),
		HasActions: cfg.Actions != nil,
		Empty:      cfg.EmptyMessage,
	}
	if data.Empty == "" {
		data.Empty = "No records found."
	}
	for _, c := range cfg.Columns {
		data.Headers = append(data.Headers, c.Label)
	}
	for _, row := range cfg.Rows {
		cells := make([]any, 0, len(cfg.Columns))
		for _, c := range cfg.Columns {
			cells = append(cells, c.Value(row))
		}
		tr := tableRow{Cells: cells}
		if cfg.Actions != nil {
			tr.Actions = cfg.Actions(row)
		}
		data.Rows = append(data.Rows, tr)
	}
	return execute("table", data)
}
