// Package render builds escaped HTML fragments for the dashboard pages.
// All output goes through html/template so backend strings are never trusted.
package render

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phillip-england/shipdesk/internal/model"
)

var statusClasses = map[model.ShipmentStatus]string{
	model.StatusRegistered: "status-registered",
	model.StatusInTransit:  "status-transit",
	model.StatusDelivered:  "status-delivered",
	model.StatusCancelled:  "status-cancelled",
}

// StatusClass maps a status to its CSS class. Unknown statuses get status-default.
func StatusClass(status model.ShipmentStatus) string {
	if class, ok := statusClasses[status]; ok {
		return class
	}
	return "status-default"
}

var fragments = template.Must(template.New("fragments").Parse(`
{{define "pill"}}<span class="status-pill {{.Class}}">{{.Text}}</span>{{end}}
{{define "badge"}}<span class="type-badge {{.Class}}">{{.Text}}</span>{{end}}
{{define "cards"}}<div class="summary-cards">{{range .}}<div class="summary-card{{if .Class}} {{.Class}}{{end}}"><div class="summary-title">{{.Title}}</div><div class="summary-value">{{.Value}}</div></div>{{end}}</div>{{end}}
{{define "table"}}{{if not .Rows}}<p class="empty-state">{{.Empty}}</p>{{else}}<div class="table-wrap"><table class="data-table"><thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}{{if .HasActions}}<th>Actions</th>{{end}}</tr></thead><tbody>{{range .Rows}}<tr>{{range .Cells}}<td>{{.}}</td>{{end}}{{if $.HasActions}}<td class="actions">{{range .Actions}}{{template "action" .}}{{end}}</td>{{end}}</tr>{{end}}</tbody></table></div>{{end}}{{end}}
{{define "action"}}{{if .PostTo}}<form method="post" action="{{.PostTo}}" class="inline-form"{{if .Confirm}} data-confirm="{{.Confirm}}"{{end}}>{{.CSRF}}{{range $k, $v := .Fields}}<input type="hidden" name="{{$k}}" value="{{$v}}">{{end}}<button type="submit" class="btn btn-sm {{.Class}}"{{if .Disabled}} disabled{{end}}>{{.Label}}</button></form>{{else if .Disabled}}<span class="btn btn-sm {{.Class}} disabled" aria-disabled="true">{{.Label}}</span>{{else}}<a class="btn btn-sm {{.Class}}" href="{{.Href}}">{{.Label}}</a>{{end}}{{end}}
`))

func execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return template.HTML(template.HTMLEscapeString(err.Error()))
	}
	return template.HTML(buf.String())
}

type label struct {
	Class string
	Text  string
}

// StatusPill renders a colored status label.
func StatusPill(status model.ShipmentStatus) template.HTML {
	return execute("pill", label{Class: StatusClass(status), Text: statusText(status)})
}

func statusText(status model.ShipmentStatus) string {
	if status == "" {
		return "-"
	}
	return strings.ReplaceAll(string(status), "_", " ")
}

// TypeBadge renders an employee type or direction tag.
func TypeBadge(text string) template.HTML {
	class := "type-" + strings.ToLower(strings.ReplaceAll(text, "_", "-"))
	return execute("badge", label{Class: class, Text: strings.ReplaceAll(text, "_", " ")})
}

type Card struct {
	Title string
	Value string
	Class string
}

func SummaryCards(cards []Card) template.HTML {
	return execute("cards", cards)
}

// FormatCurrency prints two decimals, or "-" when the amount is unknown.
func FormatCurrency(amount *decimal.Decimal) string {
	if amount == nil {
		return "-"
	}
	return amount.StringFixed(2)
}

func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatBGN appends the currency code used on the customer pages.
func FormatBGN(amount *decimal.Decimal) string {
	if amount == nil {
		return "-"
	}
	return amount.StringFixed(2) + " BGN"
}

func FormatWeight(w decimal.Decimal) string {
	return w.StringFixed(2) + " kg"
}

const dateLayout = "Jan 2, 2006, 03:04 PM"

// FormatDate prints a short local date-time, or "-" for an absent value.
func FormatDate(ts model.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format(dateLayout)
}

func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// OrNA substitutes "N/A" for blank strings.
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// Funcs exposes the helpers to page templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"statusClass":  StatusClass,
		"statusPill":   StatusPill,
		"typeBadge":    TypeBadge,
		"currency":     FormatCurrency,
		"money":        FormatMoney,
		"bgn":          FormatBGN,
		"weight":       FormatWeight,
		"date":         FormatDate,
		"orNA":         OrNA,
		"summaryCards": SummaryCards,
	}
}
