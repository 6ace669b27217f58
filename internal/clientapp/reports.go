package clientapp

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phillip-england/shipdesk/internal/model"
	"github.com/phillip-england/shipdesk/internal/render"
	"github.com/phillip-england/shipdesk/internal/session"
	"github.com/phillip-england/shipdesk/internal/spreadsheet"
)

const (
	dateLayout         = "2006-01-02"
	revenueWindow      = 30 * 24 * time.Hour
	msgRevenueNoDates  = "Please select both dates."
	msgRevenueBadDates = "Start date must be on or before end date."
)

type reportLink struct {
	Kind   string
	Label  string
	Href   string
	Export string
	Active bool
}

var quickReports = []struct {
	kind  string
	label string
}{
	{"employees", "All Employees"},
	{"customers", "All Customers"},
	{"shipments", "All Shipments"},
	{"pending", "Pending Shipments"},
}

// report is one fetched quick report, ready for either HTML or XLSX output.
type report struct {
	Title string
	Table spreadsheet.Table
	HTML  template.HTML
}

func (s *server) reportsView(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	q := r.URL.Query()
	kind := q.Get("report")
	employeeID := queryID(r, "employee")
	if employeeID > 0 {
		kind = "employee"
	}

	from, to := q.Get("from"), q.Get("to")
	_, askedRevenue := q["from"]
	if !askedRevenue {
		to = s.now().Format(dateLayout)
		from = s.now().Add(-revenueWindow).Format(dateLayout)
	}
	data.Form = url.Values{"from": {from}, "to": {to}}
	if employeeID > 0 {
		data.Form.Set("employee", idString(employeeID))
	}

	var rep *report
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		data.Employees, err = employeesOf(ctx, sc)
		return err
	})
	if askedRevenue {
		if msg := revenueRangeError(from, to); msg != "" {
			data.Error = msg
			data.status = http.StatusUnprocessableEntity
		} else {
			g.Go(func() (err error) {
				data.Revenue, err = sc.API.Revenue(ctx, from, to)
				return err
			})
		}
	}
	if kind != "" {
		g.Go(func() (err error) {
			rep, err = s.loadReport(ctx, sc, kind, employeeID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.viewFailed(w, r, data, err)
		return
	}

	data.ReportLinks = make([]reportLink, 0, len(quickReports))
	for _, qr := range quickReports {
		data.ReportLinks = append(data.ReportLinks, reportLink{
			Kind:   qr.kind,
			Label:  qr.label,
			Href:   employeeView("reports") + "&report=" + qr.kind,
			Export: "/employee/reports/export?type=" + qr.kind,
			Active: qr.kind == kind,
		})
	}
	if rep != nil {
		data.Report = &section{Title: rep.Title, Body: rep.HTML}
		if kind == "employee" {
			data.ExportHref = "/employee/reports/export?type=employee&employee=" + idString(employeeID)
		} else {
			data.ExportHref = "/employee/reports/export?type=" + kind
		}
	}
	s.renderPage(w, r, data)
}

// revenueRangeError returns the message for an unusable date range, or "".
func revenueRangeError(from, to string) string {
	if from == "" || to == "" {
		return msgRevenueNoDates
	}
	start, err1 := time.Parse(dateLayout, from)
	end, err2 := time.Parse(dateLayout, to)
	if err1 != nil || err2 != nil {
		return msgRevenueNoDates
	}
	if start.After(end) {
		return msgRevenueBadDates
	}
	return ""
}

type unknownReportError string

func (e unknownReportError) Error() string { return fmt.Sprintf("unknown report %q", string(e)) }

func (s *server) loadReport(ctx context.Context, sc *session.Context, kind string, employeeID int64) (*report, error) {
	switch kind {
	case "employees":
		list, err := sc.API.ReportEmployees(ctx)
		if err != nil {
			return nil, err
		}
		return employeesReport(list), nil
	case "customers":
		list, err := sc.API.ReportCustomers(ctx)
		if err != nil {
			return nil, err
		}
		return customersReport(list), nil
	case "shipments":
		list, err := sc.API.ReportShipments(ctx)
		if err != nil {
			return nil, err
		}
		return shipmentsReport("All Shipments", list), nil
	case "pending":
		list, err := sc.API.PendingShipments(ctx)
		if err != nil {
			return nil, err
		}
		return shipmentsReport("Pending Shipments", list), nil
	case "employee":
		if employeeID <= 0 {
			return nil, unknownReportError(kind)
		}
		list, err := sc.API.ShipmentsByEmployee(ctx, employeeID)
		if err != nil {
			return nil, err
		}
		return shipmentsReport(fmt.Sprintf("Shipments Registered by Employee #%d", employeeID), list), nil
	default:
		return nil, unknownReportError(kind)
	}
}

func employeesReport(list []model.Employee) *report {
	rows := make([][]any, 0, len(list))
	for _, e := range list {
		rows = append(rows, []any{e.ID, employeeName(e), string(e.EmployeeType), e.CompanyName, e.OfficeName, e.HireDate})
	}
	return &report{
		Title: fmt.Sprintf("All Employees (%d)", len(list)),
		Table: spreadsheet.Table{
			Sheet:   "Employees",
			Headers: []string{"ID", "Name", "Type", "Company", "Office", "Hire Date"},
			Rows:    rows,
		},
		HTML: render.Table(render.TableConfig[model.Employee]{
			Columns: []render.Column[model.Employee]{
				{Label: "ID", Value: func(e model.Employee) any { return e.ID }},
				{Label: "Name", Value: func(e model.Employee) any { return employeeName(e) }},
				{Label: "Type", Value: func(e model.Employee) any { return render.TypeBadge(string(e.EmployeeType)) }},
				{Label: "Office", Value: func(e model.Employee) any { return orDash(e.OfficeName) }},
			},
			Rows:         list,
			EmptyMessage: "No employees found.",
		}),
	}
}

func customersReport(list []model.Customer) *report {
	rows := make([][]any, 0, len(list))
	for _, c := range list {
		rows = append(rows, []any{c.ID, c.DisplayName(), c.Phone, c.Email, c.Address})
	}
	return &report{
		Title: fmt.Sprintf("All Customers (%d)", len(list)),
		Table: spreadsheet.Table{
			Sheet:   "Customers",
			Headers: []string{"ID", "Name", "Phone", "Email", "Address"},
			Rows:    rows,
		},
		HTML: render.Table(render.TableConfig[model.Customer]{
			Columns: []render.Column[model.Customer]{
				{Label: "ID", Value: func(c model.Customer) any { return c.ID }},
				{Label: "Name", Value: func(c model.Customer) any { return render.OrNA(c.DisplayName()) }},
				{Label: "Phone", Value: func(c model.Customer) any { return orDash(c.Phone) }},
				{Label: "Email", Value: func(c model.Customer) any { return orDash(c.Email) }},
			},
			Rows:         list,
			EmptyMessage: "No customers found.",
		}),
	}
}

func shipmentsReport(title string, list []model.Shipment) *report {
	rows := make([][]any, 0, len(list))
	for _, sh := range list {
		price := ""
		if sh.Price != nil {
			price = sh.Price.StringFixed(2)
		}
		rows = append(rows, []any{
			sh.ID, sh.SenderName, sh.Receiver(), sh.OriginOfficeName, sh.Destination(),
			sh.Weight.String(), price, string(sh.Status), render.FormatDate(sh.RegisteredAt),
		})
	}
	return &report{
		Title: fmt.Sprintf("%s (%d)", title, len(list)),
		Table: spreadsheet.Table{
			Sheet:   "Shipments",
			Headers: []string{"ID", "Sender", "Receiver", "Origin", "Destination", "Weight (kg)", "Price (BGN)", "Status", "Registered"},
			Rows:    rows,
		},
		HTML: render.Table(render.TableConfig[model.Shipment]{
			Columns: []render.Column[model.Shipment]{
				{Label: "ID", Value: func(s model.Shipment) any { return "#" + idString(s.ID) }},
				{Label: "Sender", Value: func(s model.Shipment) any { return render.OrNA(s.SenderName) }},
				{Label: "Receiver", Value: func(s model.Shipment) any { return render.OrNA(s.Receiver()) }},
				{Label: "Destination", Value: func(s model.Shipment) any { return s.Destination() }},
				{Label: "Price", Value: func(s model.Shipment) any { return render.FormatBGN(s.Price) }},
				{Label: "Status", Value: func(s model.Shipment) any { return render.StatusPill(s.Status) }},
			},
			Rows:         list,
			EmptyMessage: "No shipments found.",
		}),
	}
}

// exportReport downloads a quick report as an .xlsx workbook.
func (s *server) exportReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	back := employeeView("reports")
	kind := r.URL.Query().Get("type")
	sc := session.From(r.Context())
	rep, err := s.loadReport(r.Context(), sc, kind, queryID(r, "employee"))
	if err != nil {
		var unknown unknownReportError
		if errors.As(err, &unknown) {
			redirectWith(w, r, back, "error", "Unknown report type.")
			return
		}
		s.fail(w, r, back, err)
		return
	}
	body, err := spreadsheet.WriteXLSX(rep.Table)
	if err != nil {
		s.logFor(r).Error().Err(err).Str("report", kind).Msg("report export failed")
		redirectWith(w, r, back, "error", "Unable to export the report.")
		return
	}
	name := fmt.Sprintf("%s-report-%s.xlsx", kind, s.now().Format(dateLayout))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	_, _ = w.Write(body)
}
