package clientapp

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"

	"github.com/phillip-england/shipdesk/internal/apiclient"
	"github.com/phillip-england/shipdesk/internal/model"
	"github.com/phillip-england/shipdesk/internal/navigation"
	"github.com/phillip-england/shipdesk/internal/session"
)

type viewFunc func(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData)

// section is a titled block of a view, usually one table.
type section struct {
	Title    string
	Subtitle string
	Body     template.HTML
}

type pageData struct {
	AppName   string
	Title     string
	Subtitle  string
	Base      string
	View      string
	User      model.Profile
	Nav       []navigation.Item
	CSRFField template.HTML
	Error     string
	Message   string

	// Form holds submitted or prefilled field values, keyed by input name.
	Form       url.Values
	FormAction string
	Editing    bool
	Signup     bool

	Cards      template.HTML
	QuickStats template.HTML
	Alert      template.HTML
	Table      template.HTML
	Sections   []section
	Search     string
	Filter     string
	Status     string
	Statuses   []shipmentStatusChoice
	Empty      string

	Shipment    *model.Shipment
	Customer    *model.Customer
	Companies   []model.Company
	Offices     []model.Office
	Employees   []model.Employee
	Customers   []model.Customer
	PricingInfo *model.PricingInfo
	Pricing     *model.PricingConfig
	Estimate    string
	Revenue     *model.Revenue
	Report      *section
	ExportHref  string
	ReportLinks []reportLink

	status int
	tmpl   *template.Template
}

type shipmentStatusChoice struct {
	Value model.ShipmentStatus
	Label string
}

func (s *server) dispatcher(views map[string]viewFunc, items []navigation.Item, base string, tmpl *template.Template) *navigation.Dispatcher {
	d := navigation.NewDispatcher()
	for view, fn := range views {
		d.Handle(view, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}
			sc := session.From(r.Context())
			q := r.URL.Query()
			data := s.newPage(r, sc, items, base, view, tmpl)
			data.Error = q.Get("error")
			data.Message = q.Get("message")
			fn(w, r, sc, data)
		})
	}
	return d
}

func (s *server) newPage(r *http.Request, sc *session.Context, items []navigation.Item, base, view string, tmpl *template.Template) pageData {
	return pageData{
		AppName:   s.cfg.AppName,
		Title:     navigation.Title(items, view),
		Base:      base,
		View:      view,
		User:      sc.User,
		Nav:       navigation.Sidebar(items, base, view),
		CSRFField: csrf.TemplateField(r),
		status:    http.StatusOK,
		tmpl:      tmpl,
	}
}

// rerender shows an employee view again after a rejected form post, keeping
// what the user typed. query selects the view state, for example the edit id.
func (s *server) rerender(w http.ResponseWriter, r *http.Request, view string, query url.Values, status int, mutate func(*pageData)) {
	sc := session.From(r.Context())
	if query == nil {
		query = url.Values{}
	}
	query.Set("view", view)
	clone := r.Clone(r.Context())
	clone.URL.RawQuery = query.Encode()

	data := s.newPage(clone, sc, navigation.EmployeeViews(), navigation.EmployeePath, view, s.employeeTmpl)
	data.Form = r.PostForm
	data.status = status
	if mutate != nil {
		mutate(&data)
	}
	s.employeeViews[view](w, clone, sc, data)
}

func (s *server) renderPage(w http.ResponseWriter, r *http.Request, data pageData) {
	var buf bytes.Buffer
	if err := data.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		s.logFor(r).Error().Err(err).Str("view", data.View).Msg("template render failed")
		http.Error(w, "template render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if data.status != 0 {
		w.WriteHeader(data.status)
	}
	_, _ = w.Write(buf.Bytes())
}

// viewFailed renders the view's frame with the load error in the message area.
// A rejected token ends the session instead.
func (s *server) viewFailed(w http.ResponseWriter, r *http.Request, data pageData, err error) {
	if apiclient.IsUnauthorized(err) {
		s.expire(w, r)
		return
	}
	s.logFor(r).Warn().Err(err).Str("view", data.View).Msg("view load failed")
	data.Error = apiclient.MessageOf(err)
	data.Table = ""
	data.Sections = nil
	data.Cards = ""
	data.status = statusFor(err)
	s.renderPage(w, r, data)
}

func statusFor(err error) int {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, apiclient.ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		return apiErr.Status
	default:
		return http.StatusBadGateway
	}
}

// fail reports a failed mutation on the page at target.
func (s *server) fail(w http.ResponseWriter, r *http.Request, target string, err error) {
	if apiclient.IsUnauthorized(err) {
		s.expire(w, r)
		return
	}
	s.logFor(r).Warn().Err(err).Str("path", r.URL.Path).Msg("action failed")
	redirectWith(w, r, target, "error", apiclient.MessageOf(err))
}

// expire drops both session cookies and sends the browser to the login page.
func (s *server) expire(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w)
	redirectWith(w, r, navigation.LoginPath, "error", apiclient.MessageOf(apiclient.ErrUnauthorized))
}

func redirectWith(w http.ResponseWriter, r *http.Request, target, key, msg string) {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	http.Redirect(w, r, target+sep+key+"="+url.QueryEscape(msg), http.StatusFound)
}

func employeeView(view string) string {
	return navigation.ViewURL(navigation.EmployeePath, view)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

func queryID(r *http.Request, key string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get(key)), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func optionalID(raw string) *int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// selectedID compares a record id against a submitted select value.
func selectedID(id int64, value string) bool {
	return idString(id) == strings.TrimSpace(value)
}

// postForm parses the urlencoded body. It reports false after answering the
// request itself.
func postForm(w http.ResponseWriter, r *http.Request, target string) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, target, "error", "Invalid form submission.")
		return false
	}
	return true
}

func trimmed(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

// cached list fetchers share results between the sections of one view.

func companiesOf(ctx context.Context, sc *session.Context) ([]model.Company, error) {
	return session.Remember(sc.Cache, "companies", func() ([]model.Company, error) { return sc.API.Companies(ctx) })
}

func officesOf(ctx context.Context, sc *session.Context) ([]model.Office, error) {
	return session.Remember(sc.Cache, "offices", func() ([]model.Office, error) { return sc.API.Offices(ctx) })
}

func employeesOf(ctx context.Context, sc *session.Context) ([]model.Employee, error) {
	return session.Remember(sc.Cache, "employees", func() ([]model.Employee, error) { return sc.API.Employees(ctx) })
}

func customersOf(ctx context.Context, sc *session.Context) ([]model.Customer, error) {
	return session.Remember(sc.Cache, "customers", func() ([]model.Customer, error) { return sc.API.Customers(ctx) })
}

func shipmentStatusChoices() []shipmentStatusChoice {
	return []shipmentStatusChoice{
		{Value: model.StatusRegistered, Label: "Registered"},
		{Value: model.StatusInTransit, Label: "In Transit"},
		{Value: model.StatusDelivered, Label: "Delivered"},
		{Value: model.StatusCancelled, Label: "Cancelled"},
	}
}

func count(n int) string {
	return strconv.Itoa(n)
}

func count64(n int64) string {
	return strconv.FormatInt(n, 10)
}
