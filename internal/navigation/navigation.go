// Package navigation describes the dashboard sidebars and routes a view id to its handler.
package navigation

import (
	"net/http"
	"net/url"

	"github.com/phillip-england/shipdesk/internal/model"
)

const (
	LoginPath    = "/login"
	EmployeePath = "/employee"
	CustomerPath = "/customer"

	DefaultView = "dashboard"
)

type Item struct {
	View   string
	Label  string
	Icon   string
	Href   string
	Active bool
}

var employeeItems = []Item{
	{View: "dashboard", Label: "Dashboard", Icon: "▦"},
	{View: "register", Label: "Register Shipment", Icon: "+"},
	{View: "all", Label: "All Shipments", Icon: "☰"},
	{View: "companies", Label: "Companies", Icon: "◼"},
	{View: "offices", Label: "Offices", Icon: "⌂"},
	{View: "employees", Label: "Employees", Icon: "☺"},
	{View: "clients", Label: "Customers", Icon: "☻"},
	{View: "reports", Label: "Reports", Icon: "≡"},
	{View: "pricing", Label: "Pricing", Icon: "$"},
}

var customerItems = []Item{
	{View: "dashboard", Label: "Dashboard", Icon: "▦"},
	{View: "sent", Label: "Sent", Icon: "↗"},
	{View: "received", Label: "Received", Icon: "↙"},
	{View: "expected", Label: "Expected", Icon: "⧗"},
	{View: "all", Label: "All Shipments", Icon: "☰"},
}

func EmployeeViews() []Item { return clone(employeeItems) }
func CustomerViews() []Item { return clone(customerItems) }

func clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Sidebar returns items with hrefs under base and exactly one entry active.
// An unknown active view highlights the dashboard.
func Sidebar(items []Item, base, active string) []Item {
	if !Has(items, active) {
		active = DefaultView
	}
	out := clone(items)
	for i := range out {
		out[i].Href = ViewURL(base, out[i].View)
		out[i].Active = out[i].View == active
	}
	return out
}

func Has(items []Item, view string) bool {
	for _, it := range items {
		if it.View == view {
			return true
		}
	}
	return false
}

func ViewURL(base, view string) string {
	if view == "" || view == DefaultView {
		return base
	}
	return base + "?view=" + url.QueryEscape(view)
}

// Title returns the label of view, or the dashboard label.
func Title(items []Item, view string) string {
	for _, it := range items {
		if it.View == view {
			return it.Label
		}
	}
	return items[0].Label
}

// DashboardPath sends customers to their dashboard and every other role to the back office.
func DashboardPath(role model.Role) string {
	if role == model.RoleCustomer {
		return CustomerPath
	}
	return EmployeePath
}

// Dispatcher picks a handler by the view query parameter.
type Dispatcher struct {
	handlers map[string]http.HandlerFunc
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[string]http.HandlerFunc{}}
}

func (d *Dispatcher) Handle(view string, h http.HandlerFunc) *Dispatcher {
	d.handlers[view] = h
	return d
}

// Resolve normalises view: unregistered ids fall back to the dashboard.
func (d *Dispatcher) Resolve(view string) string {
	if _, ok := d.handlers[view]; ok {
		return view
	}
	return DefaultView
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	view := d.Resolve(r.URL.Query().Get("view"))
	h, ok := d.handlers[view]
	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}
