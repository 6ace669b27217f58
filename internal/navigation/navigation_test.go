package navigation

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phillip-england/shipdesk/internal/model"
)

func activeViews(items []Item) []string {
	var out []string
	for _, it := range items {
		if it.Active {
			out = append(out, it.View)
		}
	}
	return out
}

func TestSidebarMarksExactlyOneActive(t *testing.T) {
	items := Sidebar(EmployeeViews(), EmployeePath, "offices")
	assert.Equal(t, []string{"offices"}, activeViews(items))
	assert.Equal(t, "/employee?view=offices", items[4].Href)
	assert.Equal(t, "/employee", items[0].Href)

	items = Sidebar(CustomerViews(), CustomerPath, "nope")
	assert.Equal(t, []string{"dashboard"}, activeViews(items))
}

func TestSidebarDoesNotMutateDefaults(t *testing.T) {
	_ = Sidebar(EmployeeViews(), EmployeePath, "reports")
	assert.Empty(t, activeViews(EmployeeViews()))
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/customer", DashboardPath(model.RoleCustomer))
	assert.Equal(t, "/employee", DashboardPath(model.RoleEmployee))
	assert.Equal(t, "/employee", DashboardPath("ADMIN"))
}

func TestDispatcherFallsBackToDashboard(t *testing.T) {
	var hit string
	d := NewDispatcher().
		Handle("dashboard", func(w http.ResponseWriter, r *http.Request) { hit = "dashboard" }).
		Handle("sent", func(w http.ResponseWriter, r *http.Request) { hit = "sent" })

	d.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/customer?view=sent", nil))
	assert.Equal(t, "sent", hit)

	d.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/customer?view=bogus", nil))
	assert.Equal(t, "dashboard", hit)

	assert.Equal(t, "dashboard", d.Resolve(""))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Register Shipment", Title(EmployeeViews(), "register"))
	assert.Equal(t, "Dashboard", Title(CustomerViews(), "zzz"))
}
