package clientapp

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/phillip-england/shipdesk/internal/apiclient"
	"github.com/phillip-england/shipdesk/internal/model"
	"github.com/phillip-england/shipdesk/internal/render"
	"github.com/phillip-england/shipdesk/internal/session"
	"github.com/phillip-england/shipdesk/internal/shipment"
	"github.com/phillip-england/shipdesk/internal/validation"
)

func deleteAction(path, noun string, csrfField template.HTML) render.Action {
	return render.Action{
		Label:   "Delete",
		Class:   "btn-danger",
		PostTo:  path + "/delete",
		Confirm: "Are you sure you want to delete this " + noun + "?",
		CSRF:    csrfField,
	}
}

func editAction(view string, id int64) render.Action {
	return render.Action{Label: "Edit", Class: "btn-secondary", Href: employeeView(view) + "&edit=" + idString(id)}
}

// companies

func (s *server) companiesView(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	editID := queryID(r, "edit")
	var (
		list    []model.Company
		editing *model.Company
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		list, err = companiesOf(ctx, sc)
		return err
	})
	if editID > 0 {
		g.Go(func() (err error) {
			editing, err = sc.API.Company(ctx, editID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.viewFailed(w, r, data, err)
		return
	}

	data.FormAction = "/employee/companies"
	if editing != nil {
		data.Editing = true
		data.FormAction += "/" + idString(editing.ID)
		if data.Form == nil {
			data.Form = url.Values{
				"name":               {editing.Name},
				"registrationNumber": {editing.RegistrationNumber},
				"address":            {editing.Address},
				"phone":              {editing.Phone},
				"email":              {editing.Email},
			}
		}
	}
	data.Table = render.Table(render.TableConfig[model.Company]{
		Columns: []render.Column[model.Company]{
			{Label: "ID", Value: func(c model.Company) any { return c.ID }},
			{Label: "Name", Value: func(c model.Company) any { return c.Name }},
			{Label: "Registration No.", Value: func(c model.Company) any { return render.OrNA(c.RegistrationNumber) }},
			{Label: "Email", Value: func(c model.Company) any { return orDash(c.Email) }},
			{Label: "Phone", Value: func(c model.Company) any { return orDash(c.Phone) }},
		},
		Rows: list,
		Actions: func(c model.Company) []render.Action {
			return []render.Action{
				editAction("companies", c.ID),
				deleteAction("/employee/companies/"+idString(c.ID), "company", data.CSRFField),
			}
		},
		EmptyMessage: "No companies found.",
	})
	s.renderPage(w, r, data)
}

func companyRequestFrom(form url.Values) (model.CompanyRequest, validation.FormResult) {
	req := model.CompanyRequest{
		Name:               trimmed(form, "name"),
		RegistrationNumber: trimmed(form, "registrationNumber"),
		Address:            trimmed(form, "address"),
		Phone:              trimmed(form, "phone"),
		Email:              trimmed(form, "email"),
	}
	return req, validation.CompanyForm(validation.CompanyInput{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Email:              req.Email,
		Phone:              req.Phone,
	})
}

func (s *server) createCompanyProxy(w http.ResponseWriter, r *http.Request) {
	target := employeeView("companies")
	if !postForm(w, r, target) {
		return
	}
	req, res := companyRequestFrom(r.PostForm)
	if !res.Valid {
		s.rerender(w, r, "companies", nil, http.StatusUnprocessableEntity, withError(res.Message()))
		return
	}
	sc := session.From(r.Context())
	if _, err := sc.API.CreateCompany(r.Context(), req); err != nil {
		s.rejectForm(w, r, "companies", nil, err)
		return
	}
	redirectWith(w, r, target, "message", "Company created successfully.")
}

func (s *server) updateCompanyProxy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	target := employeeView("companies")
	if !postForm(w, r, target) {
		return
	}
	query := url.Values{"edit": {idString(id)}}
	req, res := companyRequestFrom(r.PostForm)
	if !res.Valid {
		s.rerender(w, r, "companies", query, http.StatusUnprocessableEntity, withError(res.Message()))
		return
	}
	sc := session.From(r.Context())
	if _, err := sc.API.UpdateCompany(r.Context(), id, req); err != nil {
		s.rejectForm(w, r, "companies", query, err)
		return
	}
	redirectWith(w, r, target, "message", "Company updated successfully.")
}

func (s *server) deleteCompanyProxy(w http.ResponseWriter, r *http.Request) {
	s.deleteProxy(w, r, "companies", "Company", func(ctx context.Context, api *apiclient.Client, id int64) error {
		return api.DeleteCompany(ctx, id)
	})
}

// deleteProxy runs a confirmed delete and returns to view with the outcome.
func (s *server) deleteProxy(w http.ResponseWriter, r *http.Request, view, noun string, del func(context.Context, *apiclient.Client, int64) error) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	target := employeeView(view)
	if !postForm(w, r, target) {
		return
	}
	sc := session.From(r.Context())
	if err := del(r.Context(), sc.API, id); err != nil {
		s.fail(w, r, target, err)
		return
	}
	s.logFor(r).Info().Str("entity", strings.ToLower(noun)).Int64("id", id).Msg("deleted")
	redirectWith(w, r, target, "message", noun+" deleted successfully.")
}

// offices

func (s *server) officesView(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	editID := queryID(r, "edit")
	companyID := queryID(r, "company")
	var (
		list    []model.Office
		editing *model.Office
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		if companyID > 0 {
			list, err = sc.API.OfficesByCompany(ctx, companyID)
			return err
		}
		list, err = officesOf(ctx, sc)
		return err
	})
	g.Go(func() (err error) {
		data.Companies, err = companiesOf(ctx, sc)
		return err
	})
	if editID > 0 {
		g.Go(func() (err error) {
			editing, err = sc.API.Office(ctx, editID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.viewFailed(w, r, data, err)
		return
	}

	data.Filter = idStringOrEmpty(companyID)
	data.FormAction = "/employee/offices"
	if editing != nil {
		data.Editing = true
		data.FormAction += "/" + idString(editing.ID)
		if data.Form == nil {
			data.Form = url.Values{
				"companyId": {idString(editing.CompanyID)},
				"name":      {editing.Name},
				"address":   {editing.Address},
				"city":      {editing.City},
				"country":   {editing.Country},
				"phone":     {editing.Phone},
			}
		}
	}
	data.Table = render.Table(render.TableConfig[model.Office]{
		Columns: []render.Column[model.Office]{
			{Label: "ID", Value: func(o model.Office) any { return o.ID }},
			{Label: "Name", Value: func(o model.Office) any { return o.Name }},
			{Label: "Company", Value: func(o model.Office) any { return render.OrNA(o.CompanyName) }},
			{Label: "Address", Value: func(o model.Office) any { return render.OrNA(o.Address) }},
			{Label: "City", Value: func(o model.Office) any { return orDash(o.City) }},
			{Label: "Phone", Value: func(o model.Office) any { return orDash(o.Phone) }},
		},
		Rows: list,
		Actions: func(o model.Office) []render.Action {
			return []render.Action{
				editAction("offices", o.ID),
				deleteAction("/employee/offices/"+idString(o.ID), "office", data.CSRFField),
			}
		},
		EmptyMessage: "No offices found.",
	})
	s.renderPage(w, r, data)
}

func officeRequestFrom(form url.Values) (model.OfficeRequest, validation.FormResult) {
	in := validation.OfficeInput{
		CompanyID: trimmed(form, "companyId"),
		Name:      trimmed(form, "name"),
		Address:   trimmed(form, "address"),
		Phone:     trimmed(form, "phone"),
	}
	res := validation.OfficeForm(in)
	companyID, _ := strconv.ParseInt(in.CompanyID, 10, 64)
	return model.OfficeRequest{
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		City:      trimmed(form, "city"),
		Country:   trimmed(form, "country"),
		Phone:     in.Phone,
	}, res
}

func (s *server) createOfficeProxy(w http.ResponseWriter, r *http.Request) {
	target := employeeView("offices")
	if !postForm(w, r, target) {
		return
	}
	req, res := officeRequestFrom(r.PostForm)
	if !res.Valid {
		s.rerender(w, r, "offices", nil, http.StatusUnprocessableEntity, withError(res.Message()))
		return
	}
	sc := session.From(r.Context())
	if _, err := sc.API.CreateOffice(r.Context(), req); err != nil {
		s.rejectForm(w, r, "offices", nil, err)
		return
	}
	redirectWith(w, r, target, "message", "Office created successfully.")
}

func (s *server) updateOfficeProxy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	target := employeeView("offices")
	if !postForm(w, r, target) {
		return
	}
	query := url.Values{"edit": {idString(id)}}
	req, res := officeRequestFrom(r.PostForm)
	if !res.Valid {
		s.rerender(w, r, "offices", query, http.StatusUnprocessableEntity, withError(res.Message()))
		return
	}
	sc := session.From(r.Context())
	if _, err := sc.API.UpdateOffice(r.Context(), id, req); err != nil {
		s.rejectForm(w, r, "offices", query, err)
		return
	}
	redirectWith(w, r, target, "message", "Office updated successfully.")
}

func (s *server) deleteOfficeProxy(w http.ResponseWriter, r *http.Request) {
	s.deleteProxy(w, r, "offices", "Office", func(ctx context.Context, api *apiclient.Client, id int64) error {
		return api.DeleteOffice(ctx, id)
	})
}

// employees

func employeeName(e model.Employee) string {
	if strings.TrimSpace(e.Name) != "" {
		return e.Name
	}
	return render.OrNA(e.Username)
}

func (s *server) employeesView(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	editID := queryID(r, "edit")
	var (
		list    []model.Employee
		editing *model.Employee
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		list, err = employeesOf(ctx, sc)
		return err
	})
	g.Go(func() (err error) {
		data.Companies, err = companiesOf(ctx, sc)
		return err
	})
	g.Go(func() (err error) {
		data.Offices, err = officesOf(ctx, sc)
		return err
	})
	if editID > 0 {
		g.Go(func() (err error) {
			editing, err = sc.API.Employee(ctx, editID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.viewFailed(w, r, data, err)
		return
	}

	data.FormAction = "/employee/employees"
	if editing != nil {
		data.Editing = true
		data.FormAction += "/" + idString(editing.ID)
		if data.Form == nil {
			data.Form = employeeFormValues(*editing)
		}
	}
	if data.Form == nil {
		data.Form = url.Values{"hireDate": {s.now().Format("2006-01-02")}}
	}
	data.Table = render.Table(render.TableConfig[model.Employee]{
		Columns: []render.Column[model.Employee]{
			{Label: "ID", Value: func(e model.Employee) any { return e.ID }},
			{Label: "Name", Value: func(e model.Employee) any { return employeeName(e) }},
			{Label: "Type", Value: func(e model.Employee) any { return render.TypeBadge(string(e.EmployeeType)) }},
			{Label: "Office", Value: func(e model.Employee) any { return orDash(e.OfficeName) }},
			{Label: "Company", Value: func(e model.Employee) any { return orDash(e.CompanyName) }},
		},
		Rows: list,
		Actions: func(e model.Employee) []render.Action {
			return []render.Action{
				editAction("employees", e.ID),
				deleteAction("/employee/employees/"+idString(e.ID), "employee", data.CSRFField),
			}
		},
		EmptyMessage: "No employees found.",
	})
	s.renderPage(w, r, data)
}

func employeeFormValues(e model.Employee) url.Values {
	form := url.Values{
		"companyId":    {idString(e.CompanyID)},
		"employeeType": {string(e.EmployeeType)},
		"hireDate":     {e.HireDate},
	}
	if e.OfficeID != nil {
		form.Set("officeId", idString(*e.OfficeID))
	}
	if e.Salary != nil {
		form.Set("salary", e.Salary.StringFixed(2))
	}
	return form
}

func employeeRequestFrom(form url.Values, userID int64) (model.EmployeeRequest, validation.FormResult) {
	in := validation.EmployeeInput{
		CompanyID:    trimmed(form, "companyId"),
		EmployeeType: trimmed(form, "employeeType"),
		HireDate:     trimmed(form, "hireDate"),
		Salary:       trimmed(form, "salary"),
	}
	res := validation.EmployeeForm(in)
	if t := model.EmployeeType(in.EmployeeType); in.EmployeeType != "" && t != model.EmployeeTypeCourier && t != model.EmployeeTypeOfficeStaff {
		res.Valid = false
		res.Errors = append(res.Errors, "Please select a valid employee type.")
	}
	companyID, _ := strconv.ParseInt(in.CompanyID, 10, 64)
	salary, _ := decimal.NewFromString(in.Salary)
	return model.EmployeeRequest{
		UserID:       userID,
		CompanyID:    companyID,
		EmployeeType: model.EmployeeType(in.EmployeeType),
		OfficeID:     optionalID(form.Get("officeId")),
		HireDate:     in.HireDate,
		Salary:       salary,
	}, res
}

func accountFrom(form url.Values) (username, email, password string) {
	return trimmed(form, "username"), trimmed(form, "email"), strings.TrimSpace(form.Get("password"))
}

func (s *server) createEmployeeProxy(w http.ResponseWriter, r *http.Request) {
	target := employeeView("employees")
	if !postForm(w, r, target) {
		return
	}
	username, email, password := accountFrom(r.PostForm)
	account := validation.SignupForm(username, email, password)
	req, res := employeeRequestFrom(r.PostForm, 0)
	if !account.Valid || !res.Valid {
		msgs := append(append([]string{}, account.Errors...), res.Errors...)
		s.rerender(w, r, "employees", nil, http.StatusUnprocessableEntity, withError(strings.Join(msgs, " ")))
		return
	}

	sc := session.From(r.Context())
	emp, err := s.registerEmployee(r.Context(), sc, model.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
		Role:     model.RoleEmployee,
	}, req)
	if err != nil {
		s.rejectForm(w, r, "employees", nil, err)
		return
	}
	s.logFor(r).Info().Int64("employee_id", emp.ID).Msg("employee created")
	redirectWith(w, r, target, "message", "Employee created successfully.")
}

// registerEmployee creates the login account, then fills in the employee record
// the backend attached to it. When no record was attached one is created.
func (s *server) registerEmployee(ctx context.Context, sc *session.Context, account model.RegisterRequest, req model.EmployeeRequest) (*model.Employee, error) {
	auth, err := sc.API.Register(ctx, account)
	if err != nil {
		return nil, err
	}
	req.UserID = auth.UserID

	list, err := sc.API.Employees(ctx)
	if err != nil {
		return nil, fmt.Errorf("account %q created but employees could not be listed: %w", account.Username, err)
	}
	for _, e := range list {
		if e.UserID == auth.UserID {
			return sc.API.UpdateEmployee(ctx, e.ID, req)
		}
	}
	return sc.API.CreateEmployee(ctx, req)
}

func (s *server) updateEmployeeProxy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	target := employeeView("employees")
	if !postForm(w, r, target) {
		return
	}
	query := url.Values{"edit": {idString(id)}}
	sc := session.From(r.Context())
	current, err := sc.API.Employee(r.Context(), id)
	if err != nil {
		s.fail(w, r, target, err)
		return
	}
	req, res := employeeRequestFrom(r.PostForm, current.UserID)
	if !res.Valid {
		s.rerender(w, r, "employees", query, http.StatusUnprocessableEntity, withError(res.Message()))
		return
	}
	if _, err := sc.API.UpdateEmployee(r.Context(), id, req); err != nil {
		s.rejectForm(w, r, "employees", query, err)
		return
	}
	redirectWith(w, r, target, "message", "Employee updated successfully.")
}

func (s *server) deleteEmployeeProxy(w http.ResponseWriter, r *http.Request) {
	s.deleteProxy(w, r, "employees", "Employee", func(ctx context.Context, api *apiclient.Client, id int64) error {
		return api.DeleteEmployee(ctx, id)
	})
}

// customers

func customerMatches(c model.Customer, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range []string{c.DisplayName(), c.Phone, c.Email} {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func (s *server) customersView(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	if id := queryID(r, "shipments"); id > 0 {
		s.customerShipmentsView(w, r, sc, data, id)
		return
	}
	editID := queryID(r, "edit")
	data.Search = r.URL.Query().Get("q")
	var (
		list    []model.Customer
		editing *model.Customer
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		list, err = customersOf(ctx, sc)
		return err
	})
	if editID > 0 {
		g.Go(func() (err error) {
			editing, err = sc.API.Customer(ctx, editID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.viewFailed(w, r, data, err)
		return
	}

	data.FormAction = "/employee/customers"
	if editing != nil {
		data.Editing = true
		data.Customer = editing
		data.FormAction += "/" + idString(editing.ID)
		if data.Form == nil {
			data.Form = url.Values{"phone": {editing.Phone}, "address": {editing.Address}}
		}
	}

	filtered := make([]model.Customer, 0, len(list))
	for _, c := range list {
		if customerMatches(c, data.Search) {
			filtered = append(filtered, c)
		}
	}
	data.Table = render.Table(render.TableConfig[model.Customer]{
		Columns: []render.Column[model.Customer]{
			{Label: "ID", Value: func(c model.Customer) any { return c.ID }},
			{Label: "Name", Value: func(c model.Customer) any { return render.OrNA(c.DisplayName()) }},
			{Label: "Phone", Value: func(c model.Customer) any { return orDash(c.Phone) }},
			{Label: "Email", Value: func(c model.Customer) any { return orDash(c.Email) }},
		},
		Rows: filtered,
		Actions: func(c model.Customer) []render.Action {
			return []render.Action{
				editAction("clients", c.ID),
				deleteAction("/employee/customers/"+idString(c.ID), "customer", data.CSRFField),
				{Label: "Shipments", Class: "btn-secondary", Href: employeeView("clients") + "&shipments=" + idString(c.ID)},
			}
		},
		EmptyMessage: "No customers found.",
	})
	s.renderPage(w, r, data)
}

func (s *server) customerShipmentsView(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData, customerID int64) {
	var sent, received []model.Shipment
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		data.Customer, err = sc.API.Customer(ctx, customerID)
		return err
	})
	g.Go(func() (err error) {
		sent, err = sc.API.SentByCustomer(ctx, customerID)
		return err
	})
	g.Go(func() (err error) {
		received, err = sc.API.ReceivedByCustomer(ctx, customerID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.viewFailed(w, r, data, err)
		return
	}

	data.Sections = []section{
		{
			Title:    fmt.Sprintf("Sent (%d)", len(sent)),
			Subtitle: fmt.Sprintf("%d delivered", shipment.CountStatus(sent, model.StatusDelivered)),
			Body: render.Table(render.TableConfig[model.Shipment]{
				Columns: []render.Column[model.Shipment]{
					{Label: "ID", Value: func(s model.Shipment) any { return "#" + idString(s.ID) }},
					{Label: "Receiver", Value: func(s model.Shipment) any { return render.OrNA(s.Receiver()) }},
					{Label: "Destination", Value: func(s model.Shipment) any { return s.Destination() }},
					{Label: "Weight", Value: func(s model.Shipment) any { return render.FormatWeight(s.Weight) }},
					{Label: "Price", Value: func(s model.Shipment) any { return render.FormatBGN(s.Price) }},
					{Label: "Status", Value: func(s model.Shipment) any { return render.StatusPill(s.Status) }},
				},
				Rows:         sent,
				EmptyMessage: "No sent shipments.",
			}),
		},
		{
			Title:    fmt.Sprintf("Received (%d)", len(received)),
			Subtitle: fmt.Sprintf("%d delivered", shipment.CountStatus(received, model.StatusDelivered)),
			Body: render.Table(render.TableConfig[model.Shipment]{
				Columns: []render.Column[model.Shipment]{
					{Label: "ID", Value: func(s model.Shipment) any { return "#" + idString(s.ID) }},
					{Label: "Sender", Value: func(s model.Shipment) any { return render.OrNA(s.SenderName) }},
					{Label: "Origin", Value: func(s model.Shipment) any { return render.OrNA(s.OriginOfficeName) }},
					{Label: "Weight", Value: func(s model.Shipment) any { return render.FormatWeight(s.Weight) }},
					{Label: "Price", Value: func(s model.Shipment) any { return render.FormatBGN(s.Price) }},
					{Label: "Status", Value: func(s model.Shipment) any { return render.StatusPill(s.Status) }},
				},
				Rows:         received,
				EmptyMessage: "No received shipments.",
			}),
		},
	}
	s.renderPage(w, r, data)
}

// customerAccount is one customer to create: a login plus contact details.
type customerAccount struct {
	Username string
	Email    string
	Password string
	Phone    string
	Address  string
}

func (a customerAccount) validate() validation.FormResult {
	return validation.CustomerRegistration(a.Username, a.Email, a.Password, a.Phone)
}

// registerCustomer creates the login account and stores the contact details on
// the customer record attached to it, creating the record when none exists.
func (s *server) registerCustomer(ctx context.Context, sc *session.Context, a customerAccount) (*model.Customer, error) {
	auth, err := sc.API.Register(ctx, model.RegisterRequest{
		Username: a.Username,
		Email:    a.Email,
		Password: a.Password,
		Role:     model.RoleCustomer,
	})
	if err != nil {
		return nil, err
	}
	req := model.CustomerRequest{UserID: auth.UserID, Phone: a.Phone, Address: a.Address}

	existing, err := sc.API.CustomerByUser(ctx, auth.UserID)
	var apiErr *apiclient.APIError
	switch {
	case err == nil:
		return sc.API.UpdateCustomer(ctx, existing.ID, req)
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
		return sc.API.CreateCustomer(ctx, req)
	default:
		return nil, fmt.Errorf("account %q created but its customer record could not be loaded: %w", a.Username, err)
	}
}

func (s *server) createCustomerProxy(w http.ResponseWriter, r *http.Request) {
	target := employeeView("clients")
	if !postForm(w, r, target) {
		return
	}
	username, email, password := accountFrom(r.PostForm)
	account := customerAccount{
		Username: username,
		Email:    email,
		Password: password,
		Phone:    trimmed(r.PostForm, "phone"),
		Address:  trimmed(r.PostForm, "address"),
	}
	if res := account.validate(); !res.Valid {
		s.rerender(w, r, "clients", nil, http.StatusUnprocessableEntity, withError(res.Message()))
		return
	}
	sc := session.From(r.Context())
	created, err := s.registerCustomer(r.Context(), sc, account)
	if err != nil {
		s.rejectForm(w, r, "clients", nil, err)
		return
	}
	s.logFor(r).Info().Int64("customer_id", created.ID).Msg("customer created")
	redirectWith(w, r, target, "message", "Customer created successfully.")
}

func (s *server) updateCustomerProxy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	target := employeeView("clients")
	if !postForm(w, r, target) {
		return
	}
	query := url.Values{"edit": {idString(id)}}
	phone := trimmed(r.PostForm, "phone")
	if res := validation.Form(validation.Phone(phone)); !res.Valid {
		s.rerender(w, r, "clients", query, http.StatusUnprocessableEntity, withError(res.Message()))
		return
	}
	sc := session.From(r.Context())
	current, err := sc.API.Customer(r.Context(), id)
	if err != nil {
		s.fail(w, r, target, err)
		return
	}
	req := model.CustomerRequest{UserID: current.UserID, Phone: phone, Address: trimmed(r.PostForm, "address")}
	if _, err := sc.API.UpdateCustomer(r.Context(), id, req); err != nil {
		s.rejectForm(w, r, "clients", query, err)
		return
	}
	redirectWith(w, r, target, "message", "Customer updated successfully.")
}

func (s *server) deleteCustomerProxy(w http.ResponseWriter, r *http.Request) {
	s.deleteProxy(w, r, "clients", "Customer", func(ctx context.Context, api *apiclient.Client, id int64) error {
		return api.DeleteCustomer(ctx, id)
	})
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func idStringOrEmpty(id int64) string {
	if id <= 0 {
		return ""
	}
	return idString(id)
}
