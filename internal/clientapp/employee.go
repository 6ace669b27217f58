package clientapp

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/phillip-england/shipdesk/internal/apiclient"
	"github.com/phillip-england/shipdesk/internal/model"
	"github.com/phillip-england/shipdesk/internal/render"
	"github.com/phillip-england/shipdesk/internal/session"
	"github.com/phillip-england/shipdesk/internal/shipment"
	"github.com/phillip-england/shipdesk/internal/validation"
	"github.com/phillip-england/shipdesk/internal/waybill"
)

func (s *server) employeeDashboard(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	var (
		metrics   *model.DashboardMetrics
		employees []model.Employee
		customers []model.Customer
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		metrics, err = sc.API.DashboardMetrics(ctx)
		return err
	})
	g.Go(func() (err error) {
		employees, err = employeesOf(ctx, sc)
		return err
	})
	g.Go(func() (err error) {
		customers, err = customersOf(ctx, sc)
		return err
	})
	if err := g.Wait(); err != nil {
		s.viewFailed(w, r, data, err)
		return
	}

	data.Cards = render.SummaryCards([]render.Card{
		{Title: "Total Shipments", Value: count64(metrics.TotalShipments)},
		{Title: "Pending", Value: count64(metrics.PendingShipments), Class: "card-pending"},
		{Title: "Delivered", Value: count64(metrics.DeliveredShipments), Class: "card-delivered"},
		{Title: "Revenue (BGN)", Value: render.FormatMoney(metrics.TotalRevenue), Class: "card-revenue"},
	})
	data.QuickStats = render.SummaryCards([]render.Card{
		{Title: "Employees", Value: count(len(employees))},
		{Title: "Customers", Value: count(len(customers))},
		{Title: "Active Shipments", Value: count64(metrics.PendingShipments)},
	})
	s.renderPage(w, r, data)
}

// loadShipmentFormData fills the select options of the shipment form. Pricing is
// optional: without it the form works and only the price hint is missing.
func (s *server) loadShipmentFormData(ctx context.Context, sc *session.Context, data *pageData) error {
	var (
		customers []model.Customer
		offices   []model.Office
		pricing   *model.PricingInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		customers, err = customersOf(gctx, sc)
		return err
	})
	g.Go(func() (err error) {
		offices, err = officesOf(gctx, sc)
		return err
	})
	g.Go(func() error {
		info, err := sc.API.PricingInfo(gctx)
		if apiclient.IsUnauthorized(err) {
			return err
		}
		pricing = info
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	data.Customers = customers
	data.Offices = offices
	data.PricingInfo = pricing
	return nil
}

func (s *server) registerShipmentView(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	if err := s.loadShipmentFormData(r.Context(), sc, &data); err != nil {
		s.viewFailed(w, r, data, err)
		return
	}
	if data.Form == nil {
		data.Form = url.Values{"deliveryType": {"office"}}
	}
	data.FormAction = "/employee/shipments"
	s.renderPage(w, r, data)
}

func (s *server) allShipmentsView(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	q := r.URL.Query()
	data.Search = q.Get("q")
	data.Status = q.Get("status")
	data.Statuses = shipmentStatusChoices()
	editID := queryID(r, "edit")

	var list []model.Shipment
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		list, err = sc.API.Shipments(ctx)
		return err
	})
	if editID > 0 {
		g.Go(func() (err error) {
			data.Shipment, err = sc.API.Shipment(ctx, editID)
			return err
		})
		g.Go(func() error {
			return s.loadShipmentFormData(ctx, sc, &data)
		})
	}
	if err := g.Wait(); err != nil {
		s.viewFailed(w, r, data, err)
		return
	}

	if data.Shipment != nil {
		data.Editing = true
		data.FormAction = "/employee/shipments/" + idString(editID)
		if data.Form == nil {
			data.Form = shipmentFormValues(*data.Shipment)
		}
	}
	filtered := shipment.Filter(list, shipment.Criteria{Search: data.Search, Status: model.ShipmentStatus(data.Status)})
	data.Table = shipmentsTable(filtered, data.CSRFField)
	s.renderPage(w, r, data)
}

var statusControl = template.Must(template.New("status").Parse(
	`<form method="post" action="{{.Action}}" class="status-form" data-autosubmit>{{.CSRF}}` +
		`<select name="status" class="status-select" aria-label="Change status"{{if .Locked}} disabled{{end}}>` +
		`<option value="">Change status...</option>` +
		`{{range .Options}}<option value="{{.Value}}"{{if .Disabled}} disabled{{end}}>{{.Label}}</option>{{end}}` +
		`</select><button type="submit" class="btn btn-sm"{{if .Locked}} disabled{{end}}>Update</button></form>`))

type statusControlData struct {
	Action  string
	CSRF    template.HTML
	Locked  bool
	Options []shipment.StatusOption
}

// statusSelect renders the per-row status form. Delivered and cancelled shipments get it disabled.
func statusSelect(s model.Shipment, csrfField template.HTML) template.HTML {
	data := statusControlData{
		Action:  "/employee/shipments/" + idString(s.ID) + "/status",
		CSRF:    csrfField,
		Locked:  shipment.IsTerminal(s.Status),
		Options: shipment.StatusOptions(s.Status),
	}
	var buf bytes.Buffer
	if err := statusControl.Execute(&buf, data); err != nil {
		return template.HTML(template.HTMLEscapeString(err.Error()))
	}
	return template.HTML(buf.String())
}

func shipmentsTable(list []model.Shipment, csrfField template.HTML) template.HTML {
	return render.Table(render.TableConfig[model.Shipment]{
		Columns: []render.Column[model.Shipment]{
			{Label: "ID", Value: func(s model.Shipment) any { return "#" + idString(s.ID) }},
			{Label: "Sender", Value: func(s model.Shipment) any { return render.OrNA(s.SenderName) }},
			{Label: "Receiver", Value: func(s model.Shipment) any { return render.OrNA(s.Receiver()) }},
			{Label: "Origin", Value: func(s model.Shipment) any { return render.OrNA(s.OriginOfficeName) }},
			{Label: "Destination", Value: func(s model.Shipment) any { return s.Destination() }},
			{Label: "Weight", Value: func(s model.Shipment) any { return render.FormatWeight(s.Weight) }},
			{Label: "Price", Value: func(s model.Shipment) any { return render.FormatBGN(s.Price) }},
			{Label: "Status", Value: func(s model.Shipment) any { return render.StatusPill(s.Status) }},
			{Label: "Change Status", Value: func(s model.Shipment) any { return statusSelect(s, csrfField) }},
		},
		Rows: list,
		Actions: func(s model.Shipment) []render.Action {
			id := idString(s.ID)
			return []render.Action{
				{Label: "Edit", Class: "btn-secondary", Href: employeeView("all") + "&edit=" + id},
				{Label: "Waybill", Class: "btn-secondary", Href: "/employee/shipments/" + id + "/waybill.pdf"},
				{Label: "Delete", Class: "btn-danger", PostTo: "/employee/shipments/" + id + "/delete", Confirm: "Are you sure you want to delete this shipment?", CSRF: csrfField},
			}
		},
		EmptyMessage: "No shipments found.",
	})
}

func shipmentInputFrom(form url.Values) validation.ShipmentInput {
	return validation.ShipmentInput{
		SenderID:         trimmed(form, "senderId"),
		RecipientID:      trimmed(form, "recipientId"),
		Weight:           trimmed(form, "weight"),
		DeliverToAddress: form.Get("deliveryType") == "address",
		DeliveryAddress:  trimmed(form, "deliveryAddress"),
		DeliveryOfficeID: trimmed(form, "deliveryOfficeId"),
	}
}

const msgBadSelection = "Please pick the sender, receiver and offices from the lists."

// shipmentRequestFrom converts an already validated form. It reports false when
// a select carried something other than an id.
func shipmentRequestFrom(form url.Values) (model.ShipmentRequest, bool) {
	in := shipmentInputFrom(form)
	sender, err := strconv.ParseInt(in.SenderID, 10, 64)
	if err != nil {
		return model.ShipmentRequest{}, false
	}
	recipient, err := strconv.ParseInt(in.RecipientID, 10, 64)
	if err != nil {
		return model.ShipmentRequest{}, false
	}
	weight, err := decimal.NewFromString(in.Weight)
	if err != nil {
		return model.ShipmentRequest{}, false
	}
	req := model.ShipmentRequest{
		SenderID:       sender,
		RecipientID:    recipient,
		OriginOfficeID: optionalID(form.Get("originOfficeId")),
		Weight:         weight,
	}
	if in.DeliverToAddress {
		req.DeliveryAddress = in.DeliveryAddress
		return req, true
	}
	req.DeliveryOfficeID = optionalID(in.DeliveryOfficeID)
	return req, req.DeliveryOfficeID != nil
}

func shipmentFormValues(s model.Shipment) url.Values {
	form := url.Values{}
	form.Set("senderId", idString(s.SenderID))
	form.Set("recipientId", idString(s.RecipientID))
	if s.OriginOfficeID != nil {
		form.Set("originOfficeId", idString(*s.OriginOfficeID))
	}
	form.Set("weight", s.Weight.String())
	if s.DeliverToAddress {
		form.Set("deliveryType", "address")
		form.Set("deliveryAddress", s.DeliveryAddress)
	} else {
		form.Set("deliveryType", "office")
	}
	if s.DeliveryOfficeID != nil {
		form.Set("deliveryOfficeId", idString(*s.DeliveryOfficeID))
	}
	return form
}

func withError(msg string) func(*pageData) {
	return func(d *pageData) { d.Error = msg }
}

// rejectForm re-renders view with the backend's reason for refusing the form.
func (s *server) rejectForm(w http.ResponseWriter, r *http.Request, view string, query url.Values, err error) {
	if apiclient.IsUnauthorized(err) {
		s.expire(w, r)
		return
	}
	s.logFor(r).Warn().Err(err).Str("view", view).Msg("form rejected")
	s.rerender(w, r, view, query, statusFor(err), withError(apiclient.MessageOf(err)))
}

// estimatePrice answers the "Calculate Price" button of the shipment form.
func (s *server) estimatePrice(w http.ResponseWriter, r *http.Request, sc *session.Context, view string, query url.Values) {
	weight, err := decimal.NewFromString(trimmed(r.PostForm, "weight"))
	if err != nil || !weight.IsPositive() {
		s.rerender(w, r, view, query, http.StatusUnprocessableEntity, withError("Enter a weight greater than 0 to calculate the price."))
		return
	}
	pricing, err := sc.API.PricingInfo(r.Context())
	if err != nil {
		s.rejectForm(w, r, view, query, err)
		return
	}
	price := shipment.EstimatePrice(*pricing, shipment.Quote{
		Weight:           weight,
		DeliverToAddress: r.PostForm.Get("deliveryType") == "address",
	})
	s.rerender(w, r, view, query, http.StatusOK, func(d *pageData) {
		d.Estimate = render.FormatMoney(price)
	})
}

func (s *server) createShipmentProxy(w http.ResponseWriter, r *http.Request) {
	target := employeeView("register")
	if !postForm(w, r, target) {
		return
	}
	sc := session.From(r.Context())
	if r.PostForm.Get("intent") == "estimate" {
		s.estimatePrice(w, r, sc, "register", nil)
		return
	}
	if res := validation.ShipmentForm(shipmentInputFrom(r.PostForm)); !res.Valid {
		s.rerender(w, r, "register", nil, http.StatusUnprocessableEntity, withError(res.Message()))
		return
	}
	req, ok := shipmentRequestFrom(r.PostForm)
	if !ok {
		s.rerender(w, r, "register", nil, http.StatusUnprocessableEntity, withError(msgBadSelection))
		return
	}
	created, err := sc.API.CreateShipment(r.Context(), req)
	if err != nil {
		s.rejectForm(w, r, "register", nil, err)
		return
	}
	s.logFor(r).Info().Int64("shipment_id", created.ID).Msg("shipment registered")
	redirectWith(w, r, target, "message", fmt.Sprintf("Shipment registered successfully! ID: %d, Price: %s BGN", created.ID, render.FormatCurrency(created.Price)))
}

func (s *server) updateShipmentProxy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	query := url.Values{"edit": {idString(id)}}
	if !postForm(w, r, employeeView("all")+"&edit="+idString(id)) {
		return
	}
	sc := session.From(r.Context())
	if r.PostForm.Get("intent") == "estimate" {
		s.estimatePrice(w, r, sc, "all", query)
		return
	}
	if res := validation.ShipmentForm(shipmentInputFrom(r.PostForm)); !res.Valid {
		s.rerender(w, r, "all", query, http.StatusUnprocessableEntity, withError(res.Message()))
		return
	}
	req, ok := shipmentRequestFrom(r.PostForm)
	if !ok {
		s.rerender(w, r, "all", query, http.StatusUnprocessableEntity, withError(msgBadSelection))
		return
	}
	if _, err := sc.API.UpdateShipment(r.Context(), id, req); err != nil {
		s.rejectForm(w, r, "all", query, err)
		return
	}
	redirectWith(w, r, employeeView("all"), "message", fmt.Sprintf("Shipment #%d updated successfully.", id))
}

func isStatusTarget(status model.ShipmentStatus) bool {
	for _, opt := range shipment.StatusOptions("") {
		if opt.Value == status {
			return true
		}
	}
	return false
}

func (s *server) updateShipmentStatusProxy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	target := employeeView("all")
	if !postForm(w, r, target) {
		return
	}
	status := model.ShipmentStatus(trimmed(r.PostForm, "status"))
	if !isStatusTarget(status) {
		redirectWith(w, r, target, "error", "Please choose a new status.")
		return
	}
	sc := session.From(r.Context())
	if _, err := sc.API.UpdateShipmentStatus(r.Context(), id, status); err != nil {
		s.fail(w, r, target, err)
		return
	}
	redirectWith(w, r, target, "message", fmt.Sprintf("Shipment #%d status updated to %s.", id, shipment.Label(status)))
}

func (s *server) deleteShipmentProxy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	target := employeeView("all")
	if !postForm(w, r, target) {
		return
	}
	sc := session.From(r.Context())
	if err := sc.API.DeleteShipment(r.Context(), id); err != nil {
		s.fail(w, r, target, err)
		return
	}
	redirectWith(w, r, target, "message", "Shipment deleted successfully.")
}

func (s *server) employeeWaybill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	sc := session.From(r.Context())
	sh, err := sc.API.Shipment(r.Context(), id)
	if err != nil {
		s.fail(w, r, employeeView("all"), err)
		return
	}
	s.writeWaybill(w, r, *sh, employeeView("all"))
}

func (s *server) writeWaybill(w http.ResponseWriter, r *http.Request, sh model.Shipment, back string) {
	pdf, err := waybill.Render(sh, s.cfg.AppName, s.now())
	if err != nil {
		s.logFor(r).Error().Err(err).Int64("shipment_id", sh.ID).Msg("waybill render failed")
		redirectWith(w, r, back, "error", "Unable to generate the waybill.")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="waybill-%d.pdf"`, sh.ID))
	_, _ = w.Write(pdf)
}
