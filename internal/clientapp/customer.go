package clientapp

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/phillip-england/shipdesk/internal/apiclient"
	"github.com/phillip-england/shipdesk/internal/model"
	"github.com/phillip-england/shipdesk/internal/navigation"
	"github.com/phillip-england/shipdesk/internal/render"
	"github.com/phillip-england/shipdesk/internal/session"
	"github.com/phillip-england/shipdesk/internal/shipment"
)

const (
	recentActivityLimit  = 5
	msgNoCustomerProfile = "Customer profile not found. Please contact support."
)

var errNoCustomerProfile = errors.New("no customer record for user")

// customerProfile loads the customer record that belongs to the signed-in user.
// The customer list is employee-only, so the lookup goes through the user id.
func customerProfile(ctx context.Context, sc *session.Context) (*model.Customer, error) {
	me, err := sc.API.CustomerByUser(ctx, sc.User.UserID)
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return nil, errNoCustomerProfile
	}
	if err != nil {
		return nil, err
	}
	return me, nil
}

// customerShipments loads both directions for the signed-in customer.
func customerShipments(ctx context.Context, sc *session.Context) (me *model.Customer, sent, received []model.Shipment, err error) {
	me, err = customerProfile(ctx, sc)
	if err != nil {
		return nil, nil, nil, err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sent, err = session.Remember(sc.Cache, "sent", func() ([]model.Shipment, error) {
			return sc.API.SentByCustomer(gctx, me.ID)
		})
		return err
	})
	g.Go(func() (err error) {
		received, err = session.Remember(sc.Cache, "received", func() ([]model.Shipment, error) {
			return sc.API.ReceivedByCustomer(gctx, me.ID)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return me, sent, received, nil
}

func (s *server) customerFailed(w http.ResponseWriter, r *http.Request, data pageData, err error) {
	if errors.Is(err, errNoCustomerProfile) {
		data.Error = msgNoCustomerProfile
		data.status = http.StatusNotFound
		s.renderPage(w, r, data)
		return
	}
	s.viewFailed(w, r, data, err)
}

func customerView(view string) string {
	return navigation.ViewURL(navigation.CustomerPath, view)
}

func customerWaybillAction(sh model.Shipment) []render.Action {
	return []render.Action{{
		Label: "Waybill",
		Class: "btn-secondary",
		Href:  fmt.Sprintf("/customer/shipments/%d/waybill.pdf", sh.ID),
	}}
}

// customerTable lists one direction. counterpart names the other party's column.
func customerTable(list []model.Shipment, counterpart string) template.HTML {
	party := func(sh model.Shipment) any { return render.OrNA(sh.Receiver()) }
	if counterpart == "Sender" {
		party = func(sh model.Shipment) any { return render.OrNA(sh.SenderName) }
	}
	return render.Table(render.TableConfig[model.Shipment]{
		Columns: []render.Column[model.Shipment]{
			{Label: "ID", Value: func(sh model.Shipment) any { return "#" + idString(sh.ID) }},
			{Label: counterpart, Value: party},
			{Label: "Origin", Value: func(sh model.Shipment) any { return render.OrNA(sh.OriginOfficeName) }},
			{Label: "Destination", Value: func(sh model.Shipment) any { return sh.Destination() }},
			{Label: "Weight", Value: func(sh model.Shipment) any { return render.FormatWeight(sh.Weight) }},
			{Label: "Price", Value: func(sh model.Shipment) any { return render.FormatBGN(sh.Price) }},
			{Label: "Status", Value: func(sh model.Shipment) any { return render.StatusPill(sh.Status) }},
			{Label: "Date", Value: func(sh model.Shipment) any { return render.FormatDate(sh.RegisteredAt) }},
		},
		Rows:         list,
		Actions:      customerWaybillAction,
		EmptyMessage: "No shipments found.",
	})
}

func (s *server) customerDashboard(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	var (
		metrics        *model.CustomerMetrics
		sent, received []model.Shipment
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		metrics, err = sc.API.CustomerMetrics(ctx)
		return err
	})
	g.Go(func() (err error) {
		_, sent, received, err = customerShipments(ctx, sc)
		return err
	})
	if err := g.Wait(); err != nil {
		s.customerFailed(w, r, data, err)
		return
	}

	data.Subtitle = fmt.Sprintf("Welcome back, %s! Here you can track all your shipments.", sc.User.Username)
	data.Cards = render.SummaryCards([]render.Card{
		{Title: "Sent", Value: count64(metrics.TotalSent)},
		{Title: "Received", Value: count64(metrics.TotalReceived), Class: "card-delivered"},
		{Title: "In Transit", Value: count64(metrics.InTransit), Class: "card-pending"},
		{Title: "Total Spent (BGN)", Value: render.FormatMoney(metrics.TotalSpent), Class: "card-revenue"},
	})
	if metrics.InTransit > 0 {
		data.Alert = template.HTML(template.HTMLEscapeString(
			fmt.Sprintf("You have %d shipment(s) currently in transit.", metrics.InTransit)))
	}
	data.Sections = []section{{
		Title: "Recent Activity",
		Body: render.Table(render.TableConfig[shipment.Activity]{
			Columns: []render.Column[shipment.Activity]{
				{Label: "ID", Value: func(a shipment.Activity) any { return "#" + idString(a.Shipment.ID) }},
				{Label: "Type", Value: func(a shipment.Activity) any { return render.TypeBadge(string(a.Direction)) }},
				{Label: "From/To", Value: func(a shipment.Activity) any { return render.OrNA(a.Counterparty) }},
				{Label: "Status", Value: func(a shipment.Activity) any { return render.StatusPill(a.Shipment.Status) }},
				{Label: "Date", Value: func(a shipment.Activity) any { return render.FormatDate(a.Shipment.RegisteredAt) }},
			},
			Rows:         shipment.Recent(sent, received, recentActivityLimit),
			EmptyMessage: "No recent activity.",
		}),
	}}
	s.renderPage(w, r, data)
}

func (s *server) customerSentView(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	_, sent, _, err := customerShipments(r.Context(), sc)
	if err != nil {
		s.customerFailed(w, r, data, err)
		return
	}
	shipment.SortByRegisteredDesc(sent)
	data.Sections = []section{{
		Title:    "Sent Shipments",
		Subtitle: "Packages you have sent to others",
		Body:     customerTable(sent, "Receiver"),
	}}
	s.renderPage(w, r, data)
}

func (s *server) customerReceivedView(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	_, _, received, err := customerShipments(r.Context(), sc)
	if err != nil {
		s.customerFailed(w, r, data, err)
		return
	}
	shipment.SortByRegisteredDesc(received)
	data.Sections = []section{{
		Title:    "Received Shipments",
		Subtitle: "Packages addressed to you",
		Body:     customerTable(received, "Sender"),
	}}
	s.renderPage(w, r, data)
}

func (s *server) customerExpectedView(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	_, sent, received, err := customerShipments(r.Context(), sc)
	if err != nil {
		s.customerFailed(w, r, data, err)
		return
	}
	outgoing := shipment.Pending(sent)
	incoming := shipment.Pending(received)
	shipment.SortByRegisteredDesc(outgoing)
	shipment.SortByRegisteredDesc(incoming)

	data.Subtitle = "Shipments that are currently being processed or delivered"
	if len(outgoing) == 0 && len(incoming) == 0 {
		data.Empty = "No shipments in transit."
		s.renderPage(w, r, data)
		return
	}
	if len(outgoing) > 0 {
		data.Sections = append(data.Sections, section{
			Title: fmt.Sprintf("Your Sent Shipments in Transit (%d)", len(outgoing)),
			Body:  customerTable(outgoing, "Receiver"),
		})
	}
	if len(incoming) > 0 {
		data.Sections = append(data.Sections, section{
			Title: fmt.Sprintf("Incoming Shipments (%d)", len(incoming)),
			Body:  customerTable(incoming, "Sender"),
		})
	}
	s.renderPage(w, r, data)
}

func (s *server) customerAllView(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	q := r.URL.Query()
	data.Search = q.Get("q")
	data.Status = q.Get("status")
	data.Statuses = shipmentStatusChoices()

	_, sent, received, err := customerShipments(r.Context(), sc)
	if err != nil {
		s.customerFailed(w, r, data, err)
		return
	}
	sentIDs := make(map[int64]struct{}, len(sent))
	for _, sh := range sent {
		sentIDs[sh.ID] = struct{}{}
	}
	all := shipment.Merge(sent, received)
	shipment.SortByRegisteredDesc(all)
	all = shipment.Filter(all, shipment.Criteria{Search: data.Search, Status: model.ShipmentStatus(data.Status)})

	direction := func(sh model.Shipment) any {
		if _, ok := sentIDs[sh.ID]; ok {
			return render.TypeBadge(string(shipment.Sent))
		}
		return render.TypeBadge(string(shipment.Incoming))
	}
	data.Subtitle = "Complete history of your shipments"
	data.Table = render.Table(render.TableConfig[model.Shipment]{
		Columns: []render.Column[model.Shipment]{
			{Label: "ID", Value: func(sh model.Shipment) any { return "#" + idString(sh.ID) }},
			{Label: "Type", Value: direction},
			{Label: "Sender", Value: func(sh model.Shipment) any { return render.OrNA(sh.SenderName) }},
			{Label: "Receiver", Value: func(sh model.Shipment) any { return render.OrNA(sh.Receiver()) }},
			{Label: "Origin", Value: func(sh model.Shipment) any { return render.OrNA(sh.OriginOfficeName) }},
			{Label: "Destination", Value: func(sh model.Shipment) any { return sh.Destination() }},
			{Label: "Weight", Value: func(sh model.Shipment) any { return render.FormatWeight(sh.Weight) }},
			{Label: "Price", Value: func(sh model.Shipment) any { return render.FormatBGN(sh.Price) }},
			{Label: "Status", Value: func(sh model.Shipment) any { return render.StatusPill(sh.Status) }},
		},
		Rows:         all,
		Actions:      customerWaybillAction,
		EmptyMessage: "No shipments found.",
	})
	s.renderPage(w, r, data)
}

// customerWaybill serves the label only for shipments the customer sent or receives.
func (s *server) customerWaybill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := customerView("all")
	sc := session.From(r.Context())
	_, sent, received, err := customerShipments(r.Context(), sc)
	if err != nil {
		if errors.Is(err, errNoCustomerProfile) {
			redirectWith(w, r, back, "error", msgNoCustomerProfile)
			return
		}
		s.fail(w, r, back, err)
		return
	}
	for _, sh := range shipment.Merge(sent, received) {
		if sh.ID == id {
			s.writeWaybill(w, r, sh, back)
			return
		}
	}
	redirectWith(w, r, back, "error", "Shipment not found.")
}
