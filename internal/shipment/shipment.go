// Package shipment holds the list arithmetic the dashboards apply to backend data.
package shipment

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/phillip-england/shipdesk/internal/model"
)

// IsTerminal reports whether no further status change is possible.
func IsTerminal(status model.ShipmentStatus) bool {
	return status == model.StatusDelivered || status == model.StatusCancelled
}

// IsPending covers shipments that have not reached their receiver yet.
func IsPending(status model.ShipmentStatus) bool {
	return status == model.StatusRegistered || status == model.StatusInTransit
}

type StatusOption struct {
	Value    model.ShipmentStatus
	Label    string
	Disabled bool
}

// StatusOptions lists the targets of the status control with the current status
// disabled. The backend decides which transitions are legal.
func StatusOptions(current model.ShipmentStatus) []StatusOption {
	values := []model.ShipmentStatus{model.StatusInTransit, model.StatusDelivered, model.StatusCancelled}
	out := make([]StatusOption, 0, len(values))
	for _, v := range values {
		out = append(out, StatusOption{Value: v, Label: Label(v), Disabled: v == current})
	}
	return out
}

// Label turns IN_TRANSIT into "In Transit".
func Label(status model.ShipmentStatus) string {
	parts := strings.Split(strings.ToLower(string(status)), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// Merge combines sent and received lists. A shipment present in both keeps its sent copy.
func Merge(sent, received []model.Shipment) []model.Shipment {
	seen := make(map[int64]struct{}, len(sent)+len(received))
	out := make([]model.Shipment, 0, len(sent)+len(received))
	for _, list := range [][]model.Shipment{sent, received} {
		for _, s := range list {
			if _, dup := seen[s.ID]; dup {
				continue
			}
			seen[s.ID] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// SortByRegisteredDesc sorts newest first. Ties keep their input order.
func SortByRegisteredDesc(list []model.Shipment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].RegisteredAt.After(list[j].RegisteredAt.Time)
	})
}

// Criteria is the search box plus status dropdown of a shipment table.
type Criteria struct {
	Search string
	Status model.ShipmentStatus
	// Fields, when set, overrides which text fields Search looks at.
	Fields func(model.Shipment) []string
}

func defaultFields(s model.Shipment) []string {
	return []string{s.SenderName, s.Receiver()}
}

// Filter returns the shipments matching c. Search is case-insensitive and also
// matches the numeric id.
func Filter(list []model.Shipment, c Criteria) []model.Shipment {
	term := strings.ToLower(strings.TrimSpace(c.Search))
	fields := c.Fields
	if fields == nil {
		fields = defaultFields
	}
	out := make([]model.Shipment, 0, len(list))
	for _, s := range list {
		if c.Status != "" && s.Status != c.Status {
			continue
		}
		if term != "" && !matches(s, term, fields) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matches(s model.Shipment, term string, fields func(model.Shipment) []string) bool {
	if strings.Contains(strconv.FormatInt(s.ID, 10), term) {
		return true
	}
	for _, f := range fields(s) {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Pending keeps REGISTERED and IN_TRANSIT shipments.
func Pending(list []model.Shipment) []model.Shipment {
	out := make([]model.Shipment, 0, len(list))
	for _, s := range list {
		if IsPending(s.Status) {
			out = append(out, s)
		}
	}
	return out
}

func CountStatus(list []model.Shipment, status model.ShipmentStatus) int {
	n := 0
	for _, s := range list {
		if s.Status == status {
			n++
		}
	}
	return n
}

// Direction tells a customer whether they sent or receive a shipment.
type Direction string

const (
	Sent     Direction = "Sent"
	Incoming Direction = "Incoming"
)

type Activity struct {
	Shipment     model.Shipment
	Direction    Direction
	Counterparty string
}

// Recent merges both directions, sorts newest first and keeps the first limit entries.
func Recent(sent, received []model.Shipment, limit int) []Activity {
	sentIDs := make(map[int64]struct{}, len(sent))
	for _, s := range sent {
		sentIDs[s.ID] = struct{}{}
	}
	merged := Merge(sent, received)
	SortByRegisteredDesc(merged)
	if limit >= 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	out := make([]Activity, 0, len(merged))
	for _, s := range merged {
		if _, isSent := sentIDs[s.ID]; isSent {
			out = append(out, Activity{Shipment: s, Direction: Sent, Counterparty: s.Receiver()})
			continue
		}
		out = append(out, Activity{Shipment: s, Direction: Incoming, Counterparty: s.SenderName})
	}
	return out
}

// Quote is the pricing input of the registration form preview.
type Quote struct {
	Weight           decimal.Decimal
	DeliverToAddress bool
}

// EstimatePrice computes base + weight*perKg, plus the address fee for door delivery,
// rounded to cents. The backend price is authoritative.
func EstimatePrice(p model.PricingInfo, q Quote) decimal.Decimal {
	total := p.BasePrice.Add(q.Weight.Mul(p.PricePerKg))
	if q.DeliverToAddress {
		total = total.Add(p.AddressDeliveryFee)
	}
	return total.Round(2)
}
