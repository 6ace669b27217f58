package shipment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillip-england/shipdesk/internal/model"
)

func at(day int) model.Timestamp {
	return model.Timestamp{Time: time.Date(2024, 5, day, 10, 0, 0, 0, time.UTC)}
}

func ids(list []model.Shipment) []int64 {
	out := make([]int64, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestMergeKeepsSentCopy(t *testing.T) {
	sent := []model.Shipment{{ID: 1, SenderName: "from-sent"}}
	received := []model.Shipment{{ID: 1, SenderName: "from-received"}, {ID: 2}}

	got := Merge(sent, received)
	require.Len(t, got, 2)
	assert.Equal(t, []int64{1, 2}, ids(got))
	assert.Equal(t, "from-sent", got[0].SenderName)
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
}

func TestSortByRegisteredDesc(t *testing.T) {
	list := []model.Shipment{
		{ID: 1, RegisteredAt: at(1)},
		{ID: 2, RegisteredAt: at(3)},
		{ID: 3, RegisteredAt: at(2)},
		{ID: 4, RegisteredAt: at(3)},
	}
	SortByRegisteredDesc(list)
	assert.Equal(t, []int64{2, 4, 3, 1}, ids(list))
}

func TestFilter(t *testing.T) {
	list := []model.Shipment{
		{ID: 10, SenderName: "Ana Petrova", ReceiverName: "Ivan", Status: model.StatusInTransit},
		{ID: 11, SenderName: "Boris", RecipientName: "Maria Ivanova", Status: model.StatusDelivered},
		{ID: 205, SenderName: "Georgi", ReceiverName: "Elena", Status: model.StatusRegistered},
	}

	assert.Equal(t, []int64{10, 11}, ids(Filter(list, Criteria{Search: "IVAN"})))
	assert.Equal(t, []int64{205}, ids(Filter(list, Criteria{Search: "205"})))
	assert.Equal(t, []int64{11}, ids(Filter(list, Criteria{Status: model.StatusDelivered})))
	assert.Equal(t, []int64{10}, ids(Filter(list, Criteria{Search: "ivan", Status: model.StatusInTransit})))
	assert.Len(t, Filter(list, Criteria{}), 3)

	onlySender := Criteria{Search: "elena", Fields: func(s model.Shipment) []string { return []string{s.SenderName} }}
	assert.Empty(t, Filter(list, onlySender))
}

func TestPendingAndTerminal(t *testing.T) {
	list := []model.Shipment{
		{ID: 1, Status: model.StatusRegistered},
		{ID: 2, Status: model.StatusInTransit},
		{ID: 3, Status: model.StatusDelivered},
		{ID: 4, Status: model.StatusCancelled},
	}
	assert.Equal(t, []int64{1, 2}, ids(Pending(list)))
	assert.True(t, IsTerminal(model.StatusDelivered))
	assert.True(t, IsTerminal(model.StatusCancelled))
	assert.False(t, IsTerminal(model.StatusInTransit))
	assert.Equal(t, 1, CountStatus(list, model.StatusCancelled))
}

func TestRecent(t *testing.T) {
	sent := []model.Shipment{
		{ID: 1, ReceiverName: "Ivan", RegisteredAt: at(1)},
		{ID: 2, ReceiverName: "Maria", RegisteredAt: at(5)},
	}
	received := []model.Shipment{
		{ID: 2, SenderName: "ignored", RegisteredAt: at(5)},
		{ID: 3, SenderName: "Georgi", RegisteredAt: at(4)},
		{ID: 4, SenderName: "Elena", RegisteredAt: at(2)},
	}

	got := Recent(sent, received, 2)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].Shipment.ID)
	assert.Equal(t, Sent, got[0].Direction)
	assert.Equal(t, "Maria", got[0].Counterparty)
	assert.Equal(t, int64(3), got[1].Shipment.ID)
	assert.Equal(t, Incoming, got[1].Direction)
	assert.Equal(t, "Georgi", got[1].Counterparty)
}

func TestStatusOptions(t *testing.T) {
	opts := StatusOptions(model.StatusRegistered)
	require.Len(t, opts, 3)
	for _, o := range opts {
		assert.False(t, o.Disabled, o.Value)
	}

	opts = StatusOptions(model.StatusInTransit)
	assert.Equal(t, model.StatusInTransit, opts[0].Value)
	assert.Equal(t, "In Transit", opts[0].Label)
	assert.True(t, opts[0].Disabled)
	assert.False(t, opts[1].Disabled)
	assert.Equal(t, "Cancelled", opts[2].Label)
}

func TestEstimatePrice(t *testing.T) {
	pricing := model.PricingInfo{
		BasePrice:          decimal.RequireFromString("5.00"),
		PricePerKg:         decimal.RequireFromString("2.00"),
		AddressDeliveryFee: decimal.RequireFromString("10.00"),
	}

	door := EstimatePrice(pricing, Quote{Weight: decimal.NewFromInt(5), DeliverToAddress: true})
	assert.Equal(t, "25.00", door.StringFixed(2))

	office := EstimatePrice(pricing, Quote{Weight: decimal.NewFromInt(5)})
	assert.Equal(t, "15.00", office.StringFixed(2))

	odd := EstimatePrice(pricing, Quote{Weight: decimal.RequireFromString("0.333")})
	assert.Equal(t, "5.67", odd.StringFixed(2))
}
