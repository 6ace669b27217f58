package clientapp

import (
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/phillip-england/shipdesk/internal/model"
	"github.com/phillip-england/shipdesk/internal/session"
	"github.com/phillip-england/shipdesk/internal/shipment"
	"github.com/phillip-england/shipdesk/internal/validation"
)

var sampleWeight = decimal.NewFromInt(5)

func (s *server) pricingView(w http.ResponseWriter, r *http.Request, sc *session.Context, data pageData) {
	cfg, err := sc.API.PricingConfig(r.Context())
	if err != nil {
		s.viewFailed(w, r, data, err)
		return
	}
	data.Pricing = cfg
	if data.Form == nil {
		data.Form = url.Values{
			"basePrice":          {cfg.BasePrice.StringFixed(2)},
			"pricePerKg":         {cfg.PricePerKg.StringFixed(2)},
			"addressDeliveryFee": {cfg.AddressDeliveryFee.StringFixed(2)},
		}
	}
	// Sample prices show what the stored configuration charges for a 5 kg parcel.
	info := model.PricingInfo{
		BasePrice:          cfg.BasePrice,
		PricePerKg:         cfg.PricePerKg,
		AddressDeliveryFee: cfg.AddressDeliveryFee,
	}
	data.Estimate = shipment.EstimatePrice(info, shipment.Quote{Weight: sampleWeight}).StringFixed(2) +
		" / " + shipment.EstimatePrice(info, shipment.Quote{Weight: sampleWeight, DeliverToAddress: true}).StringFixed(2)
	s.renderPage(w, r, data)
}

func (s *server) updatePricingProxy(w http.ResponseWriter, r *http.Request) {
	target := employeeView("pricing")
	if !postForm(w, r, target) {
		return
	}
	base := trimmed(r.PostForm, "basePrice")
	perKg := trimmed(r.PostForm, "pricePerKg")
	fee := trimmed(r.PostForm, "addressDeliveryFee")
	if res := validation.PricingForm(base, perKg, fee); !res.Valid {
		s.rerender(w, r, "pricing", nil, http.StatusUnprocessableEntity, withError(res.Message()))
		return
	}

	sc := session.From(r.Context())
	updated, err := sc.API.UpdatePricingConfig(r.Context(), model.PricingConfigRequest{
		BasePrice:          decimal.RequireFromString(base),
		PricePerKg:         decimal.RequireFromString(perKg),
		AddressDeliveryFee: decimal.RequireFromString(fee),
	})
	if err != nil {
		s.rejectForm(w, r, "pricing", nil, err)
		return
	}
	s.logFor(r).Info().
		Str("base_price", updated.BasePrice.String()).
		Str("price_per_kg", updated.PricePerKg.String()).
		Str("address_fee", updated.AddressDeliveryFee.String()).
		Msg("pricing updated")
	redirectWith(w, r, target, "message", "Pricing configuration updated successfully.")
}
