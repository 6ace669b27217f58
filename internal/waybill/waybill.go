// Package waybill renders a printable shipment label as a PDF.
package waybill

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/phillip-england/shipdesk/internal/model"
	"github.com/phillip-england/shipdesk/internal/render"
)

var (
	colorPrimary = &props.Color{Red: 31, Green: 78, Blue: 95}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// TrackingCode is the identifier printed on the label and encoded in its QR code.
func TrackingCode(id int64) string {
	return fmt.Sprintf("SHP-%08d", id)
}

// Render builds the waybill for s. issuer is printed in the header.
func Render(s model.Shipment, issuer string, printedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Waybill "+TrackingCode(s.ID), true).
		WithAuthor(issuer, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(s, issuer, printedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(routeRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(parcelRow(s))
	m.AddRows(row.New(4))
	m.AddRows(codeRow(s))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("waybill: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(s model.Shipment, issuer string, printedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(issuer, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Printed "+render.FormatTime(printedAt), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("WAYBILL", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(TrackingCode(s.ID), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6}),
			text.New(render.OrNA(string(s.Status)), props.Text{Size: 8, Align: align.Right, Top: 12, Color: colorGray}),
		),
	)
}

func labelled(title, value string) core.Col {
	return col.New(6).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1}),
		text.New(render.OrNA(value), props.Text{Size: 10, Top: 5}),
	)
}

func partiesRow(s model.Shipment) core.Row {
	return row.New(14).Add(
		labelled("SENDER", s.SenderName),
		labelled("RECEIVER", s.Receiver()),
	)
}

func routeRow(s model.Shipment) core.Row {
	destination := s.Destination()
	if s.DeliverToAddress {
		destination = "Address: " + destination
	}
	return row.New(14).Add(
		labelled("ORIGIN OFFICE", s.OriginOfficeName),
		labelled("DESTINATION", destination),
	)
}

func parcelRow(s model.Shipment) core.Row {
	return row.New(14).Add(
		col.New(4).Add(
			text.New("WEIGHT", props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1}),
			text.New(render.FormatWeight(s.Weight), props.Text{Size: 10, Top: 5}),
		),
		col.New(4).Add(
			text.New("PRICE", props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1}),
			text.New(render.FormatBGN(s.Price), props.Text{Size: 10, Top: 5}),
		),
		col.New(4).Add(
			text.New("REGISTERED", props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1, Align: align.Right}),
			text.New(render.FormatDate(s.RegisteredAt), props.Text{Size: 9, Top: 5, Align: align.Right}),
		),
	)
}

func codeRow(s model.Shipment) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(TrackingCode(s.ID), props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Scan to identify the parcel at any office.", props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New(TrackingCode(s.ID), props.Text{Style: fontstyle.Bold, Size: 14, Top: 14, Left: 3, Color: colorPrimary}),
		),
	)
}
