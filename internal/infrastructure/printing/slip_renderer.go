// Package printing renders printable documents for stock operations.
package printing

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	appinv "github.com/erp/inventory/internal/application/inventory"
)

var (
	colorPrimary = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorMuted   = &props.Color{Red: 110, Green: 110, Blue: 110}
)

var typeTitles = map[string]string{
	"IN":  "Receipt",
	"OUT": "Delivery Order",
	"INT": "Internal Transfer",
	"ADJ": "Inventory Adjustment",
}

// SlipRenderer renders an A4 operation slip with header, locations and lines
type SlipRenderer struct {
	company string
}

// NewSlipRenderer creates a renderer printing company in the slip header
func NewSlipRenderer(company string) *SlipRenderer {
	return &SlipRenderer{company: company}
}

// RenderSlip renders op to PDF bytes
func (r *SlipRenderer) RenderSlip(op *appinv.OperationResponse) ([]byte, error) {
	if op == nil {
		return nil, fmt.Errorf("printing: operation is nil")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(op.Reference, true).
		WithCreationDate(time.Now()).
		Build()

	m := maroto.New(cfg)
	m.AddRows(r.headerRow(op))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.4}))
	m.AddRows(detailsRows(op)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorMuted, Thickness: 0.2}))
	m.AddRows(linesHeaderRow())
	m.AddRows(lineRows(op)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorMuted, Thickness: 0.2}))
	m.AddRows(totalsRow(op))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("printing: generate slip: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *SlipRenderer) headerRow(op *appinv.OperationResponse) core.Row {
	title := typeTitles[op.Type]
	if title == "" {
		title = op.Type
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(r.company, "Inventory"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{Size: 10, Top: 9, Color: colorMuted}),
		),
		col.New(5).Add(
			text.New(op.Reference, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Status: "+op.Status, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorMuted,
			}),
		),
	)
}

func detailsRows(op *appinv.OperationResponse) []core.Row {
	labelled := func(label, value string) core.Col {
		return col.New(6).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorMuted}),
			text.New(nonEmpty(value, "-"), props.Text{Size: 9, Top: 4}),
		)
	}
	schedule := ""
	if op.ScheduleDate != nil {
		schedule = op.ScheduleDate.Format("2006-01-02 15:04")
	}
	return []core.Row{
		row.New(11).Add(
			labelled("Source", locationName(op.SourceLocation)),
			labelled("Destination", locationName(op.DestLocation)),
		),
		row.New(11).Add(
			labelled("Responsible", op.Responsible),
			labelled("Scheduled", schedule),
		),
		row.New(11).Add(
			labelled("Contact", op.ContactPerson),
			labelled("Delivery address", op.DeliveryAddress),
		),
	}
}

func linesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("SKU", 2, align.Left),
		h("Product", 5, align.Left),
		h("Qty", 1, align.Right),
		h("Unit price", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// lineRows prints the order lines, or the single legacy product line
func lineRows(op *appinv.OperationResponse) []core.Row {
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
	}
	rows := make([]core.Row, 0, len(op.OrderLines)+1)
	for _, l := range op.OrderLines {
		sku, name := l.ProductID.String(), ""
		if l.Product != nil {
			sku, name = l.Product.SKU, l.Product.Name
		}
		rows = append(rows, row.New(6).Add(
			cell(sku, 2, align.Left),
			cell(name, 5, align.Left),
			cell(fmt.Sprintf("%d", l.Quantity), 1, align.Right),
			cell(l.UnitPrice.StringFixed(2), 2, align.Right),
			cell(l.Subtotal.StringFixed(2), 2, align.Right),
		))
	}
	if len(op.OrderLines) == 0 && op.Product != nil && op.Quantity != nil {
		rows = append(rows, row.New(6).Add(
			cell(op.Product.SKU, 2, align.Left),
			cell(op.Product.Name, 5, align.Left),
			cell(fmt.Sprintf("%d", *op.Quantity), 1, align.Right),
			cell("-", 2, align.Right),
			cell("-", 2, align.Right),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, text.NewRow(6, "No line items", props.Text{
			Size: 8, Color: colorMuted, Top: 1,
		}))
	}
	return rows
}

func totalsRow(op *appinv.OperationResponse) core.Row {
	return row.New(8).Add(
		col.New(7),
		col.New(1).Add(text.New(fmt.Sprintf("%d", op.TotalQuantity), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
		})),
		col.New(2),
		col.New(2).Add(text.New(op.TotalValue.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
		})),
	)
}

func signatureRow() core.Row {
	return row.New(24).Add(
		col.New(6).Add(text.New("Prepared by: ____________________", props.Text{Size: 8, Top: 16})),
		col.New(6).Add(text.New("Received by: ____________________", props.Text{Size: 8, Top: 16, Align: align.Right})),
	)
}

func locationName(l *appinv.LocationSummary) string {
	if l == nil {
		return ""
	}
	return l.Name
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

var _ appinv.OperationSlipRenderer = (*SlipRenderer)(nil)
