package invoices

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"negocio/internal/core/apperror"
	"negocio/internal/core/types"
)

// Renderer renders stored invoices to PDF. Rendering is a pure function of
// the stored document, so reprints are byte-stable apart from pagination.
type Renderer struct {
	businessName string
	address      string
	phone        string
}

// NewRenderer creates a PDF renderer with the business letterhead.
func NewRenderer(businessName, address, phone string) *Renderer {
	return &Renderer{businessName: businessName, address: address, phone: phone}
}

// Render produces the PDF bytes for an invoice.
func (r *Renderer) Render(inv *Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, r.businessName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(14,
		col.New(12).Add(
			text.New(r.address, props.Text{Size: 9}),
			text.New(r.phone, props.Text{Size: 9, Top: 4}),
		),
	)

	m.AddRow(10,
		text.NewCol(12, "Factura "+inv.Number, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
		}),
	)
	m.AddRow(14,
		col.New(6).Add(
			text.New("Cliente: "+inv.ClientName, props.Text{Size: 9}),
			text.New("Fecha: "+inv.IssuedAt.Format("02/01/2006 15:04"), props.Text{Size: 9, Top: 4}),
		),
		col.New(6),
	)

	m.AddRow(8,
		text.NewCol(6, "Producto", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Cantidad", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Precio", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Subtotal", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range inv.Lines {
		name := line.Name
		if line.Note != "" {
			name = fmt.Sprintf("%s (%s)", line.Name, line.Note)
		}
		m.AddRow(7,
			text.NewCol(6, name, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", line.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatAmount(line.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatAmount(line.Subtotal), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, formatAmount(inv.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)
	m.AddRow(14,
		col.New(12).Add(
			text.New("Método de pago: "+paymentLabel(string(inv.Payment.Method)), props.Text{Size: 9}),
			text.New("Pagado: "+formatAmount(inv.Payment.Tendered), props.Text{Size: 9, Top: 4}),
			text.New("Cambio: "+formatAmount(inv.Payment.Change), props.Text{Size: 9, Top: 8}),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return doc.GetBytes(), nil
}

// formatAmount renders minor units as a major-unit amount with two decimals.
func formatAmount(m types.MinorUnits) string {
	return "$" + decimal.NewFromInt(m.Int64()).Shift(-2).StringFixed(2)
}

func paymentLabel(method string) string {
	switch method {
	case "cash":
		return "Efectivo"
	case "transfer":
		return "Transferencia"
	default:
		return method
	}
}
