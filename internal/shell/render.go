package shell

import (
	"io"

	"github.com/JuanS3/INTER-seguridad-taller3/internal/service"
	"github.com/JuanS3/INTER-seguridad-taller3/internal/store"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderProducts(w io.Writer, products []service.ProductDto) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Nombre", "Precio", "Descuento", "Precio final", "Categoría", "Stock"})
	for _, p := range products {
		t.AppendRow(table.Row{
			p.ID,
			p.Name,
			p.Price.StringFixed(2),
			discountLabel(p.Discount),
			p.FinalPrice.StringFixed(2),
			p.Category,
			p.Stock,
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

func discountLabel(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return d.String() + "%"
}

func renderReport(w io.Writer, report *service.SalesReport) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Producto ID", "Cantidad", "Fecha", "Total"})
	for _, sale := range report.Sales {
		t.AppendRow(table.Row{
			sale.ProductID,
			sale.Quantity,
			sale.Date.Format(store.DateLayout),
			"$" + sale.Total.StringFixed(2),
		})
	}
	t.AppendFooter(table.Row{"TOTAL VENTAS", report.Count, "", "$" + report.Total.StringFixed(2)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.Render()
}
