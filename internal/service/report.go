package service

import (
	"context"
	"log/slog"

	"github.com/JuanS3/INTER-seguridad-taller3/internal/store"
	"github.com/shopspring/decimal"
)

// ReportService aggregates recorded sales.
type ReportService interface {
	// Generate returns every sale in storage order with the sum of their totals.
	// An empty report is not an error.
	Generate(ctx context.Context) (*SalesReport, error)
}

// SalesReport is the result of ReportService.Generate.
type SalesReport struct {
	Sales []SaleDto
	Count int
	Total decimal.Decimal
}

var _ ReportService = (*Reports)(nil)

// Reports implements ReportService on top of a sale store.
type Reports struct {
	sales       store.SaleStore
	logger      *slog.Logger
	onMalformed MalformedDataHandler
}

// NewReports creates a new instance of ReportService with the provided sale store.
func NewReports(sales store.SaleStore, logger *slog.Logger, opts ...Option) *Reports {
	o := newOptions(opts)
	return &Reports{
		sales:       sales,
		logger:      logger.With("component", "reports"),
		onMalformed: o.onMalformed,
	}
}

// Generate loads the sales collection and sums the sale totals.
func (r *Reports) Generate(ctx context.Context) (*SalesReport, error) {
	sales, err := r.sales.Load(ctx)
	sales, err = recoverMalformed(ctx, r.logger, r.onMalformed, "sales", sales, err)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		Sales: make([]SaleDto, len(sales)),
		Count: len(sales),
		Total: decimal.Zero,
	}
	for i, sale := range sales {
		report.Sales[i] = *toSaleDto(sale)
		report.Total = report.Total.Add(sale.Total)
	}
	r.logger.DebugContext(ctx, "Sales report generated", "count", report.Count, "total", report.Total.String())
	return report, nil
}
