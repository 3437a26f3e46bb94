package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the persisted format of a sale date.
const DateLayout = "2006-01-02 15:04:05"

var hundred = decimal.NewFromInt(100)

// Product represents a product entity in the store.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
	Stock    int
	// Pricing is StandardPricing or DiscountPricing. A nil Pricing is charged as StandardPricing.
	Pricing Pricing
}

// Check reports whether p satisfies the product invariants: a non-negative price and stock
// and a discount between 0 and 100.
func (p Product) Check() error {
	if p.Price.IsNegative() {
		return fmt.Errorf("negative price %s", p.Price)
	}
	if p.Stock < 0 {
		return fmt.Errorf("negative stock %d", p.Stock)
	}
	if d := p.Discount(); d.IsNegative() || d.GreaterThan(hundred) {
		return fmt.Errorf("discount %s outside 0..100", d)
	}
	return nil
}

// FinalPrice returns the unit price a sale is charged at.
func (p Product) FinalPrice() decimal.Decimal {
	if p.Pricing == nil {
		return p.Price
	}
	return p.Pricing.FinalPrice(p.Price)
}

// Pricing computes the final unit price of a product from its base price.
// Implementations are StandardPricing and DiscountPricing.
type Pricing interface {
	FinalPrice(base decimal.Decimal) decimal.Decimal
	pricing()
}

// StandardPricing charges the base price.
type StandardPricing struct{}

func (StandardPricing) FinalPrice(base decimal.Decimal) decimal.Decimal { return base }
func (StandardPricing) pricing()                                         {}

// DiscountPricing takes Percentage percent off the base price.
type DiscountPricing struct {
	Percentage decimal.Decimal
}

func (d DiscountPricing) FinalPrice(base decimal.Decimal) decimal.Decimal {
	return base.Mul(hundred.Sub(d.Percentage)).Div(hundred)
}

func (DiscountPricing) pricing() {}

// Discount returns the discount percentage of a product, or zero for standard pricing.
func (p Product) Discount() decimal.Decimal {
	if d, ok := p.Pricing.(DiscountPricing); ok {
		return d.Percentage
	}
	return decimal.Zero
}

// Sale represents a recorded sale. Total is a snapshot taken when the sale was recorded.
type Sale struct {
	ProductID string
	Quantity  int
	Date      time.Time
	Total     decimal.Decimal
}
