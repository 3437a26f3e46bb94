package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func Test_Product_FinalPrice(t *testing.T) {
	base := decimal.RequireFromString("9.99")
	testCases := []struct {
		name     string
		pricing  Pricing
		expected string
	}{
		{name: "nil is standard", pricing: nil, expected: "9.99"},
		{name: "standard", pricing: StandardPricing{}, expected: "9.99"},
		{name: "discounted", pricing: DiscountPricing{Percentage: decimal.NewFromInt(50)}, expected: "4.995"},
		{name: "free", pricing: DiscountPricing{Percentage: decimal.NewFromInt(100)}, expected: "0"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{ID: "P1", Price: base, Pricing: tc.pricing}
			assert.Equal(t, tc.expected, p.FinalPrice().String())
		})
	}
}

func Test_Product_Check(t *testing.T) {
	valid := Product{ID: "P1", Name: "Widget", Price: decimal.NewFromInt(10), Stock: 5, Pricing: StandardPricing{}}
	testCases := []struct {
		name      string
		mutate    func(p *Product)
		expectErr bool
	}{
		{name: "valid standard", mutate: func(*Product) {}},
		{name: "valid discount", mutate: func(p *Product) { p.Pricing = DiscountPricing{Percentage: decimal.NewFromInt(100)} }},
		{name: "zero price and stock", mutate: func(p *Product) { p.Price, p.Stock = decimal.Zero, 0 }},
		{name: "negative price", mutate: func(p *Product) { p.Price = decimal.NewFromInt(-1) }, expectErr: true},
		{name: "negative stock", mutate: func(p *Product) { p.Stock = -1 }, expectErr: true},
		{name: "discount above 100", mutate: func(p *Product) { p.Pricing = DiscountPricing{Percentage: decimal.NewFromInt(150)} }, expectErr: true},
		{name: "negative discount", mutate: func(p *Product) { p.Pricing = DiscountPricing{Percentage: decimal.NewFromInt(-5)} }, expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			err := p.Check()
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
