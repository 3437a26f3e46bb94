package service

import (
	"time"

	"github.com/JuanS3/INTER-seguridad-taller3/internal/store"
	"github.com/shopspring/decimal"
)

// ProductCreateDto represents the data transfer object for registering a new product.
// Prices are validated through a decimal.Decimal custom type func registered by the caller's validator.
type ProductCreateDto struct {
	ID       string          `validate:"required,max=64"`
	Name     string          `validate:"required,max=100"`
	Price    decimal.Decimal `validate:"gte=0"`
	Category string          `validate:"max=50"`
	Stock    int             `validate:"gte=0"`
}

// ProductUpdateDto carries the fields to change on a product. Nil fields are left untouched.
// A Discount of zero reverts the product to standard pricing.
type ProductUpdateDto struct {
	Name     *string          `validate:"omitempty,min=1,max=100"`
	Price    *decimal.Decimal `validate:"omitempty,gte=0"`
	Category *string          `validate:"omitempty,max=50"`
	Stock    *int             `validate:"omitempty,gte=0"`
	Discount *decimal.Decimal `validate:"omitempty,gte=0,lte=100"`
}

// IsEmpty reports whether no field is set.
func (u ProductUpdateDto) IsEmpty() bool {
	return u.Name == nil && u.Price == nil && u.Category == nil && u.Stock == nil && u.Discount == nil
}

func (u ProductUpdateDto) applyTo(p *store.Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Discount != nil {
		if u.Discount.IsPositive() {
			p.Pricing = store.DiscountPricing{Percentage: *u.Discount}
		} else {
			p.Pricing = store.StandardPricing{}
		}
	}
}

// ProductDto represents the data transfer object for a product.
// FinalPrice is the unit price a sale is charged at.
type ProductDto struct {
	ID         string
	Name       string
	Price      decimal.Decimal
	Discount   decimal.Decimal
	FinalPrice decimal.Decimal
	Category   string
	Stock      int
}

// SaleDto represents the data transfer object for a recorded sale.
type SaleDto struct {
	ProductID string
	Quantity  int
	Date      time.Time
	Total     decimal.Decimal
}

// toDto converts a store.Product to a ProductDto.
func toDto(product store.Product) *ProductDto {
	return &ProductDto{
		ID:         product.ID,
		Name:       product.Name,
		Price:      product.Price,
		Discount:   product.Discount(),
		FinalPrice: product.FinalPrice(),
		Category:   product.Category,
		Stock:      product.Stock,
	}
}

func toSaleDto(sale store.Sale) *SaleDto {
	return &SaleDto{
		ProductID: sale.ProductID,
		Quantity:  sale.Quantity,
		Date:      sale.Date,
		Total:     sale.Total,
	}
}
