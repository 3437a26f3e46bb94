// Package service provides the implementation of product and sale business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	perrors "github.com/JuanS3/INTER-seguridad-taller3/internal/errors"
	"github.com/JuanS3/INTER-seguridad-taller3/internal/store"
	"github.com/shopspring/decimal"
)

// InventoryService defines the methods for managing products and recording sales.
type InventoryService interface {
	// Register adds a new product to the system.
	// Returns ErrDuplicateProduct if a product with the same ID already exists.
	Register(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*ProductDto, error)

	// FindAll returns all products in storage order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// Update applies the supplied fields to an existing product, leaving the others untouched.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id string, changes ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) error

	// RecordSale sells quantity units of a product, decrementing its stock and appending a sale.
	// Returns ErrProductNotFound if the product does not exist and ErrInsufficientStock if
	// quantity exceeds the current stock.
	RecordSale(ctx context.Context, productID string, quantity int) (*SaleDto, error)
}

var _ InventoryService = (*Inventory)(nil)

// MalformedDataHandler is told that a persisted collection could not be parsed and that the
// operation continued with an empty one. collection is "products" or "sales".
type MalformedDataHandler func(ctx context.Context, collection string, err error)

// Option configures Inventory and Reports.
type Option func(*options)

type options struct {
	onMalformed MalformedDataHandler
}

// WithMalformedDataHandler sets the handler called after malformed data has been recovered.
func WithMalformedDataHandler(h MalformedDataHandler) Option {
	return func(o *options) {
		o.onMalformed = h
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Inventory implements InventoryService on top of a product and a sale store.
type Inventory struct {
	products    store.ProductStore
	sales       store.SaleStore
	logger      *slog.Logger
	onMalformed MalformedDataHandler
	now         func() time.Time
}

// NewInventory creates a new instance of InventoryService with the provided stores.
func NewInventory(products store.ProductStore, sales store.SaleStore, logger *slog.Logger, opts ...Option) *Inventory {
	o := newOptions(opts)
	return &Inventory{
		products:    products,
		sales:       sales,
		logger:      logger.With("component", "inventory"),
		onMalformed: o.onMalformed,
		now:         time.Now,
	}
}

// Register creates a new product and returns it as a ProductDto.
// Returns ErrDuplicateProduct if the ID is already taken.
func (s *Inventory) Register(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	if indexOf(products, product.ID) >= 0 {
		return nil, fmt.Errorf("failed to register product %s: %w", product.ID, perrors.ErrDuplicateProduct)
	}

	p := store.Product{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Category: product.Category,
		Stock:    product.Stock,
		Pricing:  store.StandardPricing{},
	}
	products = append(products, p)
	if err := s.products.Save(ctx, products); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save products", "ID", p.ID, "error", err)
		return nil, fmt.Errorf("failed to register product %s: %w", p.ID, err)
	}
	s.logger.DebugContext(ctx, "Product registered", "ID", p.ID, "Name", p.Name)

	return toDto(p), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Inventory) FindByID(ctx context.Context, id string) (*ProductDto, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(products, id)
	if i < 0 {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, perrors.ErrProductNotFound)
	}

	return toDto(products[i]), nil
}

// FindAll retrieves a list of all products and returns them as ProductDTOs.
// Returns an empty slice if no products exist or error if the retrieval fails.
func (s *Inventory) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(item)
	}

	return productDTOs, nil
}

// Update modifies an existing product's details and returns the updated product as a ProductDto.
// An update without any field set returns the product unchanged and does not rewrite the collection.
func (s *Inventory) Update(ctx context.Context, id string, changes ProductUpdateDto) (*ProductDto, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(products, id)
	if i < 0 {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, perrors.ErrProductNotFound)
	}
	if changes.IsEmpty() {
		return toDto(products[i]), nil
	}

	changes.applyTo(&products[i])
	if err := s.products.Save(ctx, products); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save products", "ID", id, "error", err)
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}
	s.logger.DebugContext(ctx, "Product updated", "ID", id)

	return toDto(products[i]), nil
}

// DeleteByID deletes a product by its ID.
// Sales that reference the product are kept.
func (s *Inventory) DeleteByID(ctx context.Context, id string) error {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return err
	}
	i := indexOf(products, id)
	if i < 0 {
		return fmt.Errorf("failed to delete product with ID %s: %w", id, perrors.ErrProductNotFound)
	}

	products = slices.Delete(products, i, i+1)
	if err := s.products.Save(ctx, products); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save products", "ID", id, "error", err)
		return fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}
	s.logger.DebugContext(ctx, "Product deleted", "ID", id)
	return nil
}

// RecordSale sells quantity units of a product at its current final price.
//
// The sale is persisted before the stock change. If the product collection cannot be saved,
// the previous sales collection is written back and the sale fails as a whole. If that restore
// fails too, the returned error wraps ErrPartialCommit.
func (s *Inventory) RecordSale(ctx context.Context, productID string, quantity int) (*SaleDto, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d: %w", quantity, perrors.ErrInvalidInput)
	}
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(products, productID)
	if i < 0 {
		return nil, fmt.Errorf("failed to record sale of product %s: %w", productID, perrors.ErrProductNotFound)
	}
	product := &products[i]
	if quantity > product.Stock {
		return nil, fmt.Errorf("failed to sell %d units of product %s with %d in stock: %w",
			quantity, productID, product.Stock, perrors.ErrInsufficientStock)
	}

	sales, err := s.loadSales(ctx)
	if err != nil {
		return nil, err
	}
	sale := store.Sale{
		ProductID: product.ID,
		Quantity:  quantity,
		Date:      s.now().Truncate(time.Second),
		Total:     product.FinalPrice().Mul(decimal.NewFromInt(int64(quantity))).Round(2),
	}
	previous := sales[:len(sales):len(sales)]

	if err := s.sales.Save(ctx, append(previous, sale)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save sales", "ProductID", productID, "error", err)
		return nil, fmt.Errorf("failed to record sale of product %s: %w", productID, err)
	}

	product.Stock -= quantity
	if err := s.products.Save(ctx, products); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save stock after recording sale", "ProductID", productID, "error", err)
		if restoreErr := s.sales.Save(context.WithoutCancel(ctx), previous); restoreErr != nil {
			s.logger.ErrorContext(ctx, "Failed to restore sales, manual reconciliation required",
				"ProductID", productID, "Quantity", quantity, "error", restoreErr)
			return nil, fmt.Errorf("failed to update stock of product %s: %w",
				productID, errors.Join(perrors.ErrPartialCommit, err, restoreErr))
		}
		return nil, fmt.Errorf("failed to update stock of product %s, sale discarded: %w", productID, err)
	}
	s.logger.DebugContext(ctx, "Sale recorded", "ProductID", productID, "Quantity", quantity, "Total", sale.Total.String())

	return toSaleDto(sale), nil
}

func (s *Inventory) loadProducts(ctx context.Context) ([]store.Product, error) {
	products, err := s.products.Load(ctx)
	return recoverMalformed(ctx, s.logger, s.onMalformed, "products", products, err)
}

func (s *Inventory) loadSales(ctx context.Context) ([]store.Sale, error) {
	sales, err := s.sales.Load(ctx)
	return recoverMalformed(ctx, s.logger, s.onMalformed, "sales", sales, err)
}

// recoverMalformed turns a malformed collection into a warning and an empty collection,
// and passes the error to onMalformed when it is set.
func recoverMalformed[T any](
	ctx context.Context,
	logger *slog.Logger,
	onMalformed MalformedDataHandler,
	collection string,
	items []T,
	err error,
) ([]T, error) {
	if err == nil {
		return items, nil
	}
	if errors.Is(err, perrors.ErrMalformedData) {
		logger.WarnContext(ctx, "Persisted data is malformed, continuing with an empty collection",
			"collection", collection, "error", err)
		if onMalformed != nil {
			onMalformed(ctx, collection, err)
		}
		return []T{}, nil
	}
	return nil, fmt.Errorf("failed to load %s: %w", collection, err)
}

func indexOf(products []store.Product, id string) int {
	return slices.IndexFunc(products, func(p store.Product) bool {
		return p.ID == id
	})
}
