package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	perrors "github.com/JuanS3/INTER-seguridad-taller3/internal/errors"
	"github.com/shopspring/decimal"
)

const filePerm = 0o644

// FileStore persists a whole collection as an indented JSON array in a single file.
type FileStore[T any] struct {
	path      string
	logger    *slog.Logger
	marshal   func([]T) ([]byte, error)
	unmarshal func([]byte) ([]T, error)
}

// NewProductFileStore creates a ProductStore backed by the JSON file at path.
func NewProductFileStore(path string, logger *slog.Logger) *FileStore[Product] {
	return &FileStore[Product]{
		path:      path,
		logger:    logger.With("component", "store", "collection", "products"),
		marshal:   marshalProducts,
		unmarshal: unmarshalProducts,
	}
}

// NewSaleFileStore creates a SaleStore backed by the JSON file at path.
func NewSaleFileStore(path string, logger *slog.Logger) *FileStore[Sale] {
	return &FileStore[Sale]{
		path:      path,
		logger:    logger.With("component", "store", "collection", "sales"),
		marshal:   marshalSales,
		unmarshal: unmarshalSales,
	}
}

// Path returns the file the collection is persisted to.
func (s *FileStore[T]) Path() string {
	return s.path
}

// Load reads the whole collection from disk.
// A missing file yields an empty collection. A file that cannot be parsed yields an empty
// collection together with an error wrapping ErrMalformedData.
func (s *FileStore[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.DebugContext(ctx, "Collection file does not exist yet", "path", s.path)
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	items, err := s.unmarshal(data)
	if err != nil {
		return []T{}, fmt.Errorf("failed to parse %s: %w: %w", s.path, perrors.ErrMalformedData, err)
	}
	if items == nil {
		items = []T{}
	}
	s.logger.DebugContext(ctx, "Collection loaded", "path", s.path, "count", len(items))
	return items, nil
}

// Save replaces the file contents with the given collection.
// The data is written to a temporary file in the same directory and renamed over the target,
// so a failed save leaves the previous contents in place.
func (s *FileStore[T]) Save(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	data, err := s.marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.path, err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.path, err)
	}
	s.logger.DebugContext(ctx, "Collection saved", "path", s.path, "count", len(items))
	return nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, filePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// productRecord is the persisted shape of a Product.
type productRecord struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Category string      `json:"category"`
	Stock    int         `json:"stock"`
	Discount json.Number `json:"discount,omitempty"`
}

// saleRecord is the persisted shape of a Sale.
type saleRecord struct {
	ProductID string      `json:"producto_id"`
	Quantity  int         `json:"cantidad"`
	Date      string      `json:"fecha"`
	Total     json.Number `json:"total"`
}

func marshalProducts(products []Product) ([]byte, error) {
	records := make([]productRecord, len(products))
	for i, p := range products {
		records[i] = productRecord{
			ID:       p.ID,
			Name:     p.Name,
			Price:    json.Number(p.Price.String()),
			Category: p.Category,
			Stock:    p.Stock,
		}
		if d := p.Discount(); d.IsPositive() {
			records[i].Discount = json.Number(d.String())
		}
	}
	return encode(records)
}

func unmarshalProducts(data []byte) ([]Product, error) {
	var records []productRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	products := make([]Product, len(records))
	for i, r := range records {
		price, err := decimal.NewFromString(r.Price.String())
		if err != nil {
			return nil, fmt.Errorf("product %q: invalid price %q: %w", r.ID, r.Price, err)
		}
		products[i] = Product{
			ID:       r.ID,
			Name:     r.Name,
			Price:    price,
			Category: r.Category,
			Stock:    r.Stock,
			Pricing:  StandardPricing{},
		}
		if r.Discount != "" {
			pct, err := decimal.NewFromString(r.Discount.String())
			if err != nil {
				return nil, fmt.Errorf("product %q: invalid discount %q: %w", r.ID, r.Discount, err)
			}
			if !pct.IsZero() {
				products[i].Pricing = DiscountPricing{Percentage: pct}
			}
		}
		if err := products[i].Check(); err != nil {
			return nil, fmt.Errorf("product %q: %w", r.ID, err)
		}
	}
	return products, nil
}

func marshalSales(sales []Sale) ([]byte, error) {
	records := make([]saleRecord, len(sales))
	for i, s := range sales {
		records[i] = saleRecord{
			ProductID: s.ProductID,
			Quantity:  s.Quantity,
			Date:      s.Date.Format(DateLayout),
			Total:     json.Number(s.Total.String()),
		}
	}
	return encode(records)
}

func unmarshalSales(data []byte) ([]Sale, error) {
	var records []saleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	sales := make([]Sale, len(records))
	for i, r := range records {
		date, err := time.ParseInLocation(DateLayout, r.Date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("sale %d: invalid date %q: %w", i, r.Date, err)
		}
		total, err := decimal.NewFromString(r.Total.String())
		if err != nil {
			return nil, fmt.Errorf("sale %d: invalid total %q: %w", i, r.Total, err)
		}
		if r.Quantity <= 0 {
			return nil, fmt.Errorf("sale %d: quantity %d is not positive", i, r.Quantity)
		}
		if total.IsNegative() {
			return nil, fmt.Errorf("sale %d: negative total %s", i, total)
		}
		sales[i] = Sale{
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
			Date:      date,
			Total:     total,
		}
	}
	return sales, nil
}

func encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
