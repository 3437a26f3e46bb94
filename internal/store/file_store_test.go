package store

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	perrors "github.com/JuanS3/INTER-seguridad-taller3/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// FileStoreSuite is a test suite for the JSON file store implementations.
type FileStoreSuite struct {
	suite.Suite
	dir      string
	products *FileStore[Product]
	sales    *FileStore[Sale]
	ctx      context.Context
}

// SetupTest gives every test a fresh directory with no persisted collections.
func (s *FileStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.dir = s.T().TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.products = NewProductFileStore(filepath.Join(s.dir, "productos.json"), logger)
	s.sales = NewSaleFileStore(filepath.Join(s.dir, "ventas.json"), logger)
}

func TestFileStore(t *testing.T) {
	suite.Run(t, new(FileStoreSuite))
}

func (s *FileStoreSuite) writeRaw(path, content string) {
	s.T().Helper()
	require.NoError(s.T(), os.WriteFile(path, []byte(content), 0o644))
}

func (s *FileStoreSuite) readRaw(path string) []byte {
	s.T().Helper()
	data, err := os.ReadFile(path)
	require.NoError(s.T(), err)
	return data
}

func (s *FileStoreSuite) TestLoad_MissingFile() {
	products, err := s.products.Load(s.ctx)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), products)
	assert.Empty(s.T(), products)

	sales, err := s.sales.Load(s.ctx)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), sales)
	assert.Empty(s.T(), sales)
}

func (s *FileStoreSuite) TestSaveAndLoadProducts() {
	toSave := []Product{
		{ID: "P1", Name: "Widget", Price: decimal.RequireFromString("9.99"), Category: "Tools", Stock: 10},
		{ID: "P2", Name: "Gadget", Price: decimal.RequireFromString("20"), Category: "Toys", Stock: 0,
			Pricing: DiscountPricing{Percentage: decimal.RequireFromString("15")}},
	}
	require.NoError(s.T(), s.products.Save(s.ctx, toSave))

	loaded, err := s.products.Load(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), loaded, 2)
	for i := range toSave {
		assert.Equal(s.T(), toSave[i].ID, loaded[i].ID)
		assert.Equal(s.T(), toSave[i].Name, loaded[i].Name)
		assert.True(s.T(), toSave[i].Price.Equal(loaded[i].Price), "price of %s", toSave[i].ID)
		assert.Equal(s.T(), toSave[i].Category, loaded[i].Category)
		assert.Equal(s.T(), toSave[i].Stock, loaded[i].Stock)
		assert.True(s.T(), toSave[i].FinalPrice().Equal(loaded[i].FinalPrice()), "final price of %s", toSave[i].ID)
	}
	assert.Equal(s.T(), StandardPricing{}, loaded[0].Pricing)
	assert.IsType(s.T(), DiscountPricing{}, loaded[1].Pricing)
}

func (s *FileStoreSuite) TestProductFileFormat() {
	require.NoError(s.T(), s.products.Save(s.ctx, []Product{
		{ID: "P1", Name: "Widget", Price: decimal.RequireFromString("9.99"), Category: "Tools", Stock: 10},
	}))

	var raw []map[string]any
	require.NoError(s.T(), json.Unmarshal(s.readRaw(s.products.Path()), &raw))
	require.Len(s.T(), raw, 1)
	assert.Equal(s.T(), map[string]any{
		"id":       "P1",
		"name":     "Widget",
		"price":    9.99,
		"category": "Tools",
		"stock":    float64(10),
	}, raw[0])
}

func (s *FileStoreSuite) TestSaleFileFormat() {
	date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	require.NoError(s.T(), s.sales.Save(s.ctx, []Sale{
		{ProductID: "P1", Quantity: 3, Date: date, Total: decimal.RequireFromString("29.97")},
	}))

	var raw []map[string]any
	require.NoError(s.T(), json.Unmarshal(s.readRaw(s.sales.Path()), &raw))
	require.Len(s.T(), raw, 1)
	assert.Equal(s.T(), map[string]any{
		"producto_id": "P1",
		"cantidad":    float64(3),
		"fecha":       "2024-01-02 03:04:05",
		"total":       29.97,
	}, raw[0])

	loaded, err := s.sales.Load(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), loaded, 1)
	assert.True(s.T(), date.Equal(loaded[0].Date))
	assert.True(s.T(), decimal.RequireFromString("29.97").Equal(loaded[0].Total))
}

func (s *FileStoreSuite) TestLoad_LegacyIndentedFile() {
	s.writeRaw(s.sales.Path(), `[
    {
        "producto_id": "A1",
        "cantidad": 2,
        "fecha": "2023-05-06 07:08:09",
        "total": 11.5
    },
    {
        "producto_id": "B2",
        "cantidad": 1,
        "fecha": "2023-05-07 10:00:00",
        "total": 3
    }
]`)

	loaded, err := s.sales.Load(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), loaded, 2)
	assert.Equal(s.T(), "A1", loaded[0].ProductID)
	assert.Equal(s.T(), "B2", loaded[1].ProductID)
	assert.Equal(s.T(), "11.5", loaded[0].Total.String())
}

func (s *FileStoreSuite) TestLoad_Malformed() {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "this is not json"},
		{name: "empty file", content: ""},
		{name: "wrong shape", content: `{"id": "P1"}`},
		{name: "bad price", content: `[{"id": "P1", "price": "cheap"}]`},
		{name: "negative price", content: `[{"id": "P1", "name": "Widget", "price": -1, "stock": 5}]`},
		{name: "negative stock", content: `[{"id": "P1", "name": "Widget", "price": 10, "stock": -5}]`},
		{name: "discount above 100", content: `[{"id": "P1", "name": "Widget", "price": 10, "stock": 5, "discount": 150}]`},
		{name: "negative discount", content: `[{"id": "P1", "name": "Widget", "price": 10, "stock": 5, "discount": -10}]`},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.writeRaw(s.products.Path(), tc.content)
			products, err := s.products.Load(s.ctx)
			require.ErrorIs(s.T(), err, perrors.ErrMalformedData)
			require.NotNil(s.T(), products)
			assert.Empty(s.T(), products)
		})
	}
}

func (s *FileStoreSuite) TestLoad_MalformedSales() {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "bad date", content: `[{"producto_id": "P1", "cantidad": 1, "fecha": "yesterday", "total": 1}]`},
		{name: "zero quantity", content: `[{"producto_id": "P1", "cantidad": 0, "fecha": "2024-03-15 10:30:45", "total": 0}]`},
		{name: "negative total", content: `[{"producto_id": "P1", "cantidad": 1, "fecha": "2024-03-15 10:30:45", "total": -5}]`},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.writeRaw(s.sales.Path(), tc.content)
			sales, err := s.sales.Load(s.ctx)
			require.ErrorIs(s.T(), err, perrors.ErrMalformedData)
			assert.Empty(s.T(), sales)
		})
	}
}

func (s *FileStoreSuite) TestLoad_FullDiscountIsValid() {
	s.writeRaw(s.products.Path(), `[{"id": "P1", "name": "Widget", "price": 10, "stock": 5, "discount": 100}]`)

	products, err := s.products.Load(s.ctx)

	require.NoError(s.T(), err)
	require.Len(s.T(), products, 1)
	assert.True(s.T(), products[0].FinalPrice().IsZero())
}

func (s *FileStoreSuite) TestSaveLoadRoundTripIsStable() {
	require.NoError(s.T(), s.products.Save(s.ctx, []Product{
		{ID: "P1", Name: "Widget", Price: decimal.RequireFromString("9.99"), Category: "Tools", Stock: 10},
		{ID: "P2", Name: "Gadget", Price: decimal.RequireFromString("0.5"), Category: "", Stock: 1,
			Pricing: DiscountPricing{Percentage: decimal.RequireFromString("12.5")}},
	}))
	first := s.readRaw(s.products.Path())

	loaded, err := s.products.Load(s.ctx)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.products.Save(s.ctx, loaded))

	assert.Equal(s.T(), string(first), string(s.readRaw(s.products.Path())))
}

func (s *FileStoreSuite) TestSave_EmptyCollectionWritesArray() {
	require.NoError(s.T(), s.sales.Save(s.ctx, nil))
	assert.Equal(s.T(), "[]\n", string(s.readRaw(s.sales.Path())))
}

func (s *FileStoreSuite) TestSave_MissingDirectory() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	missingDir := NewSaleFileStore(filepath.Join(s.dir, "missing", "ventas.json"), logger)
	err := missingDir.Save(s.ctx, []Sale{{ProductID: "P1", Quantity: 1, Date: time.Now()}})
	require.Error(s.T(), err)

	entries, err := os.ReadDir(s.dir)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), entries, "failed save should not leave temp files behind")
}

func (s *FileStoreSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := s.products.Load(ctx)
	require.ErrorIs(s.T(), err, context.Canceled)
	require.ErrorIs(s.T(), s.products.Save(ctx, nil), context.Canceled)
}
