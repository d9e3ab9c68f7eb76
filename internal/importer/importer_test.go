package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"product-catalog/internal/domain"
)

type captureWriter struct {
	added []domain.Product
	err   error
}

func (w *captureWriter) Add(_ context.Context, p domain.Product) (*domain.Product, error) {
	if w.err != nil {
		return nil, w.err
	}
	p.ID = int64(len(w.added) + 1)
	w.added = append(w.added, p)
	return &p, nil
}

const sampleCSV = `name,description,price,stock_quantity,category,image_url,sku,is_active
Laptop Computer,High performance laptop,999.99,10,Electronics,https://example.com/laptop.jpg,LAP001,true
Ceramic Mug,,12.50,120,Kitchen,,MUG001,
`

func TestCSVImporter_Run(t *testing.T) {
	w := &captureWriter{}
	imp := NewCSVImporter(strings.NewReader(sampleCSV), w)

	imported, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if imported != 2 {
		t.Fatalf("expected 2 imported, got %d", imported)
	}

	laptop := w.added[0]
	if laptop.Name != "Laptop Computer" || !laptop.Price.Equal(decimal.NewFromFloat(999.99)) {
		t.Fatalf("unexpected first product %+v", laptop)
	}
	if laptop.Category == nil || *laptop.Category != "Electronics" {
		t.Fatalf("expected category set, got %+v", laptop.Category)
	}

	mug := w.added[1]
	if mug.Description != nil {
		t.Fatalf("expected empty description to stay nil, got %v", *mug.Description)
	}
	if !mug.IsActive {
		t.Fatalf("expected is_active to default to true")
	}
}

func TestCSVImporter_InvalidPrice(t *testing.T) {
	csv := "name,price,stock_quantity\nMug,abc,1\n"
	imp := NewCSVImporter(strings.NewReader(csv), &captureWriter{})

	imported, err := imp.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "invalid price") {
		t.Fatalf("expected price error, got %v", err)
	}
	if imported != 0 {
		t.Fatalf("expected nothing imported, got %d", imported)
	}
}

func TestCSVImporter_ValidationStopsRun(t *testing.T) {
	csv := "name,price,stock_quantity\nMug,5,-1\n"
	imp := NewCSVImporter(strings.NewReader(csv), &captureWriter{})

	_, err := imp.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCSVImporter_MissingNameColumn(t *testing.T) {
	csv := "price,stock_quantity\n5,1\n"
	imp := NewCSVImporter(strings.NewReader(csv), &captureWriter{})

	_, err := imp.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing required column") {
		t.Fatalf("expected header error, got %v", err)
	}
}
