// Package importer bulk-loads products from CSV exports.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"product-catalog/internal/domain"
)

// ProductWriter is the slice of the repository the importer needs.
type ProductWriter interface {
	Add(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// CSVImporter reads product rows from a CSV file and inserts them.
//
// Expected header: name,description,price,stock_quantity,category,image_url,sku,is_active
// Only name, price and stock_quantity are required per row.
type CSVImporter struct {
	reader *csv.Reader
	writer ProductWriter
}

func NewCSVImporter(r io.Reader, writer ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, writer: writer}
}

// Run parses and inserts every row, stopping at the first invalid one.
// It returns the number of products imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing required column: name")
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		p, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if err := p.Validate(); err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := i.writer.Add(ctx, *p); err != nil {
			return imported, fmt.Errorf("line %d: insert: %w", line, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	optional := func(name string) *string {
		if v := field(name); v != "" {
			return &v
		}
		return nil
	}

	price, err := decimal.NewFromString(field("price"))
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", field("price"))
	}
	stock, err := strconv.Atoi(field("stock_quantity"))
	if err != nil {
		return nil, fmt.Errorf("invalid stock_quantity %q", field("stock_quantity"))
	}

	active := true
	if v := field("is_active"); v != "" {
		active, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid is_active %q", v)
		}
	}

	return &domain.Product{
		Name:          field("name"),
		Description:   optional("description"),
		Price:         price,
		StockQuantity: stock,
		Category:      optional("category"),
		ImageURL:      optional("image_url"),
		SKU:           optional("sku"),
		IsActive:      active,
	}, nil
}
