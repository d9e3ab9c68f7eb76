package domain

import (
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

func init() {
	// Price serializes as a bare JSON number, matching the API contract.
	decimal.MarshalJSONWithoutQuotes = true
}

// Field length limits enforced by validation and mirrored by the schema.
const (
	MaxNameLen        = 200
	MaxDescriptionLen = 1000
	MaxCategoryLen    = 100
	MaxImageURLLen    = 500
	MaxSKULen         = 50
)

// Product is the catalog's sole entity, representing a sellable item.
// ID and both timestamps are server-assigned; everything else is caller input.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	Category      *string         `json:"category,omitempty"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	SKU           *string         `json:"sku,omitempty"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Validate checks the field constraints and returns a *ValidationError
// listing every violated field, or nil when the product is well-formed.
func (p Product) Validate() error {
	fields := map[string]string{}

	if p.Name == "" {
		fields["name"] = "name is required"
	} else if utf8.RuneCountInString(p.Name) > MaxNameLen {
		fields["name"] = "name must be at most 200 characters"
	}
	if p.Description != nil && utf8.RuneCountInString(*p.Description) > MaxDescriptionLen {
		fields["description"] = "description must be at most 1000 characters"
	}
	if p.Price.IsNegative() {
		fields["price"] = "price must not be negative"
	}
	if p.StockQuantity < 0 {
		fields["stockQuantity"] = "stockQuantity must not be negative"
	}
	if p.Category != nil && utf8.RuneCountInString(*p.Category) > MaxCategoryLen {
		fields["category"] = "category must be at most 100 characters"
	}
	if p.ImageURL != nil {
		if utf8.RuneCountInString(*p.ImageURL) > MaxImageURLLen {
			fields["imageUrl"] = "imageUrl must be at most 500 characters"
		} else if !validURL(*p.ImageURL) {
			fields["imageUrl"] = "imageUrl must be a well-formed URL"
		}
	}
	if p.SKU != nil && utf8.RuneCountInString(*p.SKU) > MaxSKULen {
		fields["sku"] = "sku must be at most 50 characters"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
