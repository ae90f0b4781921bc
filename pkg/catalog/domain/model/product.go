package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProductID = errors.New("invalid product id")
)

// OneSize is the only size offered by products without a size choice.
const OneSize = "One Size"

// ProductID accepts both numeric and string ids on the wire and is always
// handled as a string.
type ProductID string

func (id ProductID) String() string { return string(id) }

func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ErrInvalidProductID
	}
	*id = ProductID(normalizeNumber(n))
	return nil
}

// normalizeNumber maps equal numbers to one id, so 1, 1.0 and 1e0 all
// become "1".
func normalizeNumber(n json.Number) string {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return n.String()
	}
	return d.String()
}

type ProductRecord struct {
	ID            ProductID        `json:"id"`
	Name          string           `json:"name"`
	Brand         string           `json:"brand,omitempty"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Stock         *int             `json:"stock,omitempty"`
	Rating        *float64         `json:"rating,omitempty"`
	ReviewCount   *int             `json:"review_count,omitempty"`
	Sizes         []string         `json:"sizes,omitempty"`
	Colors        []string         `json:"colors,omitempty"`
}

// DiscountPercent returns the rounded markdown from OriginalPrice, or 0 when
// the product is not discounted.
func (p ProductRecord) DiscountPercent() int64 {
	if p.OriginalPrice == nil || !p.OriginalPrice.IsPositive() || !p.Price.LessThan(*p.OriginalPrice) {
		return 0
	}
	return p.OriginalPrice.Sub(p.Price).
		Div(*p.OriginalPrice).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// InStock reports whether quantity units can be taken. Unknown stock is
// treated as unlimited.
func (p ProductRecord) InStock(quantity int) bool {
	if p.Stock == nil {
		return true
	}
	return quantity <= *p.Stock
}

// RequiresSize is false when the product offers no sizes or only OneSize.
func (p ProductRecord) RequiresSize() bool {
	for _, s := range p.Sizes {
		if s != OneSize {
			return true
		}
	}
	return false
}

func (p ProductRecord) RequiresColor() bool {
	return len(p.Colors) > 0
}

type ProductFilter struct {
	Category string
	Search   string
}
