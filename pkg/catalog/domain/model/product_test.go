package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductIDUnmarshal(t *testing.T) {
	var p ProductRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "name": "Mug", "price": 12.5}`), &p))
	assert.Equal(t, ProductID("42"), p.ID)
	assert.Equal(t, "12.5", p.Price.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id": " sku-7 ", "name": "Mug", "price": "3.00"}`), &p))
	assert.Equal(t, ProductID("sku-7"), p.ID)

	var id ProductID
	assert.ErrorIs(t, id.UnmarshalJSON([]byte(`{}`)), ErrInvalidProductID)
}

func TestProductIDNumericForms(t *testing.T) {
	for raw, want := range map[string]ProductID{
		`1`:     "1",
		`1.0`:   "1",
		`1e0`:   "1",
		`10E1`:  "100",
		`-0`:    "0",
		`2.50`:  "2.5",
		`"1.0"`: "1.0",
	} {
		var id ProductID
		require.NoError(t, id.UnmarshalJSON([]byte(raw)), raw)
		assert.Equal(t, want, id, raw)
	}
}

func TestDiscountPercent(t *testing.T) {
	original := decimal.RequireFromString("80.00")
	pricier := decimal.RequireFromString("100.00")

	assert.Equal(t, int64(20), ProductRecord{Price: decimal.RequireFromString("64.00"), OriginalPrice: &original}.DiscountPercent())
	assert.Equal(t, int64(0), ProductRecord{Price: decimal.RequireFromString("64.00")}.DiscountPercent())
	assert.Equal(t, int64(0), ProductRecord{Price: pricier, OriginalPrice: &original}.DiscountPercent())
}

func TestVariantRequirements(t *testing.T) {
	assert.False(t, ProductRecord{}.RequiresSize())
	assert.False(t, ProductRecord{Sizes: []string{OneSize}}.RequiresSize())
	assert.True(t, ProductRecord{Sizes: []string{"S", "M"}}.RequiresSize())

	assert.False(t, ProductRecord{}.RequiresColor())
	assert.True(t, ProductRecord{Colors: []string{"Red"}}.RequiresColor())
}

func TestInStock(t *testing.T) {
	three := 3

	assert.True(t, ProductRecord{}.InStock(1000))
	assert.True(t, ProductRecord{Stock: &three}.InStock(3))
	assert.False(t, ProductRecord{Stock: &three}.InStock(4))
}
