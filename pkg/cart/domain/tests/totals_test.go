package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/cart/domain/model"
)

func TestDeriveTotals(t *testing.T) {
	t.Run("Walkthrough from an empty cart", func(t *testing.T) {
		cart := model.NewCart()
		_, err := cart.AddItem(product("1", "10.00"), 2, "M", "Red")
		require.NoError(t, err)
		assert.Equal(t, 2, cart.ItemCount())

		_, err = cart.AddItem(product("1", "10.00"), 1, "M", "Red")
		require.NoError(t, err)
		assert.Equal(t, 3, cart.ItemCount())
		assert.Equal(t, 1, cart.Len())

		cart.SetQuantity(model.NewItemKey("1", "M", "Red"), 1)
		assert.Equal(t, 1, cart.ItemCount())

		totals := model.DeriveTotals(cart.Items())
		assert.Equal(t, "10.00", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "9.99", totals.Shipping.StringFixed(2))
		assert.Equal(t, "0.80", totals.Tax.StringFixed(2))
		assert.Equal(t, "20.79", totals.Total.StringFixed(2))
		assert.Equal(t, "40.00", totals.FreeShippingRemaining.StringFixed(2))
	})

	t.Run("Free shipping above threshold", func(t *testing.T) {
		items := []model.LineItem{
			{ProductID: "1", Price: product("1", "20.00").Price, Quantity: 3},
		}

		totals := model.DeriveTotals(items)

		assert.Equal(t, "60.00", totals.Subtotal.StringFixed(2))
		assert.True(t, totals.Shipping.IsZero())
		assert.Equal(t, "4.80", totals.Tax.StringFixed(2))
		assert.Equal(t, "64.80", totals.Total.StringFixed(2))
		assert.True(t, totals.FreeShippingRemaining.IsZero())
	})

	t.Run("Exactly at threshold still pays shipping", func(t *testing.T) {
		items := []model.LineItem{
			{ProductID: "1", Price: product("1", "25.00").Price, Quantity: 2},
		}

		totals := model.DeriveTotals(items)

		assert.Equal(t, "9.99", totals.Shipping.StringFixed(2))
		assert.Equal(t, "4.00", totals.Tax.StringFixed(2))
		assert.Equal(t, "63.99", totals.Total.StringFixed(2))
	})

	t.Run("Tax rounds to cents", func(t *testing.T) {
		items := []model.LineItem{
			{ProductID: "3", Price: product("3", "24.99").Price, Quantity: 1},
		}

		totals := model.DeriveTotals(items)

		assert.Equal(t, "2.00", totals.Tax.StringFixed(2))
		assert.Equal(t, "36.98", totals.Total.StringFixed(2))
	})

	t.Run("Empty cart", func(t *testing.T) {
		totals := model.DeriveTotals(nil)

		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.Tax.IsZero())
		assert.Equal(t, "9.99", totals.Shipping.StringFixed(2))
	})
}
