package model

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be a positive number")
	ErrInvalidSnapshot  = errors.New("cart snapshot is inconsistent")
	ErrSnapshotNotFound = errors.New("cart snapshot not found")
)

const (
	DefaultSize  = "One Size"
	DefaultColor = "Default"
)

// ItemKey identifies a line item: the same product in another size or
// color is a separate entry.
type ItemKey struct {
	ProductID string
	Size      string
	Color     string
}

func NewItemKey(productID, size, color string) ItemKey {
	size = strings.TrimSpace(size)
	if size == "" {
		size = DefaultSize
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultColor
	}
	return ItemKey{
		ProductID: strings.TrimSpace(productID),
		Size:      size,
		Color:     color,
	}
}

// Product holds the fields copied into a line item when it is first added.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	ImageURL string
	Brand    string
}

type LineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Brand     string          `json:"brand,omitempty"`
}

func (i LineItem) Key() ItemKey {
	return ItemKey{ProductID: i.ProductID, Size: i.Size, Color: i.Color}
}

func (i LineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the cart aggregate. It has no storage of its own: callers persist
// Snapshot() after each transition. itemCount is adjusted on every mutation
// and must always equal the sum of item quantities.
type Cart struct {
	items     []LineItem
	itemCount int
}

func NewCart() *Cart {
	return &Cart{items: make([]LineItem, 0)}
}

// RestoreCart rebuilds an aggregate from a persisted snapshot. Any state the
// aggregate can reach is accepted, including quantities left at zero or below
// by SetQuantity.
func RestoreCart(snapshot Snapshot) (*Cart, error) {
	cart := NewCart()
	seen := make(map[ItemKey]struct{}, len(snapshot.Items))
	sum := 0
	for _, item := range snapshot.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return nil, ErrInvalidSnapshot
		}
		key := item.Key()
		if _, dup := seen[key]; dup {
			return nil, ErrInvalidSnapshot
		}
		seen[key] = struct{}{}
		sum += item.Quantity
		cart.items = append(cart.items, item)
	}
	if sum != snapshot.ItemCount {
		return nil, ErrInvalidSnapshot
	}
	cart.itemCount = snapshot.ItemCount
	return cart, nil
}

func (c *Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) ItemCount() int { return c.itemCount }

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) Find(key ItemKey) (LineItem, bool) {
	if i := c.indexOf(key); i >= 0 {
		return c.items[i], true
	}
	return LineItem{}, false
}

// AddItem merges quantity into the entry for (product, size, color) or
// appends a new entry. There is no upper bound on the resulting quantity.
func (c *Cart) AddItem(product Product, quantity int, size, color string) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}

	key := NewItemKey(product.ID, size, color)
	if i := c.indexOf(key); i >= 0 {
		c.items[i].Quantity += quantity
		c.itemCount += quantity
		return c.items[i], nil
	}

	item := LineItem{
		ProductID: key.ProductID,
		Name:      product.Name,
		Price:     product.Price,
		Size:      key.Size,
		Color:     key.Color,
		Quantity:  quantity,
		ImageURL:  product.ImageURL,
		Brand:     product.Brand,
	}
	c.items = append(c.items, item)
	c.itemCount += quantity
	return item, nil
}

// RemoveItem returns the removed entry, or false when the key is absent.
func (c *Cart) RemoveItem(key ItemKey) (LineItem, bool) {
	i := c.indexOf(key)
	if i < 0 {
		return LineItem{}, false
	}

	removed := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.itemCount -= removed.Quantity
	return removed, true
}

// SetQuantity overwrites the quantity of an existing entry and returns the
// previous value. Non-positive quantities are accepted as given.
func (c *Cart) SetQuantity(key ItemKey, quantity int) (int, bool) {
	i := c.indexOf(key)
	if i < 0 {
		return 0, false
	}

	old := c.items[i].Quantity
	c.items[i].Quantity = quantity
	c.itemCount += quantity - old
	return old, true
}

// Clear empties the cart and returns the number of entries dropped.
func (c *Cart) Clear() int {
	n := len(c.items)
	c.items = make([]LineItem, 0)
	c.itemCount = 0
	return n
}

func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		Items:     c.Items(),
		ItemCount: c.itemCount,
	}
}

func (c *Cart) indexOf(key ItemKey) int {
	for i, item := range c.items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}
