package model

type ItemAddedToCart struct {
	ProductID   string
	Size        string
	Color       string
	Quantity    int
	NewQuantity int
}

func (e ItemAddedToCart) Type() string { return "ItemAddedToCart" }

type ItemRemovedFromCart struct {
	ProductID string
	Size      string
	Color     string
	Quantity  int
}

func (e ItemRemovedFromCart) Type() string { return "ItemRemovedFromCart" }

type CartItemQuantityChanged struct {
	ProductID   string
	Size        string
	Color       string
	OldQuantity int
	NewQuantity int
}

func (e CartItemQuantityChanged) Type() string { return "CartItemQuantityChanged" }

type CartCleared struct {
	RemovedItems int
}

func (e CartCleared) Type() string { return "CartCleared" }
