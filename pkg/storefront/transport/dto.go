package transport

import (
	"github.com/shopspring/decimal"

	cartmodel "storefront/pkg/cart/domain/model"
	catalogmodel "storefront/pkg/catalog/domain/model"
	"storefront/pkg/storefront/application/service"
)

type addItemRequest struct {
	ProductID catalogmodel.ProductID `json:"productId"`
	Quantity  *int                   `json:"quantity"`
	Size      string                 `json:"size"`
	Color     string                 `json:"color"`
}

type updateQuantityRequest struct {
	ProductID catalogmodel.ProductID `json:"productId"`
	Size      string                 `json:"size"`
	Color     string                 `json:"color"`
	Quantity  *int                   `json:"quantity"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type lineItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Brand     string `json:"brand,omitempty"`
}

type totalsResponse struct {
	Subtotal              string `json:"subtotal"`
	Tax                   string `json:"tax"`
	Shipping              string `json:"shipping"`
	FreeShipping          bool   `json:"freeShipping"`
	FreeShippingRemaining string `json:"freeShippingRemaining"`
	Total                 string `json:"total"`
}

type cartResponse struct {
	Items     []lineItemResponse `json:"items"`
	ItemCount int                `json:"itemCount"`
	Totals    totalsResponse     `json:"totals"`
}

type productResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand,omitempty"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category,omitempty"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	Price           string   `json:"price"`
	OriginalPrice   string   `json:"originalPrice,omitempty"`
	DiscountPercent int64    `json:"discountPercent,omitempty"`
	Stock           *int     `json:"stock,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	ReviewCount     *int     `json:"reviewCount,omitempty"`
	Sizes           []string `json:"sizes,omitempty"`
	Colors          []string `json:"colors,omitempty"`
}

type productPageResponse struct {
	Product         productResponse   `json:"product"`
	Recommendations []productResponse `json:"recommendations"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toCartResponse(view service.CartView) cartResponse {
	items := make([]lineItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, lineItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     money(item.Price),
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			LineTotal: money(item.LineTotal()),
			ImageURL:  item.ImageURL,
			Brand:     item.Brand,
		})
	}

	return cartResponse{
		Items:     items,
		ItemCount: view.ItemCount,
		Totals:    toTotalsResponse(view.Totals),
	}
}

func toTotalsResponse(t cartmodel.Totals) totalsResponse {
	return totalsResponse{
		Subtotal:              money(t.Subtotal),
		Tax:                   money(t.Tax),
		Shipping:              money(t.Shipping),
		FreeShipping:          t.Shipping.IsZero(),
		FreeShippingRemaining: money(t.FreeShippingRemaining),
		Total:                 money(t.Total),
	}
}

func toProductResponse(p catalogmodel.ProductRecord) productResponse {
	resp := productResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		Brand:           p.Brand,
		Description:     p.Description,
		Category:        p.Category,
		ImageURL:        p.ImageURL,
		Price:           money(p.Price),
		DiscountPercent: p.DiscountPercent(),
		Stock:           p.Stock,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		Sizes:           p.Sizes,
		Colors:          p.Colors,
	}
	if p.OriginalPrice != nil {
		resp.OriginalPrice = money(*p.OriginalPrice)
	}
	return resp
}

func toProductResponses(products []catalogmodel.ProductRecord) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
