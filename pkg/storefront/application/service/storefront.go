package service

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	cartmodel "storefront/pkg/cart/domain/model"
	cartservice "storefront/pkg/cart/domain/service"
	catalogmodel "storefront/pkg/catalog/domain/model"
)

var (
	ErrSizeRequired      = errors.New("please select a size")
	ErrColorRequired     = errors.New("please select a color")
	ErrInsufficientStock = errors.New("requested quantity exceeds stock")
	ErrInvalidProductID  = errors.New("product id is required")
)

const productPageRecommendations = 4

// Catalog is the remote product and recommendation backend.
type Catalog interface {
	FetchProduct(ctx context.Context, id string) (catalogmodel.ProductRecord, error)
	FetchProducts(ctx context.Context, filter catalogmodel.ProductFilter) ([]catalogmodel.ProductRecord, error)
	FetchTrendingProducts(ctx context.Context) ([]catalogmodel.ProductRecord, error)
	FetchProductRecommendations(ctx context.Context, productID string, limit int) ([]catalogmodel.ProductRecord, error)
	FetchUserRecommendations(ctx context.Context, userID string) ([]catalogmodel.ProductRecord, error)
}

type ProductPage struct {
	Product         catalogmodel.ProductRecord
	Recommendations []catalogmodel.ProductRecord
}

type CartView struct {
	Items     []cartmodel.LineItem
	ItemCount int
	Totals    cartmodel.Totals
}

type StorefrontService interface {
	ProductPage(ctx context.Context, productID string) (ProductPage, error)
	Browse(ctx context.Context, filter catalogmodel.ProductFilter) []catalogmodel.ProductRecord
	Trending(ctx context.Context) []catalogmodel.ProductRecord
	Recommendations(ctx context.Context, productID string, limit int) []catalogmodel.ProductRecord
	UserRecommendations(ctx context.Context, userID string) []catalogmodel.ProductRecord

	AddToCart(ctx context.Context, productID string, quantity int, size, color string) (cartmodel.LineItem, error)
	UpdateQuantity(ctx context.Context, key cartmodel.ItemKey, quantity int) error
	RemoveFromCart(ctx context.Context, key cartmodel.ItemKey) error
	ClearCart(ctx context.Context) error
	Cart() CartView
}

func NewStorefrontService(catalog Catalog, cart cartservice.CartService) StorefrontService {
	return &storefrontService{catalog: catalog, cart: cart}
}

type storefrontService struct {
	catalog Catalog
	cart    cartservice.CartService
}

// ProductPage loads the product and its recommendations side by side. Only a
// failure to load the product itself fails the page.
func (s *storefrontService) ProductPage(ctx context.Context, productID string) (ProductPage, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ProductPage{}, ErrInvalidProductID
	}

	var page ProductPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		product, err := s.catalog.FetchProduct(gctx, productID)
		if err != nil {
			return err
		}
		page.Product = product
		return nil
	})
	g.Go(func() error {
		page.Recommendations = s.Recommendations(gctx, productID, productPageRecommendations)
		return nil
	})

	if err := g.Wait(); err != nil {
		return ProductPage{}, err
	}
	return page, nil
}

func (s *storefrontService) Browse(ctx context.Context, filter catalogmodel.ProductFilter) []catalogmodel.ProductRecord {
	products, err := s.catalog.FetchProducts(ctx, filter)
	return orEmpty(products, err, log.Fields{"call": "products", "category": filter.Category, "search": filter.Search})
}

func (s *storefrontService) Trending(ctx context.Context) []catalogmodel.ProductRecord {
	products, err := s.catalog.FetchTrendingProducts(ctx)
	return orEmpty(products, err, log.Fields{"call": "trending"})
}

func (s *storefrontService) Recommendations(ctx context.Context, productID string, limit int) []catalogmodel.ProductRecord {
	products, err := s.catalog.FetchProductRecommendations(ctx, productID, limit)
	return orEmpty(products, err, log.Fields{"call": "product recommendations", "productID": productID})
}

func (s *storefrontService) UserRecommendations(ctx context.Context, userID string) []catalogmodel.ProductRecord {
	products, err := s.catalog.FetchUserRecommendations(ctx, userID)
	return orEmpty(products, err, log.Fields{"call": "user recommendations", "userID": userID})
}

func (s *storefrontService) AddToCart(ctx context.Context, productID string, quantity int, size, color string) (cartmodel.LineItem, error) {
	if quantity <= 0 {
		return cartmodel.LineItem{}, cartmodel.ErrInvalidQuantity
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return cartmodel.LineItem{}, ErrInvalidProductID
	}

	product, err := s.catalog.FetchProduct(ctx, productID)
	if err != nil {
		return cartmodel.LineItem{}, err
	}

	size = strings.TrimSpace(size)
	color = strings.TrimSpace(color)
	if size == "" && product.RequiresSize() {
		return cartmodel.LineItem{}, ErrSizeRequired
	}
	if color == "" && product.RequiresColor() {
		return cartmodel.LineItem{}, ErrColorRequired
	}

	return s.cart.AddItemChecked(ctx, cartmodel.Product{
		ID:       productID,
		Name:     product.Name,
		Price:    product.Price,
		ImageURL: product.ImageURL,
		Brand:    product.Brand,
	}, quantity, size, color, func(newQuantity int) error {
		if !product.InStock(newQuantity) {
			return ErrInsufficientStock
		}
		return nil
	})
}

// UpdateQuantity removes the item instead of storing a quantity below one.
func (s *storefrontService) UpdateQuantity(ctx context.Context, key cartmodel.ItemKey, quantity int) error {
	if quantity < 1 {
		return s.cart.RemoveItem(ctx, key)
	}
	return s.cart.SetQuantity(ctx, key, quantity)
}

func (s *storefrontService) RemoveFromCart(ctx context.Context, key cartmodel.ItemKey) error {
	return s.cart.RemoveItem(ctx, key)
}

func (s *storefrontService) ClearCart(ctx context.Context) error {
	return s.cart.Clear(ctx)
}

func (s *storefrontService) Cart() CartView {
	snapshot := s.cart.Snapshot()
	return CartView{
		Items:     snapshot.Items,
		ItemCount: snapshot.ItemCount,
		Totals:    cartmodel.DeriveTotals(snapshot.Items),
	}
}

func orEmpty(products []catalogmodel.ProductRecord, err error, fields log.Fields) []catalogmodel.ProductRecord {
	if err != nil {
		log.WithError(err).WithFields(fields).Error("catalog request failed")
		return []catalogmodel.ProductRecord{}
	}
	if products == nil {
		return []catalogmodel.ProductRecord{}
	}
	return products
}
