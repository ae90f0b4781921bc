package service

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"storefront/pkg/cart/domain/model"
	"storefront/pkg/common/domain"
)

type CartService interface {
	Restore(ctx context.Context) error

	AddItem(ctx context.Context, product model.Product, quantity int, size, color string) (model.LineItem, error)
	// AddItemChecked is AddItem guarded by check, which receives the quantity
	// the entry would hold afterwards. check runs under the cart lock; an
	// error from it aborts the add.
	AddItemChecked(ctx context.Context, product model.Product, quantity int, size, color string, check func(newQuantity int) error) (model.LineItem, error)
	RemoveItem(ctx context.Context, key model.ItemKey) error
	SetQuantity(ctx context.Context, key model.ItemKey, quantity int) error
	Clear(ctx context.Context) error

	Items() []model.LineItem
	ItemCount() int
	Totals() model.Totals
	Snapshot() model.Snapshot
}

// NewCartService returns a service around an empty cart. Call Restore to
// load the persisted snapshot stored under snapshotName.
func NewCartService(repo model.SnapshotRepository, dispatcher domain.EventDispatcher, snapshotName string) CartService {
	if snapshotName == "" {
		snapshotName = model.DefaultSnapshotName
	}
	return &cartService{
		repo:         repo,
		dispatcher:   dispatcher,
		snapshotName: snapshotName,
		cart:         model.NewCart(),
	}
}

type cartService struct {
	repo         model.SnapshotRepository
	dispatcher   domain.EventDispatcher
	snapshotName string

	mu   sync.Mutex
	cart *model.Cart
}

func (s *cartService) Restore(ctx context.Context) error {
	snapshot, err := s.repo.Load(ctx, s.snapshotName)
	if errors.Is(err, model.ErrSnapshotNotFound) {
		log.WithField("snapshot", s.snapshotName).Info("no saved cart, starting empty")
		return nil
	}
	if err != nil {
		return err
	}

	cart, err := model.RestoreCart(snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"snapshot":  s.snapshotName,
		"items":     cart.Len(),
		"itemCount": cart.ItemCount(),
	}).Info("cart restored")
	return nil
}

func (s *cartService) AddItem(ctx context.Context, product model.Product, quantity int, size, color string) (model.LineItem, error) {
	return s.AddItemChecked(ctx, product, quantity, size, color, nil)
}

func (s *cartService) AddItemChecked(ctx context.Context, product model.Product, quantity int, size, color string, check func(newQuantity int) error) (model.LineItem, error) {
	var item model.LineItem
	err := s.executeOnCart(ctx, func(c *model.Cart) ([]domain.Event, error) {
		if check != nil && quantity > 0 {
			existing, _ := c.Find(model.NewItemKey(product.ID, size, color))
			if err := check(existing.Quantity + quantity); err != nil {
				return nil, err
			}
		}

		var err error
		item, err = c.AddItem(product, quantity, size, color)
		if err != nil {
			return nil, err
		}
		return []domain.Event{model.ItemAddedToCart{
			ProductID:   item.ProductID,
			Size:        item.Size,
			Color:       item.Color,
			Quantity:    quantity,
			NewQuantity: item.Quantity,
		}}, nil
	})
	return item, err
}

func (s *cartService) RemoveItem(ctx context.Context, key model.ItemKey) error {
	return s.executeOnCart(ctx, func(c *model.Cart) ([]domain.Event, error) {
		removed, ok := c.RemoveItem(key)
		if !ok {
			return nil, nil
		}
		return []domain.Event{model.ItemRemovedFromCart{
			ProductID: removed.ProductID,
			Size:      removed.Size,
			Color:     removed.Color,
			Quantity:  removed.Quantity,
		}}, nil
	})
}

func (s *cartService) SetQuantity(ctx context.Context, key model.ItemKey, quantity int) error {
	return s.executeOnCart(ctx, func(c *model.Cart) ([]domain.Event, error) {
		old, ok := c.SetQuantity(key, quantity)
		if !ok {
			return nil, nil
		}
		return []domain.Event{model.CartItemQuantityChanged{
			ProductID:   key.ProductID,
			Size:        key.Size,
			Color:       key.Color,
			OldQuantity: old,
			NewQuantity: quantity,
		}}, nil
	})
}

// Clear always rewrites the snapshot, even when the cart was already empty.
func (s *cartService) Clear(ctx context.Context) error {
	return s.executeOnCart(ctx, func(c *model.Cart) ([]domain.Event, error) {
		return []domain.Event{model.CartCleared{RemovedItems: c.Clear()}}, nil
	})
}

func (s *cartService) Items() []model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

func (s *cartService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

func (s *cartService) Totals() model.Totals {
	return model.DeriveTotals(s.Items())
}

func (s *cartService) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot()
}

// executeOnCart runs a transition and, when it produced events, persists the
// resulting state. A nil event list means nothing changed.
func (s *cartService) executeOnCart(ctx context.Context, action func(c *model.Cart) ([]domain.Event, error)) error {
	s.mu.Lock()
	events, err := action(s.cart)
	if err != nil || len(events) == 0 {
		s.mu.Unlock()
		return err
	}
	snapshot := s.cart.Snapshot()
	s.persist(ctx, snapshot)
	s.mu.Unlock()

	s.dispatchEvents(events)
	return nil
}

// persist only logs a failed save; the in-memory mutation is kept.
func (s *cartService) persist(ctx context.Context, snapshot model.Snapshot) {
	if err := s.repo.Save(ctx, s.snapshotName, snapshot); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"snapshot":  s.snapshotName,
			"itemCount": snapshot.ItemCount,
		}).Error("failed to persist cart snapshot")
	}
}

func (s *cartService) dispatchEvents(events []domain.Event) {
	for _, event := range events {
		if err := s.dispatcher.Dispatch(event); err != nil {
			log.WithError(err).WithField("event", event.Type()).Error("failed to dispatch event")
		}
	}
}
