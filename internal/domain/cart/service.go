// internal/domain/cart/service.go
package cart

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/your-org/collectibles-storefront/internal/domain/catalog"
	"github.com/your-org/collectibles-storefront/internal/pkg/events"
	"github.com/your-org/collectibles-storefront/internal/pkg/metrics"
)

// ErrOutOfStock is returned when the reconciled stock of a product is zero
var ErrOutOfStock = errors.New("product is out of stock")

// ProductSource reads authoritative products from the catalog
type ProductSource interface {
	GetProduct(ctx context.Context, id catalog.ProductID) (*catalog.Product, error)
}

// Service handles cart business logic
type Service struct {
	store    Store
	products ProductSource
	events   events.Publisher
	metrics  *metrics.Metrics
	logger   logrus.FieldLogger
}

// NewService creates a new cart service. publisher and m may be nil.
func NewService(store Store, products ProductSource, publisher events.Publisher, m *metrics.Metrics, logger logrus.FieldLogger) *Service {
	return &Service{
		store:    store,
		products: products,
		events:   publisher,
		metrics:  m,
		logger:   logger,
	}
}

// GetCart returns the persisted cart of a session
func (s *Service) GetCart(ctx context.Context, sessionID string) (*Cart, error) {
	return s.store.Load(ctx, sessionID)
}

// Totals returns the totals of a session's cart
func (s *Service) Totals(ctx context.Context, sessionID string) (Totals, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Totals{}, err
	}
	return c.Totals(), nil
}

// Reconcile applies the session's cart to an authoritative catalog snapshot
func (s *Service) Reconcile(ctx context.Context, sessionID string, snapshot []catalog.Product) ([]catalog.Product, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return SyncWithCart(snapshot, c), nil
}

// AddToCart adds one unit of a product. A product with no reconciled stock
// left is rejected with ErrOutOfStock and the cart is left as it was.
func (s *Service) AddToCart(ctx context.Context, sessionID string, productID catalog.ProductID) (cart *Cart, err error) {
	defer func() { s.metrics.CartMutation("add", err) }()

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	current, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if Available(product.Stock, current.QuantityOf(product.ID)) <= 0 {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"product_id": product.ID,
		}).Info("Rejected add to cart, no stock left")
		return nil, ErrOutOfStock
	}

	next := current.clone()
	now := time.Now().UTC()
	if i := next.find(product.ID); i >= 0 {
		next.Lines[i].Quantity++
		next.Lines[i].Product = *product
	} else {
		next.Lines = append(next.Lines, Line{
			Product:  *product,
			Quantity: 1,
			AddedAt:  now,
		})
	}
	next.UpdatedAt = now

	if err := s.save(ctx, next); err != nil {
		return nil, err
	}

	s.publish(ctx, events.CartUpdated, sessionID, product.ID.String())
	return next, nil
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less
// removes the line. No upper bound is enforced here.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID catalog.ProductID, quantity int) (cart *Cart, err error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, sessionID, productID)
	}

	defer func() { s.metrics.CartMutation("update", err) }()

	current, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := current.find(productID)
	if i < 0 {
		return current, nil
	}

	next := current.clone()
	next.Lines[i].Quantity = quantity
	next.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, next); err != nil {
		return nil, err
	}

	s.publish(ctx, events.CartUpdated, sessionID, productID.String())
	return next, nil
}

// RemoveFromCart deletes a line, doing nothing if it is absent
func (s *Service) RemoveFromCart(ctx context.Context, sessionID string, productID catalog.ProductID) (cart *Cart, err error) {
	defer func() { s.metrics.CartMutation("remove", err) }()

	current, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := current.find(productID)
	if i < 0 {
		return current, nil
	}

	next := current.clone()
	next.Lines = append(next.Lines[:i], next.Lines[i+1:]...)
	next.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, next); err != nil {
		return nil, err
	}

	s.publish(ctx, events.CartUpdated, sessionID, productID.String())
	return next, nil
}

// ClearCart empties the cart and announces it with a cart.cleared event
func (s *Service) ClearCart(ctx context.Context, sessionID string) (cart *Cart, err error) {
	defer func() { s.metrics.CartMutation("clear", err) }()

	current, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	next := current.clone()
	next.Lines = []Line{}
	next.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, next); err != nil {
		return nil, err
	}

	s.publish(ctx, events.CartCleared, sessionID, "")
	return next, nil
}

func (s *Service) save(ctx context.Context, c *Cart) error {
	if err := s.store.Save(ctx, c); err != nil {
		s.logger.WithError(err).WithField("session_id", c.SessionID).Error("Failed to save cart")
		return err
	}
	return nil
}

func (s *Service) publish(ctx context.Context, kind events.Kind, sessionID, hint string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, events.Event{
		Kind:  kind,
		Scope: sessionID,
		Hint:  hint,
	})
}
