package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/collectibles-storefront/internal/domain/catalog"
	"github.com/your-org/collectibles-storefront/internal/pkg/events"
	"github.com/your-org/collectibles-storefront/internal/pkg/logger"
	"github.com/your-org/collectibles-storefront/internal/pkg/metrics"
)

type fakeCatalog struct {
	products map[catalog.ProductID]catalog.Product
}

func (f *fakeCatalog) GetProduct(_ context.Context, id catalog.ProductID) (*catalog.Product, error) {
	p, ok := f.products[catalog.ParseProductID(string(id))]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeCatalog) snapshot() []catalog.Product {
	out := make([]catalog.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out
}

type failingStore struct {
	Store
}

func (failingStore) Save(context.Context, *Cart) error {
	return errors.New("redis unavailable")
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) {
	p.events = append(p.events, event)
}

func newTestService(t *testing.T, products ...catalog.Product) (*Service, *fakeCatalog, *recordingPublisher) {
	t.Helper()
	src := &fakeCatalog{products: make(map[catalog.ProductID]catalog.Product)}
	for _, p := range products {
		src.products[p.ID] = p
	}
	pub := &recordingPublisher{}
	return NewService(NewMemoryStore(), src, pub, nil, logger.Discard()), src, pub
}

func TestService_AddToCartScenario(t *testing.T) {
	ctx := context.Background()
	svc, src, _ := newTestService(t, catalog.Product{ID: "P7", Name: "Charizard", Price: 4999, Stock: 5})

	view, err := svc.Reconcile(ctx, "sess", src.snapshot())
	require.NoError(t, err)
	assert.Equal(t, 5, view[0].Stock)

	for i := 0; i < 3; i++ {
		_, err := svc.AddToCart(ctx, "sess", "P7")
		require.NoError(t, err)
	}

	c, err := svc.GetCart(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, 3, c.QuantityOf("P7"))

	view, err = svc.Reconcile(ctx, "sess", src.snapshot())
	require.NoError(t, err)
	assert.Equal(t, 2, view[0].Stock)

	c, err = svc.UpdateQuantity(ctx, "sess", "P7", 0)
	require.NoError(t, err)
	assert.False(t, c.Contains("P7"))

	view, err = svc.Reconcile(ctx, "sess", src.snapshot())
	require.NoError(t, err)
	assert.Equal(t, 5, view[0].Stock)
}

func TestService_AddToCartKeepsAuthoritativeStock(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, catalog.Product{ID: "1", Stock: 4})

	_, err := svc.AddToCart(ctx, "sess", "1")
	require.NoError(t, err)
	c, err := svc.AddToCart(ctx, "sess", "1")
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 4, c.Lines[0].Product.Stock)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestService_AddToCartAtZeroStockIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, _, pub := newTestService(t,
		catalog.Product{ID: "1", Stock: 0},
		catalog.Product{ID: "2", Stock: 1},
	)

	_, err := svc.AddToCart(ctx, "sess", "1")
	assert.True(t, errors.Is(err, ErrOutOfStock))

	_, err = svc.AddToCart(ctx, "sess", "2")
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "sess", "2")
	assert.True(t, errors.Is(err, ErrOutOfStock))

	c, err := svc.GetCart(ctx, "sess")
	require.NoError(t, err)
	assert.False(t, c.Contains("1"))
	assert.Equal(t, 1, c.QuantityOf("2"))
	assert.Len(t, pub.events, 1)
}

func TestService_AddToCartNumericAndStringIDsShareALine(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, catalog.Product{ID: "42", Stock: 3})

	_, err := svc.AddToCart(ctx, "sess", catalog.ParseProductID(42))
	require.NoError(t, err)
	c, err := svc.AddToCart(ctx, "sess", catalog.ParseProductID("42"))
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestService_AddToCartUnknownProduct(t *testing.T) {
	svc, _, pub := newTestService(t)

	_, err := svc.AddToCart(context.Background(), "sess", "nope")

	assert.True(t, errors.Is(err, catalog.ErrProductNotFound))
	assert.Empty(t, pub.events)
}

func TestService_LineLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, pub := newTestService(t,
		catalog.Product{ID: "1", Stock: 5},
		catalog.Product{ID: "2", Stock: 5},
	)

	_, err := svc.AddToCart(ctx, "sess", "1")
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "sess", "2")
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(ctx, "sess", "1", 9)
	require.NoError(t, err)
	assert.Equal(t, 9, c.QuantityOf("1"), "update does not enforce an upper bound")

	c, err = svc.UpdateQuantity(ctx, "sess", "absent", 2)
	require.NoError(t, err)
	assert.False(t, c.Contains("absent"))

	before := len(pub.events)
	c, err = svc.RemoveFromCart(ctx, "sess", "absent")
	require.NoError(t, err)
	assert.Len(t, c.Lines, 2)
	assert.Len(t, pub.events, before, "no-op removals publish nothing")

	c, err = svc.RemoveFromCart(ctx, "sess", "2")
	require.NoError(t, err)
	assert.False(t, c.Contains("2"))

	c, err = svc.ClearCart(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)

	stored, err := svc.GetCart(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, stored.Lines)

	last := pub.events[len(pub.events)-1]
	assert.Equal(t, events.CartCleared, last.Kind)
	assert.Equal(t, "sess", last.Scope)
	for _, ev := range pub.events[:len(pub.events)-1] {
		assert.Equal(t, events.CartUpdated, ev.Kind)
	}
}

func TestService_FailedSaveLeavesStateAndPublishesNothing(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryStore()
	src := &fakeCatalog{products: map[catalog.ProductID]catalog.Product{"1": {ID: "1", Stock: 5}}}
	pub := &recordingPublisher{}

	ok := NewService(base, src, pub, nil, logger.Discard())
	_, err := ok.AddToCart(ctx, "sess", "1")
	require.NoError(t, err)
	pub.events = nil

	broken := NewService(failingStore{base}, src, pub, nil, logger.Discard())
	_, err = broken.AddToCart(ctx, "sess", "1")
	require.Error(t, err)
	_, err = broken.ClearCart(ctx, "sess")
	require.Error(t, err)

	c, err := ok.GetCart(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, 1, c.QuantityOf("1"))
	assert.Empty(t, pub.events)
}

func TestService_Totals(t *testing.T) {
	ctx := context.Background()
	sale := int64(800)
	svc, _, _ := newTestService(t,
		catalog.Product{ID: "1", Price: 1000, SalePrice: &sale, OnSale: true, Stock: 5},
		catalog.Product{ID: "2", Price: 250, Stock: 5},
	)

	_, err := svc.AddToCart(ctx, "sess", "1")
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "sess", "2")
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "sess", "2")
	require.NoError(t, err)

	totals, err := svc.Totals(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, Totals{ItemCount: 2, TotalQuantity: 3, SubTotal: 1300}, totals)
}

func TestService_PublishesOnBus(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus(logger.Discard())
	sub := bus.Subscribe(events.CartCleared)
	defer sub.Close()

	src := &fakeCatalog{products: map[catalog.ProductID]catalog.Product{"1": {ID: "1", Stock: 1}}}
	svc := NewService(NewMemoryStore(), src, bus, nil, logger.Discard())

	_, err := svc.AddToCart(ctx, "sess", "1")
	require.NoError(t, err)
	_, err = svc.ClearCart(ctx, "sess")
	require.NoError(t, err)

	select {
	case ev := <-sub.C():
		assert.Equal(t, events.CartCleared, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("cart.cleared not delivered")
	}
}

func TestService_RecordsMutationMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	src := &fakeCatalog{products: map[catalog.ProductID]catalog.Product{"1": {ID: "1", Stock: 1}}}
	svc := NewService(NewMemoryStore(), src, nil, m, logger.Discard())

	_, err := svc.AddToCart(ctx, "sess", "1")
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "sess", "1")
	require.Error(t, err)

	// one ok and one rejected add
	assert.Equal(t, 2, testutil.CollectAndCount(reg, "storefront_cart_mutations_total"))
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, "cart:session:", time.Hour)

	empty, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", empty.SessionID)
	assert.Empty(t, empty.Lines)

	c := NewCart("abc")
	c.Lines = append(c.Lines, line("7", 5, 2))
	require.NoError(t, store.Save(ctx, c))

	assert.True(t, mr.Exists("cart:session:abc"))
	assert.Equal(t, time.Hour, mr.TTL("cart:session:abc"))

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.QuantityOf("7"))
	assert.Equal(t, 5, loaded.Lines[0].Product.Stock)

	_, err = store.Load(ctx, "")
	assert.True(t, errors.Is(err, ErrSessionRequired))
}
