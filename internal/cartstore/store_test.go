package cartstore_test

import (
	"context"
	"testing"

	"app/internal/cartstore"
	"app/internal/domain/model"
	infraRepo "app/internal/infra/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestStore() (*cartstore.Store, *infraRepo.CartKVMemoryRepository) {
	kv := infraRepo.NewCartKVMemoryRepository()
	return cartstore.New(kv), kv
}

func testProduct(id string, price int64, stock int64) model.Product {
	return model.Product{
		ID:                   id,
		Name:                 "Paracetamol 500mg",
		Price:                decimal.NewFromInt(price),
		Image:                "https://cdn.example.com/p/" + id + ".jpg",
		Brand:                "MedCare",
		Category:             "painkillers",
		PrescriptionRequired: false,
		ExpiryDate:           "2027-01-31",
		Quantity:             stock,
	}
}

func TestStore_Add_NewItem(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AuthenticatedScope("u1")

	items, err := s.Add(ctx, scope, testProduct("p1", 500, 3))
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, "p1", it.ID)
	assert.Equal(t, "Paracetamol 500mg", it.Name)
	assert.Equal(t, int64(1), it.Quantity)
	assert.Equal(t, int64(3), it.AvailableQuantity)
	assert.Equal(t, "MedCare", it.Brand)
	assert.Equal(t, "painkillers", it.Category)
	assert.Equal(t, "2027-01-31", it.ExpiryDate)
	assert.False(t, it.PrescriptionRequired)

	total, err := s.Total(ctx, scope)
	assert.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(500)), "total = %s", total)
}

func TestStore_Add_IncrementsUpToStock(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AuthenticatedScope("u1")
	p := testProduct("p1", 500, 3)

	for i := 0; i < 3; i++ {
		_, err := s.Add(ctx, scope, p)
		assert.NoError(t, err)
	}

	qty, err := s.QuantityOf(ctx, scope, "p1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), qty)

	// 4th add exceeds the live stock of 3
	_, err = s.Add(ctx, scope, p)
	assert.ErrorIs(t, err, cartstore.ErrQuantityLimitExceeded)

	qty, err = s.QuantityOf(ctx, scope, "p1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), qty)
}

func TestStore_Add_OutOfStock(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AuthenticatedScope("u1")

	_, err := s.Add(ctx, scope, testProduct("p1", 500, 0))
	assert.ErrorIs(t, err, cartstore.ErrOutOfStock)

	items, err := s.List(ctx, scope)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_Add_NeverDuplicatesProduct(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AuthenticatedScope("u1")

	for i := 0; i < 5; i++ {
		_, _ = s.Add(ctx, scope, testProduct("p1", 500, 100))
	}
	_, err := s.Add(ctx, scope, testProduct("p2", 200, 10))
	assert.NoError(t, err)

	items, err := s.List(ctx, scope)
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	seen := map[string]int{}
	for _, it := range items {
		seen[it.ID]++
	}
	assert.Equal(t, 1, seen["p1"])
	assert.Equal(t, 1, seen["p2"])
}

func TestStore_SetQuantity_BelowOneIsNoop(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AuthenticatedScope("u1")

	_, err := s.Add(ctx, scope, testProduct("p1", 500, 3))
	assert.NoError(t, err)

	before, err := s.List(ctx, scope)
	assert.NoError(t, err)

	items, err := s.SetQuantity(ctx, scope, "p1", 0, 3)
	assert.NoError(t, err)
	assert.Equal(t, before, items)

	after, err := s.List(ctx, scope)
	assert.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_SetQuantity_AboveStockFailsWithoutMutation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AuthenticatedScope("u1")

	_, err := s.Add(ctx, scope, testProduct("p1", 500, 3))
	assert.NoError(t, err)

	before, err := s.List(ctx, scope)
	assert.NoError(t, err)

	_, err = s.SetQuantity(ctx, scope, "p1", 4, 3)
	assert.ErrorIs(t, err, cartstore.ErrQuantityLimitExceeded)

	after, err := s.List(ctx, scope)
	assert.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_SetQuantity_UpdatesOnlyMatchingItem(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AuthenticatedScope("u1")

	_, _ = s.Add(ctx, scope, testProduct("p1", 500, 10))
	_, _ = s.Add(ctx, scope, testProduct("p2", 200, 10))

	items, err := s.SetQuantity(ctx, scope, "p2", 5, 10)
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	q1, _ := s.QuantityOf(ctx, scope, "p1")
	q2, _ := s.QuantityOf(ctx, scope, "p2")
	assert.Equal(t, int64(1), q1)
	assert.Equal(t, int64(5), q2)
}

func TestStore_SetQuantity_MissingProductIsToleratedNoop(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AuthenticatedScope("u1")

	_, _ = s.Add(ctx, scope, testProduct("p1", 500, 3))

	items, err := s.SetQuantity(ctx, scope, "missing", 2, 5)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AuthenticatedScope("u1")

	_, _ = s.Add(ctx, scope, testProduct("p1", 500, 3))
	_, _ = s.Add(ctx, scope, testProduct("p2", 200, 3))

	items, err := s.Remove(ctx, scope, "p1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)

	// removing an absent product is not an error
	items, err = s.Remove(ctx, scope, "p1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	count, err := s.Count(ctx, scope)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStore_Clear_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AuthenticatedScope("u1")

	_, _ = s.Add(ctx, scope, testProduct("p1", 500, 3))

	items, err := s.Clear(ctx, scope)
	assert.NoError(t, err)
	assert.Empty(t, items)

	// clearing an already-absent cart must not fail
	items, err = s.Clear(ctx, scope)
	assert.NoError(t, err)
	assert.Empty(t, items)

	got, err := s.List(ctx, scope)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_ScopeIsolation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	guest := model.AnonymousScope()
	u2 := model.AuthenticatedScope("u2")

	_, err := s.Add(ctx, guest, testProduct("p1", 500, 3))
	assert.NoError(t, err)
	_, err = s.Add(ctx, u2, testProduct("p1", 500, 3))
	assert.NoError(t, err)

	guestItems, _ := s.List(ctx, guest)
	u2Items, _ := s.List(ctx, u2)
	assert.Len(t, guestItems, 1)
	assert.Len(t, u2Items, 1)

	_, err = s.Clear(ctx, guest)
	assert.NoError(t, err)

	guestItems, _ = s.List(ctx, guest)
	u2Items, _ = s.List(ctx, u2)
	assert.Empty(t, guestItems)
	assert.Len(t, u2Items, 1)
}

func TestStore_Total_MatchesSumOfSubtotals(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AuthenticatedScope("u1")

	_, _ = s.Add(ctx, scope, testProduct("p1", 500, 10))
	_, _ = s.Add(ctx, scope, testProduct("p1", 500, 10))
	_, _ = s.Add(ctx, scope, testProduct("p2", 250, 10))
	_, _ = s.SetQuantity(ctx, scope, "p2", 4, 10)

	// 2*500 + 4*250 = 2000
	total, err := s.Total(ctx, scope)
	assert.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(2000)), "total = %s", total)

	items, _ := s.List(ctx, scope)
	want := decimal.Zero
	for _, it := range items {
		want = want.Add(it.Subtotal())
	}
	assert.True(t, total.Equal(want))
}

func TestStore_QuantityOf(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AuthenticatedScope("u1")

	qty, err := s.QuantityOf(ctx, scope, "p1")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), qty)

	_, _ = s.Add(ctx, scope, testProduct("p1", 500, 3))
	qty, err = s.QuantityOf(ctx, scope, "p1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), qty)
}

func TestStore_NotifiesOnlyOnSuccessfulMutation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AuthenticatedScope("u1")

	calls := 0
	s.Subscribe(func() { calls++ })

	_, err := s.Add(ctx, scope, testProduct("p1", 500, 1))
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)

	// failed add must not notify
	_, err = s.Add(ctx, scope, testProduct("p1", 500, 1))
	assert.ErrorIs(t, err, cartstore.ErrQuantityLimitExceeded)
	assert.Equal(t, 1, calls)

	// failed setQuantity must not notify
	_, err = s.SetQuantity(ctx, scope, "p1", 9, 1)
	assert.ErrorIs(t, err, cartstore.ErrQuantityLimitExceeded)
	assert.Equal(t, 1, calls)

	// quantity-floor no-op does not write, so no notification either
	_, err = s.SetQuantity(ctx, scope, "p1", 0, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = s.SetQuantity(ctx, scope, "p1", 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)

	_, err = s.Remove(ctx, scope, "p1")
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	_, err = s.Clear(ctx, scope)
	assert.NoError(t, err)
	assert.Equal(t, 4, calls)

	// reads never notify
	_, _ = s.List(ctx, scope)
	_, _ = s.Count(ctx, scope)
	_, _ = s.Total(ctx, scope)
	assert.Equal(t, 4, calls)
}

func TestStore_SubscribersRunInRegistrationOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	scope := model.AnonymousScope()

	var order []string
	s.Subscribe(func() { order = append(order, "badge") })
	unsub := s.Subscribe(func() { order = append(order, "page") })

	_, err := s.Add(ctx, scope, testProduct("p1", 500, 3))
	assert.NoError(t, err)
	assert.Equal(t, []string{"badge", "page"}, order)

	unsub()
	_, err = s.Add(ctx, scope, testProduct("p1", 500, 3))
	assert.NoError(t, err)
	assert.Equal(t, []string{"badge", "page", "badge"}, order)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	kv := infraRepo.NewCartKVMemoryRepository()
	scope := model.AuthenticatedScope("u1")

	s1 := cartstore.New(kv)
	_, err := s1.Add(ctx, scope, testProduct("p1", 500, 3))
	assert.NoError(t, err)

	// a new store over the same KV sees the same cart
	s2 := cartstore.New(kv)
	items, err := s2.List(ctx, scope)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
}

func TestStore_MalformedRecordReadsAsEmptyCart(t *testing.T) {
	ctx := context.Background()
	kv := infraRepo.NewCartKVMemoryRepository()
	s := cartstore.New(kv)
	scope := model.AuthenticatedScope("u1")

	assert.NoError(t, kv.Put(ctx, scope.StorageKey(), []byte("{not json")))

	items, err := s.List(ctx, scope)
	assert.NoError(t, err)
	assert.Empty(t, items)

	// unknown schema version is also normalized to empty
	assert.NoError(t, kv.Put(ctx, scope.StorageKey(), []byte(`{"version":99,"items":[{"id":"p1"}]}`)))
	items, err = s.List(ctx, scope)
	assert.NoError(t, err)
	assert.Empty(t, items)

	// and a fresh add starts a clean cart
	items, err = s.Add(ctx, scope, testProduct("p1", 500, 3))
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}
