package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	//在庫が1未満の商品を新規追加しようとした
	ErrOutOfStock = errors.New("out of stock")
	//数量が在庫上限を超える
	ErrQuantityLimitExceeded = errors.New("quantity limit exceeded")
)

// 永続化スキーマのバージョン
const envelopeVersion = 1

// 永続化エンベロープ。バージョンが読めない・合わないデータは空カート扱い。
type cartEnvelope struct {
	Version int                  `json:"version"`
	Items   []model.CartLineItem `json:"items"`
}

// Store はスコープごとのカートを保持する。
// 書き込みが成功した後にだけ、登録順で購読者を同期呼び出しする。
// 通知にスコープ情報は載せない（購読者は自分のスコープを再読する約束）。
type Store struct {
	kv repo.CartKVRepository

	mu        sync.Mutex
	listeners []listenerEntry
	nextID    int
}

type listenerEntry struct {
	id int
	fn func()
}

// DI
func New(kv repo.CartKVRepository) *Store {
	return &Store{kv: kv}
}

// Subscribe は変更通知の購読を登録し、解除関数を返す。
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// List はスコープの明細を保存順で返す。データが無ければ空。
func (s *Store) List(ctx context.Context, scope model.Scope) ([]model.CartLineItem, error) {
	return s.load(ctx, scope)
}

// Count は数量の合計。空カートは0。
func (s *Store) Count(ctx context.Context, scope model.Scope) (int64, error) {
	items, err := s.load(ctx, scope)
	if err != nil {
		return 0, err
	}

	var total int64 = 0
	for _, it := range items {
		total += it.Quantity
	}
	return total, nil
}

// Add はカートへ追加する。
// 既存商品は数量+1（在庫上限チェックあり）、新規は quantity=1 でスナップショットを保存。
func (s *Store) Add(ctx context.Context, scope model.Scope, p model.Product) ([]model.CartLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}

	found := false
	for i, it := range items {
		if it.ID != p.ID {
			continue
		}

		//既存ありだったら数量を増やす（在庫はAPIから渡された今の値で判定）
		if it.Quantity+1 > p.Quantity {
			return nil, ErrQuantityLimitExceeded
		}
		items[i].Quantity = it.Quantity + 1
		found = true
		break
	}

	if !found {
		if p.Quantity < 1 {
			return nil, ErrOutOfStock
		}

		//無い場合は追加時点のスナップショットで新規作成
		items = append(items, model.CartLineItem{
			ID:                   p.ID,
			Name:                 p.Name,
			Price:                p.Price,
			Quantity:             1,
			Image:                p.Image,
			Brand:                p.Brand,
			Category:             p.Category,
			PrescriptionRequired: p.PrescriptionRequired,
			ExpiryDate:           p.ExpiryDate,
			AvailableQuantity:    p.Quantity,
		})
	}

	if err := s.save(ctx, scope, items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetQuantity は明細の数量を設定する。
// newQuantity < 1 は呼び出し側の間違いとして黙って無視（削除はRemoveを使う約束）。
func (s *Store) SetQuantity(ctx context.Context, scope model.Scope, productID string, newQuantity int64, availableQuantity int64) ([]model.CartLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}

	if newQuantity < 1 {
		return items, nil
	}
	if newQuantity > availableQuantity {
		return nil, ErrQuantityLimitExceeded
	}

	//対象以外はそのまま通す。対象が無くても保存・通知はする（許容されたno-op）
	for i, it := range items {
		if it.ID == productID {
			items[i].Quantity = newQuantity
			break
		}
	}

	if err := s.save(ctx, scope, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove は明細を削除する。無くてもエラーにしない。
func (s *Store) Remove(ctx context.Context, scope model.Scope, productID string) ([]model.CartLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}

	kept := make([]model.CartLineItem, 0, len(items))
	for _, it := range items {
		if it.ID == productID {
			continue
		}
		kept = append(kept, it)
	}

	if err := s.save(ctx, scope, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Clear はスコープのカートを全削除する。カートが無くても失敗しない。
func (s *Store) Clear(ctx context.Context, scope model.Scope) ([]model.CartLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, scope.StorageKey()); err != nil {
		return nil, err
	}

	s.notify()
	return []model.CartLineItem{}, nil
}

// Total は price × quantity の合計。副作用なし。
func (s *Store) Total(ctx context.Context, scope model.Scope) (decimal.Decimal, error) {
	items, err := s.load(ctx, scope)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total, nil
}

// QuantityOf は商品の数量を返す。カートに無ければ0。
func (s *Store) QuantityOf(ctx context.Context, scope model.Scope, productID string) (int64, error) {
	items, err := s.load(ctx, scope)
	if err != nil {
		return 0, err
	}

	for _, it := range items {
		if it.ID == productID {
			return it.Quantity, nil
		}
	}
	return 0, nil
}

// loadは読み取り。データ無し・壊れたデータは空カートに正規化する。
func (s *Store) load(ctx context.Context, scope model.Scope) ([]model.CartLineItem, error) {
	raw, err := s.kv.Get(ctx, scope.StorageKey())
	if errors.Is(err, repo.ErrNotFound) {
		return []model.CartLineItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var env cartEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return []model.CartLineItem{}, nil
	}
	if env.Version != envelopeVersion || env.Items == nil {
		return []model.CartLineItem{}, nil
	}
	return env.Items, nil
}

// saveは書き込み成功後に通知する。失敗時は通知しない。
func (s *Store) save(ctx context.Context, scope model.Scope, items []model.CartLineItem) error {
	raw, err := json.Marshal(cartEnvelope{Version: envelopeVersion, Items: items})
	if err != nil {
		return err
	}

	if err := s.kv.Put(ctx, scope.StorageKey(), raw); err != nil {
		return err
	}

	s.notify()
	return nil
}

// 登録順に同期呼び出し
func (s *Store) notify() {
	for _, l := range s.listeners {
		l.fn()
	}
}
