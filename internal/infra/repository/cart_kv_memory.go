package repository

import (
	"context"
	"sync"

	repo "app/internal/repository"
)

// CartKVMemoryRepository はメモリ上のKV。テストとローカル起動用。
type CartKVMemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewCartKVMemoryRepository() *CartKVMemoryRepository {
	return &CartKVMemoryRepository{data: map[string][]byte{}}
}

func (r *CartKVMemoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[key]
	if !ok {
		return nil, repo.ErrNotFound
	}

	//呼び出し側の書き換えから守るためコピーを返す
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (r *CartKVMemoryRepository) Put(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	r.data[key] = v
	return nil
}

func (r *CartKVMemoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, key)
	return nil
}
