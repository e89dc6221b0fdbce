package repository

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// CartKVRepository はカートの永続化先（キーはスコープ単位）。
type CartKVRepository interface {
	// Get はキーの値を返す。無ければ ErrNotFound。
	Get(ctx context.Context, key string) ([]byte, error)
	// Put はキーの値を作成または上書きする。
	Put(ctx context.Context, key string, value []byte) error
	// Delete はキーを削除する。無くてもエラーにしない。
	Delete(ctx context.Context, key string) error
}
