package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartKVGormRepository は cart_records テーブルを使うKV実装。
type CartKVGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartKVGormRepository(db *gorm.DB) *CartKVGormRepository {
	return &CartKVGormRepository{db: db}
}

func (r *CartKVGormRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var rec model.CartRecord

	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&rec).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Value), nil
}

// Put は行ロックを取って更新、無ければ作成。
func (r *CartKVGormRepository) Put(ctx context.Context, key string, value []byte) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec model.CartRecord

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("key = ?", key).
			First(&rec).Error

		if err == nil {
			res := tx.Model(&model.CartRecord{}).
				Where("key = ?", key).
				Updates(map[string]interface{}{
					"value":      string(value),
					"updated_at": time.Now(),
				})
			return res.Error
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		newRec := model.CartRecord{
			Key:       key,
			Value:     string(value),
			UpdatedAt: time.Now(),
		}
		return tx.Create(&newRec).Error
	})
}

// Delete は行が無くてもエラーにしない。
func (r *CartKVGormRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.CartRecord{}).Error
}
