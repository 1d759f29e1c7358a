package gormdb

import (
	"context"
	"errors"

	"forum/infrastructure/persistence"

	"gorm.io/gorm"
)

// conn 返回 context 中的事务，没有事务时返回普通连接
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// inTx 在 context 的事务中执行 fn；没有事务时开启一个新事务
func inTx(ctx context.Context, db *gorm.DB, fn func(ctx context.Context, tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(ctx, tx)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(persistence.ContextWithTx(ctx, tx), tx)
	})
}

func isDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
