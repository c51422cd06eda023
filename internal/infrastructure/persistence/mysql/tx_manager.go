package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey context中事务DB的键,私有类型避免冲突
type txKey struct{}

// TxManager 事务管理器
// 封装GORM的Transaction,通过context传递事务DB:
// fn内所有Repository操作走同一事务,fn返回error自动ROLLBACK
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    b, err := bookRepo.LockByID(ctx, bookID) // FOR UPDATE
//	    if err != nil {
//	        return err
//	    }
//	    if err := orderRepo.Create(ctx, o); err != nil {
//	        return err // 自动回滚
//	    }
//	    return bookRepo.UpdateStock(ctx, bookID, -quantity)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// dbFromContext 提取事务DB,没有则返回fallback
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
