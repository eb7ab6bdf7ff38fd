package repositories

import (
	"context"
	"fmt"

	domainRepos "fnct-hackathon.backend/internal/domain/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type contextKey string

const (
	txKey   contextKey = "tx_db"
	lockKey contextKey = "tx_lock"
)

var commitTx = func(tx *gorm.DB) error {
	return tx.Commit().Error
}

// UnitOfWorkImpl implements UnitOfWork using GORM
type UnitOfWorkImpl struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new UnitOfWork
func NewUnitOfWork(db *gorm.DB) domainRepos.UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

// Do executes fn within a transaction. A transaction already present in ctx
// is reused so nested calls join the outer scope.
func (u *UnitOfWorkImpl) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	txCtx := context.WithValue(ctx, txKey, tx)

	if err := fn(txCtx); err != nil {
		tx.Rollback()
		return err
	}

	if err := commitTx(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// WithLock marks ctx so that row reads issued through lockedDB take a
// FOR UPDATE lock. Drivers without row locks (SQLite) ignore the clause.
func (u *UnitOfWorkImpl) WithLock(ctx context.Context) context.Context {
	return context.WithValue(ctx, lockKey, true)
}

// GetDB extracts the transaction DB from context if present, otherwise
// returns the base DB.
func (u *UnitOfWorkImpl) GetDB(ctx context.Context) *gorm.DB {
	return GetDB(ctx, u.db)
}

// GetDB is the package-level helper every repository goes through.
func GetDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}

// lockedDB is GetDB plus FOR UPDATE when the context was marked by WithLock.
func lockedDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	db := GetDB(ctx, fallback)
	if locked, _ := ctx.Value(lockKey).(bool); locked {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
