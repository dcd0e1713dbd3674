package repositories

import (
	"context"
	"fmt"

	"moneytransfer/internal/models"

	"gorm.io/gorm"
)

// AccountRepository answers whether an account exists.
type AccountRepository interface {
	Exists(ctx context.Context, accountID string) (bool, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an AccountRepository backed by gorm.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Exists(ctx context.Context, accountID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up account: %w", err)
	}
	return count > 0, nil
}
