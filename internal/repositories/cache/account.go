package cache

import (
	"context"
	"errors"
	"time"

	"moneytransfer/internal/repositories"
	cachekeys "moneytransfer/internal/utils/cache"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const accountExistsValue = "1"

func accountExistsKey(accountID string) string {
	return cachekeys.GenerateKey(cachekeys.EntityAccount, cachekeys.KeyExists, accountID)
}

// accountRepository remembers accounts known to exist. Accounts are never
// removed by the transfer core, so only positive answers are cached; a
// negative answer always goes back to the database.
type accountRepository struct {
	next   repositories.AccountRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewAccountRepository wraps next with a Redis existence cache.
// Redis failures fall back to next.
func NewAccountRepository(next repositories.AccountRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) repositories.AccountRepository {
	if next == nil {
		panic("next account repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &accountRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *accountRepository) Exists(ctx context.Context, accountID string) (bool, error) {
	key := accountExistsKey(accountID)

	val, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil && val == accountExistsValue:
		return true, nil
	case err != nil && !errors.Is(err, redis.Nil):
		r.logger.Warn("account cache read failed", zap.String("key", key), zap.Error(err))
	}

	exists, err := r.next.Exists(ctx, accountID)
	if err != nil || !exists {
		return exists, err
	}

	if err := r.client.Set(ctx, key, accountExistsValue, r.ttl).Err(); err != nil {
		r.logger.Warn("account cache write failed", zap.String("key", key), zap.Error(err))
	}
	return true, nil
}
