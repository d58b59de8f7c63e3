// file: repository/redis_repository.go

package repository

import (
	"context"
	"fmt"
	"sort"

	"go-ledger/codec"
	"go-ledger/logger"
	"go-ledger/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// IRedisClient is the subset of the Redis client the repository needs, so a
// *redis.Client or a *redis.ClusterClient can back it.
type IRedisClient interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

// RedisLedgerRepository keeps the ledger in a single hash: field is the
// account number, value is the encoded record.
type RedisLedgerRepository struct {
	client IRedisClient
	key    string
}

func NewRedisLedgerRepository(client IRedisClient, key string) *RedisLedgerRepository {
	return &RedisLedgerRepository{client: client, key: key}
}

func (r *RedisLedgerRepository) Load() (*model.Ledger, error) {
	log := logger.Log.WithField("key", r.key)

	fields, err := r.client.HGetAll(context.Background(), r.key).Result()
	if err != nil {
		log.WithError(err).Warn("Failed to read ledger hash, starting with an empty ledger")
		return model.NewLedger(), fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	numbers := make([]string, 0, len(fields))
	for n := range fields {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)

	records := make([]string, 0, len(numbers))
	for _, n := range numbers {
		records = append(records, fields[n])
	}

	ledger := decodeRecords("redis", records)
	log.WithField("accounts", ledger.Len()).Info("Ledger loaded")
	return ledger, nil
}

// Save deletes the hash and writes it back inside MULTI/EXEC.
func (r *RedisLedgerRepository) Save(ledger *model.Ledger) error {
	log := logger.Log.WithFields(logrus.Fields{
		"key":      r.key,
		"accounts": ledger.Len(),
	})

	values := make([]interface{}, 0, 2*ledger.Len())
	for _, a := range ledger.Accounts() {
		values = append(values, a.Number(), codec.Encode(a))
	}

	_, err := r.client.TxPipelined(context.Background(), func(pipe redis.Pipeliner) error {
		pipe.Del(context.Background(), r.key)
		if len(values) > 0 {
			pipe.HSet(context.Background(), r.key, values...)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to write ledger hash")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	log.Info("Ledger saved")
	return nil
}
