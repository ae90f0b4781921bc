package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"storefront/pkg/cart/domain/model"
)

type RedisRepository struct {
	rdb redis.UniversalClient

	prefix string
	// ttl of zero keeps snapshots forever.
	ttl time.Duration
}

type RedisOption func(*RedisRepository)

func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisRepository) {
		r.prefix = strings.Trim(prefix, ":")
	}
}

func WithTTL(d time.Duration) RedisOption {
	return func(r *RedisRepository) { r.ttl = d }
}

func NewRedisRepository(rdb redis.UniversalClient, opts ...RedisOption) *RedisRepository {
	r := &RedisRepository{
		rdb:    rdb,
		prefix: "storefront:cart",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisRepository) Load(ctx context.Context, name string) (model.Snapshot, error) {
	data, err := r.rdb.Get(ctx, r.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Snapshot{}, model.ErrSnapshotNotFound
	}
	if err != nil {
		return model.Snapshot{}, errors.Wrapf(err, "get snapshot %q", name)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return model.Snapshot{}, errors.Wrapf(err, "decode snapshot %q", name)
	}
	return snapshot, nil
}

func (r *RedisRepository) Save(ctx context.Context, name string, snapshot model.Snapshot) error {
	if snapshot.Items == nil {
		snapshot.Items = []model.LineItem{}
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	return errors.Wrapf(r.rdb.Set(ctx, r.key(name), data, r.ttl).Err(), "set snapshot %q", name)
}

func (r *RedisRepository) key(name string) string {
	return r.prefix + ":" + name
}
