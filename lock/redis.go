package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces the lock keys of this service
const keyPrefix = "payments-gateway:lock:"

// releaseScript deletes the lock only if it is still held by the same token
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

// refreshScript extends the lock only if it is still held by the same token
const refreshScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
else
	return 0
end`

// redisCommander is the subset of the redis client used by RedisLocker
type redisCommander interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLocker is a Locker backed by redis SET NX with expiry
type RedisLocker struct {
	client redisCommander
	closer func() error
}

// NewRedisLocker connects to redis at redisURL and checks the connection
func NewRedisLocker(redisURL string) (*RedisLocker, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: [%v]", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to redis: [%v]", err)
	}

	log.Info("connected to redis successfully", log.Data{"addr": opt.Addr})
	return &RedisLocker{client: client, closer: client.Close}, nil
}

// Acquire takes the lock key for ttl if no other holder has it
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, bool, error) {
	lease := &redisLease{
		client:  l.client,
		key:     key,
		lockKey: keyPrefix + key,
		token:   uuid.NewString(),
		ttl:     ttl,
	}

	acquired, err := l.client.SetNX(ctx, lease.lockKey, lease.token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("error acquiring lock [%s]: [%v]", key, err)
	}
	if !acquired {
		return nil, false, nil
	}

	return lease, true, nil
}

// redisLease is a lock held in redis under a token unique to this holder
type redisLease struct {
	client  redisCommander
	key     string
	lockKey string
	token   string
	ttl     time.Duration
}

// Refresh resets the expiry of the lock to the lease ttl
func (r *redisLease) Refresh(ctx context.Context) error {
	extended, err := r.client.Eval(ctx, refreshScript, []string{r.lockKey}, r.token, r.ttl.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("error refreshing lock [%s]: [%v]", r.key, err)
	}
	if extended == 0 {
		return fmt.Errorf("error refreshing lock [%s]: %w", r.key, ErrNotHeld)
	}
	return nil
}

// Release deletes the lock if this lease still holds it
func (r *redisLease) Release(ctx context.Context) error {
	if err := r.client.Eval(ctx, releaseScript, []string{r.lockKey}, r.token).Err(); err != nil {
		return fmt.Errorf("error releasing lock [%s]: [%v]", r.key, err)
	}
	return nil
}

// Close closes the redis connection
func (l *RedisLocker) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer()
}
