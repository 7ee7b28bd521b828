package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shorturl/internal/shortener"
)

const (
	redisIDKey        = "shorturl:id"
	redisEntityPrefix = "shorturl:code:"
	redisOriginalsKey = "shorturl:originals"
)

// RedisStore is a Redis-backed implementation of shortener.Repository.
//
// Layout: one hash per entity under "shorturl:code:<code>", a single hash
// "shorturl:originals" mapping original URL to code, and an INCR counter for
// IDs. Adds run a Lua script that claims the original URL and writes the
// entity hash in one atomic step, so concurrent adds of the same URL admit
// exactly one entity and a loser always observes the winner's record. Hit
// counts use HIncrBy so concurrent resolutions never lose an update.
type RedisStore struct {
	client *redis.Client
}

// addScript checks both uniqueness invariants and writes the claim together
// with the entity hash. A crash can no longer strand a claim without its
// entity, and losing adders never see a half-applied write.
var addScript = redis.NewScript(`
local claimed = redis.call('HGET', KEYS[1], ARGV[1])
if claimed ~= false and claimed ~= ARGV[2] then
	return 'claimed:' .. claimed
end

local owner = redis.call('HGET', KEYS[2], 'original_url')
if owner ~= false and owner ~= ARGV[1] then
	return 'code taken'
end

redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
redis.call('HSET', KEYS[2], 'id', ARGV[3], 'original_url', ARGV[1], 'hits', ARGV[4], 'created_at', ARGV[5])
return 'ok'
`)

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) NextID(ctx context.Context) (int64, error) {
	return r.client.Incr(ctx, redisIDKey).Result()
}

func (r *RedisStore) Add(ctx context.Context, short *shortener.ShortURL) error {
	res, err := addScript.Run(ctx, r.client,
		[]string{redisOriginalsKey, redisEntityPrefix + string(short.Code)},
		short.OriginalURL,
		string(short.Code),
		short.ID,
		short.Hits,
		short.CreatedAt.UTC().Format(time.RFC3339Nano),
	).Text()
	if err != nil {
		return err
	}

	switch {
	case res == "ok":
		return nil

	case res == "code taken":
		return fmt.Errorf("short code %q is already in use", short.Code)

	default:
		// The script wrote the winner's entity atomically with its claim, so
		// this read cannot miss.
		existing, err := r.GetByCode(ctx, shortener.Code(strings.TrimPrefix(res, "claimed:")))
		if err != nil {
			return err
		}

		return &shortener.DuplicateError{Existing: existing}
	}
}

func (r *RedisStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	fields, err := r.client.HGetAll(ctx, redisEntityPrefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, shortener.ErrNotFound
	}

	return entityFromFields(code, fields)
}

func (r *RedisStore) GetByOriginal(ctx context.Context, original string) (*shortener.ShortURL, error) {
	code, err := r.client.HGet(ctx, redisOriginalsKey, original).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return r.GetByCode(ctx, shortener.Code(code))
}

func (r *RedisStore) IncrementHits(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	key := redisEntityPrefix + string(code)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	if exists == 0 {
		return nil, shortener.ErrNotFound
	}

	if err := r.client.HIncrBy(ctx, key, "hits", 1).Err(); err != nil {
		return nil, err
	}

	return r.GetByCode(ctx, code)
}

func entityFromFields(code shortener.Code, fields map[string]string) (*shortener.ShortURL, error) {
	id, err := strconv.ParseInt(fields["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt id for code %q: %w", code, err)
	}

	hits, err := strconv.ParseInt(fields["hits"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt hit counter for code %q: %w", code, err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("corrupt created_at for code %q: %w", code, err)
	}

	return &shortener.ShortURL{
		ID:          id,
		Code:        code,
		OriginalURL: fields["original_url"],
		Hits:        hits,
		CreatedAt:   createdAt,
	}, nil
}
