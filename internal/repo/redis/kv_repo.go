package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// KVRepo is a JSON value store on top of plain Redis strings.
type KVRepo struct {
	client *goredis.Client
}

func NewKVRepo(client *goredis.Client) *KVRepo {
	return &KVRepo{client: client}
}

// Set stores value under key. Strings and byte slices that already hold
// well-formed JSON are written verbatim; everything else is JSON-encoded.
// A positive ttl is applied by the same SET command.
func (r *KVRepo) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("redis key is required")
	}

	encoded, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("encode value for %s: %w", key, err)
	}

	// go-redis treats a negative expiration as KEEPTTL.
	if ttl < 0 {
		ttl = 0
	}

	if err := r.client.Set(ctx, key, encoded, ttl).Err(); err != nil {
		return fmt.Errorf("set redis value: %w", err)
	}
	return nil
}

// Get returns the raw stored string. The boolean is false when the key is
// missing or holds an empty string.
func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	if r.client == nil {
		return "", false, fmt.Errorf("redis client is nil")
	}

	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get redis value: %w", err)
	}
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

func (r *KVRepo) Delete(ctx context.Context, keys ...string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete redis keys: %w", err)
	}
	return nil
}

func (r *KVRepo) Exists(ctx context.Context, key string) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check redis key: %w", err)
	}
	return n == 1, nil
}

func encodeValue(value any) (string, error) {
	switch v := value.(type) {
	case string:
		if json.Valid([]byte(v)) {
			return v, nil
		}
	case json.RawMessage:
		if json.Valid(v) {
			return string(v), nil
		}
	case []byte:
		if json.Valid(v) {
			return string(v), nil
		}
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
