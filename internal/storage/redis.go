package storage

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"
)

// incrWrapScript increments the counter and wraps it back to 1 past the
// ceiling, atomically.
const incrWrapScript = `
local v = redis.call('INCR', KEYS[1])
if v > tonumber(ARGV[1]) then
  redis.call('SET', KEYS[1], 1)
  v = 1
end
return v
`

// RedisKeyedStore backs the realtime store. Slash-delimited paths map to
// colon-separated redis keys.
type RedisKeyedStore struct {
	Client *redis.Client
}

func NewRedisKeyedStore(client *redis.Client) *RedisKeyedStore {
	return &RedisKeyedStore{Client: client}
}

func (s *RedisKeyedStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	data, err := s.Client.Get(ctx, s.key(path)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisKeyedStore) Set(ctx context.Context, path string, value any) error {
	var payload any
	switch v := value.(type) {
	case string:
		payload = v
	case []byte:
		payload = v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		payload = data
	}
	return s.Client.Set(ctx, s.key(path), payload, 0).Err()
}

// GetCounter treats a missing key as 0.
func (s *RedisKeyedStore) GetCounter(ctx context.Context, path string) (int64, error) {
	value, err := s.Client.Get(ctx, s.key(path)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (s *RedisKeyedStore) SetCounter(ctx context.Context, path string, value int64) error {
	return s.Client.Set(ctx, s.key(path), value, 0).Err()
}

func (s *RedisKeyedStore) IncrWrap(ctx context.Context, path string, max int64) (int64, error) {
	return s.Client.Eval(ctx, incrWrapScript, []string{s.key(path)}, max).Int64()
}

func (s *RedisKeyedStore) key(path string) string {
	return strings.ReplaceAll(path, "/", ":")
}
