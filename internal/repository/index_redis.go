package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/service"
)

// putScript перемещает сущность атомарно: старый ключ берётся из сохранённой записи.
// KEYS[1] - ZSET ключей, KEYS[2] - HASH записей; ARGV: entityID, geohash, JSON записи.
var putScript = redis.NewScript(`
local raw = redis.call('HGET', KEYS[2], ARGV[1])
if raw then
	local old = cjson.decode(raw)
	if old.geohash ~= ARGV[2] then
		redis.call('ZREM', KEYS[1], old.geohash .. ':' .. ARGV[1])
	end
end
redis.call('ZADD', KEYS[1], 0, ARGV[2] .. ':' .. ARGV[1])
redis.call('HSET', KEYS[2], ARGV[1], ARGV[3])
return 1
`)

// removeScript удаляет ключ и запись; 0 - записи не было
var removeScript = redis.NewScript(`
local raw = redis.call('HGET', KEYS[2], ARGV[1])
if not raw then
	return 0
end
local old = cjson.decode(raw)
redis.call('ZREM', KEYS[1], old.geohash .. ':' .. ARGV[1])
redis.call('HDEL', KEYS[2], ARGV[1])
return 1
`)

// RedisIndex - геоиндекс в Redis. Ключи лежат в ZSET с одинаковым score,
// где элемент "geohash:entityID" упорядочен лексикографически; записи - в HASH по entityID.
type RedisIndex struct {
	redisClient *redis.Client
	keysKey     string
	entriesKey  string
}

func NewRedisIndex(client *redis.Client, name string) *RedisIndex {
	return &RedisIndex{
		redisClient: client,
		keysKey:     fmt.Sprintf("geo:%s:keys", name),
		entriesKey:  fmt.Sprintf("geo:%s:entries", name),
	}
}

var _ service.IndexStore = (*RedisIndex)(nil)

// Scan возвращает записи с geohash в [start, end)
func (r *RedisIndex) Scan(ctx context.Context, start, end string) ([]*models.IndexEntry, error) {
	members, err := r.redisClient.ZRangeByLex(ctx, r.keysKey, &redis.ZRangeBy{
		Min: "[" + start,
		Max: "(" + end,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan geo index in Redis: %w", err)
	}
	if len(members) == 0 {
		return []*models.IndexEntry{}, nil
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		if _, id, ok := strings.Cut(m, ":"); ok {
			ids = append(ids, id)
		}
	}

	values, err := r.redisClient.HMGet(ctx, r.entriesKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load geo index entries from Redis: %w", err)
	}

	entries := make([]*models.IndexEntry, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// запись удалена между ZRANGEBYLEX и HMGET
			continue
		}
		entry := &models.IndexEntry{}
		if err := json.Unmarshal([]byte(raw), entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal geo index entry: %w", err)
		}
		if entry.Geohash < start || entry.Geohash >= end {
			// сущность переместилась после чтения ключей
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Put атомарно заменяет ключ и запись сущности. Скрипт затрагивает только эту сущность,
// поэтому параллельные обновления разных спасателей не конфликтуют.
func (r *RedisIndex) Put(ctx context.Context, entry *models.IndexEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal geo index entry: %w", err)
	}

	keys := []string{r.keysKey, r.entriesKey}
	if err := putScript.Run(ctx, r.redisClient, keys, entry.EntityID, entry.Geohash, payload).Err(); err != nil {
		return fmt.Errorf("failed to update geo index in Redis: %w", err)
	}
	return nil
}

// Remove удаляет ключ и запись сущности
func (r *RedisIndex) Remove(ctx context.Context, entityID string) error {
	keys := []string{r.keysKey, r.entriesKey}
	removed, err := removeScript.Run(ctx, r.redisClient, keys, entityID).Int()
	if err != nil {
		return fmt.Errorf("failed to remove geo index entry in Redis: %w", err)
	}
	if removed == 0 {
		return service.ErrEntryNotFound
	}
	return nil
}
