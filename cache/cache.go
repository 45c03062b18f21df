package cache

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys for the two cacheable catalog endpoints. Admin mutations
// invalidate them.
const (
	KeyCaseItems    = "aurum:case_items_full"
	KeyGameSettings = "aurum:game_settings"

	TTL = 30 * time.Second
)

var rdb *redis.Client

// Init connects to Redis when REDIS_ADDR is set; otherwise the cache is
// a no-op and every read goes to the database.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("🟡 REDIS_ADDR not set, response cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis unreachable, response cache disabled: %v", err)
		return
	}

	rdb = client
	log.Println("✅ Connected to Redis")
}

func Get(ctx context.Context, key string) ([]byte, bool) {
	if rdb == nil {
		return nil, false
	}
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

func Set(ctx context.Context, key string, value []byte) {
	if rdb == nil {
		return
	}
	if err := rdb.Set(ctx, key, value, TTL).Err(); err != nil {
		log.Printf("⚠️  Failed to cache %s: %v", key, err)
	}
}

func Invalidate(ctx context.Context, keys ...string) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️  Failed to invalidate cache: %v", err)
	}
}
