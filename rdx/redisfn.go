package rdx

import (
	"os"
	"time"

	"emporia/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects the package-level client. Addr falls back to REDIS_ADDR,
// then localhost.
func Init(addr string) error {
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
	return Conn.Ping(globals.Ctx).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

// RdxSetNX is used for single-flight locks (e.g. one checkout per session).
func RdxSetNX(key, value string, ttl time.Duration) (bool, error) {
	return Conn.SetNX(globals.Ctx, key, value, ttl).Result()
}
