package mock

import (
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce sync.Once
	redisMock *Redis
)

// Redis is a process-wide miniredis server and a client connected to it.
type Redis struct {
	server *miniredis.Miniredis
	Client *redis.Client
}

// NewRedis starts the shared server on first use.
func NewRedis() *Redis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisMock = &Redis{
			server: server,
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
		}
	})
	return redisMock
}

// Flush removes every key.
func (r *Redis) Flush() {
	r.server.FlushAll()
}

// TTL returns the remaining lifetime of key, or 0 when it has none or does not exist.
func (r *Redis) TTL(key string) time.Duration {
	return r.server.TTL(key)
}

// Has reports whether key exists.
func (r *Redis) Has(key string) bool {
	return r.server.Exists(key)
}
