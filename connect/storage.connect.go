package connect

import (
	"context"

	"github.com/ebsys/gateway/config"
	"github.com/ebsys/gateway/logger"
	"github.com/gofiber/storage/redis"
)

// InitRatelimiter opens the redis storage behind the sliding window limiter;
// the gateway does not come up when it is unreachable
func (c *Connector) InitRatelimiter(env *config.Env) {
	store := redis.New(redis.Config{
		Username: env.RedisRatelimiterUsername,
		Password: env.RedisRatelimiterPassword,
		Host:     env.RedisRatelimiterHost,
		Port:     env.RedisRatelimiterPort,
	})
	if err := store.Conn().Ping(context.Background()).Err(); err != nil {
		logger.Errorf(err)
	}

	c.Ratelimter = store
}
