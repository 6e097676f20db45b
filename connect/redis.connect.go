package connect

import (
	"context"

	"github.com/ebsys/gateway/config"
	"github.com/ebsys/gateway/logger"
	"github.com/redis/go-redis/v9"
)

// Redis is used to manage all redis service connections
type Redis struct {
	Artifacts *redis.Client
}

func connect(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		logger.Errorf(err)
	}

	r := redis.NewClient(opt)
	if err := r.Ping(context.Background()).Err(); err != nil {
		logger.Errorf(err)
	}

	return r
}

// InitRedis is a function to initialize all redis instances
func (c *Connector) InitRedis(env *config.Env) {
	if env.RedisArtifactsURL == "" {
		return
	}

	c.R = &Redis{
		Artifacts: connect(env.RedisArtifactsURL),
	}
}
