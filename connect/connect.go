// Package connect is used to initialize connections to third party services
package connect

import (
	"github.com/gofiber/storage/redis"
)

// Connector contains various connections to third party services
type Connector struct {
	Ratelimter *redis.Storage
	R          *Redis
}
