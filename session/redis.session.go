package session

import (
	"context"
	"fmt"
	"time"

	"github.com/ebsys/gateway/logger"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps artifacts in redis, scoped per browser session. It exists
// for deployments that run more than one gateway instance and cannot rely on
// the cookie jar alone.
type RedisStore struct {
	Client *redis.Client
	Scope  string
}

// NewRedisStore is a function that is used to create a redis backed artifact store
func NewRedisStore(client *redis.Client, scope string) *RedisStore {
	return &RedisStore{Client: client, Scope: scope}
}

func (s *RedisStore) key(artifact Artifact) string {
	return fmt.Sprintf("%s:%s", s.Scope, artifact)
}

// Set stores the artifact with the given expiry window
func (s *RedisStore) Set(artifact Artifact, value string, ttl time.Duration) {
	err := s.Client.Set(context.Background(), s.key(artifact), value, ttl).Err()
	if err != nil {
		logger.Error(err)
	}
}

// Get returns the artifact value, or the empty string once expired
func (s *RedisStore) Get(artifact Artifact) string {
	val, err := s.Client.Get(context.Background(), s.key(artifact)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Error(err)
		}
		return ""
	}
	return val
}

// Clear removes the artifacts
func (s *RedisStore) Clear(artifacts ...Artifact) {
	keys := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		keys = append(keys, s.key(artifact))
	}
	err := s.Client.Del(context.Background(), keys...).Err()
	if err != nil {
		logger.Error(err)
	}
}
