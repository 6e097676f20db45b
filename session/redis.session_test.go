package session_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ebsys/gateway/session"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func redisStore(t *testing.T) *session.RedisStore {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis is not reachable on %s: %v", addr, err)
	}

	return session.NewRedisStore(client, fmt.Sprintf("gateway-test:%s", uuid.NewString()))
}

func TestRedisStore(t *testing.T) {
	store := redisStore(t)

	session.SetCorrelation(store, "assertion", "flow-1", "challenge-1")
	assert.Equal(t, "assertion", store.Get(session.IDToken))
	assert.Equal(t, "flow-1", store.Get(session.FlowID))

	session.Establish(store, "session-token")
	assert.Equal(t, "session-token", store.Get(session.Token))
	assert.Equal(t, "", store.Get(session.IDToken))
	assert.Equal(t, "", store.Get(session.FlowID))
	assert.Equal(t, "", store.Get(session.Challenge))

	session.ClearSession(store)
	assert.Equal(t, "", store.Get(session.Token))
}

func TestRedisStoreExpiry(t *testing.T) {
	store := redisStore(t)

	store.Set(session.Challenge, "challenge-1", 50*time.Millisecond)
	assert.Equal(t, "challenge-1", store.Get(session.Challenge))

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "", store.Get(session.Challenge))
}

func TestRedisStoresAreScopedPerSession(t *testing.T) {
	a := redisStore(t)
	b := redisStore(t)

	a.Set(session.Token, "token-a", time.Minute)
	b.Set(session.Token, "token-b", time.Minute)

	assert.Equal(t, "token-a", a.Get(session.Token))
	assert.Equal(t, "token-b", b.Get(session.Token))
}
