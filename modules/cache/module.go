package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// Module owns the cache backend lifecycle. With a Redis address it
// connects and pings on start; without one it runs an in-process cache so
// the consuming modules behave the same either way.
type Module struct {
	service   Service
	redisAddr string
	prefix    string
	ttl       time.Duration
}

func NewModule(redisAddr, prefix string, ttl time.Duration) *Module {
	return &Module{
		redisAddr: redisAddr,
		prefix:    prefix,
		ttl:       ttl,
	}
}

func (m *Module) Name() string {
	return "cache"
}

func (m *Module) Start(ctx context.Context) error {
	if m.redisAddr == "" {
		m.service = NewMemoryCache(m.ttl)
		log.Printf("[cache] No Redis address configured, using in-process cache (TTL: %s)", m.ttl)
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         m.redisAddr,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	m.service = NewRedisCache(client, m.prefix, m.ttl)
	log.Printf("[cache] Connected to Redis at %s (prefix: %s, TTL: %s)", m.redisAddr, m.prefix, m.ttl)
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	if m.service != nil {
		if err := m.service.Close(); err != nil {
			log.Printf("[cache] Error closing cache backend: %v", err)
			return err
		}
	}
	log.Println("[cache] Module stopped")
	return nil
}

// Service returns the started cache backend. Valid after Start.
func (m *Module) Service() Service {
	return m.service
}

func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{Healthy: false, Message: "cache not started"}
	}
	if err := m.service.Ping(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: err.Error()}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "cache operational",
		Details: map[string]interface{}{"backend": m.backendName()},
	}
}

func (m *Module) backendName() string {
	if m.redisAddr == "" {
		return "memory"
	}
	return "redis"
}
