package cache

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestInitRedisWithCustomAddr(t *testing.T) {
	origNewClient := newRedisClient
	origPing := pingRedis
	t.Cleanup(func() {
		newRedisClient = origNewClient
		pingRedis = origPing
		Client = nil
	})

	var capturedAddr string
	newRedisClient = func(opts *redis.Options) *redis.Client {
		capturedAddr = opts.Addr
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return nil
	}

	InitRedis(context.Background(), "redis:9999")
	if capturedAddr != "redis:9999" {
		t.Fatalf("expected custom addr, got %s", capturedAddr)
	}
	if Client == nil {
		t.Fatal("expected client to be set")
	}
}

func TestInitRedisParsesURL(t *testing.T) {
	origNewClient := newRedisClient
	origPing := pingRedis
	t.Cleanup(func() {
		newRedisClient = origNewClient
		pingRedis = origPing
		Client = nil
	})

	var capturedAddr string
	newRedisClient = func(opts *redis.Options) *redis.Client {
		capturedAddr = opts.Addr
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return nil
	}

	InitRedis(context.Background(), "redis://redis:6380/1")
	if capturedAddr != "redis:6380" {
		t.Fatalf("expected parsed addr, got %s", capturedAddr)
	}
}

func TestInitRedisDisabledWithoutAddr(t *testing.T) {
	t.Cleanup(func() { Client = nil })

	InitRedis(context.Background(), "")
	if Client != nil {
		t.Fatal("empty addr should leave caching disabled")
	}
}
