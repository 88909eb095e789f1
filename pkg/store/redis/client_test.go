package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"github.com/flowforge/diskgate/pkg/config"
)

func TestNewClientNotConfigured(t *testing.T) {
	_, err := NewClient(context.Background(), &config.RedisConfig{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNewClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewClient(context.Background(), &config.RedisConfig{Addresses: []string{addr}}); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestClientCategoriesUsesPrefix(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), &config.RedisConfig{
		Addresses: []string{mr.Addr()},
		KeyPrefix: "{test}:",
	})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	defer client.Close()

	if err := client.Categories().Append(context.Background(), "build", uuid.New()); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if !mr.Exists("{test}:category:build") {
		t.Fatalf("expected prefixed member list, keys: %v", mr.Keys())
	}
}
