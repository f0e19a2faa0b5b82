package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/disikoX/saka-backend/internal/domain"
)

const (
	// treeKeyPrefix namespaces every tree path in the redis keyspace.
	treeKeyPrefix = "saka:tree:"

	// changeChannelPrefix namespaces the pub/sub channel that carries
	// value changes for a path. Every write publishes on its channel so
	// subscribers see updates in write order.
	changeChannelPrefix = "saka:changes:"
)

type keyedStore struct {
	client *redis.Client
}

// NewKeyedStore returns a domain.Store backed by redis. Paths map to flat
// keys under a common prefix; subscriptions ride redis pub/sub.
func NewKeyedStore(client *redis.Client) domain.Store {
	return &keyedStore{client: client}
}

func treeKey(path string) string {
	return treeKeyPrefix + path
}

func changeChannel(path string) string {
	return changeChannelPrefix + path
}

func (s *keyedStore) Get(ctx context.Context, path string) (string, error) {
	value, err := s.client.Get(ctx, treeKey(path)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrPathNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *keyedStore) Set(ctx context.Context, path, value string) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, treeKey(path), value, 0)
	pipe.Publish(ctx, changeChannel(path), value)

	_, err := pipe.Exec(ctx)
	return err
}

func (s *keyedStore) Update(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return ErrEmptyUpdate
	}

	pipe := s.client.TxPipeline()
	for path, value := range values {
		pipe.Set(ctx, treeKey(path), value, 0)
		pipe.Publish(ctx, changeChannel(path), value)
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (s *keyedStore) Remove(ctx context.Context, path string) error {
	return s.client.Del(ctx, treeKey(path)).Err()
}

func (s *keyedStore) List(ctx context.Context, path string) (map[string]string, error) {
	prefix := treeKey(path) + "/"
	children := make(map[string]string)

	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		child := strings.TrimPrefix(key, prefix)
		if strings.Contains(child, "/") {
			// Deeper descendant, not a direct child.
			continue
		}

		value, err := s.client.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Deleted between scan and read.
				continue
			}
			return nil, err
		}
		children[child] = value
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return children, nil
}

func (s *keyedStore) Subscribe(ctx context.Context, path string, onChange func(string), onError func(error)) (domain.Subscription, error) {
	pubsub := s.client.Subscribe(ctx, changeChannel(path))

	// Confirm the registration before handing out the handle, so a
	// subscriber never misses writes made after Subscribe returns.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	sub := &redisSubscription{pubsub: pubsub}

	go func() {
		for msg := range pubsub.Channel() {
			onChange(msg.Payload)
		}
		if !sub.cancelled() {
			onError(ErrRedisConnection)
		}
	}()

	slog.DebugContext(ctx, "listener attached",
		slog.String("path", path),
	)
	return sub, nil
}

func (s *keyedStore) GenerateChildID(string) string {
	return uuid.NewString()
}

type redisSubscription struct {
	pubsub *redis.PubSub

	mu     sync.Mutex
	closed bool
}

func (r *redisSubscription) Cancel() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	if err := r.pubsub.Close(); err != nil {
		slog.Warn("failed to close subscription", slog.String("error", err.Error()))
	}
}

func (r *redisSubscription) cancelled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
