// Package share keeps named Logo scripts in Redis and relays live sessions
// over Redis pub/sub.
package share

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

var ErrScriptNotFound = errors.New("script not found")

type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for saved scripts.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

func New(address string, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: address}), opts...)
}

func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "rorilogo:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) scriptKey(name string) string {
	return s.prefix + "script:" + name
}

func (s *Store) indexKey() string {
	return s.prefix + "scripts"
}

func (s *Store) channel(session string) string {
	return s.prefix + "live:" + session
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, name, source string) error {
	if name == "" {
		return errors.New("script name is required")
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.scriptKey(name), source, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: float64(time.Now().Unix()), Member: name})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save script: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, name string) (string, error) {
	val, err := s.client.Get(ctx, s.scriptKey(name)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", fmt.Errorf("%w: %s", ErrScriptNotFound, name)
		}
		return "", fmt.Errorf("failed to load script: %w", err)
	}
	return val, nil
}

// List returns saved script names, most recently saved first. Names whose
// script expired are pruned from the index.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}
	live := make([]string, 0, len(names))
	for _, name := range names {
		n, err := s.client.Exists(ctx, s.scriptKey(name)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to list scripts: %w", err)
		}
		if n == 0 {
			if err := s.client.ZRem(ctx, s.indexKey(), name).Err(); err != nil {
				return nil, fmt.Errorf("failed to prune expired script: %w", err)
			}
			continue
		}
		live = append(live, name)
	}
	return live, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.scriptKey(name))
	pipe.ZRem(ctx, s.indexKey(), name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete script: %w", err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", ErrScriptNotFound, name)
	}
	return nil
}

// Publish sends source to everyone following session.
func (s *Store) Publish(ctx context.Context, session, source string) error {
	if err := s.client.Publish(ctx, s.channel(session), source).Err(); err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}
	return nil
}

// Subscribe follows session. The returned channel closes when ctx ends or
// the stop function is called.
func (s *Store) Subscribe(ctx context.Context, session string) (<-chan string, func() error, error) {
	sub := s.client.Subscribe(ctx, s.channel(session))
	// wait for the subscription to be confirmed so no message is missed
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, sub.Close, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
