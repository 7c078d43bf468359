// AngelaMos | 2026
// store.go

package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

const maxUpdateAttempts = 5

var ErrStoreContention = errors.New("ledger document changed concurrently")

// DocumentStore keeps one opaque document per key. Update is atomic per
// key: fn sees the current document and returns its replacement.
type DocumentStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Update(
		ctx context.Context,
		key string,
		fn func(current []byte) ([]byte, error),
	) error
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) DocumentStore {
	return &redisStore{client: client}
}

func (s *redisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return data, nil
}

// Update uses WATCH/MULTI and reruns fn when another writer got there
// first.
func (s *redisStore) Update(
	ctx context.Context,
	key string,
	fn func(current []byte) ([]byte, error),
) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}

	for range maxUpdateAttempts {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("update %s: %w", key, err)
		}
		return nil
	}

	return fmt.Errorf("update %s: %w", key, ErrStoreContention)
}

type memoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemoryStore() DocumentStore {
	return &memoryStore{docs: make(map[string][]byte)}
}

func (s *memoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), doc...), nil
}

func (s *memoryStore) Update(
	_ context.Context,
	key string,
	fn func(current []byte) ([]byte, error),
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current []byte
	if doc, ok := s.docs[key]; ok {
		current = append([]byte(nil), doc...)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	s.docs[key] = next
	return nil
}
