package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"brari/internal/model"
)

// RedisDocumentStore persists document records as JSON strings under the
// docs: namespace. Records are write-once; there is no update or delete.
type RedisDocumentStore struct {
	client *redisv9.Client
}

func NewRedisDocumentStore(client *redisv9.Client) *RedisDocumentStore {
	return &RedisDocumentStore{client: client}
}

func (s *RedisDocumentStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis check key failed: %w", err)
	}
	return n > 0, nil
}

func (s *RedisDocumentStore) Put(ctx context.Context, key string, doc model.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document failed: %w", err)
	}
	if err := s.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set document failed: %w", err)
	}
	return nil
}

// List scans the docs: namespace and returns every decodable record.
// Values that fail to decode are logged and skipped rather than failing the
// whole listing.
func (s *RedisDocumentStore) List(ctx context.Context) ([]model.Document, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, model.KeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan documents failed: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget documents failed: %w", err)
	}

	docs := make([]model.Document, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var doc model.Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			log.Printf("skip undecodable document at %s: %v", keys[i], err)
			continue
		}
		if doc.StoreKey == "" {
			doc.StoreKey = keys[i]
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
