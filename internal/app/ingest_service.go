package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"brari/internal/model"
)

var (
	ErrEmptyText = errors.New("no text provided")
)

// TitleGuess is the structured output of the title/author inference call.
type TitleGuess struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

type TitleInferencer interface {
	InferTitle(ctx context.Context, text string) (TitleGuess, error)
}

type DocumentStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key string, doc model.Document) error
	List(ctx context.Context) ([]model.Document, error)
}

// IngestService turns raw extracted text into a persisted document record:
// infer title/author, derive a unique store key, write once.
type IngestService struct {
	inferencer TitleInferencer
	store      DocumentStore
}

func NewIngestService(inferencer TitleInferencer, store DocumentStore) *IngestService {
	return &IngestService{
		inferencer: inferencer,
		store:      store,
	}
}

// Ingest runs the full pipeline for one document. Nothing is written until
// every earlier step has succeeded; a failed write fails the request.
func (s *IngestService) Ingest(ctx context.Context, text string) (*model.Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	guess, err := s.inferencer.InferTitle(ctx, text)
	if err != nil {
		return nil, err
	}

	key := s.allocateKey(ctx, SanitizeTitle(guess.Title))

	doc := model.Document{
		Title:      guess.Title,
		Text:       text,
		Author:     guess.Author,
		SourceLink: "",
		StoreKey:   key,
	}
	if err := s.store.Put(ctx, key, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments returns every stored record.
func (s *IngestService) ListDocuments(ctx context.Context) ([]model.Document, error) {
	return s.store.List(ctx)
}

// allocateKey linearly probes docs:<base>.json, docs:<base>_1.json, ... until
// an unused key turns up. The check-then-write pair is not atomic; two racing
// ingestions can still collide, which we accept. If a probe itself fails, the
// last computed key is used as-is: ingestion must not hard-fail merely
// because a uniqueness probe could not complete.
func (s *IngestService) allocateKey(ctx context.Context, base string) string {
	key := model.KeyPrefix + base + ".json"
	for index := 1; ; index++ {
		exists, err := s.store.Exists(ctx, key)
		if err != nil {
			log.Printf("document key existence check failed for %s: %v", key, err)
			return key
		}
		if !exists {
			return key
		}
		key = fmt.Sprintf("%s%s_%d.json", model.KeyPrefix, base, index)
	}
}

// SanitizeTitle lowercases the title and replaces every character outside
// [a-z0-9] with an underscore.
func SanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
