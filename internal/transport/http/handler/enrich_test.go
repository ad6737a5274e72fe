package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"brari/internal/app"
	"brari/internal/model"
	"brari/internal/transport/http/middleware"
)

const testToken = "letmein"

type fakeInferencer struct {
	guess app.TitleGuess
	err   error
	calls int
}

func (f *fakeInferencer) InferTitle(ctx context.Context, text string) (app.TitleGuess, error) {
	f.calls++
	if f.err != nil {
		return app.TitleGuess{}, f.err
	}
	return f.guess, nil
}

type fakeStore struct {
	docs     map[string]model.Document
	listErr  error
	putCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]model.Document)}
}

func (f *fakeStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.docs[key]
	return ok, nil
}

func (f *fakeStore) Put(ctx context.Context, key string, doc model.Document) error {
	f.putCalls++
	f.docs[key] = doc
	return nil
}

func (f *fakeStore) List(ctx context.Context) ([]model.Document, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	docs := make([]model.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		docs = append(docs, doc)
	}
	return docs, nil
}

func newEnrichRouter(inferencer *fakeInferencer, store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewEnrichHandler(app.NewIngestService(inferencer, store), time.Minute)
	group := router.Group("/api/enrich")
	group.Use(middleware.AuthBearer(testToken))
	group.POST("", h.Enrich)
	return router
}

func postEnrich(router *gin.Engine, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/enrich", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestEnrich_Unauthorized(t *testing.T) {
	inferencer := &fakeInferencer{guess: app.TitleGuess{Title: "t"}}
	store := newFakeStore()
	router := newEnrichRouter(inferencer, store)

	for _, token := range []string{"", "wrong-token"} {
		rec := postEnrich(router, token, `{"text":"hello"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("token %q: status = %d, want 401", token, rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"Unauthorized"}` {
			t.Errorf("token %q: body = %s", token, body)
		}
	}
	// Authorization runs before anything else.
	if inferencer.calls != 0 {
		t.Errorf("inferencer called %d times, want 0", inferencer.calls)
	}
	if store.putCalls != 0 {
		t.Errorf("store writes = %d, want 0", store.putCalls)
	}
}

func TestEnrich_NoText(t *testing.T) {
	router := newEnrichRouter(&fakeInferencer{}, newFakeStore())

	for _, body := range []string{`{}`, `{"text":""}`, `not json`} {
		rec := postEnrich(router, testToken, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"No text provided"}` {
			t.Errorf("body %q: response = %s", body, got)
		}
	}
}

func TestEnrich_Success(t *testing.T) {
	inferencer := &fakeInferencer{guess: app.TitleGuess{Title: "A Tale of Two Cities", Author: "Charles Dickens"}}
	store := newFakeStore()
	router := newEnrichRouter(inferencer, store)

	rec := postEnrich(router, testToken, `{"text":"It was the best of times..."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Text   string `json:"text"`
		Title  string `json:"title"`
		Author string `json:"author"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.Text != "It was the best of times..." {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.Title == "" {
		t.Error("title must be present")
	}
	if resp.Author != "Charles Dickens" {
		t.Errorf("author = %q, want the inferencer's value", resp.Author)
	}
	if store.putCalls != 1 {
		t.Errorf("store writes = %d, want 1", store.putCalls)
	}
	if _, ok := store.docs["docs:a_tale_of_two_cities.json"]; !ok {
		t.Errorf("record missing, stored keys: %v", store.docs)
	}
}

func TestEnrich_InferenceFailure(t *testing.T) {
	inferencer := &fakeInferencer{err: errors.New("model offline")}
	store := newFakeStore()
	router := newEnrichRouter(inferencer, store)

	rec := postEnrich(router, testToken, `{"text":"hello"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "model offline") {
		t.Errorf("body = %s, want original message preserved", rec.Body.String())
	}
	if store.putCalls != 0 {
		t.Errorf("store writes = %d, want 0", store.putCalls)
	}
}
