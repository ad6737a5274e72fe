package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"brari/internal/app"
	"brari/internal/model"
)

func newDocumentsRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc := app.NewIngestService(&fakeInferencer{}, store)
	router.GET("/api/documents", NewDocumentHandler(svc).List)
	return router
}

func TestDocuments_ListRendersUnknownAuthor(t *testing.T) {
	store := newFakeStore()
	store.docs["docs:anon.json"] = model.Document{
		Title:    "Anonymous Pamphlet",
		Text:     "text",
		StoreKey: "docs:anon.json",
	}

	router := newDocumentsRouter(store)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var items []DocumentItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Author != model.UnknownAuthor {
		t.Errorf("author = %q, want %q", items[0].Author, model.UnknownAuthor)
	}
	if items[0].StoreKey != "docs:anon.json" {
		t.Errorf("store key = %q", items[0].StoreKey)
	}
}

func TestDocuments_ListEmptyStore(t *testing.T) {
	router := newDocumentsRouter(newFakeStore())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestDocuments_ListStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("store unavailable")
	router := newDocumentsRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
