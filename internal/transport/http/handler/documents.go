package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"brari/internal/app"
	"brari/internal/transport/http/response"
)

type DocumentHandler struct {
	ingestService *app.IngestService
}

type DocumentItem struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	Author     string `json:"author"`
	SourceLink string `json:"pdf_link"`
	StoreKey   string `json:"redisKey"`
}

func NewDocumentHandler(ingestService *app.IngestService) *DocumentHandler {
	return &DocumentHandler{ingestService: ingestService}
}

// List returns every stored document record. The web client loads this once
// and ships titles and texts back with each chat request.
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.ingestService.ListDocuments(c.Request.Context())
	if err != nil {
		log.Printf("list documents failed: %v", err)
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]DocumentItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, DocumentItem{
			Title:      doc.Title,
			Text:       doc.Text,
			Author:     doc.DisplayAuthor(),
			SourceLink: doc.SourceLink,
			StoreKey:   doc.StoreKey,
		})
	}
	response.OK(c, items)
}
