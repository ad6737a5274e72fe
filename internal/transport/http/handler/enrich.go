package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"brari/internal/app"
	"brari/internal/pkg/pdfextract"
	"brari/internal/transport/http/response"
)

type EnrichHandler struct {
	ingestService *app.IngestService
	timeout       time.Duration
}

type EnrichRequest struct {
	Text string `json:"text"`
}

type EnrichResponse struct {
	Text   string `json:"text"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

func NewEnrichHandler(ingestService *app.IngestService, timeout time.Duration) *EnrichHandler {
	return &EnrichHandler{
		ingestService: ingestService,
		timeout:       timeout,
	}
}

// Enrich ingests raw extracted text the client already pulled out of a PDF.
func (h *EnrichHandler) Enrich(c *gin.Context) {
	var req EnrichRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		response.Error(c, http.StatusBadRequest, "No text provided")
		return
	}

	h.ingest(c, req.Text)
}

// EnrichPDF ingests a PDF uploaded as multipart form data, extracting the
// page texts server-side first.
func (h *EnrichHandler) EnrichPDF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("open uploaded pdf failed: %v", err)
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	defer file.Close()

	text, err := pdfextract.ExtractText(file)
	if err != nil {
		log.Printf("extract pdf text failed: %v", err)
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	if strings.TrimSpace(text) == "" {
		response.Error(c, http.StatusBadRequest, "No text provided")
		return
	}

	h.ingest(c, text)
}

func (h *EnrichHandler) ingest(c *gin.Context, text string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	doc, err := h.ingestService.Ingest(ctx, text)
	if err != nil {
		if errors.Is(err, app.ErrEmptyText) {
			response.Error(c, http.StatusBadRequest, "No text provided")
			return
		}
		log.Printf("ingest document failed: %v", err)
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, EnrichResponse{
		Text:   doc.Text,
		Title:  doc.Title,
		Author: doc.Author,
	})
}
