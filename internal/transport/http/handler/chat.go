package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"brari/internal/ai"
	"brari/internal/app"
	"brari/internal/transport/http/response"
)

type ChatHandler struct {
	chatService *app.ChatService
	timeout     time.Duration
}

type ChatRequest struct {
	Messages     []ChatMessageRequest  `json:"messages" binding:"dive"`
	BenefitsData []app.DocumentContext `json:"benefitsData"`
}

type ChatMessageRequest struct {
	Content                 string              `json:"content"`
	Role                    string              `json:"role" binding:"required,oneof=user assistant system"`
	ExperimentalAttachments []AttachmentRequest `json:"experimental_attachments" binding:"dive"`
}

type AttachmentRequest struct {
	URL         string `json:"url" binding:"required"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
}

func NewChatHandler(chatService *app.ChatService, timeout time.Duration) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		timeout:     timeout,
	}
}

// Chat streams the model's answer as SSE data chunks. Any failure, malformed
// input included, surfaces as the one generic chat error.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("chat request rejected: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to process chat request")
		return
	}

	log.Printf("processing chat with %d context documents", len(req.BenefitsData))

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response.Error(c, http.StatusInternalServerError, "Failed to process chat request")
		return
	}

	history := make([]ai.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		history = append(history, ai.ChatMessage{Role: m.Role, Content: m.Content})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	streamStarted := false
	_, err := h.chatService.Stream(ctx, req.BenefitsData, history, func(chunk string) error {
		if !streamStarted {
			streamStarted = true
			c.Header("Content-Type", "text/event-stream")
			c.Header("Cache-Control", "no-cache")
			c.Header("Connection", "keep-alive")
			c.Header("X-Accel-Buffering", "no")
		}
		if _, writeErr := c.Writer.Write([]byte("data: " + sanitizeSSE(chunk) + "\n\n")); writeErr != nil {
			return writeErr
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		log.Printf("chat stream failed: %v", err)
		if !streamStarted {
			response.Error(c, http.StatusInternalServerError, "Failed to process chat request")
			return
		}
		// Headers are out; all we can do is emit an error event.
		if _, writeErr := c.Writer.Write([]byte("event: error\ndata: Failed to process chat request\n\n")); writeErr == nil {
			flusher.Flush()
		}
		return
	}

	if !streamStarted {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
	}
	if _, writeErr := c.Writer.Write([]byte("event: done\ndata: \n\n")); writeErr == nil {
		flusher.Flush()
	}
}

func sanitizeSSE(input string) string {
	replaced := strings.ReplaceAll(input, "\r\n", "\\n")
	replaced = strings.ReplaceAll(replaced, "\n", "\\n")
	return replaced
}
