package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"brari/internal/ai"
)

const systemPersona = "You are a helpful bot called Brari (like library) that lets users ask questions about books. " +
	"You will be given content - you should answer the questions based on the content."

// DocumentContext is one title/text pair the client wants in scope for a
// chat turn. JSON field names match the web client's payload.
type DocumentContext struct {
	Title   string `json:"documentTitle"`
	Context string `json:"documentContext"`
}

// ChatService assembles the document-grounded system prompt and streams the
// model's answer, smoothing output into word-sized chunks.
type ChatService struct {
	llmClient       *ai.OpenAICompatibleClient
	cfg             ai.ChatConfig
	costModel       string
	streamDelay     time.Duration
	maxContextChars int
}

func NewChatService(
	llmClient *ai.OpenAICompatibleClient,
	cfg ai.ChatConfig,
	costModel string,
	streamDelay time.Duration,
	maxContextChars int,
) *ChatService {
	return &ChatService{
		llmClient:       llmClient,
		cfg:             cfg,
		costModel:       costModel,
		streamDelay:     streamDelay,
		maxContextChars: maxContextChars,
	}
}

// BuildSystemPrompt concatenates a "Document: <title>\nContext: <text>" block
// per document, in input order, separated by blank lines, under the persona
// instruction. When maxContextChars is set, whole trailing blocks past the
// bound are dropped; blocks are never reformatted or truncated mid-way.
func (s *ChatService) BuildSystemPrompt(docs []DocumentContext) string {
	blocks := make([]string, 0, len(docs))
	total := 0
	for _, doc := range docs {
		block := fmt.Sprintf("Document: %s\nContext: %s", doc.Title, doc.Context)
		if s.maxContextChars > 0 && total+len(block) > s.maxContextChars {
			log.Printf("context bound %d reached, dropping %q and later documents", s.maxContextChars, doc.Title)
			break
		}
		total += len(block)
		blocks = append(blocks, block)
	}
	return systemPersona + "\n\n*RAW BACKGROUND CONTEXT:*\n\n" + strings.Join(blocks, "\n\n")
}

// Stream sends the assembled prompt plus history to the model and forwards
// the answer through onChunk word by word. Token usage and estimated cost go
// to the server log only.
func (s *ChatService) Stream(
	ctx context.Context,
	docs []DocumentContext,
	history []ai.ChatMessage,
	onChunk func(string) error,
) (string, error) {
	messages := make([]ai.ChatMessage, 0, len(history)+1)
	messages = append(messages, ai.ChatMessage{
		Role:    "system",
		Content: s.BuildSystemPrompt(docs),
	})
	messages = append(messages, history...)

	smoother := newWordStream(s.streamDelay, onChunk)
	full, usage, err := s.llmClient.StreamComplete(ctx, s.cfg, messages, smoother.Write)
	if err != nil {
		return "", err
	}
	if err := smoother.Flush(); err != nil {
		return "", err
	}

	s.logUsage(usage)
	return full, nil
}

func (s *ChatService) logUsage(usage ai.Usage) {
	cached := usage.PromptTokenDetails.CachedTokens
	log.Printf("chat response metrics: model=%s prompt_tokens=%d cached_prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		s.costModel, usage.PromptTokens, cached, usage.CompletionTokens, usage.TotalTokens)

	inputCost, outputCost, ok := EstimateCost(s.costModel, usage)
	if !ok {
		log.Printf("no cost rates for model %s, skipping cost estimate", s.costModel)
		return
	}
	log.Printf("estimated cost: input=$%.4f output=$%.4f total=$%.4f",
		inputCost, outputCost, inputCost+outputCost)
}
