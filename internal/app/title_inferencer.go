package app

import (
	"context"
	"fmt"

	"brari/internal/ai"
)

// Only the opening of a document is submitted: titles and authors are almost
// always discoverable there, and the cap bounds request cost and latency.
const titleExcerptLimit = 2000

const titleInstruction = "Based on the following document content, provide a clear and specific title of the book, article, or document. " +
	"It should reflect the actual title of the document, even if the title is not immediately clear from the text. " +
	"For instance, if the text is 'It was the best of times, it was the worst of times...' You can infer the title is 'A Tale of Two Cities'. " +
	"If the title is explicitly mentioned, use that. " +
	"Also do your best to infer the author of the document, even if it is not explicitly mentioned. " +
	"If it is unknown, return 'Unknown Author'. :"

// LLMTitleInferencer guesses {title, author} for a document by asking the
// model for a schema-constrained object. Single attempt, no retries.
type LLMTitleInferencer struct {
	client *ai.OpenAICompatibleClient
	cfg    ai.ChatConfig
}

func NewLLMTitleInferencer(client *ai.OpenAICompatibleClient, cfg ai.ChatConfig) *LLMTitleInferencer {
	return &LLMTitleInferencer{
		client: client,
		cfg:    cfg,
	}
}

func (i *LLMTitleInferencer) InferTitle(ctx context.Context, text string) (TitleGuess, error) {
	excerpt := text
	if runes := []rune(text); len(runes) > titleExcerptLimit {
		excerpt = string(runes[:titleExcerptLimit])
	}

	messages := []ai.ChatMessage{
		{
			Role:    "user",
			Content: fmt.Sprintf("%s\n\n%s...", titleInstruction, excerpt),
		},
	}
	schema := ai.ObjectSchema{
		Name: "document_title",
		Schema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "A clear, specific title for the document",
				},
				"author": map[string]interface{}{
					"type":        "string",
					"description": "The author of the document",
				},
			},
			"required":             []string{"title", "author"},
			"additionalProperties": false,
		},
	}

	var guess TitleGuess
	if err := i.client.CompleteObject(ctx, i.cfg, messages, schema, &guess); err != nil {
		return TitleGuess{}, fmt.Errorf("infer document title failed: %w", err)
	}
	return guess, nil
}
