// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	generativeModelName = "models/gemini-1.5-pro"
	embeddingModelName  = "text-embedding-004"
)

// GeminiClient backs both opaque capabilities the assistant consumes:
// response generation and text embedding. A single client serves index
// build and query time, keeping the embedding space consistent.
type GeminiClient struct {
	model    *genai.GenerativeModel
	embedder *genai.EmbeddingModel
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiClient{
		model:    client.GenerativeModel(generativeModelName),
		embedder: client.EmbeddingModel(embeddingModelName),
	}, nil
}

// Generate produces a natural-language reply, grounding it on the retrieved
// context when one is supplied.
func (g *GeminiClient) Generate(ctx context.Context, query, systemPrompt, ragContext string) (string, error) {
	var prompt strings.Builder
	if systemPrompt != "" {
		prompt.WriteString(systemPrompt)
		prompt.WriteString("\n\n")
	}
	if ragContext != "" {
		prompt.WriteString("Answer using the following salon information:\n")
		prompt.WriteString(ragContext)
		prompt.WriteString("\n\n")
	}
	prompt.WriteString(query)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini generate error: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// Embed maps a single text to its embedding vector.
func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := g.embedder.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed error: %w", err)
	}
	return res.Embedding.Values, nil
}

// EmbedBatch embeds multiple texts in one request.
func (g *GeminiClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	batch := g.embedder.NewBatch()
	for _, t := range texts {
		batch = batch.AddContent(genai.Text(t))
	}
	res, err := g.embedder.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("gemini batch embed error: %w", err)
	}

	vectors := make([][]float32, len(res.Embeddings))
	for i, e := range res.Embeddings {
		vectors[i] = e.Values
	}
	return vectors, nil
}
