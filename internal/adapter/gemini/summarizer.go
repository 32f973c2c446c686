package gemini

import (
	"context"
	"strings"
	"time"

	"repo-insight/internal/common"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// modelName is the cheapest model that still writes decent Markdown.
const modelName = "gemini-2.5-flash-lite"

// completeTimeout bounds a single model call.
const completeTimeout = 30 * time.Second

// GeminiSummarizer implements port.Summarizer. Every call is stateless:
// no conversation history is kept between prompts.
type GeminiSummarizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiSummarizer(ctx context.Context, apiKey string) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &GeminiSummarizer{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Complete sends the prompt and returns the model's Markdown text.
func (g *GeminiSummarizer) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", common.NewError(common.ErrCodeAIProcessing, "Prompt is empty.")
	}

	ctx, cancel := context.WithTimeout(ctx, completeTimeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", common.WrapError(common.ErrCodeAIProcessing, "Error generating content: "+err.Error(), err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", err
	}

	return text, nil
}

// Close releases the underlying API client.
func (g *GeminiSummarizer) Close() error {
	return g.client.Close()
}

// extractText concatenates the text parts of the first candidate. The API
// occasionally returns empty candidates (safety blocks, quota); those are
// reported as processing errors rather than empty strings.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", common.NewError(common.ErrCodeAIProcessing, "Model returned no content.")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", common.NewError(common.ErrCodeAIProcessing, "Model returned no text.")
	}

	return sb.String(), nil
}
