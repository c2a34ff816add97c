package services

import (
	"context"
	"fmt"
	"strings"

	"tasnif/pkg/classifier"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// GeminiEngine implements classifier.Engine using the Google Gemini API. It
// shares the prompt template and response contract with the OpenAI-backed
// engine in pkg/classifier.
type GeminiEngine struct {
	client         *genai.Client
	model          string
	promptTemplate string
}

// NewGeminiEngine creates a Gemini-backed classification engine.
func NewGeminiEngine(ctx context.Context, apiKey, model, prompt string) (*GeminiEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not provided")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if prompt == "" {
		prompt = classifier.DefaultPromptTemplate
	}
	log.Infof("Gemini engine initialized with model %s", model)
	return &GeminiEngine{client: client, model: model, promptTemplate: prompt}, nil
}

// Classify implements classifier.Engine.
func (e *GeminiEngine) Classify(ctx context.Context, req classifier.Request) (classifier.Result, error) {
	if e.client == nil {
		return classifier.Result{}, fmt.Errorf("Gemini engine is not initialized")
	}

	prompt := e.promptTemplate
	prompt = strings.ReplaceAll(prompt, "{{TAXONOMY}}", classifier.RenderTaxonomy(req.Taxonomy))
	prompt = strings.ReplaceAll(prompt, "{{HISTORY}}", renderGeminiHistory(req.History))
	prompt = strings.ReplaceAll(prompt, "{{INPUT}}", req.Input)

	model := e.client.GenerativeModel(e.model)
	model.ResponseMIMEType = "application/json"
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return classifier.Result{}, fmt.Errorf("Gemini API error generating classification: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return classifier.Result{}, fmt.Errorf("Gemini API returned no candidates")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	content := strings.TrimSpace(b.String())
	if content == "" {
		return classifier.Result{}, fmt.Errorf("Gemini API returned no text content")
	}

	return classifier.ParseEngineResponse(content, req.Taxonomy)
}

// Close cleans up the Gemini client resources.
func (e *GeminiEngine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

func renderGeminiHistory(history []classifier.Message) string {
	if len(history) == 0 {
		return "(yok)"
	}
	var b strings.Builder
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Ensure GeminiEngine implements the interface at compile time.
var _ classifier.Engine = (*GeminiEngine)(nil)
