package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// DefaultPromptTemplate is used when no prompt file is configured. The
// placeholders are replaced per request.
const DefaultPromptTemplate = `Sen bir yazılım forumu için konu sınıflandırma asistanısın.
Kullanıcının konusunu aşağıdaki kategori ağacından birine yerleştir.

Kategoriler:
{{TAXONOMY}}

Konuşma geçmişi:
{{HISTORY}}

Kullanıcının son mesajı:
{{INPUT}}

Sadece JSON döndür. Emin değilsen tek bir netleştirme sorusu sor:
{"question": "...", "options": ["..."]}
Eminsen kategoriyi döndür:
{"category": "...", "subcategory": "..."}
Kategori ve alt kategori adları listeden birebir alınmalıdır.`

// ChatCompleter is the minimal OpenAI client surface the engine needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LLMEngine implements Engine over an OpenAI-compatible chat completion
// API. It keeps the same contract as the rule engine, including the safety
// invariant: a hallucinated category pair is resolved back into the
// supplied taxonomy before the result is returned.
type LLMEngine struct {
	client         ChatCompleter
	model          string
	promptTemplate string
}

// NewLLMEngine creates an LLM-backed engine. An empty prompt falls back to
// DefaultPromptTemplate.
func NewLLMEngine(client ChatCompleter, model, prompt string) *LLMEngine {
	if prompt == "" {
		prompt = DefaultPromptTemplate
	}
	return &LLMEngine{client: client, model: model, promptTemplate: prompt}
}

// Classify implements Engine.
func (e *LLMEngine) Classify(ctx context.Context, req Request) (Result, error) {
	if e.client == nil {
		return Result{}, fmt.Errorf("llm engine is not initialized with a client")
	}

	prompt := e.promptTemplate
	prompt = strings.ReplaceAll(prompt, "{{TAXONOMY}}", RenderTaxonomy(req.Taxonomy))
	prompt = strings.ReplaceAll(prompt, "{{HISTORY}}", renderHistory(req.History))
	prompt = strings.ReplaceAll(prompt, "{{INPUT}}", req.Input)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("no choices returned from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	return ParseEngineResponse(content, req.Taxonomy)
}

// ParseEngineResponse decodes the JSON an LLM engine is expected to emit
// and enforces the taxonomy invariant on classified results. Shared by the
// OpenAI and Gemini backends.
func ParseEngineResponse(content string, taxonomy []Category) (Result, error) {
	var parsed struct {
		Question    string   `json:"question"`
		Options     []string `json:"options"`
		Category    string   `json:"category"`
		Subcategory string   `json:"subcategory"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return Result{}, fmt.Errorf("failed to parse LLM response as JSON: %w\nResponse content: %s", err, content)
	}

	if parsed.Question != "" {
		return NeedsClarification(parsed.Question, parsed.Options...), nil
	}

	category, subcategory := ResolvePair(taxonomy, parsed.Category, parsed.Subcategory)
	return Classified(category, subcategory), nil
}

// RenderTaxonomy flattens the taxonomy into "Category > Subcategory" lines
// for prompt construction.
func RenderTaxonomy(taxonomy []Category) string {
	var b strings.Builder
	for _, c := range taxonomy {
		for _, s := range c.Subcategories {
			fmt.Fprintf(&b, "- %s > %s\n", c.Name, s.Name)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderHistory(history []Message) string {
	if len(history) == 0 {
		return "(yok)"
	}
	var b strings.Builder
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}
