package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/notevault/notevault/internal/config"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/pkg/logger"
)

// AIService produces note summaries and pattern findings. The provider is
// chosen by configuration; "local" (or any provider failure) falls back to
// heuristic extraction so insight generation never hard-fails.
type AIService struct {
	config *config.AIConfig
}

func NewAIService(cfg *config.AIConfig) *AIService {
	return &AIService{config: cfg}
}

// SummaryResult is one note's summary.
type SummaryResult struct {
	Summary    string
	Confidence float64
}

// PatternResult is a cross-note finding.
type PatternResult struct {
	Type        string // models.InsightPattern or models.InsightDuplicate
	Title       string
	Description string
	NoteIDs     []uint
	Confidence  float64
}

const summaryPromptTemplate = `Summarize the following note in 2-3 sentences. Reply with the summary only.

Title: %s

%s`

// Summarize produces a short summary of one note. Provider errors degrade
// to the local summarizer.
func (s *AIService) Summarize(ctx context.Context, note *models.Note) (*SummaryResult, error) {
	if s.config.Provider == "local" || s.config.Provider == "" {
		return localSummarize(note), nil
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, note.Title, note.Content)
	content, err := s.callLLM(ctx, prompt)
	if err != nil {
		logger.Warnf("[AI] provider %s failed, using local summarizer: %v", s.config.Provider, err)
		return localSummarize(note), nil
	}
	return &SummaryResult{Summary: strings.TrimSpace(content), Confidence: 0.9}, nil
}

// callLLM dispatches to the appropriate provider-specific function based on the configured provider
func (s *AIService) callLLM(ctx context.Context, prompt string) (string, error) {
	logger.Infof("[AI] Using provider: %s, model: %s, baseURL: %s", s.config.Provider, s.config.Model, s.config.BaseURL)

	switch s.config.Provider {
	case "anthropic":
		return s.callAnthropic(ctx, prompt)
	case "ollama":
		return s.callOllama(ctx, prompt)
	case "gemini":
		return s.callGemini(ctx, prompt)
	default:
		// openai and other OpenAI-compatible services
		return s.callOpenAI(ctx, prompt)
	}
}

// callOpenAI handles OpenAI and OpenAI-compatible APIs (including custom endpoints)
func (s *AIService) callOpenAI(ctx context.Context, prompt string) (string, error) {
	clientConfig := openai.DefaultConfig(s.config.APIKey)
	if s.config.BaseURL != "" {
		clientConfig.BaseURL = s.config.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

// callAnthropic handles Anthropic Claude API using the native SDK
func (s *AIService) callAnthropic(ctx context.Context, prompt string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(s.config.APIKey),
	)

	model := s.config.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	return content, nil
}

// callOllama handles Ollama API using the native SDK
func (s *AIService) callOllama(ctx context.Context, prompt string) (string, error) {
	baseURL := s.config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	model := s.config.Model
	if model == "" {
		model = "llama3"
	}

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Ollama API error: %w", err)
	}
	return content.String(), nil
}

// callGemini handles Google Gemini API using the native SDK
func (s *AIService) callGemini(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: s.config.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	model := s.config.Model
	if model == "" {
		model = "gemini-3.0-flash"
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	return resp.Text(), nil
}

// localSummarize extracts the leading sentences of the note content.
func localSummarize(note *models.Note) *SummaryResult {
	content := strings.TrimSpace(note.Content)
	if content == "" {
		return &SummaryResult{Summary: "Empty note: " + note.Title, Confidence: 0.3}
	}

	sentences := splitSentences(content)
	summary := strings.Join(firstN(sentences, 2), " ")
	if runes := []rune(summary); len(runes) > 300 {
		summary = string(runes[:300])
	}
	return &SummaryResult{Summary: summary, Confidence: 0.5}
}

// FindPatterns runs local cross-note analysis: near-duplicate titles and
// shared significant terms. No provider call; the result is deterministic.
func (s *AIService) FindPatterns(notes []models.Note) []PatternResult {
	var results []PatternResult

	// Duplicate detection on normalized titles.
	byTitle := map[string][]uint{}
	for _, n := range notes {
		key := normalizeText(n.Title)
		if key == "" {
			continue
		}
		byTitle[key] = append(byTitle[key], n.ID)
	}
	var dupKeys []string
	for key, ids := range byTitle {
		if len(ids) > 1 {
			dupKeys = append(dupKeys, key)
		}
	}
	sort.Strings(dupKeys)
	for _, key := range dupKeys {
		ids := byTitle[key]
		results = append(results, PatternResult{
			Type:        models.InsightDuplicate,
			Title:       fmt.Sprintf("Possible duplicates: %q", key),
			Description: fmt.Sprintf("%d notes share the same title", len(ids)),
			NoteIDs:     ids,
			Confidence:  0.8,
		})
	}

	// Recurring terms across note contents.
	termNotes := map[string][]uint{}
	for _, n := range notes {
		seen := map[string]bool{}
		for _, term := range significantTerms(n.Title + " " + n.Content) {
			if !seen[term] {
				seen[term] = true
				termNotes[term] = append(termNotes[term], n.ID)
			}
		}
	}
	var themeTerms []string
	for term, ids := range termNotes {
		if len(ids) >= 3 {
			themeTerms = append(themeTerms, term)
		}
	}
	sort.Strings(themeTerms)
	for _, term := range firstN(themeTerms, 5) {
		ids := termNotes[term]
		results = append(results, PatternResult{
			Type:        models.InsightPattern,
			Title:       fmt.Sprintf("Recurring theme: %q", term),
			Description: fmt.Sprintf("%d notes mention %q", len(ids), term),
			NoteIDs:     ids,
			Confidence:  0.6,
		})
	}

	return results
}

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "has": true,
	"have": true, "this": true, "that": true, "with": true, "from": true,
	"they": true, "will": true, "what": true, "when": true, "your": true,
	"about": true, "there": true, "which": true, "their": true, "would": true,
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func splitSentences(s string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range s {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			if trimmed := strings.TrimSpace(current.String()); trimmed != "" && trimmed != "." {
				sentences = append(sentences, trimmed)
			}
			current.Reset()
		}
	}
	if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
		sentences = append(sentences, trimmed)
	}
	return sentences
}

func significantTerms(s string) []string {
	var terms []string
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.Trim(word, ".,;:!?\"'()[]{}")
		if len(word) < 4 || stopWords[word] {
			continue
		}
		terms = append(terms, word)
	}
	return terms
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
