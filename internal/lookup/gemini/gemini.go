// Package gemini implements lookup.Service on the Google Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"lingolearn/internal/domain"
)

// DefaultModel is used when Config.Model is empty
const DefaultModel = "gemini-2.5-flash"

// Config holds Gemini client settings
type Config struct {
	APIKey string
	Model  string
}

// Client performs word lookups with structured JSON output
type Client struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// New creates a Gemini lookup client
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client, model: model, logger: logger}, nil
}

// Lookup asks the model for details of word. No retry is performed.
func (c *Client) Lookup(ctx context.Context, word, sourceLanguage, targetLanguage string) (domain.WordDetails, error) {
	resp, err := c.client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(buildPrompt(word, sourceLanguage, targetLanguage)),
		generateConfig(sourceLanguage, targetLanguage),
	)
	if err != nil {
		c.logger.Error("Gemini request failed",
			zap.String("word", word),
			zap.Error(err),
		)
		return domain.WordDetails{}, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	details, err := parseDetails(responseText(resp))
	if err != nil {
		c.logger.Warn("Unusable Gemini response",
			zap.String("word", word),
			zap.Error(err),
		)
		return domain.WordDetails{}, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	details.SourceWord = word
	return details, nil
}

func buildPrompt(word, sourceLanguage, targetLanguage string) string {
	return fmt.Sprintf(
		"Provide a concise definition, one example sentence, and a translation for the %s word %q into %s.",
		sourceLanguage, word, targetLanguage,
	)
}

func generateConfig(sourceLanguage, targetLanguage string) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"translatedWord": {
					Type:        genai.TypeString,
					Description: "The translation of the word into " + targetLanguage + ".",
				},
				"definition": {
					Type:        genai.TypeString,
					Description: "A concise definition of the word in " + sourceLanguage + ".",
				},
				"exampleSentence": {
					Type:        genai.TypeString,
					Description: "An example sentence using the word in " + sourceLanguage + ".",
				},
			},
			Required: []string{"translatedWord", "definition", "exampleSentence"},
		},
	}
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// parseDetails decodes the JSON payload produced under the response schema
func parseDetails(text string) (domain.WordDetails, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.WordDetails{}, errors.New("empty response")
	}

	var payload struct {
		TranslatedWord  string `json:"translatedWord"`
		Definition      string `json:"definition"`
		ExampleSentence string `json:"exampleSentence"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return domain.WordDetails{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if strings.TrimSpace(payload.TranslatedWord) == "" {
		return domain.WordDetails{}, errors.New("response has no translation")
	}

	return domain.WordDetails{
		TranslatedWord:  strings.TrimSpace(payload.TranslatedWord),
		Definition:      strings.TrimSpace(payload.Definition),
		ExampleSentence: strings.TrimSpace(payload.ExampleSentence),
	}, nil
}
