package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"movi/internal/config"
	"movi/internal/domain/entities"
)

// Gemini is the TextGenerator backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini connects to the Gemini API. It returns (nil, nil) when no API key
// is configured so that callers can pass the result straight to NewClient.
func NewGemini(ctx context.Context, cfg config.AssistantConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: cfg.Model}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// Converse replays the whole chat context on every call; bot messages become
// model turns.
func (g *Gemini) Converse(ctx context.Context, system string, history []entities.Message) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := genai.RoleUser
		if m.Sender == entities.SenderBot {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, genai.Role(role)))
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate chat reply: %w", err)
	}
	return resp.Text(), nil
}

// asTextGenerator avoids the typed-nil trap: a nil *Gemini stored in a
// TextGenerator interface would not compare equal to nil.
func asTextGenerator(g *Gemini) TextGenerator {
	if g == nil {
		return nil
	}
	return g
}

// NewFromConfig builds a Client wired to Gemini, or an unconfigured Client
// when no API key is set.
func NewFromConfig(ctx context.Context, cfg config.AssistantConfig, logger *slog.Logger) (*Client, error) {
	g, err := NewGemini(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewClient(asTextGenerator(g), cfg, logger, nil), nil
}
