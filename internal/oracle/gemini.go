package oracle

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"
)

var ErrNoAPIKey = errors.New("oracle: no api key")

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Gemini calls the Gemini API through the genai SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a client for model using the key stored in env var keyEnv.
func NewGemini(ctx context.Context, model, keyEnv string) (*Gemini, error) {
	key := os.Getenv(keyEnv)
	if key == "" {
		return nil, fmt.Errorf("%w in $%s", ErrNoAPIKey, keyEnv)
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("oracle: genai client: %w", err)
	}
	return &Gemini{client: c, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("oracle: response has no candidates")
	}
	return resp.Text(), nil
}

// Offline always fails; it stands in when no API key is configured so the
// fallback path still produces a message.
type Offline struct{ Reason error }

func (o Offline) Generate(context.Context, string) (string, error) {
	if o.Reason != nil {
		return "", o.Reason
	}
	return "", ErrNoAPIKey
}
