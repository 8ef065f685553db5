package proposal

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"quotation_backend/platform/config"
)

// GeminiGenerator generates proposals with a single Gemini completion call.
type GeminiGenerator struct {
	client     *genai.Client
	model      string
	agencyName string
}

// NewGeminiGenerator creates a Gemini-backed generator, or NoopGenerator when
// no API key is configured.
func NewGeminiGenerator(ctx context.Context, cfg config.ProposalConfig, agencyName string) (Generator, error) {
	if !cfg.IsProposalEnabled() {
		return NoopGenerator{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiGenerator{
		client:     client,
		model:      cfg.GetGeminiModel(),
		agencyName: agencyName,
	}, nil
}

// Generate builds the proposal prompt and runs one completion.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (Result, error) {
	if req.AgencyName == "" {
		req.AgencyName = g.agencyName
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0.7),
		SystemInstruction: genai.NewContentFromText(systemInstruction(req.AgencyName), genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(req)), genCfg)
	if err != nil {
		return Result{}, fmt.Errorf("generate proposal: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Result{}, fmt.Errorf("generate proposal: model returned no content")
	}

	// Models often wrap HTML output in a markdown code fence.
	text = stripCodeFence(text)

	return Result{ProposalHTML: text, TotalCents: req.TotalCents}, nil
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```html")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

var _ Generator = (*GeminiGenerator)(nil)
