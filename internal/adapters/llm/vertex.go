package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/PabloGalante/neogiator-agent/internal/domain"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// VertexOptions selects the backend. With APIKey set the public Gemini API is
// used; otherwise Project and Location address Vertex AI.
type VertexOptions struct {
	Project  string
	Location string
	APIKey   string
	Model    string
}

type VertexClient struct {
	client    *genai.Client
	modelName string
}

// NewVertexClient creates a TextGenerator backed by Gemini.
func NewVertexClient(ctx context.Context, opts VertexOptions) (*VertexClient, error) {
	cfg := &genai.ClientConfig{}
	switch {
	case opts.APIKey != "":
		cfg.APIKey = opts.APIKey
		cfg.Backend = genai.BackendGeminiAPI
	case opts.Project != "" && opts.Location != "":
		cfg.Project = opts.Project
		cfg.Location = opts.Location
		cfg.Backend = genai.BackendVertexAI
	default:
		return nil, errors.New("either an API key or a GCP project and location must be set")
	}

	modelName := opts.Model
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &VertexClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// GenerateText implements domain.TextGenerator.
func (v *VertexClient) GenerateText(ctx context.Context, req domain.GenerationRequest) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	for _, a := range req.Attachments {
		parts = append(parts, genai.NewPartFromBytes(a.Data, a.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	temp := req.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if req.System != "" {
		// System instructions go in with the user role, as in the SDK examples.
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned empty text", domain.ErrGenerationUnavailable)
	}
	return text, nil
}
