package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

// draftMarker is the heading the composer puts in front of its template draft,
// which always closes the prompt.
const draftMarker = "Draft reply:"

// MockLLM is a deterministic generator for local runs. It answers reply
// requests with the draft embedded in the prompt and refuses everything else,
// so resume parsing exercises the fallback path.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) GenerateText(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	i := strings.LastIndex(req.Prompt, draftMarker)
	if i < 0 {
		return "", fmt.Errorf("%w: mock generator only polishes drafts", domain.ErrGenerationUnavailable)
	}
	return strings.TrimSpace(req.Prompt[i+len(draftMarker):]), nil
}
