package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

type flakyGenerator struct {
	failures int
	calls    int
}

func (f *flakyGenerator) GenerateText(context.Context, domain.GenerationRequest) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", errors.New("temporary failure")
	}
	return "ok", nil
}

func TestRetryRecoversAfterFailures(t *testing.T) {
	gen := &flakyGenerator{failures: 2}
	r := WithRetry(gen, 3, time.Millisecond)

	got, err := r.GenerateText(context.Background(), domain.GenerationRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || gen.calls != 3 {
		t.Fatalf("got %q after %d calls", got, gen.calls)
	}
}

func TestRetryGivesUp(t *testing.T) {
	gen := &flakyGenerator{failures: 10}
	r := WithRetry(gen, 2, time.Millisecond)

	_, err := r.GenerateText(context.Background(), domain.GenerationRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	if gen.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", gen.calls)
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	gen := &flakyGenerator{failures: 10}
	r := WithRetry(gen, 5, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := r.GenerateText(ctx, domain.GenerationRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	if gen.calls != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", gen.calls)
	}
}

func TestWithRetrySingleAttemptIsIdentity(t *testing.T) {
	gen := &flakyGenerator{}
	if WithRetry(gen, 1, 0) != domain.TextGenerator(gen) {
		t.Fatal("expected the generator to be returned unchanged")
	}
}

func TestMockReturnsDraft(t *testing.T) {
	m := NewMockLLM()
	got, err := m.GenerateText(context.Background(), domain.GenerationRequest{
		Prompt: "Company message:\nhello\n\n" + draftMarker + "\nThanks for the offer.\n\nLet's talk.\n",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Thanks for the offer.\n\nLet's talk." {
		t.Fatalf("got %q", got)
	}
}

func TestMockFailsWithoutDraft(t *testing.T) {
	_, err := NewMockLLM().GenerateText(context.Background(), domain.GenerationRequest{Prompt: "parse this resume"})
	if !errors.Is(err, domain.ErrGenerationUnavailable) {
		t.Fatalf("expected ErrGenerationUnavailable, got %v", err)
	}
}
