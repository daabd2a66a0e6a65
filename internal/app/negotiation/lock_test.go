package negotiation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/PabloGalante/neogiator-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

func lockEntries(s *Service) int {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	return len(s.locks)
}

func TestUnknownIDsLeaveNoLocks(t *testing.T) {
	svc := NewService(Deps{Store: memory.NewContextStore()}, Options{})
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		id := domain.ContextID(fmt.Sprintf("missing-%d", i))
		if _, err := svc.Status(ctx, id); !errors.Is(err, domain.ErrUnknownContext) {
			t.Fatalf("Status: expected ErrUnknownContext, got %v", err)
		}
		if _, err := svc.SubmitMessage(ctx, id, "hello"); !errors.Is(err, domain.ErrUnknownContext) {
			t.Fatalf("SubmitMessage: expected ErrUnknownContext, got %v", err)
		}
		if err := svc.UpdateStrategy(ctx, id, "strategic-questioner"); !errors.Is(err, domain.ErrUnknownContext) {
			t.Fatalf("UpdateStrategy: expected ErrUnknownContext, got %v", err)
		}
		if err := svc.AddLeveragePoint(ctx, id, "competing_offer"); !errors.Is(err, domain.ErrUnknownContext) {
			t.Fatalf("AddLeveragePoint: expected ErrUnknownContext, got %v", err)
		}
	}

	if n := lockEntries(svc); n != 0 {
		t.Fatalf("expected no lock entries, got %d", n)
	}
}

func TestLocksReleasedAfterConcurrentCalls(t *testing.T) {
	svc := NewService(Deps{Store: memory.NewContextStore()}, Options{})
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateInput{CompanyName: "Acme", Position: "Engineer"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := svc.SubmitMessage(ctx, id, fmt.Sprintf("message %d", i)); err != nil {
				t.Errorf("SubmitMessage failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if n := lockEntries(svc); n != 0 {
		t.Fatalf("expected no lock entries, got %d", n)
	}
	snap, err := svc.Status(ctx, id)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if len(snap.History) != 40 {
		t.Fatalf("history length = %d, want 40", len(snap.History))
	}
}
