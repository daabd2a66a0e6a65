package rabbitmq_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/PabloGalante/neogiator-agent/internal/adapters/events/rabbitmq"
	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

func TestEncode(t *testing.T) {
	salary := 95000
	ev := domain.Event{
		ContextID: "ctx-1",
		Type:      domain.EventMessageProcessed,
		Status:    domain.StatusInProgress,
		Strategy:  domain.StrategyConfident,
		Offer:     &domain.Offer{Salary: &salary, Benefits: []string{"retirement"}},
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	msg, err := rabbitmq.Encode(ev)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if msg.ContentType != "application/json" || msg.Type != "message_processed" {
		t.Fatalf("unexpected headers: %q %q", msg.ContentType, msg.Type)
	}

	var body map[string]any
	if err := json.Unmarshal(msg.Body, &body); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if body["context_id"] != "ctx-1" || body["strategy"] != "confident-assertive" {
		t.Fatalf("unexpected body %v", body)
	}
	offer, _ := body["offer"].(map[string]any)
	if offer["salary"] != float64(95000) {
		t.Fatalf("offer salary = %v", offer["salary"])
	}
}

func TestRoutingKey(t *testing.T) {
	if got := rabbitmq.RoutingKey("abc"); got != "negotiation.abc" {
		t.Fatalf("RoutingKey = %q", got)
	}
}
