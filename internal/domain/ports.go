package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Attachment is binary input passed alongside a prompt (e.g. a scanned resume).
type Attachment struct {
	MIMEType string
	Data     []byte
}

// GenerationRequest is everything a generator needs for one call.
type GenerationRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Timeout     time.Duration
	Temperature float32
	Attachments []Attachment
}

// TextGenerator is the external generative model.
type TextGenerator interface {
	GenerateText(ctx context.Context, req GenerationRequest) (string, error)
}

// Generate calls gen under req.Timeout. Every failure, including a nil generator,
// an expired deadline and an empty answer, comes back wrapping ErrGenerationUnavailable.
func Generate(ctx context.Context, gen TextGenerator, req GenerationRequest) (string, error) {
	if gen == nil {
		return "", fmt.Errorf("%w: no generator configured", ErrGenerationUnavailable)
	}
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	text, err := gen.GenerateText(ctx, req)
	if err != nil {
		if errors.Is(err, ErrGenerationUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", ErrGenerationUnavailable)
	}
	return text, nil
}

// ContextStore owns the id -> context mapping for the life of the process.
type ContextStore interface {
	CreateContext(c *NegotiationContext) error
	GetContext(id ContextID) (*NegotiationContext, error)
	UpdateContext(c *NegotiationContext) error
	Close() error
}

// EventType names an update published about a negotiation.
type EventType string

const (
	EventContextCreated   EventType = "context_created"
	EventMessageProcessed EventType = "message_processed"
	EventStrategyChanged  EventType = "strategy_changed"
)

type Event struct {
	ContextID ContextID `json:"context_id"`
	Type      EventType `json:"type"`
	Status    Status    `json:"status"`
	Strategy  Strategy  `json:"strategy"`
	Offer     *Offer    `json:"offer,omitempty"`
	Timestamp Timestamp `json:"timestamp"`
}

// EventPublisher fans negotiation updates out to other processes.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// ResumeSource fetches uploaded resume bytes by object key.
type ResumeSource interface {
	FetchResume(ctx context.Context, key string) ([]byte, error)
}
