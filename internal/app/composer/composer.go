// Package composer writes the candidate's reply to a company message.
//
// A template is always rendered first. When a generator is configured the
// rendered draft is handed to it for a rewrite, and the rewrite replaces the
// draft only if it comes back non-empty and within the length bound. Any
// generation problem leaves the draft in place; Compose never fails.
package composer

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PabloGalante/neogiator-agent/internal/app/strategy"
	"github.com/PabloGalante/neogiator-agent/internal/domain"
	"github.com/PabloGalante/neogiator-agent/internal/observability"
)

const (
	DefaultMaxReplyChars = 2000
	defaultTimeout       = 20 * time.Second
	defaultMaxTokens     = 800
)

// genericReply is used when no template of the strategy can be bound.
const genericReply = `Thank you for the update. I'd like to take some time to review the details carefully, and I'll come back to you shortly with my thoughts on the package.`

type Options struct {
	MaxReplyChars int
	Timeout       time.Duration
	MaxTokens     int
}

type Composer struct {
	gen       domain.TextGenerator
	maxChars  int
	timeout   time.Duration
	maxTokens int
}

// New builds a composer. gen may be nil for template-only replies.
func New(gen domain.TextGenerator, opts Options) *Composer {
	if opts.MaxReplyChars <= 0 {
		opts.MaxReplyChars = DefaultMaxReplyChars
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	return &Composer{
		gen:       gen,
		maxChars:  opts.MaxReplyChars,
		timeout:   opts.Timeout,
		maxTokens: opts.MaxTokens,
	}
}

// Reply is a composed answer and where it came from.
type Reply struct {
	Text       string
	TemplateID string
	Generated  bool
}

// Compose produces the reply to message for the context's current strategy.
func (c *Composer) Compose(ctx context.Context, nc *domain.NegotiationContext, message string) Reply {
	log := observability.LoggerFromContext(ctx).With(
		"component", "composer",
		"strategy", nc.Strategy,
	)

	vars := Bindings(nc)
	draft := TemplateOnly(nc.Strategy, vars)
	if draft.TemplateID == "" {
		log.Warn("no applicable template, using generic reply")
	}

	if c.gen == nil {
		return draft
	}

	prompt := BuildPrompt(nc, message, draft.Text, vars)
	start := time.Now()
	text, err := domain.Generate(ctx, c.gen, domain.GenerationRequest{
		System:      prompt.System,
		Prompt:      prompt.User,
		MaxTokens:   c.maxTokens,
		Timeout:     c.timeout,
		Temperature: 0.7,
	})
	if err != nil {
		log.Warn("generation unavailable, using template reply",
			"error", err,
			"template_id", draft.TemplateID,
			"duration_ms", time.Since(start).Milliseconds())
		return draft
	}

	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n > c.maxChars {
		log.Warn("generated reply too long, using template reply", "chars", n, "max_chars", c.maxChars)
		return draft
	}

	log.Info("reply generated",
		"template_id", draft.TemplateID,
		"duration_ms", time.Since(start).Milliseconds())
	return Reply{Text: text, TemplateID: draft.TemplateID, Generated: true}
}

// TemplateOnly renders the best template of s for vars. It is the
// deterministic fallback of Compose.
func TemplateOnly(s domain.Strategy, vars map[string]string) Reply {
	tmpl, err := strategy.BestTemplate(s, vars)
	if err != nil {
		if !errors.Is(err, domain.ErrNoApplicableTemplate) {
			observability.Logger().Error("template lookup failed", "strategy", s, "error", err)
		}
		return Reply{Text: genericReply}
	}
	return Reply{Text: tmpl.Render(vars), TemplateID: tmpl.ID}
}
