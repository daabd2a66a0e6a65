// Package profile turns an uploaded resume into a CandidateProfile.
//
// The generative model is tried first. Whenever it is missing, slow, failing or
// answers with something that is not a profile, a regex pass over the text is
// used instead, so extraction only ever fails on an unsupported file kind.
package profile

import (
	"context"
	"strings"
	"time"

	"github.com/PabloGalante/neogiator-agent/internal/domain"
	"github.com/PabloGalante/neogiator-agent/internal/observability"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultMaxTokens = 2000
	maxPromptChars   = 30000
)

type Extractor struct {
	gen       domain.TextGenerator
	timeout   time.Duration
	maxTokens int
}

// NewExtractor builds an extractor. gen may be nil, in which case every
// extraction takes the fallback path.
func NewExtractor(gen domain.TextGenerator, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Extractor{
		gen:       gen,
		timeout:   timeout,
		maxTokens: defaultMaxTokens,
	}
}

// Extract parses data declared as kind. It fails only with domain.ErrUnsupportedFormat.
func (e *Extractor) Extract(ctx context.Context, data []byte, kind string) (domain.CandidateProfile, error) {
	fk, err := ParseFileKind(kind)
	if err != nil {
		return domain.CandidateProfile{}, err
	}

	log := observability.LoggerFromContext(ctx).With(
		"component", "profile_extractor",
		"kind", fk,
		"size_bytes", len(data),
	)

	text, err := ExtractText(fk, data)
	if err != nil {
		log.Warn("text extraction failed, continuing with empty text", "error", err)
		text = ""
	}
	if len(text) > maxPromptChars {
		text = strings.ToValidUTF8(text[:maxPromptChars], "")
	}

	req, ok := e.request(fk, data, text)
	if !ok {
		log.Info("nothing to send to generator, using fallback")
		return Fallback(text), nil
	}

	start := time.Now()
	answer, err := domain.Generate(ctx, e.gen, req)
	if err != nil {
		log.Warn("generation unavailable, using fallback", "error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return Fallback(text), nil
	}

	p, err := ParseModelProfile(answer)
	if err != nil {
		log.Warn("model returned an invalid profile, using fallback", "error", err)
		return Fallback(text), nil
	}

	log.Info("profile extracted",
		"duration_ms", time.Since(start).Milliseconds(),
		"skills_count", len(p.Skills),
		"years_experience", p.YearsExperience)
	return p, nil
}

func (e *Extractor) request(kind FileKind, data []byte, text string) (domain.GenerationRequest, bool) {
	req := domain.GenerationRequest{
		System:      extractionSystemPrompt,
		MaxTokens:   e.maxTokens,
		Timeout:     e.timeout,
		Temperature: 0.1,
	}

	if kind == KindImage {
		if len(data) == 0 {
			return req, false
		}
		req.Prompt = buildImagePrompt()
		req.Attachments = []domain.Attachment{{MIMEType: imageMIME(data), Data: data}}
		return req, true
	}

	if text == "" {
		return req, false
	}
	req.Prompt = buildExtractionPrompt(text)
	return req, true
}
