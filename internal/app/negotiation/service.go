// Package negotiation owns the lifecycle of negotiation contexts: creation,
// company messages, strategy changes and status snapshots.
package negotiation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PabloGalante/neogiator-agent/internal/app/composer"
	"github.com/PabloGalante/neogiator-agent/internal/app/leverage"
	"github.com/PabloGalante/neogiator-agent/internal/app/offer"
	"github.com/PabloGalante/neogiator-agent/internal/app/profile"
	"github.com/PabloGalante/neogiator-agent/internal/app/strategy"
	"github.com/PabloGalante/neogiator-agent/internal/domain"
	"github.com/PabloGalante/neogiator-agent/internal/observability"
	"github.com/google/uuid"
)

// Deps are the collaborators of a Service. Only Store is required.
type Deps struct {
	Store     domain.ContextStore
	Generator domain.TextGenerator
	Publisher domain.EventPublisher
	Resumes   domain.ResumeSource
}

type Options struct {
	GenerationTimeout time.Duration
	MaxReplyChars     int
}

type Service struct {
	store     domain.ContextStore
	publisher domain.EventPublisher
	resumes   domain.ResumeSource
	now       func() time.Time

	profiles *profile.Extractor
	offers   *offer.Extractor
	composer *composer.Composer

	locksMu sync.Mutex
	locks   map[domain.ContextID]*contextLock
	closed  atomic.Bool
}

// contextLock is shared by every caller holding or waiting on one id.
type contextLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(deps Deps, opts Options) *Service {
	s := &Service{
		store:     deps.Store,
		publisher: deps.Publisher,
		resumes:   deps.Resumes,
		now:       time.Now,
		locks:     make(map[domain.ContextID]*contextLock),
	}
	s.profiles = profile.NewExtractor(deps.Generator, opts.GenerationTimeout)
	s.offers = offer.NewExtractorWithClock(s.now)
	s.composer = composer.New(deps.Generator, composer.Options{
		MaxReplyChars: opts.MaxReplyChars,
		Timeout:       opts.GenerationTimeout,
	})
	return s
}

type CreateInput struct {
	CompanyName string
	Position    string
	Profile     domain.CandidateProfile
	Targets     domain.NegotiationTargets
}

// Create registers a new negotiation and returns its id. Leverage points are
// seeded from the profile and targets.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.ContextID, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	if err := validateCreate(in); err != nil {
		return "", err
	}

	now := s.now()
	p := in.Profile.Clone()
	p.Normalize()
	targets := in.Targets.Clone()

	nc := &domain.NegotiationContext{
		ID:             domain.ContextID(uuid.NewString()),
		CompanyName:    strings.TrimSpace(in.CompanyName),
		Position:       strings.TrimSpace(in.Position),
		Profile:        p,
		Targets:        targets,
		Strategy:       domain.DefaultStrategy,
		LeveragePoints: leverage.Analyze(p, targets),
		Status:         domain.StatusInitiated,
		History:        []domain.HistoryEntry{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ctx = observability.WithContextID(ctx, string(nc.ID))
	log := observability.LoggerFromContext(ctx).With(
		"company", nc.CompanyName,
		"position", nc.Position,
	)

	if err := s.store.CreateContext(nc); err != nil {
		log.Error("failed to create context", "error", err)
		return "", err
	}

	log.Info("negotiation created", "leverage_points", nc.LeveragePoints)
	s.publish(ctx, nc, domain.EventContextCreated)
	return nc.ID, nil
}

func validateCreate(in CreateInput) error {
	switch {
	case strings.TrimSpace(in.CompanyName) == "":
		return fmt.Errorf("%w: company_name is required", domain.ErrInvalidInput)
	case strings.TrimSpace(in.Position) == "":
		return fmt.Errorf("%w: position is required", domain.ErrInvalidInput)
	case in.Profile.YearsExperience < 0:
		return fmt.Errorf("%w: years_experience must not be negative", domain.ErrInvalidInput)
	case in.Targets.TargetSalary != nil && *in.Targets.TargetSalary <= 0:
		return fmt.Errorf("%w: target_salary must be positive", domain.ErrInvalidInput)
	}
	return nil
}

type SubmitMessageOutput struct {
	Reply      string
	TemplateID string
	Generated  bool
	Offer      *domain.Offer
	Status     domain.Status
}

// SubmitMessage records a company message, tracks any offer in it and returns
// the composed reply.
func (s *Service) SubmitMessage(ctx context.Context, id domain.ContextID, text string) (*SubmitMessageOutput, error) {
	return s.SubmitMessageWithOffer(ctx, id, text, nil)
}

// SubmitMessageWithOffer is SubmitMessage with offer details the caller already
// knows. stated is merged with whatever the text yields (see offer.Merge) and
// recorded even when the text carries no figure.
func (s *Service) SubmitMessageWithOffer(ctx context.Context, id domain.ContextID, text string, stated *domain.Offer) (*SubmitMessageOutput, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message text is required", domain.ErrInvalidInput)
	}
	if stated != nil && stated.Salary != nil && *stated.Salary <= 0 {
		return nil, fmt.Errorf("%w: offer salary must be positive", domain.ErrInvalidInput)
	}

	unlock := s.lock(id)
	defer unlock()

	nc, err := s.store.GetContext(id)
	if err != nil {
		return nil, err
	}

	ctx = observability.WithContextID(ctx, string(id))
	log := observability.LoggerFromContext(ctx).With("strategy", nc.Strategy)

	nc.Append(domain.HistoryEntry{
		Type:      domain.HistoryCompanyMessage,
		Timestamp: s.now(),
		Message:   text,
	})

	detected := s.offers.Extract(text)
	if stated != nil {
		detected = offer.Merge(stated, s.offers.Terms(text))
	}
	if detected != nil {
		nc.RecordOffer(detected)
		log.Info("offer recorded",
			"salary", detected.Salary,
			"benefits", detected.Benefits,
			"stated", stated != nil)
	}

	if nc.Status == domain.StatusInitiated {
		nc.Status = domain.StatusInProgress
	}

	reply := s.composer.Compose(ctx, nc, text)
	nc.Append(domain.HistoryEntry{
		Type:       domain.HistoryBotResponse,
		Timestamp:  s.now(),
		Message:    reply.Text,
		TemplateID: reply.TemplateID,
	})
	nc.UpdatedAt = s.now()

	if err := s.store.UpdateContext(nc); err != nil {
		log.Error("failed to update context", "error", err)
		return nil, err
	}

	log.Info("message processed",
		"template_id", reply.TemplateID,
		"generated", reply.Generated,
		"history_len", len(nc.History))
	s.publish(ctx, nc, domain.EventMessageProcessed)

	return &SubmitMessageOutput{
		Reply:      reply.Text,
		TemplateID: reply.TemplateID,
		Generated:  reply.Generated,
		Offer:      detected.Clone(),
		Status:     nc.Status,
	}, nil
}

// UpdateStrategy switches the strategy used for later replies. An invalid tag
// leaves the context untouched.
func (s *Service) UpdateStrategy(ctx context.Context, id domain.ContextID, tag string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	unlock := s.lock(id)
	defer unlock()

	nc, err := s.store.GetContext(id)
	if err != nil {
		return err
	}
	st, err := domain.ParseStrategy(tag)
	if err != nil {
		return err
	}

	now := s.now()
	nc.Strategy = st
	nc.Append(domain.HistoryEntry{
		Type:      domain.HistoryStrategyChange,
		Timestamp: now,
		Strategy:  st,
	})
	nc.UpdatedAt = now

	ctx = observability.WithContextID(ctx, string(id))
	if err := s.store.UpdateContext(nc); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to update context", "error", err)
		return err
	}

	observability.LoggerFromContext(ctx).Info("strategy changed", "strategy", st)
	s.publish(ctx, nc, domain.EventStrategyChanged)
	return nil
}

// AddLeveragePoint unions tag into the context's leverage points. Adding a tag
// that is already present is a no-op.
func (s *Service) AddLeveragePoint(ctx context.Context, id domain.ContextID, tag string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return fmt.Errorf("%w: leverage point is required", domain.ErrInvalidInput)
	}

	unlock := s.lock(id)
	defer unlock()

	nc, err := s.store.GetContext(id)
	if err != nil {
		return err
	}
	if !nc.AddLeveragePoint(tag) {
		return nil
	}
	nc.UpdatedAt = s.now()

	if err := s.store.UpdateContext(nc); err != nil {
		return err
	}
	observability.LoggerFromContext(observability.WithContextID(ctx, string(id))).
		Info("leverage point added", "tag", tag)
	return nil
}

// Status returns a copy of every field of the context.
func (s *Service) Status(ctx context.Context, id domain.ContextID) (domain.Snapshot, error) {
	if err := s.checkOpen(); err != nil {
		return domain.Snapshot{}, err
	}

	unlock := s.lock(id)
	defer unlock()

	nc, err := s.store.GetContext(id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return nc.Snapshot(), nil
}

// ListStrategies returns the four strategies in catalog order.
func (s *Service) ListStrategies() []strategy.Info {
	return strategy.List()
}

// ExtractProfile parses an uploaded resume. It fails only on an unsupported kind.
func (s *Service) ExtractProfile(ctx context.Context, data []byte, kind string) (domain.CandidateProfile, error) {
	return s.profiles.Extract(ctx, data, kind)
}

// ExtractStoredProfile parses a resume previously uploaded to object storage.
func (s *Service) ExtractStoredProfile(ctx context.Context, key, kind string) (domain.CandidateProfile, error) {
	if s.resumes == nil {
		return domain.CandidateProfile{}, fmt.Errorf("%w: no resume storage configured", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(key) == "" {
		return domain.CandidateProfile{}, fmt.Errorf("%w: object_key is required", domain.ErrInvalidInput)
	}
	if kind == "" {
		fk, err := profile.KindFromFilename(key)
		if err != nil {
			return domain.CandidateProfile{}, err
		}
		kind = string(fk)
	}
	if _, err := profile.ParseFileKind(kind); err != nil {
		return domain.CandidateProfile{}, err
	}

	data, err := s.resumes.FetchResume(ctx, key)
	if err != nil {
		return domain.CandidateProfile{}, fmt.Errorf("fetch resume %q: %w", key, err)
	}
	return s.profiles.Extract(ctx, data, kind)
}

// Shutdown closes the store and the publisher. Every later operation fails
// with domain.ErrStoreClosed.
func (s *Service) Shutdown(ctx context.Context) error {
	if s.closed.Swap(true) {
		return nil
	}

	var errs []error
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}

	observability.LoggerFromContext(ctx).Info("negotiation service shut down")
	return errors.Join(errs...)
}

func (s *Service) checkOpen() error {
	if s.closed.Load() {
		return domain.ErrStoreClosed
	}
	return nil
}

// lock serializes operations on one context id. The entry is dropped when
// its last holder unlocks, so ids that were never created leave nothing behind.
func (s *Service) lock(id domain.ContextID) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &contextLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}

func (s *Service) publish(ctx context.Context, nc *domain.NegotiationContext, typ domain.EventType) {
	if s.publisher == nil {
		return
	}
	ev := domain.Event{
		ContextID: nc.ID,
		Type:      typ,
		Status:    nc.Status,
		Strategy:  nc.Strategy,
		Offer:     nc.CurrentOffer.Clone(),
		Timestamp: s.now(),
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		observability.LoggerFromContext(ctx).Warn("failed to publish negotiation update",
			"event", typ, "error", err)
	}
}
