package domain

import (
	"slices"
	"sort"
)

// Offer is what the offer extractor could read out of one company message.
type Offer struct {
	Salary      *int      `json:"salary,omitempty"`
	Benefits    []string  `json:"benefits"`
	Equity      string    `json:"equity,omitempty"`
	RawText     string    `json:"raw_text"`
	ExtractedAt Timestamp `json:"extracted_at"`
}

func (o *Offer) Clone() *Offer {
	if o == nil {
		return nil
	}
	out := *o
	out.Benefits = slices.Clone(o.Benefits)
	if o.Salary != nil {
		v := *o.Salary
		out.Salary = &v
	}
	return &out
}

// HistoryEntry is one line of the negotiation transcript. Exactly one payload
// field is set, depending on Type.
type HistoryEntry struct {
	Type      HistoryType `json:"type"`
	Timestamp Timestamp   `json:"timestamp"`

	Message  string   `json:"message,omitempty"`
	Strategy Strategy `json:"strategy,omitempty"`
	Offer    *Offer   `json:"offer,omitempty"`

	// TemplateID records which template a bot_response came from.
	TemplateID string `json:"template_id,omitempty"`
}

// NegotiationContext is one tracked negotiation with one company and position.
type NegotiationContext struct {
	ID          ContextID
	CompanyName string
	Position    string
	Profile     CandidateProfile
	Targets     NegotiationTargets

	Strategy       Strategy
	LeveragePoints []string
	CurrentOffer   *Offer
	Status         Status
	History        []HistoryEntry

	CreatedAt Timestamp
	UpdatedAt Timestamp
}

// AddLeveragePoint unions tag into the leverage points. It reports whether the set grew.
func (c *NegotiationContext) AddLeveragePoint(tag string) bool {
	if tag == "" || slices.Contains(c.LeveragePoints, tag) {
		return false
	}
	c.LeveragePoints = append(c.LeveragePoints, tag)
	sort.Strings(c.LeveragePoints)
	return true
}

// RecordOffer replaces the current offer and appends the matching history entry,
// keeping CurrentOffer equal to the latest offer_detected payload.
func (c *NegotiationContext) RecordOffer(o *Offer) {
	c.CurrentOffer = o
	c.History = append(c.History, HistoryEntry{
		Type:      HistoryOfferDetected,
		Timestamp: o.ExtractedAt,
		Offer:     o.Clone(),
	})
}

func (c *NegotiationContext) Append(e HistoryEntry) {
	c.History = append(c.History, e)
}

// Snapshot is a read-only copy of a context for display.
type Snapshot struct {
	ID             ContextID          `json:"id"`
	CompanyName    string             `json:"company_name"`
	Position       string             `json:"position"`
	Profile        CandidateProfile   `json:"profile"`
	Targets        NegotiationTargets `json:"targets"`
	Strategy       Strategy           `json:"strategy"`
	LeveragePoints []string           `json:"leverage_points"`
	CurrentOffer   *Offer             `json:"current_offer,omitempty"`
	Status         Status             `json:"status"`
	History        []HistoryEntry     `json:"history"`
	CreatedAt      Timestamp          `json:"created_at"`
	UpdatedAt      Timestamp          `json:"updated_at"`
}

// Clone deep-copies the context so a store never shares memory with its callers.
func (c *NegotiationContext) Clone() *NegotiationContext {
	out := *c
	out.Profile = c.Profile.Clone()
	out.Targets = c.Targets.Clone()
	out.LeveragePoints = slices.Clone(c.LeveragePoints)
	out.CurrentOffer = c.CurrentOffer.Clone()
	out.History = cloneHistory(c.History)
	return &out
}

func cloneHistory(in []HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, len(in))
	for i, e := range in {
		e.Offer = e.Offer.Clone()
		out[i] = e
	}
	return out
}

func (c *NegotiationContext) Snapshot() Snapshot {
	history := cloneHistory(c.History)
	return Snapshot{
		ID:             c.ID,
		CompanyName:    c.CompanyName,
		Position:       c.Position,
		Profile:        c.Profile.Clone(),
		Targets:        c.Targets.Clone(),
		Strategy:       c.Strategy,
		LeveragePoints: slices.Clone(c.LeveragePoints),
		CurrentOffer:   c.CurrentOffer.Clone(),
		Status:         c.Status,
		History:        history,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
