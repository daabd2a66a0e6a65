package domain

import (
	"fmt"
	"time"
)

type ContextID string

type Timestamp = time.Time

// Status is the lifecycle state of a negotiation.
type Status string

const (
	StatusInitiated  Status = "initiated"
	StatusInProgress Status = "in_progress"

	// Reserved. Nothing transitions into these yet.
	StatusAgreed    Status = "agreed"
	StatusStalled   Status = "stalled"
	StatusWithdrawn Status = "withdrawn"
)

// Strategy is the rhetorical stance used to pick templates and tone.
type Strategy string

const (
	StrategyPassiveAggressive Strategy = "passive-aggressive-professional"
	StrategyConfident         Strategy = "confident-assertive"
	StrategyCollaborative     Strategy = "collaborative-problem-solver"
	StrategyQuestioner        Strategy = "strategic-questioner"
)

// DefaultStrategy is assigned to every new negotiation.
const DefaultStrategy = StrategyPassiveAggressive

// Strategies returns every strategy in catalog order.
func Strategies() []Strategy {
	return []Strategy{
		StrategyPassiveAggressive,
		StrategyConfident,
		StrategyCollaborative,
		StrategyQuestioner,
	}
}

// ParseStrategy accepts exactly one of the four strategy tags.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
}

func (s Strategy) Valid() bool {
	_, err := ParseStrategy(string(s))
	return err == nil
}

func (s Strategy) DisplayName() string {
	switch s {
	case StrategyPassiveAggressive:
		return "Passive-Aggressive Professional"
	case StrategyConfident:
		return "Confident & Assertive"
	case StrategyCollaborative:
		return "Collaborative Problem Solver"
	case StrategyQuestioner:
		return "Strategic Questioner"
	default:
		return string(s)
	}
}

// Tone is the register a response template is written in.
type Tone string

const (
	TonePoliteButFirm              Tone = "polite_but_firm"
	ToneProfessionallyDisappointed Tone = "professionally_disappointed"
	ToneStrategicallyCurious       Tone = "strategically_curious"
	ToneConfidentlyAssertive       Tone = "confidently_assertive"
)

// HistoryType tags one entry of a negotiation transcript.
type HistoryType string

const (
	HistoryCompanyMessage HistoryType = "company_message"
	HistoryBotResponse    HistoryType = "bot_response"
	HistoryStrategyChange HistoryType = "strategy_change"
	HistoryOfferDetected  HistoryType = "offer_detected"
)
