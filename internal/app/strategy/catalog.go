// Package strategy holds the fixed catalog of negotiation response templates.
package strategy

import (
	"fmt"
	"strings"

	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

// Template variables the composer knows how to bind.
const (
	VarCompanyName     = "company_name"
	VarPosition        = "position"
	VarYearsExperience = "years_experience"
	VarIndustry        = "industry"
	VarAchievement     = "achievement"
	VarSkillArea       = "skill_area"
	VarTargetSalary    = "target_salary"
	VarOfferSalary     = "offer_salary"
	VarSalaryGap       = "salary_gap"
	VarBenefitGap      = "benefit_gap"
	VarLeveragePoint   = "leverage_point"
	VarEquity          = "equity"
)

// ResponseTemplate is a tone-specific reply with {name} placeholders.
type ResponseTemplate struct {
	ID                 string
	Strategy           domain.Strategy
	Tone               domain.Tone
	Text               string
	Variables          []string
	EffectivenessScore float64
}

// Render substitutes every {name} placeholder that has a binding.
func (t ResponseTemplate) Render(vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(t.Text)
}

// Satisfied reports whether every required variable is bound.
func (t ResponseTemplate) Satisfied(vars map[string]string) bool {
	for _, name := range t.Variables {
		if _, ok := vars[name]; !ok {
			return false
		}
	}
	return true
}

// Info describes a strategy for pickers.
type Info struct {
	Tag         domain.Strategy `json:"tag"`
	DisplayName string          `json:"display_name"`
}

// List returns the four strategies in catalog order.
func List() []Info {
	out := make([]Info, 0, 4)
	for _, s := range domain.Strategies() {
		out = append(out, Info{Tag: s, DisplayName: s.DisplayName()})
	}
	return out
}

// TemplatesFor returns the templates of s in catalog order.
func TemplatesFor(s domain.Strategy) ([]ResponseTemplate, error) {
	var templates []ResponseTemplate
	switch s {
	case domain.StrategyPassiveAggressive:
		templates = passiveAggressiveTemplates
	case domain.StrategyConfident:
		templates = confidentTemplates
	case domain.StrategyCollaborative:
		templates = collaborativeTemplates
	case domain.StrategyQuestioner:
		templates = questionerTemplates
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStrategy, s)
	}
	out := make([]ResponseTemplate, len(templates))
	copy(out, templates)
	return out, nil
}

// BestTemplate picks the highest scoring template of s whose variables are all
// available. Ties keep catalog order.
func BestTemplate(s domain.Strategy, available map[string]string) (ResponseTemplate, error) {
	templates, err := TemplatesFor(s)
	if err != nil {
		return ResponseTemplate{}, err
	}

	best := -1
	for i, t := range templates {
		if !t.Satisfied(available) {
			continue
		}
		if best < 0 || t.EffectivenessScore > templates[best].EffectivenessScore {
			best = i
		}
	}
	if best < 0 {
		return ResponseTemplate{}, fmt.Errorf("%w for strategy %s", domain.ErrNoApplicableTemplate, s)
	}
	return templates[best], nil
}
