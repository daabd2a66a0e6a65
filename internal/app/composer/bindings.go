package composer

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PabloGalante/neogiator-agent/internal/app/strategy"
	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

// Bindings collects the template variables that the context can justify.
// A variable is left out, rather than bound empty, when there is nothing true
// to say; template selection relies on that.
func Bindings(c *domain.NegotiationContext) map[string]string {
	vars := map[string]string{
		strategy.VarCompanyName: c.CompanyName,
		strategy.VarPosition:    c.Position,
	}

	p := c.Profile
	if p.YearsExperience > 0 {
		vars[strategy.VarYearsExperience] = strconv.Itoa(p.YearsExperience)
	}
	if p.Industry != "" {
		vars[strategy.VarIndustry] = p.Industry
	}
	if len(p.Achievements) > 0 {
		vars[strategy.VarAchievement] = lowerFirst(strings.TrimRight(p.Achievements[0], ". "))
	}
	if len(p.Skills) > 0 {
		vars[strategy.VarSkillArea] = p.Skills[0]
	}
	if len(c.LeveragePoints) > 0 {
		vars[strategy.VarLeveragePoint] = humanize(c.LeveragePoints[0])
	}

	target := c.Targets.TargetSalary
	if target != nil {
		vars[strategy.VarTargetSalary] = FormatUSD(*target)
	}

	offer := c.CurrentOffer
	if offer == nil {
		return vars
	}
	if offer.Salary != nil {
		vars[strategy.VarOfferSalary] = FormatUSD(*offer.Salary)
		if target != nil && *offer.Salary < *target {
			vars[strategy.VarSalaryGap] = FormatUSD(*target - *offer.Salary)
		}
	}
	if offer.Equity != "" {
		vars[strategy.VarEquity] = offer.Equity
	}
	if gap, ok := missingBenefit(c.Targets.TargetBenefits, offer.Benefits); ok {
		vars[strategy.VarBenefitGap] = gap
	}
	return vars
}

// missingBenefit returns the first wanted benefit the offer does not mention.
func missingBenefit(wanted, offered []string) (string, bool) {
	have := make([]string, 0, len(offered))
	for _, b := range offered {
		have = append(have, benefitKey(b))
	}
	for _, w := range wanted {
		if w == "" || slices.Contains(have, benefitKey(w)) {
			continue
		}
		return humanize(w), true
	}
	return "", false
}

func benefitKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

func humanize(tag string) string {
	return strings.ReplaceAll(tag, "_", " ")
}

func lowerFirst(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	// Keep acronyms like "AWS" and a leading "I " intact.
	if size < len(s) {
		second, _ := utf8.DecodeRuneInString(s[size:])
		if !unicode.IsLower(first) && !unicode.IsLower(second) {
			return s
		}
	}
	return string(unicode.ToLower(first)) + s[size:]
}
