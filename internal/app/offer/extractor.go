// Package offer reads salary, benefit and equity mentions out of company messages.
//
// Extraction is best-effort. When a message quotes several figures the highest
// one is taken, since ranges are normally written low-to-high and the ceiling is
// the useful anchor.
package offer

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

// Benefit tags.
const (
	BenefitHealthInsurance         = "health_insurance"
	BenefitRetirement              = "retirement"
	BenefitEquity                  = "equity"
	BenefitRemoteWork              = "remote_work"
	BenefitPTO                     = "pto"
	BenefitBonus                   = "bonus"
	BenefitParentalLeave           = "parental_leave"
	BenefitProfessionalDevelopment = "professional_development"
	BenefitFlexibleSchedule        = "flexible_schedule"
)

type benefitRule struct {
	tag string
	re  *regexp.Regexp
}

var benefitRules = []benefitRule{
	{BenefitHealthInsurance, regexp.MustCompile(`(?i)\b(health(care)?\s+(insurance|coverage|plan)|medical|dental|vision)\b`)},
	{BenefitRetirement, regexp.MustCompile(`(?i)(\b401\s*\(?k\)?|\bretirement\b|\bpension\b)`)},
	{BenefitEquity, regexp.MustCompile(`(?i)\b(equity|stock\s+options?|rsus?|shares)\b`)},
	{BenefitRemoteWork, regexp.MustCompile(`(?i)\b(remote|work\s+from\s+home|wfh|hybrid)\b`)},
	{BenefitPTO, regexp.MustCompile(`(?i)\b(pto|paid\s+time\s+off|vacation|holidays?)\b`)},
	{BenefitBonus, regexp.MustCompile(`(?i)\bbonus(es)?\b`)},
	{BenefitParentalLeave, regexp.MustCompile(`(?i)\b(parental|maternity|paternity)\s+leave\b`)},
	{BenefitProfessionalDevelopment, regexp.MustCompile(`(?i)\b(professional\s+development|training\s+budget|learning\s+(budget|stipend)|education\s+stipend)\b`)},
	{BenefitFlexibleSchedule, regexp.MustCompile(`(?i)\b(flexible\s+(hours|schedule|working))\b`)},
}

var (
	dollarRe = regexp.MustCompile(`(?i)\$\s?(\d{1,3}(?:,\d{3})+|\d+)(\.\d{1,2})?\s?(k|thousand|m|mm|million)?\b`)
	usdRe    = regexp.MustCompile(`(?i)\b(\d{1,3}(?:,\d{3})+|\d+)(\.\d{1,2})?\s?(k|thousand|m|mm|million)?\s?(?:usd|dollars)\b`)

	equityPercentRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s?%\s?(?:of\s+)?(?:equity|stake|ownership)`)
	equitySharesRe  = regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})+|\d+)\s?(?:shares|stock\s+options|options|rsus)\b`)
)

// Extractor turns message text into an Offer.
type Extractor struct {
	now func() time.Time
}

func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// NewExtractorWithClock is used by tests to pin ExtractedAt.
func NewExtractorWithClock(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

// Extract returns nil when text carries no currency figure.
func (e *Extractor) Extract(text string) *domain.Offer {
	o := e.Terms(text)
	if o.Salary == nil {
		return nil
	}
	return o
}

// Terms reads every offer term in text. Unlike Extract it always returns an
// offer; Salary is nil when no figure is found.
func (e *Extractor) Terms(text string) *domain.Offer {
	o := &domain.Offer{
		Benefits:    Benefits(text),
		Equity:      Equity(text),
		RawText:     text,
		ExtractedAt: e.now(),
	}
	if salary, ok := HighestAmount(text); ok {
		o.Salary = &salary
	}
	return o
}

// maxAmount is the largest figure read as a salary.
const maxAmount = 1_000_000_000

// HighestAmount returns the largest positive currency figure in text. A "k" or
// "M" suffix scales the figure, decimals included ("$92.5k" is 92500).
func HighestAmount(text string) (int, bool) {
	best, found := 0, false
	consider := func(m []string) {
		if n, ok := amount(m[1], m[2], m[3]); ok && (!found || n > best) {
			best, found = n, true
		}
	}

	for _, m := range dollarRe.FindAllStringSubmatch(text, -1) {
		consider(m)
	}
	for _, m := range usdRe.FindAllStringSubmatch(text, -1) {
		consider(m)
	}
	return best, found
}

func amount(digits, fraction, suffix string) (int, bool) {
	whole, err := strconv.Atoi(strings.ReplaceAll(digits, ",", ""))
	if err != nil || whole > maxAmount {
		return 0, false
	}

	scale := 1
	switch strings.ToLower(suffix) {
	case "k", "thousand":
		scale = 1_000
	case "m", "mm", "million":
		scale = 1_000_000
	}
	if whole > maxAmount/scale {
		return 0, false
	}

	n := whole * scale
	if f := strings.TrimPrefix(fraction, "."); f != "" {
		cents, _ := strconv.Atoi(f)
		div := 10
		if len(f) == 2 {
			div = 100
		}
		n += cents * scale / div
	}
	if n <= 0 || n > maxAmount {
		return 0, false
	}
	return n, true
}

// Benefits returns the benefit tags mentioned in text, in vocabulary order.
func Benefits(text string) []string {
	out := []string{}
	for _, rule := range benefitRules {
		if rule.re.MatchString(text) {
			out = append(out, rule.tag)
		}
	}
	return out
}

// Equity returns the first concrete equity grant mentioned, if any.
func Equity(text string) string {
	if m := equityPercentRe.FindStringSubmatch(text); m != nil {
		return m[1] + "%"
	}
	if m := equitySharesRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[0])
	}
	return ""
}

// Merge combines an offer the caller states outright with the one detected in
// the message text. Stated fields win; detected ones fill the gaps and the
// benefit lists are unioned. Either side may be nil.
func Merge(stated, detected *domain.Offer) *domain.Offer {
	if stated == nil {
		return detected.Clone()
	}
	out := stated.Clone()
	if detected == nil {
		return out
	}
	if out.Salary == nil && detected.Salary != nil {
		v := *detected.Salary
		out.Salary = &v
	}
	if out.Equity == "" {
		out.Equity = detected.Equity
	}
	for _, b := range detected.Benefits {
		if !slices.Contains(out.Benefits, b) {
			out.Benefits = append(out.Benefits, b)
		}
	}
	if out.RawText == "" {
		out.RawText = detected.RawText
	}
	if out.ExtractedAt.IsZero() {
		out.ExtractedAt = detected.ExtractedAt
	}
	return out
}
