// Package leverage derives negotiating ammunition from a candidate profile.
package leverage

import (
	"sort"
	"strings"

	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

// Leverage tags the analyzer can produce.
const (
	ExtensiveExperience      = "extensive_experience"
	SeniorExpertise          = "senior_expertise"
	LeadershipTrackRecord    = "leadership_track_record"
	ProvenTrackRecord        = "proven_track_record"
	SpecializedCertification = "specialized_certification"
	IndustryRecognition      = "industry_recognition"
	AdvancedEducation        = "advanced_education"
)

// advancedEducation holds lower-cased education levels that count as advanced.
var advancedEducation = map[string]struct{}{
	"masters":   {},
	"master's":  {},
	"master":    {},
	"mba":       {},
	"msc":       {},
	"phd":       {},
	"ph.d":      {},
	"ph.d.":     {},
	"doctorate": {},
}

// Tags lists every tag Analyze may return.
func Tags() []string {
	return []string{
		AdvancedEducation,
		ExtensiveExperience,
		IndustryRecognition,
		LeadershipTrackRecord,
		ProvenTrackRecord,
		SeniorExpertise,
		SpecializedCertification,
	}
}

// Analyze returns the sorted set of leverage tags supported by profile. The
// targets parameter is reserved for rules that weigh the ask; none read it yet.
func Analyze(profile domain.CandidateProfile, _ domain.NegotiationTargets) []string {
	tags := []string{}
	if profile.YearsExperience >= 5 {
		tags = append(tags, ExtensiveExperience)
	}
	if profile.YearsExperience >= 10 {
		tags = append(tags, SeniorExpertise)
	}
	if profile.LeadershipExperience {
		tags = append(tags, LeadershipTrackRecord)
	}
	if len(profile.Achievements) > 0 {
		tags = append(tags, ProvenTrackRecord)
	}
	if len(profile.Certifications) > 0 {
		tags = append(tags, SpecializedCertification)
	}
	if len(profile.IndustryAwards) > 0 {
		tags = append(tags, IndustryRecognition)
	}
	if IsAdvancedEducation(profile.EducationLevel) {
		tags = append(tags, AdvancedEducation)
	}

	sort.Strings(tags)
	return tags
}

func IsAdvancedEducation(level string) bool {
	_, ok := advancedEducation[strings.ToLower(strings.TrimSpace(level))]
	return ok
}
