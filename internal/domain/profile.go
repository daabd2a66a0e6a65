package domain

import "slices"

// CandidateProfile is the structured view of a resume.
// Skills, Certifications and IndustryAwards are sets: duplicates are dropped by Normalize.
type CandidateProfile struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	YearsExperience int    `json:"years_experience"`
	EducationLevel  string `json:"education_level"`
	Industry        string `json:"industry"`

	Skills               []string `json:"skills"`
	Certifications       []string `json:"certifications"`
	Achievements         []string `json:"achievements"`
	LeadershipExperience bool     `json:"leadership_experience"`
	IndustryAwards       []string `json:"industry_awards"`
}

// Normalize replaces nil slices with empty ones and de-duplicates the set fields.
func (p *CandidateProfile) Normalize() {
	p.Skills = UniqueStrings(p.Skills)
	p.Certifications = UniqueStrings(p.Certifications)
	p.IndustryAwards = UniqueStrings(p.IndustryAwards)
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
}

func (p CandidateProfile) Clone() CandidateProfile {
	out := p
	out.Skills = slices.Clone(p.Skills)
	out.Certifications = slices.Clone(p.Certifications)
	out.Achievements = slices.Clone(p.Achievements)
	out.IndustryAwards = slices.Clone(p.IndustryAwards)
	return out
}

// NegotiationTargets are what the candidate wants out of the negotiation.
type NegotiationTargets struct {
	TargetSalary   *int     `json:"target_salary,omitempty"`
	TargetBenefits []string `json:"target_benefits"`
	DealBreakers   []string `json:"deal_breakers"`
}

func (t NegotiationTargets) Clone() NegotiationTargets {
	out := NegotiationTargets{
		TargetBenefits: UniqueStrings(t.TargetBenefits),
		DealBreakers:   UniqueStrings(t.DealBreakers),
	}
	if t.TargetSalary != nil {
		v := *t.TargetSalary
		out.TargetSalary = &v
	}
	return out
}

// UniqueStrings returns the non-empty values of in, first occurrence wins.
func UniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
