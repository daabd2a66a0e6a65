package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// CleanJSON strips markdown code fences that models like to wrap JSON in.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// flexInt accepts 7, 7.5, "7" and "7+".
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	s = strings.TrimSuffix(strings.TrimSpace(s), "+")
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("years_experience %q: %w", s, err)
	}
	*f = flexInt(n)
	return nil
}

type profilePayload struct {
	Name                 string   `json:"name"`
	Email                string   `json:"email"`
	Phone                string   `json:"phone"`
	YearsExperience      flexInt  `json:"years_experience"`
	EducationLevel       string   `json:"education_level"`
	Industry             string   `json:"industry"`
	Skills               []string `json:"skills"`
	Certifications       []string `json:"certifications"`
	Achievements         []string `json:"achievements"`
	LeadershipExperience bool     `json:"leadership_experience"`
	IndustryAwards       []string `json:"industry_awards"`
}

var errInvalidProfile = errors.New("invalid profile structure")

// ParseModelProfile decodes a model answer into a profile. Missing fields come
// back empty; a negative experience count is rejected.
func ParseModelProfile(raw string) (domain.CandidateProfile, error) {
	var payload profilePayload

	cleaned := CleanJSON(raw)
	if !strings.HasPrefix(cleaned, "{") {
		cleaned = jsonObjectRe.FindString(cleaned)
		if cleaned == "" {
			return domain.CandidateProfile{}, fmt.Errorf("%w: no JSON object in answer", errInvalidProfile)
		}
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return domain.CandidateProfile{}, fmt.Errorf("%w: %v", errInvalidProfile, err)
	}

	if payload.YearsExperience < 0 {
		return domain.CandidateProfile{}, fmt.Errorf("%w: negative years_experience", errInvalidProfile)
	}

	p := domain.CandidateProfile{
		Name:                 strings.TrimSpace(payload.Name),
		Email:                strings.TrimSpace(payload.Email),
		Phone:                strings.TrimSpace(payload.Phone),
		YearsExperience:      int(payload.YearsExperience),
		EducationLevel:       strings.TrimSpace(payload.EducationLevel),
		Industry:             strings.TrimSpace(payload.Industry),
		Skills:               payload.Skills,
		Certifications:       payload.Certifications,
		Achievements:         domain.UniqueStrings(payload.Achievements),
		LeadershipExperience: payload.LeadershipExperience,
		IndustryAwards:       payload.IndustryAwards,
	}
	p.Normalize()
	return p, nil
}
