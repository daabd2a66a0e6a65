package profile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

const maxFallbackSkills = 10

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe = regexp.MustCompile(`(\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)

	experienceRes = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s*of\s*(?:professional\s+)?experience`),
		regexp.MustCompile(`experience:\s*(\d+)`),
		regexp.MustCompile(`(\d+)\+?\s*years?\s*in\b`),
	}

	phdRe       = regexp.MustCompile(`\b(ph\.?d\.?|doctorate)`)
	mastersRe   = regexp.MustCompile(`\b(master'?s?|mba|msc|m\.sc\.?)\b`)
	bachelorsRe = regexp.MustCompile(`\b(bachelor'?s?|b\.?s\.?c?|b\.a)\b`)
	associateRe = regexp.MustCompile(`\b(associate'?s?\s+degree|diploma)\b`)
)

// skillVocabulary maps a lower-case keyword to its display form.
var skillVocabulary = []struct{ keyword, display string }{
	{"python", "Python"},
	{"java", "Java"},
	{"javascript", "JavaScript"},
	{"typescript", "TypeScript"},
	{"golang", "Go"},
	{"react", "React"},
	{"angular", "Angular"},
	{"vue", "Vue"},
	{"node.js", "Node.js"},
	{"sql", "SQL"},
	{"mongodb", "MongoDB"},
	{"postgresql", "PostgreSQL"},
	{"aws", "AWS"},
	{"azure", "Azure"},
	{"docker", "Docker"},
	{"kubernetes", "Kubernetes"},
	{"git", "Git"},
	{"agile", "Agile"},
	{"scrum", "Scrum"},
	{"project management", "Project Management"},
	{"product management", "Product Management"},
	{"leadership", "Leadership"},
	{"communication", "Communication"},
	{"data analysis", "Data Analysis"},
	{"machine learning", "Machine Learning"},
	{"artificial intelligence", "Artificial Intelligence"},
	{"blockchain", "Blockchain"},
	{"cybersecurity", "Cybersecurity"},
	{"devops", "DevOps"},
	{"frontend", "Frontend"},
	{"backend", "Backend"},
	{"full stack", "Full Stack"},
}

var industryKeywords = []struct {
	industry string
	keywords []string
}{
	{"finance", []string{"finance", "banking", "investment", "financial"}},
	{"healthcare", []string{"healthcare", "medical", "pharmaceutical", "hospital"}},
	{"education", []string{"education", "teaching", "academic", "university"}},
	{"consulting", []string{"consulting", "advisory"}},
	{"marketing", []string{"marketing", "advertising", "brand"}},
	{"retail", []string{"retail", "e-commerce", "ecommerce"}},
	{"technology", []string{"software", "engineering", "developer", "saas", "cloud"}},
}

// Fallback recovers what it can from text with fixed patterns. It never fails;
// anything it cannot find stays at its zero value.
func Fallback(text string) domain.CandidateProfile {
	lower := strings.ToLower(text)

	p := domain.CandidateProfile{
		Name:            firstLine(text),
		Email:           emailRe.FindString(text),
		Phone:           strings.TrimSpace(phoneRe.FindString(text)),
		YearsExperience: yearsOfExperience(lower),
		EducationLevel:  educationLevel(lower),
		Industry:        industry(lower),
		Skills:          skills(lower),
	}
	p.Normalize()
	return p
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// A line with an address or digits is a contact line, not a name.
		if strings.ContainsAny(line, "@0123456789") || len(line) > 60 {
			return ""
		}
		return line
	}
	return ""
}

func yearsOfExperience(lower string) int {
	for _, re := range experienceRes {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 0 {
			return n
		}
	}
	return 0
}

func educationLevel(lower string) string {
	switch {
	case phdRe.MatchString(lower):
		return "PhD"
	case mastersRe.MatchString(lower):
		return "Masters"
	case bachelorsRe.MatchString(lower):
		return "Bachelor's"
	case associateRe.MatchString(lower):
		return "Associate"
	default:
		return ""
	}
}

func industry(lower string) string {
	for _, entry := range industryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.industry
			}
		}
	}
	return ""
}

func skills(lower string) []string {
	var out []string
	for _, s := range skillVocabulary {
		if !containsWord(lower, s.keyword) {
			continue
		}
		out = append(out, s.display)
		if len(out) == maxFallbackSkills {
			break
		}
	}
	return out
}

// containsWord matches kw only at word boundaries, so "java" does not hit "javascript".
func containsWord(text, kw string) bool {
	for start := 0; ; {
		i := strings.Index(text[start:], kw)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(kw)
		if (i == 0 || !isWordByte(text[i-1])) && (end == len(text) || !isWordByte(text[end])) {
			return true
		}
		start = i + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
