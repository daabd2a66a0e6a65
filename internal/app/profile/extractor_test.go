package profile_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/PabloGalante/neogiator-agent/internal/app/profile"
	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

type stubGenerator struct {
	answer string
	err    error
	delay  time.Duration
	calls  int
	last   domain.GenerationRequest
}

func (g *stubGenerator) GenerateText(ctx context.Context, req domain.GenerationRequest) (string, error) {
	g.calls++
	g.last = req
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return g.answer, g.err
}

const sampleResume = `Jane Doe
jane@example.com | (555) 123-4567
Senior engineer with 5 years of experience in Python, Docker and Kubernetes.
MSc Computer Science.`

func TestExtractFallbackWhenGeneratorUnavailable(t *testing.T) {
	gens := map[string]domain.TextGenerator{
		"nil generator":  nil,
		"failing":        &stubGenerator{err: errors.New("connection refused")},
		"empty answer":   &stubGenerator{answer: "   "},
		"invalid answer": &stubGenerator{answer: "I cannot help with that."},
	}

	for name, gen := range gens {
		t.Run(name, func(t *testing.T) {
			ex := profile.NewExtractor(gen, time.Second)

			p, err := ex.Extract(context.Background(), []byte(sampleResume), "txt")
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if p.Email != "jane@example.com" {
				t.Errorf("email = %q", p.Email)
			}
			if p.YearsExperience != 5 {
				t.Errorf("years_experience = %d", p.YearsExperience)
			}
			if p.Name != "Jane Doe" {
				t.Errorf("name = %q", p.Name)
			}
			if p.EducationLevel != "Masters" {
				t.Errorf("education = %q", p.EducationLevel)
			}
			for _, s := range []string{"Python", "Docker", "Kubernetes"} {
				if !slices.Contains(p.Skills, s) {
					t.Errorf("skills %v missing %s", p.Skills, s)
				}
			}
		})
	}
}

func TestExtractFallbackOnTimeout(t *testing.T) {
	gen := &stubGenerator{answer: `{"years_experience": 9}`, delay: time.Second}
	ex := profile.NewExtractor(gen, 20*time.Millisecond)

	p, err := ex.Extract(context.Background(), []byte(sampleResume), "text/plain")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if p.YearsExperience != 5 {
		t.Fatalf("expected fallback value 5, got %d", p.YearsExperience)
	}
}

func TestExtractUsesModelAnswer(t *testing.T) {
	gen := &stubGenerator{answer: "```json\n" + `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"years_experience": "7+",
		"education_level": "Masters",
		"industry": "technology",
		"skills": ["Go", "Go", "SQL"],
		"certifications": ["PMP"],
		"achievements": ["led a team that increased revenue by 150%"],
		"leadership_experience": true
	}` + "\n```"}
	ex := profile.NewExtractor(gen, time.Second)

	p, err := ex.Extract(context.Background(), []byte(sampleResume), ".txt")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one generator call, got %d", gen.calls)
	}
	if !strings.Contains(gen.last.Prompt, "jane@example.com") {
		t.Errorf("prompt does not carry resume text")
	}
	if p.YearsExperience != 7 {
		t.Errorf("years_experience = %d", p.YearsExperience)
	}
	if len(p.Skills) != 2 {
		t.Errorf("skills not de-duplicated: %v", p.Skills)
	}
	if !p.LeadershipExperience || len(p.Achievements) != 1 {
		t.Errorf("unexpected profile %+v", p)
	}
	if p.IndustryAwards == nil {
		t.Errorf("missing set fields should be empty, not nil")
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	ex := profile.NewExtractor(nil, time.Second)
	_, err := ex.Extract(context.Background(), []byte("x"), "xlsx")
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractImageSendsAttachment(t *testing.T) {
	gen := &stubGenerator{answer: `{"email": "scan@example.com", "years_experience": 3}`}
	ex := profile.NewExtractor(gen, time.Second)

	png := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 16)...)
	p, err := ex.Extract(context.Background(), png, "image/png")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(gen.last.Attachments) != 1 || gen.last.Attachments[0].MIMEType != "image/png" {
		t.Fatalf("expected one png attachment, got %+v", gen.last.Attachments)
	}
	if p.Email != "scan@example.com" {
		t.Errorf("email = %q", p.Email)
	}
}

func TestExtractImageWithoutGenerator(t *testing.T) {
	ex := profile.NewExtractor(nil, time.Second)
	p, err := ex.Extract(context.Background(), []byte{0xff, 0xd8, 0xff}, "jpg")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if p.Email != "" || p.YearsExperience != 0 {
		t.Fatalf("expected empty profile, got %+v", p)
	}
}

func TestParseModelProfile(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		years   int
	}{
		{"plain", `{"years_experience": 4}`, false, 4},
		{"prose around json", `Sure! {"years_experience": 6} Hope that helps.`, false, 6},
		{"float years", `{"years_experience": 2.5}`, false, 2},
		{"negative years", `{"years_experience": -1}`, true, 0},
		{"not json", `no profile here`, true, 0},
		{"null", `null`, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := profile.ParseModelProfile(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", p)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.YearsExperience != tt.years {
				t.Fatalf("years = %d, want %d", p.YearsExperience, tt.years)
			}
		})
	}
}

func TestParseFileKind(t *testing.T) {
	tests := map[string]profile.FileKind{
		"pdf":             profile.KindPDF,
		".PDF":            profile.KindPDF,
		"application/pdf": profile.KindPDF,
		"docx":            profile.KindDocx,
		"doc":             profile.KindDoc,
		"txt":             profile.KindTxt,
		"jpeg":            profile.KindImage,
		"image":           profile.KindImage,
	}
	for in, want := range tests {
		got, err := profile.ParseFileKind(in)
		if err != nil || got != want {
			t.Errorf("ParseFileKind(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if k, err := profile.KindFromFilename("resume.docx"); err != nil || k != profile.KindDocx {
		t.Errorf("KindFromFilename = %q, %v", k, err)
	}
}

func TestExtractTextLegacyDoc(t *testing.T) {
	data := append([]byte{0xd0, 0xcf, 0x11, 0xe0, 0x00}, []byte("Jane Doe")...)
	data = append(data, 0x00, 0x01)
	data = append(data, []byte("jane@example.com")...)

	text, err := profile.ExtractText(profile.KindDoc, data)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(text, "Jane Doe") || !strings.Contains(text, "jane@example.com") {
		t.Fatalf("unexpected text %q", text)
	}
}
