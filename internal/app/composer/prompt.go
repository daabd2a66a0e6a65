package composer

import (
	"sort"
	"strings"

	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

const baseSystemPrompt = `
You are a salary negotiation assistant writing on behalf of a job candidate.

Your role:
- You write the candidate's next reply to a company's recruiter or hiring manager.
- You argue from the candidate's real background and targets, never invented facts.
- You never accept an offer or a number on the candidate's behalf.

General style guidelines:
- Answer in the SAME LANGUAGE as the company's message.
- Keep it to 2–4 short paragraphs, ready to send as an email.
- Stay professional: no insults, no threats, no ultimatums the candidate did not ask for.
- Do not repeat the company's figure back as if it were agreed.
- Output ONLY the reply text. No subject line, no notes, no markdown.
`

const passiveAggressiveInstructions = `
Strategy: passive-aggressive-professional

Focus:
- Express polite disappointment with whatever falls short of the candidate's targets.
- Ask pointed questions about how the company arrived at its numbers.

Tone:
- Courteous on the surface, unmistakably unimpressed underneath.
`

const confidentInstructions = `
Strategy: confident-assertive

Focus:
- State the candidate's value and target plainly.
- Anchor on the candidate's number, not the company's.

Tone:
- Direct, self-assured, never apologetic.
`

const collaborativeInstructions = `
Strategy: collaborative-problem-solver

Focus:
- Frame the gap as a shared problem to solve.
- Offer concrete alternatives (signing bonus, equity, review timeline, flexibility).

Tone:
- Warm, constructive, solution-oriented.
`

const questionerInstructions = `
Strategy: strategic-questioner

Focus:
- Lead with open questions that make the company justify its position.
- Reveal little; gather information about bands, reviews and growth.

Tone:
- Curious, measured, inquisitive.
`

// Prompt is the system prompt plus the user content for one reply.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt asks the model to rewrite the template draft for the incoming message.
func BuildPrompt(c *domain.NegotiationContext, message, draft string, vars map[string]string) Prompt {
	system := baseSystemPrompt + "\n" + strategyInstructions(c.Strategy)

	var user strings.Builder
	user.WriteString("Company: ")
	user.WriteString(c.CompanyName)
	user.WriteString("\nPosition: ")
	user.WriteString(c.Position)
	user.WriteString("\n\nCompany message:\n")
	user.WriteString(strings.TrimSpace(message))
	user.WriteString("\n\nKnown facts:\n")

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		user.WriteString("- ")
		user.WriteString(k)
		user.WriteString(": ")
		user.WriteString(vars[k])
		user.WriteString("\n")
	}

	user.WriteString("\nRewrite the draft below so it answers the company message directly, keeping its tone and every fact in it.\n")
	user.WriteString("\nDraft reply:\n")
	user.WriteString(draft)

	return Prompt{
		System: system,
		User:   user.String(),
	}
}

func strategyInstructions(s domain.Strategy) string {
	switch s {
	case domain.StrategyConfident:
		return confidentInstructions
	case domain.StrategyCollaborative:
		return collaborativeInstructions
	case domain.StrategyQuestioner:
		return questionerInstructions
	case domain.StrategyPassiveAggressive:
		fallthrough
	default:
		return passiveAggressiveInstructions
	}
}
