package strategy

import "github.com/PabloGalante/neogiator-agent/internal/domain"

var passiveAggressiveTemplates = []ResponseTemplate{
	{
		ID:       "salary_undervalued",
		Strategy: domain.StrategyPassiveAggressive,
		Tone:     domain.ToneProfessionallyDisappointed,
		Text: `Thank you for the offer. While I appreciate the opportunity at {company_name}, I have to express some concern about the compensation package. Given my {years_experience} years of experience and a track record that includes {achievement}, I had hoped for something much closer to {target_salary}, which leaves a gap of roughly {salary_gap}.

I'm curious about your compensation philosophy. Do you typically benchmark against industry standards? I'd be interested to understand how you arrived at this figure, as it seems noticeably below what I've seen for similar roles at comparable companies.`,
		Variables:          []string{VarCompanyName, VarYearsExperience, VarAchievement, VarTargetSalary, VarSalaryGap},
		EffectivenessScore: 0.94,
	},
	{
		ID:       "salary_undervalued_brief",
		Strategy: domain.StrategyPassiveAggressive,
		Tone:     domain.ToneProfessionallyDisappointed,
		Text: `Thank you for putting this together. I'll be candid: with {years_experience} years of experience behind me, I was expecting a figure closer to {target_salary}. The current number sits about {salary_gap} short of that.

I'd appreciate understanding what flexibility exists here before I can consider the offer seriously.`,
		Variables:          []string{VarYearsExperience, VarTargetSalary, VarSalaryGap},
		EffectivenessScore: 0.92,
	},
	{
		ID:       "benefits_inadequate",
		Strategy: domain.StrategyPassiveAggressive,
		Tone:     domain.ToneStrategicallyCurious,
		Text: `I notice the benefits package is quite different from what I've seen at other companies in this space. Specifically, I didn't see anything about {benefit_gap}, which is fairly standard elsewhere.

Could you help me understand your benefits philosophy? I'm particularly interested in how you view employee retention and work-life balance, as these factors significantly influence my decision.`,
		Variables:          []string{VarBenefitGap},
		EffectivenessScore: 0.91,
	},
	{
		ID:       "timeline_pressure",
		Strategy: domain.StrategyPassiveAggressive,
		Tone:     domain.TonePoliteButFirm,
		Text: `I understand you'd like a quick decision, but I'm currently evaluating multiple opportunities and want to make sure I make the right choice for my career. Rushing this wouldn't be fair to either of us.

Given the importance of this role and the long-term commitment involved, taking the time to properly evaluate every aspect of the offer is in everyone's best interest. What's your typical timeline for candidates in similar situations?`,
		EffectivenessScore: 0.90,
	},
}

var confidentTemplates = []ResponseTemplate{
	{
		ID:       "target_anchor",
		Strategy: domain.StrategyConfident,
		Tone:     domain.ToneConfidentlyAssertive,
		Text: `Thank you for the conversation so far. Based on my {years_experience} years of experience and what the market is paying for this level of responsibility, I'm looking for a base salary of {target_salary}.

I'm confident I can deliver the results you're hiring for, and I'd like the compensation to reflect that from day one. Can we align on that number?`,
		Variables:          []string{VarYearsExperience, VarTargetSalary},
		EffectivenessScore: 0.90,
	},
	{
		ID:       "market_value_assertion",
		Strategy: domain.StrategyConfident,
		Tone:     domain.ToneConfidentlyAssertive,
		Text: `Based on my research and conversations with industry peers, my market value for this role is higher than what's being discussed. My expertise in {skill_area} and a proven track record of {achievement} command premium compensation.

I'm confident I can deliver exceptional value to {company_name}, but I need the compensation to reflect that value. Let's discuss how we can align the offer with market standards.`,
		Variables:          []string{VarSkillArea, VarAchievement, VarCompanyName},
		EffectivenessScore: 0.88,
	},
	{
		ID:       "value_statement",
		Strategy: domain.StrategyConfident,
		Tone:     domain.ToneConfidentlyAssertive,
		Text: `I'm genuinely excited about the {position} role at {company_name}, and I know I can make an immediate impact. Before we go further, I want to be direct: I expect the package to be competitive with the top of the market for this position.

What room do you have to get us there?`,
		Variables:          []string{VarPosition, VarCompanyName},
		EffectivenessScore: 0.75,
	},
}

var collaborativeTemplates = []ResponseTemplate{
	{
		ID:       "bridge_the_gap",
		Strategy: domain.StrategyCollaborative,
		Tone:     domain.TonePoliteButFirm,
		Text: `I really appreciate the offer and I want to find a way to make this work with {company_name}. Right now we're about {salary_gap} apart, and I'm confident we can close that together.

Would you be open to combining a higher base with a signing bonus, additional equity, or an early compensation review at six months? I'm flexible on the mix as long as the total reflects the role.`,
		Variables:          []string{VarSalaryGap, VarCompanyName},
		EffectivenessScore: 0.89,
	},
	{
		ID:       "creative_solution",
		Strategy: domain.StrategyCollaborative,
		Tone:     domain.TonePoliteButFirm,
		Text: `I understand budget constraints, but I'm confident we can find a creative solution that works for both sides. Here are some alternatives I'd be open to discussing:

- Performance-based bonuses tied to specific metrics
- Additional equity or stock options
- A professional development budget
- Flexible work arrangements
- An earlier salary review timeline

What combination of these would make sense for your organization?`,
		EffectivenessScore: 0.87,
	},
}

var questionerTemplates = []ResponseTemplate{
	{
		ID:       "offer_rationale",
		Strategy: domain.StrategyQuestioner,
		Tone:     domain.ToneStrategicallyCurious,
		Text: `Thanks for sharing the details. Before I respond, I'd like to understand a few things about the {position} package:

1. How was the {offer_salary} figure benchmarked, and against which roles?
2. What does the salary band for this position at {company_name} look like?
3. What would someone in this role need to demonstrate to move to the top of that band?

Understanding the reasoning will help me evaluate the offer fairly.`,
		Variables:          []string{VarOfferSalary, VarPosition, VarCompanyName},
		EffectivenessScore: 0.85,
	},
	{
		ID:       "growth_opportunities",
		Strategy: domain.StrategyQuestioner,
		Tone:     domain.ToneStrategicallyCurious,
		Text: `I'm excited about the role, but I'd like to understand more about growth opportunities. Specifically:

1. How do you typically handle salary reviews and promotions?
2. What's the average tenure of employees in similar roles?
3. How do you measure and reward exceptional performance?

These factors are crucial for my long-term career planning and will significantly influence my decision.`,
		EffectivenessScore: 0.82,
	},
}
