package profile

const extractionSystemPrompt = `You are a precise resume parser. Extract only what the resume states. Never invent data.
Always respond with ONLY a JSON object (no markdown, no backticks, no explanation).`

const extractionSchema = `{
  "name": "Full name",
  "email": "email@example.com",
  "phone": "phone number",
  "years_experience": number of years of professional experience,
  "education_level": "High School", "Associate", "Bachelor's", "Masters" or "PhD",
  "industry": "primary industry (technology, finance, healthcare, ...)",
  "skills": ["skill1", "skill2"],
  "certifications": ["cert1", "cert2"],
  "achievements": ["quantified achievement 1", "achievement 2"],
  "leadership_experience": true or false,
  "industry_awards": ["award1"]
}`

func buildExtractionPrompt(resumeText string) string {
	return "Parse this resume and return a JSON object with this structure:\n\n" +
		extractionSchema +
		"\n\nIf a field is not present use an empty string, 0, false or an empty array.\n\nResume:\n" +
		resumeText
}

func buildImagePrompt() string {
	return "The attached image is a scanned resume. Read it and return a JSON object with this structure:\n\n" +
		extractionSchema +
		"\n\nIf a field is not present use an empty string, 0, false or an empty array."
}
