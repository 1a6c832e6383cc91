package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCVAnalysisPrompt creates the prompt for analyzing an uploaded CV.
func (pb *PromptBuilder) BuildCVAnalysisPrompt(cvText string) string {
	return fmt.Sprintf(`You are an expert HR recruiter and career coach reviewing a candidate's CV.

CANDIDATE CV:
%s

Analyze the CV and return ONLY valid JSON in this exact structure (no markdown, no commentary):
{
  "summary": "<3-5 sentence professional summary of the candidate>",
  "skills": ["<skill 1>", "<skill 2>", "..."],
  "experience_level": "<junior|mid|senior>",
  "ai_score": <number 0-100 rating the overall strength of the CV>,
  "suggestions": "<concrete suggestions to improve the CV, 2-4 sentences>"
}

Be objective. Base every field strictly on what the CV contains.`, cvText)
}

// BuildInterviewQuestionsPrompt creates the prompt for generating the mock
// interview. The service is instructed to never quote the CV or the profile
// in question text; that is a prompt-level contract, nothing enforces it here.
func (pb *PromptBuilder) BuildInterviewQuestionsPrompt(summary string, skills []string, experienceLevel, suggestions string) string {
	return fmt.Sprintf(`You are a professional interviewer preparing a candidate for a real technical or professional job interview.

The candidate's background and skillset are summarized below. Use this information only to understand their role, domain, and expertise level - do NOT ask questions about their CV, summary, or skills list directly.

Candidate Profile:
Summary: %s
Skills: %s
Experience Level: %s
Suggestions: %s

Your task:
Generate 10 realistic multiple-choice interview questions that the candidate might face in an actual interview for a position that matches their background.

Guidelines:
- Questions must evaluate real job-relevant knowledge or problem-solving ability, not what is written in the CV.
- Use scenario-based, conceptual, and practical questions related to their field.
- Adapt question difficulty to their experience level (junior/mid/senior).
- Each question should sound like it could come from a real interviewer.
- Avoid any reference to the CV, resume, skills list, or candidate summary in the question text.
- Keep questions short, professional, and natural.

Formatting:
Return ONLY valid JSON in this exact structure (no markdown, no commentary):

[
  {
    "question": "Question text here",
    "choices": {
      "A": "Option A",
      "B": "Option B",
      "C": "Option C",
      "D": "Option D"
    },
    "correct": "A"
  }
]`, summary, strings.Join(skills, ", "), experienceLevel, suggestions)
}

// ExtractJSON pulls a JSON object or array out of text that might wrap it in
// markdown fences or commentary.
func ExtractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	// Prefer whichever structure opens first so an object containing arrays
	// (or vice versa) is kept whole.
	switch {
	case startArr != -1 && (startObj == -1 || startArr < startObj) && endArr > startArr:
		return text[startArr : endArr+1]
	case startObj != -1 && endObj > startObj:
		return text[startObj : endObj+1]
	}

	return text
}
