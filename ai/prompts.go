package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"fitcoach/domain/quiz"
	"fitcoach/domain/report"
)

// NarrativeSystemContext frames the narrative call. JSON is mentioned
// explicitly for JSON-mode compatibility.
const NarrativeSystemContext = `You are an experienced fitness coach writing an assessment report.
You never invent calorie or timeline numbers: the figures supplied in the
request are authoritative and must be copied into the output verbatim.
Respond with valid JSON only.`

// WorkoutSystemContext frames the workout plan call.
const WorkoutSystemContext = `You are a personal trainer drafting a weekly workout plan for a new client.
Write the plan in the named trainer's voice. Respond with valid JSON only.`

// BuildNarrativePrompt renders the narrative request. Core-computed numbers
// and timeline are embedded as JSON the model must echo back unchanged.
func BuildNarrativePrompt(q quiz.Data, numbers report.Numbers, timeline report.Timeline) string {
	quizJSON, _ := json.MarshalIndent(q, "", "  ")
	numbersJSON, _ := json.MarshalIndent(numbers, "", "  ")
	timelineJSON, _ := json.MarshalIndent(timeline, "", "  ")

	var b strings.Builder
	b.WriteString("Write a fat-loss assessment report for this client.\n\n")
	b.WriteString("Client quiz data:\n")
	b.Write(quizJSON)
	b.WriteString("\n\nComputed calorie figures (copy verbatim into \"numbers\"):\n")
	b.Write(numbersJSON)
	b.WriteString("\n\nComputed timeline (copy verbatim into \"timeline\"):\n")
	b.Write(timelineJSON)
	b.WriteString(`

Return a JSON object with exactly these top-level keys:
  "numbers"           - the figures above, unchanged
  "timeline"          - the timeline above, unchanged
  "nutrition_targets" - {"protein_g": number, "carbs_g_range": [min, max], "fats_g_range": [min, max], "water_l": number}
                        omit a range entirely if you cannot estimate it; never use placeholder strings
  "body_comp"         - {"estimated_body_fat_pct": string, "assessment": string}
  "flags"             - array of {"severity": "info"|"warn"|"error", "message": string}; flag aggressive timelines
  "methodology"       - one paragraph describing the calculation method
  "report_markdown"   - the full client-facing report as markdown
`)
	return b.String()
}

// BuildWorkoutPrompt renders the workout plan request.
func BuildWorkoutPrompt(q quiz.Data, trainerName string) string {
	quizJSON, _ := json.MarshalIndent(q, "", "  ")

	days := q.GymDaysPerWeek
	if days <= 0 {
		days = 3
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Draft a %d-day weekly workout plan written by trainer %s.\n\n", days, trainerName)
	b.WriteString("Client quiz data:\n")
	b.Write(quizJSON)
	fmt.Fprintf(&b, `

Return a JSON object with exactly these top-level keys:
  "trainer_name" - %q
  "days"         - array of {"day": string, "focus": string, "exercises": [{"name": string, "sets": number, "reps": string}]}
  "coach_notes"  - 2-3 sentences of coaching advice in the trainer's voice
`, trainerName)
	return b.String()
}
