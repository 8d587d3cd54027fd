package grading

import "fmt"

const answerKeyPrompt = `You are a grading assistant for school exercises.
Below is the full text of an exercise sheet. Derive the canonical answer key.

Return STRICT JSON only, no prose, no explanations, no markdown:
{
  "<section-id>": {
    "<question-id>": "<single canonical answer string>"
  }
}

Use the section and question numbering exactly as it appears in the exercise.
Every answer is one string; do not nest objects or add commentary fields.

EXERCISE TEXT:
%s`

const gradingPrompt = `You are a grading assistant. Compare the student's answers
against the answer key for this exercise.

Grading policy (follow exactly):
- Judge semantic tense and meaning only.
- Ignore spelling, punctuation, capitalization and minor grammar slips.
- Skip any question the student did not answer; do not flag it.
- For each incorrect answer, give the FULL corrected sentence.
- Do NOT rewrite or "improve" answers that are already correct.

Return STRICT JSON only, no prose, no markdown:
{
  "exercise_id": %q,
  "sections": {
    "<section-id>": {
      "all_correct": true|false,
      "corrections": { "<question-id>": "<full corrected sentence>" }
    }
  }
}
When all answers in a section are correct, set "all_correct": true and omit
"corrections".

EXERCISE TEXT:
%s

ANSWER KEY (JSON):
%s

STUDENT ANSWERS:
%s`

func buildAnswerKeyPrompt(exerciseText string) string {
	return fmt.Sprintf(answerKeyPrompt, exerciseText)
}

func buildGradingPrompt(exerciseID, exerciseText, answerKeyJSON, studentText string) string {
	return fmt.Sprintf(gradingPrompt, exerciseID, exerciseText, answerKeyJSON, studentText)
}
