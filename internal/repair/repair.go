// Package repair recovers structured values from the free-form text the
// language model returns. Every entry point tries a fixed cascade of
// parse strategies and, when all of them fail, synthesizes a fallback of
// the expected shape. Nothing in this package returns an error or
// panics past its boundary.
package repair

import (
	"encoding/json"
	"strings"
)

// FallbackQuestion is inserted when no question list can be recovered,
// keeping the interview's questions non-empty.
const FallbackQuestion = "Tell me about yourself and your background."

// Evaluation is the feedback shape the model is prompted to emit.
type Evaluation struct {
	TotalScore      int              `json:"totalScore"`
	CategoryScores  []CategoryResult `json:"categoryScores"`
	Strengths       []string         `json:"strengths"`
	AreasForGrowth  []string         `json:"areasForImprovement"`
	FinalAssessment string           `json:"finalAssessment"`
}

type CategoryResult struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// Questions recovers a question list from raw model output. Cascade:
// direct parse, bracket extraction, quoted-line scavenge, single-element
// fallback. The result is sanitized for speech and never empty.
func Questions(raw string) []string {
	questions := parseQuestions(raw)

	out := make([]string, 0, len(questions))
	for _, q := range questions {
		q = SanitizeForSpeech(q)
		if q != "" {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		out = []string{FallbackQuestion}
	}
	return out
}

func parseQuestions(raw string) []string {
	raw = strings.TrimSpace(raw)

	var direct []string
	if err := json.Unmarshal([]byte(raw), &direct); err == nil {
		return direct
	}

	if sub, ok := extractDelimited(raw, '[', ']'); ok {
		var extracted []string
		if err := json.Unmarshal([]byte(sub), &extracted); err == nil {
			return extracted
		}
	}

	if lines := scavengeQuotedLines(raw); len(lines) > 0 {
		return lines
	}

	return nil
}

// FeedbackEvaluation recovers a feedback object from raw model output.
// The object cascade has no line-scavenge level; a text blob that is not
// JSON cannot yield partial category scores, so it falls straight
// through to the neutral fallback.
func FeedbackEvaluation(raw string, categories []string) Evaluation {
	raw = strings.TrimSpace(raw)

	var direct Evaluation
	if err := json.Unmarshal([]byte(raw), &direct); err == nil && len(direct.CategoryScores) > 0 {
		return direct
	}

	if sub, ok := extractDelimited(raw, '{', '}'); ok {
		var extracted Evaluation
		if err := json.Unmarshal([]byte(sub), &extracted); err == nil && len(extracted.CategoryScores) > 0 {
			return extracted
		}
	}

	return NeutralEvaluation(categories)
}

// NeutralEvaluation is the last-resort feedback value: every category at
// 50 with a note that the assessment is limited.
func NeutralEvaluation(categories []string) Evaluation {
	scores := make([]CategoryResult, 0, len(categories))
	for _, name := range categories {
		scores = append(scores, CategoryResult{
			Name:    name,
			Score:   50,
			Comment: "Unable to fully evaluate this area from the transcript.",
		})
	}
	return Evaluation{
		TotalScore:     50,
		CategoryScores: scores,
		Strengths:      []string{"Completed the interview session"},
		AreasForGrowth: []string{"Provide longer, more detailed answers so they can be evaluated"},
		FinalAssessment: "The assessment is limited because the responses could not be " +
			"fully evaluated. A neutral score has been assigned.",
	}
}

// extractDelimited returns the substring from the first occurrence of
// open to its matching close, tracking nesting depth and skipping
// bracket characters inside JSON string literals.
func extractDelimited(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// scavengeQuotedLines keeps only lines that look like quoted string
// literals, with trailing commas tolerated.
func scavengeQuotedLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSuffix(line, ",")
		if len(line) < 2 || line[0] != '"' || line[len(line)-1] != '"' {
			continue
		}
		var q string
		if err := json.Unmarshal([]byte(line), &q); err != nil {
			continue
		}
		if q != "" {
			out = append(out, q)
		}
	}
	return out
}
