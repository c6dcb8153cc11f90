// Package extract opportunistically fills interview parameters from
// transcript fragments. It is a best-effort keyword heuristic, used as
// a fallback when the voice conversation does not hand over structured
// parameters directly.
package extract

import (
	"strconv"
	"strings"
)

// Params is the working record assembled across a generate session.
// Values are snapshots: Observe returns a new Params and never mutates
// the receiver, so call sites can safely hold on to intermediate states.
type Params struct {
	Role      string
	Level     string
	Type      string
	TechStack string // comma-joined, matching the generate request shape
	Amount    int
}

// DefaultParams are the values consumed at the terminal state when a
// dimension was never observed.
func DefaultParams() Params {
	return Params{
		Role:      "Full Stack Developer",
		Level:     "mid",
		Type:      "mixed",
		TechStack: "javascript",
		Amount:    5,
	}
}

// role keywords map to canonical titles; checked in order so that a
// fragment naming several families takes the first listed.
var roleVocab = []struct {
	keywords []string
	title    string
}{
	{[]string{"full-stack", "full stack", "fullstack"}, "Full Stack Developer"},
	{[]string{"frontend", "front-end", "front end"}, "Frontend Developer"},
	{[]string{"backend", "back-end", "back end"}, "Backend Developer"},
}

var levelVocab = []struct {
	keywords []string
	level    string
}{
	{[]string{"entry", "junior"}, "junior"},
	{[]string{"mid", "intermediate"}, "mid"},
	{[]string{"senior", "expert"}, "senior"},
}

var typeVocab = []string{"technical", "behavioral", "behavioural", "mixed"}

var techVocab = []string{
	"react", "next", "vue", "angular", "node", "typescript", "javascript",
	"python", "go", "java", "docker", "kubernetes", "aws", "postgres", "mongodb",
}

// Observe scans one transcript fragment and returns the merged snapshot.
// Role and level are first-match-wins; interview type and tech stack are
// overwritten on every matching fragment. The asymmetry is carried over
// from observed product behavior.
func Observe(prev Params, fragment string) Params {
	next := prev
	text := strings.ToLower(fragment)

	if next.Role == "" {
		for _, entry := range roleVocab {
			if containsAny(text, entry.keywords) {
				next.Role = entry.title
				break
			}
		}
	}

	if next.Level == "" {
		for _, entry := range levelVocab {
			if containsAny(text, entry.keywords) {
				next.Level = entry.level
				break
			}
		}
	}

	for _, kw := range typeVocab {
		if strings.Contains(text, kw) {
			if kw == "behavioural" {
				kw = "behavioral"
			}
			next.Type = kw
			break
		}
	}

	if stack := matchTech(text); len(stack) > 0 {
		next.TechStack = strings.Join(stack, ",")
	}

	if amount, ok := questionCount(text); ok {
		next.Amount = amount
	}

	return next
}

// Merged fills any still-unset dimension from the defaults before the
// parameters are consumed.
func (p Params) Merged(defaults Params) Params {
	if p.Role == "" {
		p.Role = defaults.Role
	}
	if p.Level == "" {
		p.Level = defaults.Level
	}
	if p.Type == "" {
		p.Type = defaults.Type
	}
	if p.TechStack == "" {
		p.TechStack = defaults.TechStack
	}
	if p.Amount == 0 {
		p.Amount = defaults.Amount
	}
	return p
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func matchTech(text string) []string {
	var found []string
	for _, kw := range techVocab {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// questionCount finds a bare digit sequence in a fragment that also
// mentions "question".
func questionCount(text string) (int, bool) {
	if !strings.Contains(text, "question") {
		return 0, false
	}
	start := -1
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] >= '0' && text[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if n, err := strconv.Atoi(text[start:i]); err == nil && n > 0 {
				return n, true
			}
			start = -1
		}
	}
	return 0, false
}
