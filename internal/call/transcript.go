package call

import (
	"strings"
	"sync"

	"github.com/shihab-newaz/ai-interview/internal/models"
)

// Transcript is the ordered log of finalized speech fragments for one
// session. Append-only: arrival order is preserved exactly, nothing is
// deduplicated or evicted. Sessions are short-lived, so unbounded
// growth is fine; the log is discarded with the session.
type Transcript struct {
	mu       sync.Mutex
	messages []models.TranscriptMessage
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(role, content string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, models.TranscriptMessage{Role: role, Content: content})
}

// Messages returns a copy of the full ordered sequence.
func (t *Transcript) Messages() []models.TranscriptMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.TranscriptMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

// Format renders the transcript for the feedback prompt, one line per
// fragment.
func Format(messages []models.TranscriptMessage) string {
	var b strings.Builder
	for _, m := range messages {
		b.WriteString("- ")
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}
