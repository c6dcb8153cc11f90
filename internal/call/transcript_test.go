package call

import (
	"fmt"
	"strings"
	"testing"
)

func TestTranscript_PreservesArrivalOrder(t *testing.T) {
	tr := NewTranscript()

	var want []string
	for i := 0; i < 50; i++ {
		role := "user"
		if i%2 == 0 {
			role = "assistant"
		}
		content := fmt.Sprintf("fragment %d", i)
		tr.Append(role, content)
		want = append(want, content)
	}

	got := tr.Messages()
	if len(got) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(got))
	}
	for i, m := range got {
		if m.Content != want[i] {
			t.Fatalf("message %d out of order: got %q want %q", i, m.Content, want[i])
		}
	}
}

func TestTranscript_NoDeduplication(t *testing.T) {
	tr := NewTranscript()
	tr.Append("user", "same thing")
	tr.Append("user", "same thing")

	if tr.Len() != 2 {
		t.Fatalf("duplicate fragments must both be kept, got len %d", tr.Len())
	}
}

func TestTranscript_MessagesReturnsCopy(t *testing.T) {
	tr := NewTranscript()
	tr.Append("user", "hello")

	got := tr.Messages()
	got[0].Content = "mutated"

	if tr.Messages()[0].Content != "hello" {
		t.Fatalf("caller mutation leaked into the transcript")
	}
}

func TestFormat(t *testing.T) {
	tr := NewTranscript()
	tr.Append("interviewer", "tell me about goroutines")
	tr.Append("candidate", "they are lightweight threads")

	got := Format(tr.Messages())
	if !strings.Contains(got, "- interviewer: tell me about goroutines") {
		t.Fatalf("unexpected format: %q", got)
	}
	if !strings.HasSuffix(got, "they are lightweight threads\n") {
		t.Fatalf("unexpected format: %q", got)
	}
}
