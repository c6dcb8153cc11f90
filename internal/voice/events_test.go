package voice

import "testing"

func TestClassify_BenignMeetingEnd(t *testing.T) {
	for _, msg := range []string{
		"Meeting has ended",
		"the meeting has ended unexpectedly",
		"Call has ended",
	} {
		d := Classify(msg)
		if !d.Benign {
			t.Fatalf("%q should classify as benign", msg)
		}
		if d.Reason == "" {
			t.Fatalf("benign disposition should carry the reason")
		}
	}
}

func TestClassify_FatalErrors(t *testing.T) {
	for _, msg := range []string{
		"ejection: token expired",
		"connection refused",
	} {
		d := Classify(msg)
		if d.Benign {
			t.Fatalf("%q should classify as fatal", msg)
		}
		if d.Message == "" {
			t.Fatalf("fatal disposition should carry a message")
		}
	}
}

func TestClassify_EmptyMessageStillFatal(t *testing.T) {
	d := Classify("")
	if d.Benign {
		t.Fatalf("empty message should not be benign")
	}
	if d.Message == "" {
		t.Fatalf("fatal disposition must have a non-empty user-visible message")
	}
}
