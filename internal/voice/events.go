// Package voice adapts the hosted voice provider's session surface. The
// provider owns the media plane; this package only speaks its websocket
// control/event protocol and classifies its errors once, at the
// boundary, into a tagged disposition.
package voice

import "strings"

type EventType string

const (
	EventCallStart    EventType = "call-start"
	EventCallEnd      EventType = "call-end"
	EventTranscript   EventType = "transcript"
	EventSpeechUpdate EventType = "speech-update"
	EventError        EventType = "error"
)

const TranscriptFinal = "final"

// Event is one decoded server message from the provider.
type Event struct {
	Type           EventType `json:"type"`
	TranscriptType string    `json:"transcriptType,omitempty"`
	Role           string    `json:"role,omitempty"`
	Transcript     string    `json:"transcript,omitempty"`
	SpeechStatus   string    `json:"status,omitempty"` // "started" | "stopped"
	ErrorMsg       string    `json:"errorMsg,omitempty"`
}

// StartRequest carries the session-start parameters for the provider.
type StartRequest struct {
	Target         string            `json:"target"`
	VariableValues map[string]string `json:"variableValues,omitempty"`
	ClientMessages []string          `json:"clientMessages,omitempty"`
	ServerMessages []string          `json:"serverMessages,omitempty"`
}

// Disposition is the classified outcome of a provider error event.
// The provider delivers a normal end-of-meeting on its error channel,
// which must not be treated as a failure.
type Disposition struct {
	Benign  bool
	Reason  string // set when Benign
	Message string // set when fatal
}

// phrases the provider is known to deliver for a normal termination
var benignEndings = []string{
	"meeting has ended",
	"meeting ended",
	"call has ended",
}

// Classify decides once, at the adapter boundary, whether a provider
// error is a normal termination or a real failure.
func Classify(errorMsg string) Disposition {
	lower := strings.ToLower(errorMsg)
	for _, phrase := range benignEndings {
		if strings.Contains(lower, phrase) {
			return Disposition{Benign: true, Reason: errorMsg}
		}
	}

	msg := errorMsg
	if strings.TrimSpace(msg) == "" {
		msg = "voice provider reported an unknown error"
	}
	return Disposition{Message: msg}
}
