package models

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Code + ": " + e.Message
}

type GenerateResponse struct {
	Success     bool   `json:"success"`
	InterviewID string `json:"interviewId,omitempty"`
	Error       string `json:"error,omitempty"`
}

type FeedbackResponse struct {
	Success    bool   `json:"success"`
	FeedbackID string `json:"feedbackId,omitempty"`
	Error      string `json:"error,omitempty"`
}

// InterviewsResponse wraps owner/latest interview listings.
type InterviewsResponse struct {
	Total int         `json:"total"`
	Items []Interview `json:"items"`
}

// CallStatusResponse is the polled view of a live call session.
type CallStatusResponse struct {
	ID         string              `json:"id"`
	State      string              `json:"state"`
	Speaking   bool                `json:"speaking"`
	Transcript []TranscriptMessage `json:"transcript"`
	Error      string              `json:"error,omitempty"`
	Redirect   string              `json:"redirect,omitempty"`
}
