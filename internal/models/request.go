package models

import "strings"

// GenerateRequest asks the generator to produce and persist a new
// interview from the assembled parameters.
type GenerateRequest struct {
	Role      string `json:"role"`
	Type      string `json:"type"`
	Level     string `json:"level"`
	TechStack string `json:"techstack"`
	Amount    int    `json:"amount"`
	UserID    string `json:"userid"`
}

// implements the Validator interface
func (r *GenerateRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{
			Code:    "missing_userid",
			Message: "userid field is required",
		}
	}

	if r.Type != "" && !ValidInterviewTypes[strings.ToLower(r.Type)] {
		return &ErrorResponse{
			Code:    "invalid_type",
			Message: "Interview type must be one of: technical, behavioral, mixed",
		}
	}

	if r.Amount < 0 {
		return &ErrorResponse{
			Code:    "invalid_amount",
			Message: "amount must not be negative",
		}
	}

	return nil
}

// FeedbackRequest submits a completed practice transcript for scoring.
// FeedbackID, when set, names a prior record to overwrite.
type FeedbackRequest struct {
	InterviewID string              `json:"interviewId"`
	UserID      string              `json:"userId"`
	Transcript  []TranscriptMessage `json:"transcript"`
	FeedbackID  string              `json:"feedbackId,omitempty"`
}

func (r *FeedbackRequest) Validate() error {
	if strings.TrimSpace(r.InterviewID) == "" {
		return &ErrorResponse{Code: "missing_interview_id", Message: "interviewId field is required"}
	}
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{Code: "missing_user_id", Message: "userId field is required"}
	}
	if len(r.Transcript) == 0 {
		return &ErrorResponse{Code: "empty_transcript", Message: "transcript must contain at least one message"}
	}
	return nil
}

// EnsureUserRequest mirrors an identity-provider user into the local
// store at sign-in.
type EnsureUserRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r *EnsureUserRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return &ErrorResponse{Code: "missing_id", Message: "id field is required"}
	}
	if strings.TrimSpace(r.Email) == "" {
		return &ErrorResponse{Code: "missing_email", Message: "email field is required"}
	}
	return nil
}

// StartCallRequest opens a live voice session.
type StartCallRequest struct {
	Purpose     string   `json:"purpose"`
	UserID      string   `json:"userId"`
	UserName    string   `json:"userName,omitempty"`
	InterviewID string   `json:"interviewId,omitempty"`
	Questions   []string `json:"questions,omitempty"`
	FeedbackID  string   `json:"feedbackId,omitempty"`
}

func (r *StartCallRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{Code: "missing_user_id", Message: "userId field is required"}
	}
	switch r.Purpose {
	case PurposeGenerate:
		if strings.TrimSpace(r.UserName) == "" {
			return &ErrorResponse{Code: "missing_user_name", Message: "userName is required for generate calls"}
		}
	case PurposePractice:
		if strings.TrimSpace(r.InterviewID) == "" {
			return &ErrorResponse{Code: "missing_interview_id", Message: "interviewId is required for practice calls"}
		}
	default:
		return &ErrorResponse{Code: "invalid_purpose", Message: "purpose must be one of: generate, practice"}
	}
	return nil
}
