package models

import "time"

// Interview is a persisted interview record. Created once by the
// generator after a successful model call and immutable thereafter.
type Interview struct {
	ID         string    `bson:"_id" json:"id"`
	Role       string    `bson:"role" json:"role"`
	Level      string    `bson:"level" json:"level"`
	Type       string    `bson:"type" json:"type"`
	TechStack  []string  `bson:"techstack" json:"techstack"`
	Questions  []string  `bson:"questions" json:"questions"`
	UserID     string    `bson:"user_id" json:"userId"`
	Finalized  bool      `bson:"finalized" json:"finalized"`
	CoverImage string    `bson:"cover_image" json:"coverImage"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// Feedback is a scored evaluation of one practice session. The logical
// record is the latest per (interview, user) pair; last write wins.
type Feedback struct {
	ID              string          `bson:"_id" json:"id"`
	InterviewID     string          `bson:"interview_id" json:"interviewId"`
	UserID          string          `bson:"user_id" json:"userId"`
	TotalScore      int             `bson:"total_score" json:"totalScore"`
	CategoryScores  []CategoryScore `bson:"category_scores" json:"categoryScores"`
	Strengths       []string        `bson:"strengths" json:"strengths"`
	AreasForGrowth  []string        `bson:"areas_for_improvement" json:"areasForImprovement"`
	FinalAssessment string          `bson:"final_assessment" json:"finalAssessment"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
}

type CategoryScore struct {
	Name    string `bson:"name" json:"name"`
	Score   int    `bson:"score" json:"score"`
	Comment string `bson:"comment" json:"comment"`
}

// User mirrors the identity-provider record. Created at sign-up,
// read on every authenticated request, never deleted by this service.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// TranscriptMessage is one finalized fragment of recognized speech,
// tagged with the speaker role.
type TranscriptMessage struct {
	Role    string `bson:"role" json:"role"`
	Content string `bson:"content" json:"content"`
}
