package models

// The five fixed feedback categories, in report order. Every feedback
// record contains exactly these, each scored in [0,100].
var FeedbackCategories = []string{
	"Communication Skills",
	"Technical Knowledge",
	"Problem Solving",
	"Cultural Fit",
	"Confidence and Clarity",
}

// contains all valid interview types (in lowercase)
var ValidInterviewTypes = map[string]bool{
	"technical":  true,
	"behavioral": true,
	"mixed":      true,
}

// contains all valid experience levels (in lowercase)
var ValidLevels = map[string]bool{
	"junior": true,
	"mid":    true,
	"senior": true,
}

func ValidInterviewTypesList() []string {
	return []string{"technical", "behavioral", "mixed"}
}

func ValidLevelsList() []string {
	return []string{"junior", "mid", "senior"}
}

// Call purposes
const (
	PurposeGenerate = "generate"
	PurposePractice = "practice"
)

// Default cap for "other users' interviews" listings
const DefaultLatestLimit = 20
