package types

import (
	"github.com/go-playground/validator/v10"
)

// QuestionType tags an interview question with its stage/category.
type QuestionType string

// Question type constants. TypeAutre is the fallback for anything the
// generator returned without a recognizable category.
const (
	TypeIntro      QuestionType = "intro"
	TypeMotivation QuestionType = "motivation"
	TypeTechnique  QuestionType = "technique"
	TypeProjet     QuestionType = "projet"
	TypeSoftSkill  QuestionType = "soft_skill"
	TypeConclusion QuestionType = "conclusion"
	TypeAutre      QuestionType = "autre"
)

// QuestionItem is a single planned interview question. Topic may be empty;
// Question never is (items without a question are dropped at generation time).
type QuestionItem struct {
	Type     QuestionType `json:"type" validate:"required"`
	Topic    string       `json:"topic"`
	Question string       `json:"question" validate:"required"`
}

// InterviewPlan is the ordered list of questions for one session. The slice
// order is the presentation order and is never re-sorted.
type InterviewPlan []QuestionItem

// Validate validates the QuestionItem using the validator.
func (q *QuestionItem) Validate() error {
	validate := validator.New()
	return validate.Struct(q)
}
