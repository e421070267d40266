package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// EvaluationResult is the structured score record produced for one answer.
// Score is a global mark out of 10; the four criteria are marked 1-5.
// Immutable once created.
type EvaluationResult struct {
	Score     int `json:"score" validate:"min=0,max=10"`
	Clarity   int `json:"clarity" validate:"min=1,max=5"`
	Relevance int `json:"relevance" validate:"min=1,max=5"`
	Alignment int `json:"alignment" validate:"min=1,max=5"`
	Depth     int `json:"depth" validate:"min=1,max=5"`

	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	Improvements []string `json:"improvements"`
}

// Validate validates the EvaluationResult using the validator.
func (e *EvaluationResult) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// ApplyDefaults clamps out-of-range marks into their documented ranges,
// drops empty feedback entries and trims the rest. Models occasionally score
// outside the requested scale; local defaulting keeps the record well formed
// without failing the evaluation.
func (e *EvaluationResult) ApplyDefaults() {
	e.Score = clamp(e.Score, 0, 10)
	e.Clarity = clamp(e.Clarity, 1, 5)
	e.Relevance = clamp(e.Relevance, 1, 5)
	e.Alignment = clamp(e.Alignment, 1, 5)
	e.Depth = clamp(e.Depth, 1, 5)

	e.Strengths = cleanList(e.Strengths)
	e.Weaknesses = cleanList(e.Weaknesses)
	e.Improvements = cleanList(e.Improvements)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func cleanList(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		result = append(result, item)
	}
	return result
}
