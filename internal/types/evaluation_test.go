package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationResult_ApplyDefaults_ClampsRanges(t *testing.T) {
	eval := EvaluationResult{
		Score:     14,
		Clarity:   0,
		Relevance: 6,
		Alignment: -1,
		Depth:     3,
	}
	eval.ApplyDefaults()

	assert.Equal(t, 10, eval.Score)
	assert.Equal(t, 1, eval.Clarity)
	assert.Equal(t, 5, eval.Relevance)
	assert.Equal(t, 1, eval.Alignment)
	assert.Equal(t, 3, eval.Depth)
}

func TestEvaluationResult_ApplyDefaults_CleansFeedbackLists(t *testing.T) {
	eval := EvaluationResult{
		Score:     7,
		Clarity:   4,
		Relevance: 4,
		Alignment: 4,
		Depth:     4,
		Strengths: []string{"  clear structure ", "", "   "},
	}
	eval.ApplyDefaults()

	assert.Equal(t, []string{"clear structure"}, eval.Strengths)
	assert.Empty(t, eval.Weaknesses)
	assert.Empty(t, eval.Improvements)
}

func TestEvaluationResult_Validate(t *testing.T) {
	valid := EvaluationResult{Score: 7, Clarity: 4, Relevance: 3, Alignment: 4, Depth: 3}
	assert.NoError(t, valid.Validate())

	invalid := EvaluationResult{Score: 11, Clarity: 4, Relevance: 3, Alignment: 4, Depth: 3}
	assert.Error(t, invalid.Validate())
}

func TestEvaluationResult_JSONRoundTrip(t *testing.T) {
	jsonInput := `{
		"score": 7,
		"clarity": 4,
		"relevance": 3,
		"alignment": 4,
		"depth": 3,
		"strengths": ["concrete example"],
		"weaknesses": ["no metrics"],
		"improvements": ["quantify the impact"]
	}`

	var eval EvaluationResult
	err := json.Unmarshal([]byte(jsonInput), &eval)
	require.NoError(t, err)
	assert.Equal(t, 7, eval.Score)
	assert.Equal(t, []string{"concrete example"}, eval.Strengths)
}
