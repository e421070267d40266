package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionItem_Validate(t *testing.T) {
	valid := QuestionItem{Type: TypeTechnique, Topic: "Python", Question: "Describe a pipeline you built."}
	assert.NoError(t, valid.Validate())

	missingQuestion := QuestionItem{Type: TypeIntro}
	assert.Error(t, missingQuestion.Validate())
}

func TestInterviewPlan_JSONUnmarshaling(t *testing.T) {
	jsonInput := `[
		{"type": "intro", "topic": "", "question": "Present yourself."},
		{"type": "technique", "topic": "SQL", "question": "What is a window function?"}
	]`

	var plan InterviewPlan
	err := json.Unmarshal([]byte(jsonInput), &plan)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, TypeIntro, plan[0].Type)
	assert.Equal(t, "SQL", plan[1].Topic)
}

func TestCandidateProfile_ApplyDefaults(t *testing.T) {
	var p CandidateProfile
	require.NoError(t, json.Unmarshal([]byte(`{"summary": "data engineer"}`), &p))
	p.ApplyDefaults()

	assert.NotNil(t, p.HardSkills)
	assert.NotNil(t, p.SoftSkills)
	assert.NotNil(t, p.Languages)
	assert.NotNil(t, p.Projects)
	assert.Equal(t, "data engineer", p.Summary)
}

func TestJobProfile_ApplyDefaults(t *testing.T) {
	var p JobProfile
	require.NoError(t, json.Unmarshal([]byte(`{"title": "Data Engineer"}`), &p))
	p.ApplyDefaults()

	assert.NotNil(t, p.HardSkillsRequired)
	assert.NotNil(t, p.SoftSkillsRequired)
	assert.NotNil(t, p.Missions)
}
