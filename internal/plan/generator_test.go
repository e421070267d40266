package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/types"
)

type stubClient struct {
	response string
	err      error
}

func (s *stubClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return s.response, s.err
}

func (s *stubClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return s.response, s.err
}

func (s *stubClient) GetModel(llm.ModelTier) string { return "stub" }
func (s *stubClient) Close() error                  { return nil }

func testProfile() *types.FitProfile {
	return &types.FitProfile{
		CV:                types.CandidateProfile{Summary: "data engineer, 3y experience"},
		Job:               types.JobProfile{Title: "Data Engineer", Company: "Acme", Summary: "pipelines role"},
		OverlapHardSkills: []string{"python", "sql"},
		MissingHardSkills: []string{"airflow"},
	}
}

func TestGenerate_FiltersMalformedItems(t *testing.T) {
	client := &stubClient{response: `[
		{"type": "intro", "topic": "presentation", "question": "Tell me about yourself."},
		{"type": "technique", "topic": "python"},
		{"type": "technique", "topic": "sql", "question": "  What is a CTE?  "},
		{"topic": "empty question", "question": "   "},
		{"type": "conclusion", "question": "Any questions for us?"}
	]`}

	result, err := Generate(context.Background(), client, testProfile(), "direct technical manager", 5)
	require.NoError(t, err)

	require.Len(t, result, 3)
	assert.Equal(t, "Tell me about yourself.", result[0].Question)
	assert.Equal(t, "What is a CTE?", result[1].Question)
	assert.Equal(t, types.TypeConclusion, result[2].Type)
}

func TestGenerate_DefaultsTypeAndTopic(t *testing.T) {
	client := &stubClient{response: `[{"question": "Why this company?"}]`}

	result, err := Generate(context.Background(), client, testProfile(), "", 1)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, types.TypeAutre, result[0].Type)
	assert.Empty(t, result[0].Topic)
}

func TestGenerate_WrapsSingleObject(t *testing.T) {
	client := &stubClient{response: `{"type": "intro", "question": "Present yourself."}`}

	result, err := Generate(context.Background(), client, testProfile(), "", 8)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, types.TypeIntro, result[0].Type)
}

func TestGenerate_PreservesOrder(t *testing.T) {
	client := &stubClient{response: `[
		{"type": "conclusion", "question": "q1"},
		{"type": "intro", "question": "q2"},
		{"type": "technique", "question": "q3"}
	]`}

	result, err := Generate(context.Background(), client, testProfile(), "", 3)
	require.NoError(t, err)

	require.Len(t, result, 3)
	assert.Equal(t, "q1", result[0].Question)
	assert.Equal(t, "q2", result[1].Question)
	assert.Equal(t, "q3", result[2].Question)
}

func TestGenerate_AllMalformedYieldsEmptyPlan(t *testing.T) {
	client := &stubClient{response: `[{"type": "intro"}, {"topic": "x"}]`}

	result, err := Generate(context.Background(), client, testProfile(), "", 2)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestGenerate_FencedResponse(t *testing.T) {
	client := &stubClient{response: "```json\n[{\"type\": \"intro\", \"question\": \"hi\"}]\n```"}

	result, err := Generate(context.Background(), client, testProfile(), "", 1)
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestGenerate_InvalidJSONIsParseError(t *testing.T) {
	client := &stubClient{response: `here are your questions: 1...`}

	result, err := Generate(context.Background(), client, testProfile(), "", 8)
	assert.Nil(t, result)
	assert.True(t, llm.IsParseError(err))
}

func TestGenerate_TransportErrorPropagates(t *testing.T) {
	client := &stubClient{err: &llm.APICallError{Message: "unreachable"}}

	_, err := Generate(context.Background(), client, testProfile(), "", 8)
	var apiErr *llm.APICallError
	assert.ErrorAs(t, err, &apiErr)
}
