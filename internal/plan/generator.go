// Package plan generates the ordered interview question plan from a fit profile.
package plan

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/types"
)

// DefaultQuestionCount is the recommended interview length.
const DefaultQuestionCount = 8

// rawItem tolerates partial objects; filtering decides what survives.
type rawItem struct {
	Type     string `json:"type"`
	Topic    string `json:"topic"`
	Question string `json:"question"`
}

// Generate delegates question authorship to the LLM, then filters the result:
// items without a question are dropped silently, missing type defaults to
// "autre", missing topic to "". Order is preserved. The returned plan is
// best-effort - nQuestions is a target, never a guarantee, and an empty plan
// is a valid non-error outcome.
func Generate(ctx context.Context, client llm.Client, fit *types.FitProfile, interviewerStyle string, nQuestions int) (types.InterviewPlan, error) {
	if nQuestions < 1 {
		nQuestions = DefaultQuestionCount
	}

	prompt := prompts.Format(prompts.MustGet("interview.json", "plan"), map[string]string{
		"CVSummary":        fit.CV.Summary,
		"JobSummary":       fit.Job.Summary,
		"JobTitle":         fit.Job.Title,
		"Company":          fit.Job.Company,
		"OverlapHard":      strings.Join(fit.OverlapHardSkills, ", "),
		"MissingHard":      strings.Join(fit.MissingHardSkills, ", "),
		"OverlapSoft":      strings.Join(fit.OverlapSoftSkills, ", "),
		"MissingSoft":      strings.Join(fit.MissingSoftSkills, ", "),
		"InterviewerStyle": interviewerStyle,
		"NQuestions":       strconv.Itoa(nQuestions),
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	items, err := decodeItems(llm.CleanJSONBlock(raw))
	if err != nil {
		return nil, &llm.ParseError{Message: "interview plan is not valid JSON", Raw: raw, Cause: err}
	}

	return filterItems(items), nil
}

// decodeItems accepts either a JSON array or a single object, which gets
// wrapped as a one-element list.
func decodeItems(raw string) ([]rawItem, error) {
	var items []rawItem
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return items, nil
	}

	var single rawItem
	if err := json.Unmarshal([]byte(raw), &single); err != nil {
		return nil, err
	}
	return []rawItem{single}, nil
}

func filterItems(items []rawItem) types.InterviewPlan {
	result := make(types.InterviewPlan, 0, len(items))
	for _, item := range items {
		question := strings.TrimSpace(item.Question)
		if question == "" {
			continue
		}

		qType := types.QuestionType(strings.TrimSpace(item.Type))
		if qType == "" {
			qType = types.TypeAutre
		}

		result = append(result, types.QuestionItem{
			Type:     qType,
			Topic:    strings.TrimSpace(item.Topic),
			Question: question,
		})
	}
	return result
}
