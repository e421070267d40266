// Package profile builds the skills-gap profile from a CV and a job posting.
package profile

import (
	"context"
	"encoding/json"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/types"
)

// ExtractCandidateProfile uses the LLM to pull structured information out of
// raw CV text. Missing fields in an otherwise well-formed response are
// defaulted locally; an undecodable response is a ParseError.
func ExtractCandidateProfile(ctx context.Context, client llm.Client, cvText string) (*types.CandidateProfile, error) {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "extract-cv"), map[string]string{
		"CVText": cvText,
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, err
	}

	var extracted types.CandidateProfile
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &extracted); err != nil {
		return nil, &llm.ParseError{Message: "candidate profile is not valid JSON", Raw: raw, Cause: err}
	}

	extracted.ApplyDefaults()
	return &extracted, nil
}

// ExtractJobProfile uses the LLM to pull structured information out of a raw
// job posting. Same failure contract as ExtractCandidateProfile.
func ExtractJobProfile(ctx context.Context, client llm.Client, jobText string) (*types.JobProfile, error) {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "extract-job"), map[string]string{
		"JobText": jobText,
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, err
	}

	var extracted types.JobProfile
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &extracted); err != nil {
		return nil, &llm.ParseError{Message: "job profile is not valid JSON", Raw: raw, Cause: err}
	}

	extracted.ApplyDefaults()
	return &extracted, nil
}
