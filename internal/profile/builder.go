package profile

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/parsing"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/types"
)

// Build combines CV and job extractions into an overlap/gap skills profile
// plus a narrative fit summary. The two extractions are independent and run
// concurrently; the overlap computation waits for both. Either extraction
// failing aborts the whole build - no partial FitProfile is ever returned.
func Build(ctx context.Context, client llm.Client, cvText, jobText string) (*types.FitProfile, error) {
	var (
		cv  *types.CandidateProfile
		job *types.JobProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		extracted, err := ExtractCandidateProfile(gctx, client, cvText)
		if err != nil {
			return err
		}
		cv = extracted
		return nil
	})
	g.Go(func() error {
		extracted, err := ExtractJobProfile(gctx, client, jobText)
		if err != nil {
			return err
		}
		job = extracted
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cvHard := parsing.NormalizeSkills(cv.HardSkills)
	jobHard := parsing.NormalizeSkills(job.HardSkillsRequired)
	cvSoft := parsing.NormalizeSkills(cv.SoftSkills)
	jobSoft := parsing.NormalizeSkills(job.SoftSkillsRequired)

	fit := &types.FitProfile{
		CV:                *cv,
		Job:               *job,
		OverlapHardSkills: parsing.Intersect(cvHard, jobHard),
		MissingHardSkills: parsing.Difference(jobHard, cvHard),
		OverlapSoftSkills: parsing.Intersect(cvSoft, jobSoft),
		MissingSoftSkills: parsing.Difference(jobSoft, cvSoft),
	}

	summary, err := generateFitSummary(ctx, client, fit)
	if err != nil {
		return nil, err
	}
	fit.FitSummary = summary

	return fit, nil
}

// generateFitSummary asks the LLM for the narrative fit paragraph. It strictly
// follows the overlap computation since it consumes its output.
func generateFitSummary(ctx context.Context, client llm.Client, fit *types.FitProfile) (string, error) {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "fit-summary"), map[string]string{
		"CVSummary":   fit.CV.Summary,
		"JobSummary":  fit.Job.Summary,
		"OverlapHard": joinSkills(fit.OverlapHardSkills),
		"MissingHard": joinSkills(fit.MissingHardSkills),
		"OverlapSoft": joinSkills(fit.OverlapSoftSkills),
		"MissingSoft": joinSkills(fit.MissingSoftSkills),
	})

	summary, err := client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

func joinSkills(skills []string) string {
	if len(skills) == 0 {
		return "(none)"
	}
	return strings.Join(skills, ", ")
}
