package types

// FitProfile is the structured overlap/gap comparison between a candidate and
// a job, plus a narrative fit summary. Built once per session by the profile
// builder; read-only afterward.
//
// Invariants: OverlapHardSkills and MissingHardSkills are disjoint, their
// union is a subset of the normalized job requirements, and the overlap is a
// subset of the normalized CV skills. Both lists are sorted for reproducible
// output. The same holds for the soft-skill pair.
type FitProfile struct {
	CV  CandidateProfile `json:"cv"`
	Job JobProfile       `json:"job"`

	OverlapHardSkills []string `json:"overlap_hard_skills"`
	MissingHardSkills []string `json:"missing_hard_skills"`
	OverlapSoftSkills []string `json:"overlap_soft_skills"`
	MissingSoftSkills []string `json:"missing_soft_skills"`

	FitSummary string `json:"fit_summary"`
}
