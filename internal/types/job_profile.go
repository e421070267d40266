package types

// JobProfile represents a structured job posting extracted from raw text.
// Same lifecycle as CandidateProfile: extracted once, read-only afterward.
type JobProfile struct {
	Title              string   `json:"title"`
	Company            string   `json:"company"`
	Location           string   `json:"location"`
	HardSkillsRequired []string `json:"hard_skills_required"`
	SoftSkillsRequired []string `json:"soft_skills_required"`
	Missions           []string `json:"missions"`
	Summary            string   `json:"summary"`
}

// ApplyDefaults replaces nil collections with empty ones.
func (p *JobProfile) ApplyDefaults() {
	if p.HardSkillsRequired == nil {
		p.HardSkillsRequired = []string{}
	}
	if p.SoftSkillsRequired == nil {
		p.SoftSkillsRequired = []string{}
	}
	if p.Missions == nil {
		p.Missions = []string{}
	}
}
