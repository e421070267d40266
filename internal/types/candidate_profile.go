// Package types provides type definitions for structured data used throughout the interview-coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateProfile represents the structured information extracted from a CV.
// It is produced once by the extraction step and immutable afterward.
type CandidateProfile struct {
	HardSkills []string  `json:"hard_skills"`
	SoftSkills []string  `json:"soft_skills"`
	Languages  []string  `json:"languages"`
	Projects   []Project `json:"projects"`
	Summary    string    `json:"summary"`
}

// Project represents a single project entry from a CV
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ApplyDefaults replaces nil collections with empty ones so that a profile
// parsed from a response with missing keys never carries partial shape.
func (p *CandidateProfile) ApplyDefaults() {
	if p.HardSkills == nil {
		p.HardSkills = []string{}
	}
	if p.SoftSkills == nil {
		p.SoftSkills = []string{}
	}
	if p.Languages == nil {
		p.Languages = []string{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
}
