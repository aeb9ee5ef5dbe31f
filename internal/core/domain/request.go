package domain

import (
	"encoding/json"
	"fmt"
)

// Persona describes who the ranking is for.
type Persona struct {
	Role string `json:"role"`

	// roleSet records a decoded "role" key, so an explicit empty role is told apart from none.
	roleSet bool
}

// UnmarshalJSON decodes a persona, noting whether the role key was present.
func (p *Persona) UnmarshalJSON(data []byte) error {
	var aux struct {
		Role *string `json:"role"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Persona{}
	if aux.Role != nil {
		p.Role, p.roleSet = *aux.Role, true
	}
	return nil
}

// HasRole reports whether a role was given, even an empty one.
func (p Persona) HasRole() bool {
	return p.roleSet || p.Role != ""
}

// Constraints are hard keyword filters applied before ranking.
type Constraints struct {
	IncludeKeywords []string `json:"include_keywords,omitempty"`
	ExcludeKeywords []string `json:"exclude_keywords,omitempty"`
}

// JobToBeDone is the task the persona wants to accomplish.
type JobToBeDone struct {
	Task        string       `json:"task"`
	Constraints *Constraints `json:"constraints,omitempty"`

	taskSet bool
}

// UnmarshalJSON decodes a job, noting whether the task key was present.
func (j *JobToBeDone) UnmarshalJSON(data []byte) error {
	var aux struct {
		Task        *string      `json:"task"`
		Constraints *Constraints `json:"constraints"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*j = JobToBeDone{Constraints: aux.Constraints}
	if aux.Task != nil {
		j.Task, j.taskSet = *aux.Task, true
	}
	return nil
}

// HasTask reports whether a task was given, even an empty one.
func (j JobToBeDone) HasTask() bool {
	return j.taskSet || j.Task != ""
}

// EffectiveConstraints returns the job's constraints, or no constraints when absent.
func (j JobToBeDone) EffectiveConstraints() Constraints {
	if j.Constraints == nil {
		return Constraints{}
	}
	return *j.Constraints
}

// DocumentRef names one input document of a collection.
type DocumentRef struct {
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"`
}

// AnalysisRequest is the input artifact of a run.
type AnalysisRequest struct {
	ChallengeInfo map[string]any `json:"challenge_info,omitempty"`
	Documents     []DocumentRef  `json:"documents"`
	Persona       Persona        `json:"persona"`
	JobToBeDone   JobToBeDone    `json:"job_to_be_done"`
}

// Filenames returns the referenced file names in input order.
func (r AnalysisRequest) Filenames() []string {
	names := make([]string, 0, len(r.Documents))
	for _, d := range r.Documents {
		names = append(names, d.Filename)
	}
	return names
}

// ValidateQuery checks the fields needed to build the ranking query.
// Only absent fields are malformed; an empty role or task still builds a query.
func ValidateQuery(persona Persona, job JobToBeDone) error {
	if !persona.HasRole() {
		return fmt.Errorf("%w: persona.role is required", ErrMalformedInput)
	}
	if !job.HasTask() {
		return fmt.Errorf("%w: job_to_be_done.task is required", ErrMalformedInput)
	}
	return nil
}

// Query builds the semantic anchor "{role}: {task}".
func Query(persona Persona, job JobToBeDone) string {
	return persona.Role + ": " + job.Task
}
