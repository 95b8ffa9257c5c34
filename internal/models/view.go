package models

// View models are read-only projections produced by the formatting paths.

type SalaryRange struct {
	Min         *int64  `json:"min"`
	Max         *int64  `json:"max"`
	Currency    string  `json:"currency"`
	DisplayText *string `json:"display_text"`
}

type ListCard struct {
	Badge           JobStatus `json:"badge"`
	StartedOnText   string    `json:"started_on_text"`
	CTA             string    `json:"cta"`
	CandidatesCount int64     `json:"candidates_count"`
}

type JobListItem struct {
	ID          string      `json:"id"`
	Slug        string      `json:"slug"`
	IDNum       int64       `json:"id_num"`
	Title       string      `json:"title"`
	Status      JobStatus   `json:"status"`
	CreatedAt   string      `json:"created_at"`
	SalaryRange SalaryRange `json:"salary_range"`
	ListCard    ListCard    `json:"list_card"`
}

type JobDetail struct {
	ID              int64       `json:"id"`
	Slug            string      `json:"slug"`
	Title           string      `json:"title"`
	Company         string      `json:"company"`
	Type            JobType     `json:"type"`
	Status          JobStatus   `json:"status"`
	Location        *string     `json:"location"`
	Description     *string     `json:"description"`
	Tags            []string    `json:"tags"`
	SalaryRange     SalaryRange `json:"salary_range"`
	CandidatesCount int64       `json:"candidates_count"`
	CreatedAt       string      `json:"created_at"`
}

type JobDetailView struct {
	Job             JobDetail               `json:"job"`
	ApplicationForm ApplicationForm         `json:"application_form"`
	FieldLevels     map[FieldKey]FieldLevel `json:"field_levels"`
}

type CandidateAttribute struct {
	Key   FieldKey `json:"key"`
	Label string   `json:"label"`
	Value *string  `json:"value"`
	Order int      `json:"order"`
}

type CandidateView struct {
	ID         string               `json:"id"`
	AppliedAt  string               `json:"applied_at"`
	Attributes []CandidateAttribute `json:"attributes"`
}

type CandidateList struct {
	Data []CandidateView `json:"data"`
}

// CandidateRow is the flattened shape used by the candidates table.
type CandidateRow struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Domicile     string `json:"domicile,omitempty"`
	Gender       string `json:"gender,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
	AppliedAt    string `json:"applied_at"`
	PhotoProfile string `json:"photo_profile,omitempty"`
}
