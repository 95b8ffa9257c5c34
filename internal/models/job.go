package models

import (
	"time"

	"gorm.io/datatypes"
)

type JobType string

const (
	JobFullTime  JobType = "Full-time"
	JobPartTime  JobType = "Part-time"
	JobIntern    JobType = "Intern"
	JobContract  JobType = "Contract"
	JobFreelance JobType = "Freelance"
)

type JobStatus string

const (
	JobActive   JobStatus = "active"
	JobInactive JobStatus = "inactive"
	JobDraft    JobStatus = "draft"
)

type Job struct {
	ID      int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Slug    string    `gorm:"column:slug;type:text;not null;default:'';index" json:"slug"`
	Title   string    `gorm:"column:title;type:text;index" json:"title"`
	Company string    `gorm:"column:company;type:text" json:"company"`
	Type    JobType   `gorm:"column:type;type:text" json:"type"`
	Status  JobStatus `gorm:"column:status;type:text;index" json:"status"`

	Location    *string `gorm:"column:location;type:text" json:"location"`
	MinSalary   *int64  `gorm:"column:min_salary" json:"min_salary"`
	MaxSalary   *int64  `gorm:"column:max_salary" json:"max_salary"`
	Description *string `gorm:"column:description;type:text" json:"description"`

	Tags      datatypes.JSONSlice[string] `gorm:"column:tags;not null;default:'[]'" json:"tags"`
	CreatedAt time.Time                   `gorm:"column:created_at;index" json:"created_at"`

	// denormalized, bumped once per submitted application
	CandidateCount int64                         `gorm:"column:candidate_count;not null;default:0" json:"candidate_count"`
	Config         datatypes.JSONType[JobConfig] `gorm:"column:config;not null;default:'{}'" json:"config"`
}

func (Job) TableName() string { return "jobs" }

// JobField is one configured applicant field of a job.
type JobField struct {
	ID    int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	JobID int64      `gorm:"column:job_id;not null;index" json:"job_id"`
	Key   FieldKey   `gorm:"column:key;type:text;index" json:"key"`
	Level FieldLevel `gorm:"column:level;type:text;index" json:"level"`
}

func (JobField) TableName() string { return "job_fields" }

type JobConfig struct {
	ApplicationForm ApplicationForm `json:"application_form"`
}

type ApplicationForm struct {
	Sections []FormSection `json:"sections"`
}

type FormSection struct {
	Title  string       `json:"title"`
	Fields []FormConfig `json:"fields"`
}

type FormConfig struct {
	Key        FieldKey        `json:"key"`
	Validation FieldValidation `json:"validation"`
}

type FieldValidation struct {
	Required bool `json:"required"`
}
