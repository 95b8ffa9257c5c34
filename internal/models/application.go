package models

import "time"

const ApplicationSubmitted = "submitted"

type Application struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	JobID     int64     `gorm:"column:job_id;not null;index" json:"job_id"`
	Status    string    `gorm:"column:status;type:text" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (Application) TableName() string { return "applications" }

// Answer holds the raw submitted value of one field. Value is JSON text so
// strings, numbers and structured payloads survive the round trip as-is.
type Answer struct {
	ID            int64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ApplicationID int64    `gorm:"column:application_id;not null;index" json:"application_id"`
	Key           FieldKey `gorm:"column:key;type:text;index" json:"key"`
	Value         string   `gorm:"column:value;type:text;not null" json:"value"`
}

func (Answer) TableName() string { return "application_answers" }
