package submission

import (
	"errors"
	"time"
)

// StorageKind records where a submission's resume file lives.
const (
	StorageExternalDrive = "drive"
	StorageInternal      = "internal"
)

// StatusNew is the intake status of every fresh submission.
const StatusNew = "novo"

var (
	ErrNotFound  = errors.New("submission not found")
	ErrNoFileURL = errors.New("submission has no file link")
)

// Submission is one resume intake from the public form.
type Submission struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	City        string    `json:"city"`
	JobTitle    string    `json:"job_title" gorm:"column:job_title"`
	Pitch       string    `json:"pitch"`
	FileURL     string    `json:"file_url" gorm:"column:file_url"`
	FileID      string    `json:"file_id" gorm:"column:file_id"`
	StorageKind string    `json:"storage_kind" gorm:"column:storage_kind"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Filter narrows a listing. Cities is the visibility scope resolved from
// the caller's grants; nil means unrestricted. The remaining fields are the
// dashboard's optional filters.
type Filter struct {
	Cities   []string
	City     string
	JobTitle string
	Store    string
}
