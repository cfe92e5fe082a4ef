package submission

import (
	"strings"

	"github.com/gigante-rh/talent-intake/internal"
)

// maxFileSize bounds the resume upload. The relay re-encodes the file as
// base64, so oversized files would also blow up the relay payload.
const maxFileSize = 10 << 20

var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// CreateSubmissionDTO carries the public form fields plus the uploaded file.
type CreateSubmissionDTO struct {
	Name     string
	Email    string
	Phone    string
	City     string
	JobTitle string
	Pitch    string
	FileName string
	MimeType string
	FileData []byte
}

func (d *CreateSubmissionDTO) Validate() error {
	var errs []string

	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.City = strings.TrimSpace(d.City)
	d.JobTitle = strings.TrimSpace(d.JobTitle)
	d.Pitch = strings.TrimSpace(d.Pitch)

	if d.Name == "" {
		errs = append(errs, "name is required")
	}
	if d.Email == "" || !strings.Contains(d.Email, "@") {
		errs = append(errs, "a valid email is required")
	}
	if d.Phone == "" {
		errs = append(errs, "phone is required")
	}
	if d.City == "" {
		errs = append(errs, "city is required")
	}
	if d.JobTitle == "" {
		errs = append(errs, "job title is required")
	}
	if len(d.FileData) == 0 {
		errs = append(errs, "resume file is required")
	}
	if len(d.FileData) > maxFileSize {
		errs = append(errs, "resume file exceeds the 10MB limit")
	}
	if len(d.FileData) > 0 && !allowedMimeTypes[d.MimeType] {
		errs = append(errs, "resume must be a PDF or Word document")
	}

	if len(errs) > 0 {
		return internal.NewValidationError(strings.Join(errs, "; "), internal.ErrCodeValidationFailed)
	}
	return nil
}
