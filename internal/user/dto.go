package user

import (
	"strings"

	"github.com/gigante-rh/talent-intake/internal"
	"github.com/gigante-rh/talent-intake/internal/access"
)

type CreateUserDTO struct {
	Email    string      `json:"email"`
	Password string      `json:"password,omitempty"`
	Role     access.Role `json:"role"`
	Cities   []string    `json:"cities"`
	Stores   []string    `json:"stores"`
}

func (d *CreateUserDTO) Validate() error {
	var errs []string

	d.Email = strings.TrimSpace(strings.ToLower(d.Email))
	if d.Email == "" || !strings.Contains(d.Email, "@") {
		errs = append(errs, "a valid email is required")
	}
	if !d.Role.Valid() {
		errs = append(errs, "role must be admin or recruiter")
	}
	if d.Password != "" && len(d.Password) < 8 {
		errs = append(errs, "password must have at least 8 characters")
	}

	if len(errs) > 0 {
		return internal.NewValidationError(strings.Join(errs, "; "), internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateGrantsDTO struct {
	Values []string `json:"values"`
}

type ToggleActiveDTO struct {
	IsActive bool `json:"is_active"`
}
