package access

import (
	"errors"
	"time"
)

// Role is the dashboard role attached to an access record.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleRecruiter
}

var (
	ErrBackendUnavailable = errors.New("access backend unavailable")
)

// AccessRecord is one row of the access_records table. A user without a
// record, or with an inactive one, has no dashboard access at all.
type AccessRecord struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"column:user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedBy *int64    `json:"created_by,omitempty" gorm:"column:created_by"`
	IsActive  bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AccessRecord) TableName() string {
	return "access_records"
}

// Access is a resolved access record together with its grants. Grants are
// only meaningful for recruiters; admins see everything.
type Access struct {
	Record AccessRecord `json:"record"`
	Cities []string     `json:"cities"`
	Stores []string     `json:"stores"`
}

func (a *Access) IsAdmin() bool {
	return a.Record.Role == RoleAdmin
}

// VisibleCities returns the set of cities this access may see. The second
// return is false when visibility is unrestricted (admin).
func (a *Access) VisibleCities() ([]string, bool) {
	if a.IsAdmin() {
		return nil, false
	}
	return a.Cities, true
}

// CanSeeCity reports whether submissions from the given city are visible.
func (a *Access) CanSeeCity(city string) bool {
	cities, restricted := a.VisibleCities()
	if !restricted {
		return true
	}
	for _, c := range cities {
		if c == city {
			return true
		}
	}
	return false
}
