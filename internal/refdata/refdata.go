package refdata

import (
	"errors"
	"time"
)

// Kind selects one of the reference tables backing the public form and the
// dashboard filters.
type Kind string

const (
	KindCities    Kind = "cities"
	KindJobTitles Kind = "job_titles"
	KindStores    Kind = "stores"
)

func (k Kind) Valid() bool {
	switch k {
	case KindCities, KindJobTitles, KindStores:
		return true
	}
	return false
}

var (
	ErrUnknownKind   = errors.New("unknown reference kind")
	ErrDuplicateName = errors.New("reference name already exists")
	ErrEmptyName     = errors.New("reference name is required")
	ErrNotFound      = errors.New("reference item not found")
)

// ReferenceItem is one entry of a reference table. All three tables share
// this shape.
type ReferenceItem struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
