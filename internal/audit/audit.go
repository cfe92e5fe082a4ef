package audit

import (
	"context"
	"time"
)

// Action names mirror what the dashboard displays in the activity view.
const (
	ActionView            = "view"
	ActionDownload        = "download"
	ActionCreateUser      = "create_user"
	ActionToggleUser      = "toggle_user"
	ActionUpdateCities    = "update_user_cities"
	ActionUpdateStores    = "update_user_stores"
	ActionAddReference    = "add_reference"
	ActionRemoveReference = "remove_reference"
)

// Entry is one audit log row. Target identifies what was acted on, in a
// human-readable form (a submission id, an email, "cities:Campinas").
type Entry struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"column:user_id"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}

func (Entry) TableName() string {
	return "audit_logs"
}

// RecorderAPI is the write side of the audit log. Recording never blocks
// the operation being audited and never surfaces an error to it.
type RecorderAPI interface {
	Record(ctx context.Context, userID int64, action, target string)
}
