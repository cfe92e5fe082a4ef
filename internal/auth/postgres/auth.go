package postgres

import (
	"github.com/gigante-rh/talent-intake/internal/auth"
	"gorm.io/gorm"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AuthRepository{db: db}
}

// GetCredentials joins the identity row with its access record so the
// service can reject inactive accounts at sign-in.
func (r *AuthRepository) GetCredentials(email string) (*auth.Credentials, error) {
	var creds auth.Credentials
	err := r.db.
		Table("users").
		Select("users.id AS user_id, users.email, users.password_hash, COALESCE(access_records.is_active, false) AS is_active").
		Joins("LEFT JOIN access_records ON access_records.user_id = users.id").
		Where("LOWER(users.email) = LOWER(?)", email).
		Take(&creds).Error
	if err != nil {
		return nil, err
	}
	return &creds, nil
}
