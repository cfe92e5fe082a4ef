package user

import (
	"context"
	"fmt"

	"github.com/gigante-rh/talent-intake/internal/access"
	"github.com/gigante-rh/talent-intake/internal/audit"
	"github.com/gigante-rh/talent-intake/internal/auth"
	"github.com/gigante-rh/talent-intake/pkg/logger"
)

type ServiceAPI interface {
	CreateAccount(ctx context.Context, actorID int64, dto CreateUserDTO) (*CreatedAccount, error)
	ListAccounts(ctx context.Context) ([]Account, error)
	ToggleActive(ctx context.Context, actorID, userID int64, isActive bool) error
	UpdateCities(ctx context.Context, actorID, userID int64, cities []string) error
	UpdateStores(ctx context.Context, actorID, userID int64, stores []string) error
}

type RepositoryAPI interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateIdentity(ctx context.Context, identity *Identity) error
	CreateAccessRecord(ctx context.Context, record *access.AccessRecord) error
	ListAccounts(ctx context.Context) ([]Account, error)
	SetActive(ctx context.Context, userID int64, isActive bool) error
	ReplaceCityGrants(ctx context.Context, userID int64, cities []string) error
	ReplaceStoreGrants(ctx context.Context, userID int64, stores []string) error
}

// PasswordHasherAPI is the slice of the auth service that account creation
// needs.
type PasswordHasherAPI interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo    RepositoryAPI
	hasher  PasswordHasherAPI
	auditor audit.RecorderAPI
}

func NewService(repo RepositoryAPI, hasher PasswordHasherAPI, auditor audit.RecorderAPI) *Service {
	return &Service{repo: repo, hasher: hasher, auditor: auditor}
}

// CreateAccount provisions an identity, its access record and its grants.
// The steps are deliberately not transactional: a failure after the record
// exists leaves a usable account with missing grants, reported as warnings,
// rather than rolling back a login the admin may already have handed out.
func (s *Service) CreateAccount(ctx context.Context, actorID int64, dto CreateUserDTO) (*CreatedAccount, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, dto.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	password := dto.Password
	generated := ""
	if password == "" {
		password, err = auth.GeneratePassword()
		if err != nil {
			return nil, fmt.Errorf("generate password: %w", err)
		}
		generated = password
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	identity := &Identity{Email: dto.Email, PasswordHash: hash}
	if err := s.repo.CreateIdentity(ctx, identity); err != nil {
		return nil, fmt.Errorf("create identity: %w", err)
	}

	record := &access.AccessRecord{
		UserID:    identity.ID,
		Email:     dto.Email,
		Role:      dto.Role,
		CreatedBy: &actorID,
		IsActive:  true,
	}
	if err := s.repo.CreateAccessRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("create access record: %w", err)
	}

	var warnings []string
	if len(dto.Cities) > 0 {
		if err := s.repo.ReplaceCityGrants(ctx, identity.ID, dto.Cities); err != nil {
			warnings = append(warnings, "city grants could not be saved: "+err.Error())
		}
	}
	if len(dto.Stores) > 0 {
		if err := s.repo.ReplaceStoreGrants(ctx, identity.ID, dto.Stores); err != nil {
			warnings = append(warnings, "store grants could not be saved: "+err.Error())
		}
	}

	s.auditor.Record(ctx, actorID, audit.ActionCreateUser, dto.Email)

	lg := logger.From(ctx)
	lg.Info("account created", "user_id", identity.ID, "email", dto.Email, "role", dto.Role)
	for _, warning := range warnings {
		lg.Warn("account created with degraded grants", "user_id", identity.ID, "warning", warning)
	}

	return &CreatedAccount{
		Account: Account{
			UserID:   identity.ID,
			Email:    dto.Email,
			Role:     dto.Role,
			IsActive: true,
			Cities:   dto.Cities,
			Stores:   dto.Stores,
		},
		GeneratedPassword: generated,
		Warnings:          warnings,
	}, nil
}

// ListAccounts returns all dashboard accounts with their grants.
func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []Account{}
	}
	return accounts, nil
}

// ToggleActive activates or deactivates an account. Deactivation takes
// effect on the user's next request because access is resolved per request.
func (s *Service) ToggleActive(ctx context.Context, actorID, userID int64, isActive bool) error {
	if err := s.repo.SetActive(ctx, userID, isActive); err != nil {
		return err
	}

	s.auditor.Record(ctx, actorID, audit.ActionToggleUser, fmt.Sprintf("user:%d active:%t", userID, isActive))
	return nil
}

// UpdateCities replaces the user's city grants with the given set.
func (s *Service) UpdateCities(ctx context.Context, actorID, userID int64, cities []string) error {
	if err := s.repo.ReplaceCityGrants(ctx, userID, cities); err != nil {
		return err
	}

	s.auditor.Record(ctx, actorID, audit.ActionUpdateCities, fmt.Sprintf("user:%d", userID))
	return nil
}

// UpdateStores replaces the user's store grants with the given set.
func (s *Service) UpdateStores(ctx context.Context, actorID, userID int64, stores []string) error {
	if err := s.repo.ReplaceStoreGrants(ctx, userID, stores); err != nil {
		return err
	}

	s.auditor.Record(ctx, actorID, audit.ActionUpdateStores, fmt.Sprintf("user:%d", userID))
	return nil
}
