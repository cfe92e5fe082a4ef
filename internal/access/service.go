package access

import (
	"context"
	"fmt"

	"github.com/gigante-rh/talent-intake/pkg/logger"
)

type ServiceAPI interface {
	Resolve(ctx context.Context, userID int64) (*Access, error)
}

type RepositoryAPI interface {
	GetRecord(ctx context.Context, userID int64) (*AccessRecord, error)
	GetCityGrants(ctx context.Context, userID int64) ([]string, error)
	GetStoreGrants(ctx context.Context, userID int64) ([]string, error)
}

type Service struct {
	repo RepositoryAPI
}

func NewService(repo RepositoryAPI) *Service {
	return &Service{repo: repo}
}

// Resolve loads the caller's access record and grants. It returns (nil, nil)
// when the user has no record or the record is deactivated: absence of
// access is not an error, it is a verdict. A backend failure is reported as
// an error so callers can distinguish "denied" from "unknown".
func (s *Service) Resolve(ctx context.Context, userID int64) (*Access, error) {
	record, err := s.repo.GetRecord(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if record == nil || !record.IsActive {
		return nil, nil
	}

	acc := &Access{Record: *record, Cities: []string{}, Stores: []string{}}
	if record.Role == RoleAdmin {
		return acc, nil
	}

	cities, err := s.repo.GetCityGrants(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	stores, err := s.repo.GetStoreGrants(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if cities != nil {
		acc.Cities = cities
	}
	if stores != nil {
		acc.Stores = stores
	}

	logger.From(ctx).Debug("resolved access",
		"user_id", userID,
		"role", record.Role,
		"cities", len(acc.Cities),
		"stores", len(acc.Stores))

	return acc, nil
}
