package refdata

import (
	"context"
	"strings"

	"github.com/gigante-rh/talent-intake/internal/audit"
	"github.com/gigante-rh/talent-intake/pkg/logger"
)

type ServiceAPI interface {
	List(ctx context.Context, kind Kind) ([]ReferenceItem, error)
	Add(ctx context.Context, kind Kind, name string, actorID int64) (*ReferenceItem, error)
	Remove(ctx context.Context, kind Kind, id int64, actorID int64) error
}

type RepositoryAPI interface {
	List(ctx context.Context, kind Kind) ([]ReferenceItem, error)
	ExistsByName(ctx context.Context, kind Kind, name string) (bool, error)
	Create(ctx context.Context, kind Kind, item *ReferenceItem) error
	Delete(ctx context.Context, kind Kind, id int64) error
}

type Service struct {
	repo    RepositoryAPI
	auditor audit.RecorderAPI
}

func NewService(repo RepositoryAPI, auditor audit.RecorderAPI) *Service {
	return &Service{repo: repo, auditor: auditor}
}

// List returns all items of a reference table sorted by name.
func (s *Service) List(ctx context.Context, kind Kind) ([]ReferenceItem, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	items, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []ReferenceItem{}
	}
	return items, nil
}

// Add inserts a new reference item. Names are deduplicated without regard
// to case so "campinas" cannot join an existing "Campinas".
func (s *Service) Add(ctx context.Context, kind Kind, name string, actorID int64) (*ReferenceItem, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	exists, err := s.repo.ExistsByName(ctx, kind, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	item := &ReferenceItem{Name: name}
	if err := s.repo.Create(ctx, kind, item); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, actorID, audit.ActionAddReference, string(kind)+":"+name)
	logger.From(ctx).Info("reference item added", "kind", kind, "name", name, "actor_id", actorID)

	return item, nil
}

// Remove deletes a reference item by id. Existing submissions keep their
// city and job title strings; removal only affects future form options.
func (s *Service) Remove(ctx context.Context, kind Kind, id int64, actorID int64) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return err
	}

	s.auditor.Record(ctx, actorID, audit.ActionRemoveReference, string(kind))
	logger.From(ctx).Info("reference item removed", "kind", kind, "id", id, "actor_id", actorID)

	return nil
}
