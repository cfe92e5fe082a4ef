package audit

import (
	"context"
	"time"

	"github.com/gigante-rh/talent-intake/pkg/logger"
)

type ServiceAPI interface {
	RecorderAPI
	List(ctx context.Context, limit int) ([]Entry, error)
}

type RepositoryAPI interface {
	Insert(ctx context.Context, entry *Entry) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}

const defaultListLimit = 100

type Service struct {
	repo RepositoryAPI
}

func NewService(repo RepositoryAPI) *Service {
	return &Service{repo: repo}
}

// Record writes an audit entry in the background. The audited operation
// already happened; a logging failure must not undo or delay it.
func (s *Service) Record(ctx context.Context, userID int64, action, target string) {
	entry := &Entry{
		UserID:    userID,
		Action:    action,
		Target:    target,
		CreatedAt: time.Now().UTC(),
	}

	lg := logger.From(ctx)
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.Insert(bgCtx, entry); err != nil {
			lg.Error("audit entry dropped",
				"user_id", userID,
				"action", action,
				"target", target,
				"error", err)
		}
	}()
}

// List returns the most recent entries, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	entries, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
