package submission

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gigante-rh/talent-intake/internal/access"
	"github.com/gigante-rh/talent-intake/internal/audit"
	"github.com/gigante-rh/talent-intake/internal/filerelay"
	"github.com/gigante-rh/talent-intake/internal/insights"
	"github.com/gigante-rh/talent-intake/internal/sheets"
	"github.com/gigante-rh/talent-intake/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto CreateSubmissionDTO) (*Submission, error)
	List(ctx context.Context, acc *access.Access, filter Filter) ([]Submission, error)
	Stats(ctx context.Context, acc *access.Access, filter Filter) (*KPIStats, error)
	Get(ctx context.Context, acc *access.Access, actorID, id int64) (*Submission, error)
	FileURL(ctx context.Context, acc *access.Access, actorID, id int64) (string, error)
	Insights(ctx context.Context, acc *access.Access, id int64) (string, error)
	Export(ctx context.Context, acc *access.Access, filter Filter) ([]sheets.Row, error)
}

type RepositoryAPI interface {
	Create(ctx context.Context, sub *Submission) error
	List(ctx context.Context, filter Filter) ([]Submission, error)
	GetByID(ctx context.Context, id int64) (*Submission, error)
}

type Service struct {
	repo     RepositoryAPI
	relay    filerelay.ClientAPI
	analyzer insights.ClientAPI
	sink     sheets.SinkAPI
	auditor  audit.RecorderAPI
}

func NewService(
	repo RepositoryAPI,
	relay filerelay.ClientAPI,
	analyzer insights.ClientAPI,
	sink sheets.SinkAPI,
	auditor audit.RecorderAPI,
) *Service {
	return &Service{
		repo:     repo,
		relay:    relay,
		analyzer: analyzer,
		sink:     sink,
		auditor:  auditor,
	}
}

// Create runs the intake pipeline: validate, relay the file to external
// storage, persist the submission, then mirror it to the CSV export. The
// first two steps abort the intake on failure; once the submission is
// persisted, a failing mirror only logs a warning because the candidate's
// data is already safe.
func (s *Service) Create(ctx context.Context, dto CreateSubmissionDTO) (*Submission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	uploaded, err := s.relay.Upload(ctx, filerelay.UploadRequest{
		FileName: dto.FileName,
		MimeType: dto.MimeType,
		Data:     dto.FileData,
		Name:     dto.Name,
		City:     dto.City,
		JobTitle: dto.JobTitle,
	})
	if err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}

	pitch := dto.Pitch
	if pitch == "" && dto.MimeType == "application/pdf" {
		// no written pitch, mine the resume text so the assessment
		// endpoint still has something to work with
		if text, extractErr := insights.ExtractPDFText(dto.FileData); extractErr == nil {
			pitch = text
		} else {
			logger.From(ctx).Debug("resume text extraction failed", "error", extractErr)
		}
	}

	sub := &Submission{
		Name:        dto.Name,
		Email:       dto.Email,
		Phone:       dto.Phone,
		City:        dto.City,
		JobTitle:    dto.JobTitle,
		Pitch:       pitch,
		FileURL:     uploaded.URL,
		FileID:      uploaded.ID,
		StorageKind: StorageExternalDrive,
		Status:      StatusNew,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("persist submission: %w", err)
	}

	if s.sink != nil {
		if err := s.sink.Append(sheets.Row{
			Name:      sub.Name,
			City:      sub.City,
			JobTitle:  sub.JobTitle,
			FileURL:   sub.FileURL,
			CreatedAt: sub.CreatedAt,
		}); err != nil {
			logger.From(ctx).Warn("csv mirror append failed", "submission_id", sub.ID, "error", err)
		}
	}

	logger.From(ctx).Info("submission received",
		"submission_id", sub.ID,
		"city", sub.City,
		"job_title", sub.JobTitle)

	return sub, nil
}

// List returns the submissions visible to the given access, applying the
// dashboard filters on top. Client filters are intersected with the
// caller's grants so a forged city filter cannot widen visibility.
func (s *Service) List(ctx context.Context, acc *access.Access, filter Filter) ([]Submission, error) {
	scoped, empty := s.scopeFilter(acc, filter)
	if empty {
		return []Submission{}, nil
	}

	// Submissions do not carry a store, so the store filter cannot narrow
	// the query. It is kept for parity with the dashboard controls.
	if filter.Store != "" {
		logger.From(ctx).Debug("store filter ignored for listing", "store", filter.Store)
	}

	subs, err := s.repo.List(ctx, scoped)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []Submission{}
	}
	return subs, nil
}

// Stats aggregates KPIs over the same visibility scope as List.
func (s *Service) Stats(ctx context.Context, acc *access.Access, filter Filter) (*KPIStats, error) {
	subs, err := s.List(ctx, acc, filter)
	if err != nil {
		return nil, err
	}
	return Aggregate(subs), nil
}

// Get loads one submission, re-checking that its city is visible to the
// caller, and records a view audit entry.
func (s *Service) Get(ctx context.Context, acc *access.Access, actorID, id int64) (*Submission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil || !acc.CanSeeCity(sub.City) {
		return nil, ErrNotFound
	}

	s.auditor.Record(ctx, actorID, audit.ActionView, "submission:"+strconv.FormatInt(id, 10))

	return sub, nil
}

// FileURL returns the stored resume link and records a download audit entry.
func (s *Service) FileURL(ctx context.Context, acc *access.Access, actorID, id int64) (string, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if sub == nil || !acc.CanSeeCity(sub.City) {
		return "", ErrNotFound
	}
	if sub.FileURL == "" {
		return "", ErrNoFileURL
	}

	s.auditor.Record(ctx, actorID, audit.ActionDownload, "submission:"+strconv.FormatInt(id, 10))

	return sub.FileURL, nil
}

// Insights produces the automatic pitch assessment for a submission. When
// the candidate left the pitch empty, the resume PDF is mined for text
// instead. A submission outside the caller's scope stays invisible.
func (s *Service) Insights(ctx context.Context, acc *access.Access, id int64) (string, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if sub == nil || !acc.CanSeeCity(sub.City) {
		return "", ErrNotFound
	}

	return s.analyzer.AnalyzePitch(ctx, sub.Name, sub.JobTitle, sub.Pitch), nil
}

// Export returns the visible submissions shaped as export rows.
func (s *Service) Export(ctx context.Context, acc *access.Access, filter Filter) ([]sheets.Row, error) {
	subs, err := s.List(ctx, acc, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]sheets.Row, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, sheets.Row{
			Name:      sub.Name,
			City:      sub.City,
			JobTitle:  sub.JobTitle,
			FileURL:   sub.FileURL,
			CreatedAt: sub.CreatedAt,
		})
	}
	return rows, nil
}

// scopeFilter combines the caller's grants with the requested filter. The
// second return is true when the intersection is provably empty and no
// query is needed.
func (s *Service) scopeFilter(acc *access.Access, filter Filter) (Filter, bool) {
	cities, restricted := acc.VisibleCities()
	if !restricted {
		filter.Cities = nil
		return filter, false
	}

	if len(cities) == 0 {
		return filter, true
	}

	if filter.City != "" {
		if !acc.CanSeeCity(filter.City) {
			return filter, true
		}
		filter.Cities = []string{filter.City}
		filter.City = ""
		return filter, false
	}

	filter.Cities = cities
	return filter, false
}
