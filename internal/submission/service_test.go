package submission_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gigante-rh/talent-intake/internal/access"
	"github.com/gigante-rh/talent-intake/internal/filerelay"
	"github.com/gigante-rh/talent-intake/internal/sheets"
	"github.com/gigante-rh/talent-intake/internal/submission"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSubmission(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Submission Suite")
}

type MockRepository struct {
	subs       []submission.Submission
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{nextID: 1}
}

func (m *MockRepository) Create(ctx context.Context, sub *submission.Submission) error {
	if m.shouldFail {
		return m.failError
	}
	sub.ID = m.nextID
	m.nextID++
	m.subs = append(m.subs, *sub)
	return nil
}

func (m *MockRepository) List(ctx context.Context, filter submission.Filter) ([]submission.Submission, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var out []submission.Submission
	for _, sub := range m.subs {
		if filter.Cities != nil && !contains(filter.Cities, sub.City) {
			continue
		}
		if filter.City != "" && sub.City != filter.City {
			continue
		}
		if filter.JobTitle != "" && sub.JobTitle != filter.JobTitle {
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*submission.Submission, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for i := range m.subs {
		if m.subs[i].ID == id {
			return &m.subs[i], nil
		}
	}
	return nil, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

type MockRelay struct {
	shouldFail bool
	calls      int
	lastReq    filerelay.UploadRequest
}

func (m *MockRelay) Upload(ctx context.Context, req filerelay.UploadRequest) (*filerelay.UploadResult, error) {
	m.calls++
	m.lastReq = req
	if m.shouldFail {
		return nil, filerelay.ErrRelayFailed
	}
	return &filerelay.UploadResult{ID: "file-1", URL: "https://files.example.com/file-1"}, nil
}

type MockAnalyzer struct {
	response string
}

func (m *MockAnalyzer) AnalyzePitch(ctx context.Context, name, jobTitle, pitch string) string {
	return m.response
}

type MockSink struct {
	mu         sync.Mutex
	rows       []sheets.Row
	shouldFail bool
}

func (m *MockSink) Append(row sheets.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		return errors.New("sink unavailable")
	}
	m.rows = append(m.rows, row)
	return nil
}

type MockRecorder struct {
	mu      sync.Mutex
	actions []string
}

func (m *MockRecorder) Record(ctx context.Context, userID int64, action, target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, action)
}

func (m *MockRecorder) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.actions...)
}

func adminAccess() *access.Access {
	return &access.Access{
		Record: access.AccessRecord{UserID: 1, Role: access.RoleAdmin, IsActive: true},
	}
}

func recruiterAccess(cities ...string) *access.Access {
	return &access.Access{
		Record: access.AccessRecord{UserID: 2, Role: access.RoleRecruiter, IsActive: true},
		Cities: cities,
	}
}

func validDTO() submission.CreateSubmissionDTO {
	return submission.CreateSubmissionDTO{
		Name:     "Maria Silva",
		Email:    "maria@example.com",
		Phone:    "11 99999-0000",
		City:     "Campinas",
		JobTitle: "Vendedor",
		Pitch:    "Cinco anos de experiência em vendas.",
		FileName: "resume.pdf",
		MimeType: "application/pdf",
		FileData: []byte("%PDF-1.4 fake"),
	}
}

var _ = Describe("Submission Service", func() {
	var (
		service  *submission.Service
		mockRepo *MockRepository
		relay    *MockRelay
		analyzer *MockAnalyzer
		sink     *MockSink
		recorder *MockRecorder
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		relay = &MockRelay{}
		analyzer = &MockAnalyzer{response: "Perfil forte."}
		sink = &MockSink{}
		recorder = &MockRecorder{}
		service = submission.NewService(mockRepo, relay, analyzer, sink, recorder)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("should relay the file, persist and mirror the submission", func() {
			sub, err := service.Create(ctx, validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(sub.ID).To(Equal(int64(1)))
			Expect(sub.FileID).To(Equal("file-1"))
			Expect(sub.FileURL).To(Equal("https://files.example.com/file-1"))
			Expect(sub.StorageKind).To(Equal(submission.StorageExternalDrive))
			Expect(sub.Status).To(Equal(submission.StatusNew))

			Expect(relay.calls).To(Equal(1))
			Expect(relay.lastReq.City).To(Equal("Campinas"))

			Expect(sink.rows).To(HaveLen(1))
			Expect(sink.rows[0].Name).To(Equal("Maria Silva"))
		})

		It("should reject an invalid form without touching the relay", func() {
			dto := validDTO()
			dto.Email = "not-an-email"

			_, err := service.Create(ctx, dto)

			Expect(err).To(HaveOccurred())
			Expect(relay.calls).To(BeZero())
			Expect(mockRepo.subs).To(BeEmpty())
		})

		It("should abort when the relay fails, persisting nothing", func() {
			relay.shouldFail = true

			_, err := service.Create(ctx, validDTO())

			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, filerelay.ErrRelayFailed)).To(BeTrue())
			Expect(mockRepo.subs).To(BeEmpty())
		})

		It("should succeed even when the csv mirror fails", func() {
			sink.shouldFail = true

			sub, err := service.Create(ctx, validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(sub.ID).To(Equal(int64(1)))
			Expect(mockRepo.subs).To(HaveLen(1))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for _, city := range []string{"Campinas", "Campinas", "Sorocaba", "Recife"} {
				dto := validDTO()
				dto.City = city
				_, err := service.Create(ctx, dto)
				Expect(err).ToNot(HaveOccurred())
			}
		})

		It("should show everything to an admin", func() {
			subs, err := service.List(ctx, adminAccess(), submission.Filter{})

			Expect(err).ToNot(HaveOccurred())
			Expect(subs).To(HaveLen(4))
		})

		It("should scope a recruiter to granted cities", func() {
			subs, err := service.List(ctx, recruiterAccess("Campinas"), submission.Filter{})

			Expect(err).ToNot(HaveOccurred())
			Expect(subs).To(HaveLen(2))
			for _, sub := range subs {
				Expect(sub.City).To(Equal("Campinas"))
			}
		})

		It("should return nothing for a recruiter with no grants", func() {
			subs, err := service.List(ctx, recruiterAccess(), submission.Filter{})

			Expect(err).ToNot(HaveOccurred())
			Expect(subs).To(BeEmpty())
		})

		It("should not let a city filter widen a recruiter's scope", func() {
			subs, err := service.List(ctx, recruiterAccess("Campinas"),
				submission.Filter{City: "Recife"})

			Expect(err).ToNot(HaveOccurred())
			Expect(subs).To(BeEmpty())
		})

		It("should honor a city filter inside the recruiter's scope", func() {
			subs, err := service.List(ctx, recruiterAccess("Campinas", "Sorocaba"),
				submission.Filter{City: "Sorocaba"})

			Expect(err).ToNot(HaveOccurred())
			Expect(subs).To(HaveLen(1))
			Expect(subs[0].City).To(Equal("Sorocaba"))
		})
	})

	Describe("Get", func() {
		var subID int64

		BeforeEach(func() {
			sub, err := service.Create(ctx, validDTO())
			Expect(err).ToNot(HaveOccurred())
			subID = sub.ID
		})

		It("should return the submission and audit the view", func() {
			sub, err := service.Get(ctx, adminAccess(), 1, subID)

			Expect(err).ToNot(HaveOccurred())
			Expect(sub.ID).To(Equal(subID))
			Expect(recorder.Actions()).To(ContainElement("view"))
		})

		It("should hide a submission outside the recruiter's scope", func() {
			_, err := service.Get(ctx, recruiterAccess("Recife"), 2, subID)

			Expect(errors.Is(err, submission.ErrNotFound)).To(BeTrue())
			Expect(recorder.Actions()).To(BeEmpty())
		})

		It("should report a missing submission", func() {
			_, err := service.Get(ctx, adminAccess(), 1, 999)

			Expect(errors.Is(err, submission.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("FileURL", func() {
		var subID int64

		BeforeEach(func() {
			sub, err := service.Create(ctx, validDTO())
			Expect(err).ToNot(HaveOccurred())
			subID = sub.ID
		})

		It("should return the link and audit the download", func() {
			url, err := service.FileURL(ctx, adminAccess(), 1, subID)

			Expect(err).ToNot(HaveOccurred())
			Expect(url).To(Equal("https://files.example.com/file-1"))
			Expect(recorder.Actions()).To(ContainElement("download"))
		})

		It("should hide the link outside the recruiter's scope", func() {
			_, err := service.FileURL(ctx, recruiterAccess("Recife"), 2, subID)

			Expect(errors.Is(err, submission.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("Insights", func() {
		var subID int64

		BeforeEach(func() {
			sub, err := service.Create(ctx, validDTO())
			Expect(err).ToNot(HaveOccurred())
			subID = sub.ID
		})

		It("should return the analyzer's assessment", func() {
			assessment, err := service.Insights(ctx, adminAccess(), subID)

			Expect(err).ToNot(HaveOccurred())
			Expect(assessment).To(Equal("Perfil forte."))
		})

		It("should hide the submission outside the recruiter's scope", func() {
			_, err := service.Insights(ctx, recruiterAccess("Recife"), subID)

			Expect(errors.Is(err, submission.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("Export", func() {
		It("should shape visible submissions as export rows", func() {
			_, err := service.Create(ctx, validDTO())
			Expect(err).ToNot(HaveOccurred())

			rows, err := service.Export(ctx, adminAccess(), submission.Filter{})

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Name).To(Equal("Maria Silva"))
			Expect(rows[0].FileURL).To(Equal("https://files.example.com/file-1"))
			Expect(rows[0].CreatedAt).To(BeTemporally("~", time.Now().UTC(), time.Minute))
		})
	})
})
