package submission_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/gigante-rh/talent-intake/internal/access"
	"github.com/gigante-rh/talent-intake/internal/filerelay"
	"github.com/gigante-rh/talent-intake/internal/sheets"
	"github.com/gigante-rh/talent-intake/internal/submission"
	"github.com/gigante-rh/talent-intake/internal/transport"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type StubService struct {
	createErr error
	created   *submission.Submission
}

func (s *StubService) Create(ctx context.Context, dto submission.CreateSubmissionDTO) (*submission.Submission, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func (s *StubService) List(ctx context.Context, acc *access.Access, filter submission.Filter) ([]submission.Submission, error) {
	return nil, nil
}

func (s *StubService) Stats(ctx context.Context, acc *access.Access, filter submission.Filter) (*submission.KPIStats, error) {
	return nil, nil
}

func (s *StubService) Get(ctx context.Context, acc *access.Access, actorID, id int64) (*submission.Submission, error) {
	return nil, submission.ErrNotFound
}

func (s *StubService) FileURL(ctx context.Context, acc *access.Access, actorID, id int64) (string, error) {
	return "", submission.ErrNotFound
}

func (s *StubService) Insights(ctx context.Context, acc *access.Access, id int64) (string, error) {
	return "", submission.ErrNotFound
}

func (s *StubService) Export(ctx context.Context, acc *access.Access, filter submission.Filter) ([]sheets.Row, error) {
	return nil, nil
}

func intakeRequest() *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for field, value := range map[string]string{
		"name":      "Maria Silva",
		"email":     "maria@example.com",
		"phone":     "11 99999-0000",
		"city":      "Campinas",
		"job_title": "Vendedor",
	} {
		Expect(writer.WriteField(field, value)).To(Succeed())
	}

	part, err := writer.CreateFormFile("file", "resume.pdf")
	Expect(err).ToNot(HaveOccurred())
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	Expect(err).ToNot(HaveOccurred())
	Expect(writer.Close()).To(Succeed())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

var _ = Describe("Submission Handler", func() {
	var (
		stub    *StubService
		handler *submission.Handler
	)

	BeforeEach(func() {
		stub = &StubService{}
		handler = submission.NewHandler(transport.NewBaseHandler(nil), stub)
	})

	Describe("Create", func() {
		It("should return the stored submission on success", func() {
			stub.created = &submission.Submission{ID: 1, City: "Campinas"}

			rec := httptest.NewRecorder()
			handler.Create(rec, intakeRequest())

			Expect(rec.Code).To(Equal(http.StatusCreated))
		})

		Context("when the relay rejects the file", func() {
			It("should answer 502 with the translated hint in the body", func() {
				stub.createErr = fmt.Errorf("upload resume: %w",
					fmt.Errorf("%w: %s", filerelay.ErrRelayFailed,
						filerelay.TranslateError("Folder ID not found")))

				rec := httptest.NewRecorder()
				handler.Create(rec, intakeRequest())

				Expect(rec.Code).To(Equal(http.StatusBadGateway))

				var resp map[string]interface{}
				Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
				Expect(resp["message"]).To(ContainSubstring("Folder ID not found"))
				Expect(resp["message"]).To(ContainSubstring("destination folder id"))
			})

			It("should surface the unreachable-relay hint the same way", func() {
				stub.createErr = fmt.Errorf("upload resume: %w",
					fmt.Errorf("%w: %s", filerelay.ErrRelayFailed,
						filerelay.TranslateError("Failed to fetch")))

				rec := httptest.NewRecorder()
				handler.Create(rec, intakeRequest())

				Expect(rec.Code).To(Equal(http.StatusBadGateway))
				Expect(rec.Body.String()).To(ContainSubstring("deployed and reachable"))
			})
		})

		Context("when persistence fails after a successful relay", func() {
			It("should answer 500 with the storage error, not the relay path", func() {
				stub.createErr = fmt.Errorf("persist submission: %w",
					errors.New("connection refused"))

				rec := httptest.NewRecorder()
				handler.Create(rec, intakeRequest())

				Expect(rec.Code).To(Equal(http.StatusInternalServerError))
				Expect(rec.Body.String()).To(ContainSubstring("connection refused"))
			})
		})

		Context("when the form fails validation", func() {
			It("should answer 400 with the field problems", func() {
				dto := submission.CreateSubmissionDTO{}
				stub.createErr = dto.Validate()

				rec := httptest.NewRecorder()
				handler.Create(rec, intakeRequest())

				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				Expect(rec.Body.String()).To(ContainSubstring("name is required"))
			})
		})
	})
})
