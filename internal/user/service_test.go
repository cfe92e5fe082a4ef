package user_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/gigante-rh/talent-intake/internal/access"
	"github.com/gigante-rh/talent-intake/internal/user"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

type MockRepository struct {
	identities    map[string]*user.Identity
	records       map[int64]*access.AccessRecord
	cityGrants    map[int64][]string
	storeGrants   map[int64][]string
	nextID        int64
	failCityGrant bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		identities:  make(map[string]*user.Identity),
		records:     make(map[int64]*access.AccessRecord),
		cityGrants:  make(map[int64][]string),
		storeGrants: make(map[int64][]string),
		nextID:      1,
	}
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := m.identities[strings.ToLower(email)]
	return ok, nil
}

func (m *MockRepository) CreateIdentity(ctx context.Context, identity *user.Identity) error {
	identity.ID = m.nextID
	m.nextID++
	m.identities[strings.ToLower(identity.Email)] = identity
	return nil
}

func (m *MockRepository) CreateAccessRecord(ctx context.Context, record *access.AccessRecord) error {
	m.records[record.UserID] = record
	return nil
}

func (m *MockRepository) ListAccounts(ctx context.Context) ([]user.Account, error) {
	var accounts []user.Account
	for _, record := range m.records {
		accounts = append(accounts, user.Account{
			UserID:   record.UserID,
			Email:    record.Email,
			Role:     record.Role,
			IsActive: record.IsActive,
			Cities:   m.cityGrants[record.UserID],
			Stores:   m.storeGrants[record.UserID],
		})
	}
	return accounts, nil
}

func (m *MockRepository) SetActive(ctx context.Context, userID int64, isActive bool) error {
	record, ok := m.records[userID]
	if !ok {
		return user.ErrNotFound
	}
	record.IsActive = isActive
	return nil
}

func (m *MockRepository) ReplaceCityGrants(ctx context.Context, userID int64, cities []string) error {
	if m.failCityGrant {
		return errors.New("grant table unavailable")
	}
	m.cityGrants[userID] = cities
	return nil
}

func (m *MockRepository) ReplaceStoreGrants(ctx context.Context, userID int64, stores []string) error {
	m.storeGrants[userID] = stores
	return nil
}

type PlainHasher struct{}

func (PlainHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
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

var _ = Describe("User Service", func() {
	var (
		service  *user.Service
		mockRepo *MockRepository
		recorder *MockRecorder
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		recorder = &MockRecorder{}
		service = user.NewService(mockRepo, PlainHasher{}, recorder)
		ctx = context.Background()
	})

	Describe("CreateAccount", func() {
		It("should create identity, record and grants", func() {
			created, err := service.CreateAccount(ctx, 1, user.CreateUserDTO{
				Email:    "Ana@Example.com",
				Password: "strongpassword",
				Role:     access.RoleRecruiter,
				Cities:   []string{"Campinas"},
				Stores:   []string{"Loja Centro"},
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.Account.UserID).To(Equal(int64(1)))
			Expect(created.Account.Email).To(Equal("ana@example.com"))
			Expect(created.GeneratedPassword).To(BeEmpty())
			Expect(created.Warnings).To(BeEmpty())

			Expect(mockRepo.records[1].IsActive).To(BeTrue())
			Expect(mockRepo.cityGrants[1]).To(ConsistOf("Campinas"))
			Expect(recorder.Actions()).To(ContainElement("create_user"))
		})

		It("should generate a password when none is supplied", func() {
			created, err := service.CreateAccount(ctx, 1, user.CreateUserDTO{
				Email: "ana@example.com",
				Role:  access.RoleAdmin,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.GeneratedPassword).To(HaveLen(12))

			identity := mockRepo.identities["ana@example.com"]
			Expect(identity.PasswordHash).To(Equal("hashed:" + created.GeneratedPassword))
		})

		It("should reject a duplicate email", func() {
			_, err := service.CreateAccount(ctx, 1, user.CreateUserDTO{
				Email: "ana@example.com", Role: access.RoleAdmin,
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreateAccount(ctx, 1, user.CreateUserDTO{
				Email: "ANA@example.com", Role: access.RoleRecruiter,
			})
			Expect(errors.Is(err, user.ErrEmailTaken)).To(BeTrue())
		})

		It("should reject an invalid role", func() {
			_, err := service.CreateAccount(ctx, 1, user.CreateUserDTO{
				Email: "ana@example.com", Role: access.Role("owner"),
			})

			Expect(err).To(HaveOccurred())
		})

		It("should report failed grants as warnings, not errors", func() {
			mockRepo.failCityGrant = true

			created, err := service.CreateAccount(ctx, 1, user.CreateUserDTO{
				Email:  "ana@example.com",
				Role:   access.RoleRecruiter,
				Cities: []string{"Campinas"},
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.Warnings).To(HaveLen(1))
			Expect(created.Warnings[0]).To(ContainSubstring("city grants"))
			Expect(mockRepo.records[1]).ToNot(BeNil())
		})
	})

	Describe("ToggleActive", func() {
		BeforeEach(func() {
			_, err := service.CreateAccount(ctx, 1, user.CreateUserDTO{
				Email: "ana@example.com", Role: access.RoleRecruiter,
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should flip the active flag and audit", func() {
			Expect(service.ToggleActive(ctx, 1, 1, false)).To(Succeed())

			Expect(mockRepo.records[1].IsActive).To(BeFalse())
			Expect(recorder.Actions()).To(ContainElement("toggle_user"))
		})

		It("should report a missing user", func() {
			err := service.ToggleActive(ctx, 1, 999, false)

			Expect(errors.Is(err, user.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("UpdateCities", func() {
		BeforeEach(func() {
			_, err := service.CreateAccount(ctx, 1, user.CreateUserDTO{
				Email: "ana@example.com", Role: access.RoleRecruiter,
				Cities: []string{"Campinas"},
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should replace the whole grant set", func() {
			Expect(service.UpdateCities(ctx, 1, 1, []string{"Sorocaba", "Recife"})).To(Succeed())

			Expect(mockRepo.cityGrants[1]).To(ConsistOf("Sorocaba", "Recife"))
			Expect(recorder.Actions()).To(ContainElement("update_user_cities"))
		})

		It("should allow clearing all grants", func() {
			Expect(service.UpdateCities(ctx, 1, 1, nil)).To(Succeed())

			Expect(mockRepo.cityGrants[1]).To(BeEmpty())
		})
	})
})
