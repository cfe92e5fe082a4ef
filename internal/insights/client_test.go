package insights_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gigante-rh/talent-intake/internal/insights"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestInsights(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Insights Suite")
}

var _ = Describe("Insights Client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("when the API responds with a candidate", func() {
		It("should return the generated text", func() {
			var captured map[string]interface{}
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(ContainSubstring("models/test-model"))
				Expect(r.URL.Query().Get("key")).To(Equal("test-key"))
				Expect(json.NewDecoder(r.Body).Decode(&captured)).To(Succeed())

				w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Perfil forte em vendas."}]}}]}`))
			}))
			defer server.Close()

			client := insights.NewClient("test-key", "test-model", 5*time.Second,
				insights.WithBaseURL(server.URL))

			result := client.AnalyzePitch(ctx, "Maria", "Vendedor", "Tenho 5 anos de experiência em vendas.")

			Expect(result).To(Equal("Perfil forte em vendas."))

			genConfig := captured["generationConfig"].(map[string]interface{})
			Expect(genConfig["temperature"]).To(BeNumerically("==", 0.7))
			Expect(genConfig["maxOutputTokens"]).To(BeNumerically("==", 150))
		})
	})

	Context("when the API fails", func() {
		It("should fall back on a non-200 status", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			}))
			defer server.Close()

			client := insights.NewClient("test-key", "test-model", 5*time.Second,
				insights.WithBaseURL(server.URL))

			result := client.AnalyzePitch(ctx, "Maria", "Vendedor", "pitch")

			Expect(result).To(Equal(insights.FallbackMessage))
		})

		It("should fall back on an empty candidate list", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"candidates":[]}`))
			}))
			defer server.Close()

			client := insights.NewClient("test-key", "test-model", 5*time.Second,
				insights.WithBaseURL(server.URL))

			result := client.AnalyzePitch(ctx, "Maria", "Vendedor", "pitch")

			Expect(result).To(Equal(insights.FallbackMessage))
		})
	})

	Context("when no API key is configured", func() {
		It("should fall back without making a request", func() {
			called := false
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))
			defer server.Close()

			client := insights.NewClient("", "test-model", 5*time.Second,
				insights.WithBaseURL(server.URL))

			result := client.AnalyzePitch(ctx, "Maria", "Vendedor", "pitch")

			Expect(result).To(Equal(insights.FallbackMessage))
			Expect(called).To(BeFalse())
		})
	})

	Context("when the pitch is blank", func() {
		It("should fall back immediately", func() {
			client := insights.NewClient("test-key", "test-model", 5*time.Second)

			result := client.AnalyzePitch(ctx, "Maria", "Vendedor", "   ")

			Expect(result).To(Equal(insights.FallbackMessage))
		})
	})
})
