package api_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOpenAPI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "OpenAPI Suite")
}

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()

		var err error
		doc, err = loader.LoadFromFile("openapi.yml")
		Expect(err).ToNot(HaveOccurred())
	})

	It("should be a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("should describe every mounted route", func() {
		for _, path := range []string{
			"/ping",
			"/health",
			"/auth/login",
			"/auth/refresh",
			"/auth/logout",
			"/reference/{kind}",
			"/reference/{kind}/{id}",
			"/submissions",
			"/submissions/stats",
			"/submissions/export",
			"/submissions/{id}",
			"/submissions/{id}/file",
			"/submissions/{id}/insights",
			"/users",
			"/users/{id}/active",
			"/users/{id}/cities",
			"/users/{id}/stores",
			"/audit",
		} {
			Expect(doc.Paths.Find(path)).ToNot(BeNil(), "missing path %s", path)
		}
	})

	It("should secure the dashboard surface with bearer auth", func() {
		item := doc.Paths.Find("/submissions")
		Expect(item).ToNot(BeNil())

		Expect(item.Get.Security).ToNot(BeNil())
		// the public form endpoint must stay open
		Expect(item.Post.Security).To(BeNil())
	})
})
