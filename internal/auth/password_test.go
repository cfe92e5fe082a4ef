package auth_test

import (
	"strings"

	"github.com/gigante-rh/talent-intake/internal/auth"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("GeneratePassword", func() {
	It("should produce 12-character passwords", func() {
		password, err := auth.GeneratePassword()

		Expect(err).ToNot(HaveOccurred())
		Expect(password).To(HaveLen(12))
	})

	It("should always contain each required character class", func() {
		for i := 0; i < 50; i++ {
			password, err := auth.GeneratePassword()
			Expect(err).ToNot(HaveOccurred())

			Expect(strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")).To(BeTrue(),
				"missing uppercase in %q", password)
			Expect(strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz")).To(BeTrue(),
				"missing lowercase in %q", password)
			Expect(strings.ContainsAny(password, "0123456789")).To(BeTrue(),
				"missing digit in %q", password)
			Expect(strings.ContainsAny(password, "!@#$%&*")).To(BeTrue(),
				"missing symbol in %q", password)
		}
	})

	It("should only use the allowed alphabet", func() {
		const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"

		password, err := auth.GeneratePassword()
		Expect(err).ToNot(HaveOccurred())

		for _, c := range password {
			Expect(strings.ContainsRune(alphabet, c)).To(BeTrue(), "unexpected character %q", c)
		}
	})

	It("should not repeat across calls", func() {
		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			password, err := auth.GeneratePassword()
			Expect(err).ToNot(HaveOccurred())
			Expect(seen[password]).To(BeFalse(), "duplicate password generated")
			seen[password] = true
		}
	})
})
