package submission_test

import (
	"time"

	"github.com/gigante-rh/talent-intake/internal/submission"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func sub(city, jobTitle, storage string, created time.Time) submission.Submission {
	return submission.Submission{
		City:        city,
		JobTitle:    jobTitle,
		StorageKind: storage,
		CreatedAt:   created,
	}
}

var _ = Describe("Aggregate", func() {
	day1 := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	It("should count totals and bucket by city, job title and day", func() {
		stats := submission.Aggregate([]submission.Submission{
			sub("Campinas", "Vendedor", submission.StorageExternalDrive, day1),
			sub("Campinas", "Vendedor", submission.StorageExternalDrive, day1),
			sub("Campinas", "Gerente", submission.StorageInternal, day2),
			sub("Sorocaba", "Vendedor", submission.StorageExternalDrive, day2),
		})

		Expect(stats.Total).To(Equal(4))

		Expect(stats.ByCity[0]).To(Equal(submission.CountEntry{Label: "Campinas", Count: 3}))
		Expect(stats.ByCity[1]).To(Equal(submission.CountEntry{Label: "Sorocaba", Count: 1}))

		Expect(stats.ByJobTitle[0]).To(Equal(submission.CountEntry{Label: "Vendedor", Count: 3}))

		Expect(stats.ByDay).To(Equal([]submission.CountEntry{
			{Label: "2026-03-10", Count: 2},
			{Label: "2026-03-11", Count: 2},
		}))

		Expect(stats.Storage).To(Equal(map[string]int{
			submission.StorageExternalDrive: 3,
			submission.StorageInternal:      1,
		}))
	})

	It("should bucket days by the UTC calendar day", func() {
		saoPaulo := time.FixedZone("America/Sao_Paulo", -3*3600)
		// 23:30 local on March 10 is already March 11 in UTC.
		late := time.Date(2026, 3, 10, 23, 30, 0, 0, saoPaulo)

		stats := submission.Aggregate([]submission.Submission{
			sub("Campinas", "Vendedor", submission.StorageExternalDrive, late),
		})

		Expect(stats.ByDay).To(HaveLen(1))
		Expect(stats.ByDay[0].Label).To(Equal("2026-03-11"))
	})

	It("should break count ties by label", func() {
		stats := submission.Aggregate([]submission.Submission{
			sub("Sorocaba", "Vendedor", submission.StorageExternalDrive, day1),
			sub("Campinas", "Vendedor", submission.StorageExternalDrive, day1),
		})

		Expect(stats.ByCity[0].Label).To(Equal("Campinas"))
		Expect(stats.ByCity[1].Label).To(Equal("Sorocaba"))
	})

	It("should handle an empty input", func() {
		stats := submission.Aggregate(nil)

		Expect(stats.Total).To(BeZero())
		Expect(stats.ByCity).To(BeEmpty())
		Expect(stats.ByDay).To(BeEmpty())
		Expect(stats.Storage).To(BeEmpty())
	})
})
