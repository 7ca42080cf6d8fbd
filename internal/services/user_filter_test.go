package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/usuarios-backend/internal/domain/errors"
	"github.com/rafabene/usuarios-backend/internal/domain/repositories"
	"github.com/rafabene/usuarios-backend/internal/services"
)

var _ = Describe("BuildUserFilter", func() {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	It("defaults to active users only", func() {
		filters, err := services.BuildUserFilter(map[string]string{})

		Expect(err).NotTo(HaveOccurred())
		Expect(filters).To(Equal(repositories.UserFilters{Status: true}))
	})

	DescribeTable("status parameter", func(value string, expected bool) {
		filters, err := services.BuildUserFilter(map[string]string{"status": value})

		Expect(err).NotTo(HaveOccurred())
		Expect(filters.Status).To(Equal(expected))
	},
		Entry("true", "true", true),
		Entry("false", "false", false),
		Entry("empty value counts as present", "", false),
		Entry("anything else is false", "1", false),
		Entry("case sensitive", "TRUE", false),
	)

	It("adds a substring condition for a non-empty name", func() {
		filters, err := services.BuildUserFilter(map[string]string{"name": "ana"})

		Expect(err).NotTo(HaveOccurred())
		Expect(filters.Name).To(HaveValue(Equal("ana")))
		Expect(filters.Status).To(BeTrue())
	})

	It("ignores an empty name", func() {
		filters, err := services.BuildUserFilter(map[string]string{"name": ""})

		Expect(err).NotTo(HaveOccurred())
		Expect(filters.Name).To(BeNil())
	})

	DescribeTable("date parameters", func(params map[string]string, expected *repositories.CreatedAtCondition) {
		filters, err := services.BuildUserFilter(params)

		Expect(err).NotTo(HaveOccurred())
		Expect(filters.CreatedAt).To(Equal(expected))
	},
		Entry("before, slashes", map[string]string{"fechaInicioAntes": "2024/03/15"},
			&repositories.CreatedAtCondition{Comparison: repositories.CreatedBefore, Date: day(2024, 3, 15)}),
		Entry("after, dashes", map[string]string{"fechaInicioDespues": "2024-03-15"},
			&repositories.CreatedAtCondition{Comparison: repositories.CreatedAfter, Date: day(2024, 3, 15)}),
		Entry("timestamp", map[string]string{"fechaInicioAntes": "2024-03-15T10:30:00"},
			&repositories.CreatedAtCondition{Comparison: repositories.CreatedBefore, Date: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)}),
		Entry("RFC 3339 with offset", map[string]string{"fechaInicioDespues": "2024-03-15T10:30:00-03:00"},
			&repositories.CreatedAtCondition{Comparison: repositories.CreatedAfter, Date: time.Date(2024, 3, 15, 13, 30, 0, 0, time.UTC)}),
		Entry("both given: after wins", map[string]string{"fechaInicioAntes": "2024/12/31", "fechaInicioDespues": "2024/01/01"},
			&repositories.CreatedAtCondition{Comparison: repositories.CreatedAfter, Date: day(2024, 1, 1)}),
		Entry("empty values are ignored", map[string]string{"fechaInicioAntes": "", "fechaInicioDespues": ""},
			nil),
	)

	It("rejects an unparseable date as a validation error", func() {
		_, err := services.BuildUserFilter(map[string]string{"fechaInicioAntes": "yesterday"})

		Expect(err).To(HaveOccurred())
		Expect(errors.IsValidation(err)).To(BeTrue())
		Expect(err).To(MatchError(errors.ErrInvalidDate))
	})
})
