package report_test

import (
	"bytes"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/report"
)

var saoPaulo = time.FixedZone("BRT", -3*60*60)

func withdrawal(id string, ts time.Time) model.Withdrawal {
	return model.Withdrawal{ID: id, UserID: "u1", UserName: "Ana", RecipientName: "Recebedor " + id, NFNumber: "NF-" + id, ImageURL: "url", Timestamp: ts}
}

var _ = Describe("Period", func() {
	It("stretches the dates to whole days in the reporting zone", func() {
		p, err := report.NewPeriod("2024-05-01", "2024-05-03", saoPaulo)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Start).To(BeTemporally("==", time.Date(2024, 5, 1, 0, 0, 0, 0, saoPaulo)))
		Expect(p.End).To(BeTemporally("==", time.Date(2024, 5, 3, 23, 59, 59, 999000000, saoPaulo)))
		Expect(p.Inverted()).To(BeFalse())
	})

	It("reports which dates are missing or malformed", func() {
		_, err := report.NewPeriod("", "03/05/2024", saoPaulo)
		var ve *domainErrors.ValidationError
		Expect(err).To(BeAssignableToTypeOf(ve))
		Expect(err.(*domainErrors.ValidationError).Fields).To(ConsistOf(report.FieldStart, report.FieldEnd))
	})

	It("defaults to UTC without a zone", func() {
		p, err := report.NewPeriod("2024-05-01", "2024-05-01", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Location).To(Equal(time.UTC))
	})

	Describe("inclusivity", func() {
		var p report.Period

		BeforeEach(func() {
			var err error
			p, err = report.NewPeriod("2024-05-01", "2024-05-31", saoPaulo)
			Expect(err).NotTo(HaveOccurred())
		})

		It("includes both boundary instants", func() {
			Expect(p.Contains(time.Date(2024, 5, 1, 0, 0, 0, 0, saoPaulo))).To(BeTrue())
			Expect(p.Contains(time.Date(2024, 5, 31, 23, 59, 59, 0, saoPaulo))).To(BeTrue())
			Expect(p.Contains(time.Date(2024, 5, 31, 23, 59, 59, 999000000, saoPaulo))).To(BeTrue())
		})

		It("excludes a millisecond outside either end", func() {
			Expect(p.Contains(time.Date(2024, 5, 1, 0, 0, 0, 0, saoPaulo).Add(-time.Millisecond))).To(BeFalse())
			Expect(p.Contains(time.Date(2024, 5, 31, 23, 59, 59, 999000000, saoPaulo).Add(time.Millisecond))).To(BeFalse())
		})

		It("compares instants regardless of the record zone", func() {
			Expect(p.Contains(time.Date(2024, 6, 1, 2, 59, 59, 0, time.UTC))).To(BeTrue())
			Expect(p.Contains(time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC))).To(BeFalse())
		})
	})
})

var _ = Describe("Build", func() {
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, saoPaulo)
	records := []model.Withdrawal{
		withdrawal("a", base.Add(-48*time.Hour)),
		withdrawal("b", base),
		withdrawal("c", base.Add(2*time.Hour)),
		withdrawal("d", base.Add(-24*time.Hour)),
	}

	It("keeps records in range ordered newest first", func() {
		p, _ := report.NewPeriod("2024-05-09", "2024-05-10", saoPaulo)
		r := report.Build("2024-05-09", "2024-05-10", p, records, base)
		ids := []string{}
		for _, w := range r.Records {
			ids = append(ids, w.ID)
		}
		Expect(ids).To(Equal([]string{"c", "b", "d"}))
		Expect(r.State()).To(Equal(report.StateReady))
		Expect(records[0].ID).To(Equal("a"))
	})

	It("yields an empty result when start is after end", func() {
		p, err := report.NewPeriod("2024-05-10", "2024-05-01", saoPaulo)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Inverted()).To(BeTrue())
		r := report.Build("2024-05-10", "2024-05-01", p, records, base)
		Expect(r.Records).To(BeEmpty())
		Expect(r.State()).To(Equal(report.StateEmpty))
	})

	It("distinguishes no period from an empty period", func() {
		var none *report.Result
		Expect(none.State()).To(Equal(report.StateNoPeriod))

		p, _ := report.NewPeriod("2023-01-01", "2023-01-31", saoPaulo)
		Expect(report.Build("2023-01-01", "2023-01-31", p, records, base).State()).To(Equal(report.StateEmpty))
	})

	It("names exports after the queried dates", func() {
		p, _ := report.NewPeriod("2024-05-01", "2024-05-31", saoPaulo)
		r := report.Build("2024-05-01", "2024-05-31", p, nil, base)
		Expect(r.Filename("pdf")).To(Equal("relatorio_retiradas_2024-05-01_2024-05-31.pdf"))
	})
})

var _ = Describe("Documents", func() {
	var result *report.Result

	BeforeEach(func() {
		p, _ := report.NewPeriod("2024-05-01", "2024-05-31", saoPaulo)
		located := withdrawal("1", time.Date(2024, 5, 10, 14, 30, 0, 0, saoPaulo))
		located.RecipientName = "João Conceição"
		located.Location = &model.Coordinates{Latitude: -23.5505199, Longitude: -46.6333094}
		plain := withdrawal("2", time.Date(2024, 5, 2, 8, 0, 5, 0, saoPaulo))
		result = report.Build("2024-05-01", "2024-05-31", p,
			[]model.Withdrawal{plain, located}, time.Date(2024, 6, 1, 9, 15, 0, 0, saoPaulo))
	})

	It("renders heading lines and rows", func() {
		Expect(result.PeriodLine()).To(Equal("Período: 01/05/2024 a 31/05/2024"))
		Expect(result.GeneratedLine()).To(Equal("Gerado em: 01/06/2024 09:15:00"))
		Expect(result.Rows()).To(Equal([][]string{
			{"10/05/2024 14:30:00", "João Conceição", "NF-1", "-23.55052, -46.63331"},
			{"02/05/2024 08:00:05", "Recebedor 2", "NF-2", "N/A"},
		}))
	})

	It("writes a PDF", func() {
		var buf bytes.Buffer
		Expect(report.WritePDF(&buf, result)).To(Succeed())
		Expect(buf.String()).To(HavePrefix("%PDF-"))
	})

	Context("with uncompressed streams", func() {
		BeforeEach(func() {
			DeferCleanup(report.SetPDFCompression(false))
		})

		It("draws the period line and every row", func() {
			var buf bytes.Buffer
			Expect(report.WritePDF(&buf, result)).To(Succeed())
			out := buf.String()
			Expect(out).To(ContainSubstring("01/05/2024 a 31/05/2024)"))
			Expect(out).To(ContainSubstring("(10/05/2024 14:30:00)"))
			Expect(out).To(ContainSubstring("(02/05/2024 08:00:05)"))
			Expect(out).To(ContainSubstring("(NF-1)"))
			Expect(out).To(ContainSubstring("(Recebedor 2)"))
			Expect(out).To(ContainSubstring("(-23.55052, -46.63331)"))
			Expect(out).To(ContainSubstring("(N/A)"))
		})

		It("wraps long cells inside their column", func() {
			long := withdrawal("3", time.Date(2024, 5, 20, 10, 0, 0, 0, saoPaulo))
			long.RecipientName = "Maria Aparecida da Silva Albuquerque Figueiredo de Souza Braganza Pereira"
			p, _ := report.NewPeriod("2024-05-01", "2024-05-31", saoPaulo)
			wide := report.Build("2024-05-01", "2024-05-31", p, []model.Withdrawal{long}, time.Now())

			var buf bytes.Buffer
			Expect(report.WritePDF(&buf, wide)).To(Succeed())
			out := buf.String()
			Expect(out).To(ContainSubstring("(Maria Aparecida"))
			Expect(out).To(ContainSubstring("Pereira)"))
			Expect(out).NotTo(ContainSubstring("(" + long.RecipientName + ")"))
		})
	})

	It("writes a spreadsheet with the same table", func() {
		var buf bytes.Buffer
		Expect(report.WriteXLSX(&buf, result)).To(Succeed())

		f, err := excelize.OpenReader(&buf)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		rows, err := f.GetRows("Retiradas")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows[0]).To(Equal([]string{report.Title}))
		Expect(rows[4]).To(Equal(report.Columns))
		Expect(rows[5]).To(Equal(result.Rows()[0]))
		Expect(rows[6]).To(Equal(result.Rows()[1]))
	})

	It("refuses to export an empty result", func() {
		p, _ := report.NewPeriod("2024-01-01", "2024-01-02", saoPaulo)
		empty := report.Build("2024-01-01", "2024-01-02", p, nil, time.Now())
		Expect(report.WritePDF(&bytes.Buffer{}, empty)).To(MatchError(domainErrors.ErrNothingToExport))
		Expect(report.WriteXLSX(&bytes.Buffer{}, empty)).To(MatchError(domainErrors.ErrNothingToExport))
		Expect(report.WritePDF(&bytes.Buffer{}, nil)).To(MatchError(domainErrors.ErrNothingToExport))
	})
})

var _ = Describe("Cache", func() {
	It("keeps one current report per user until it expires", func() {
		c := report.NewCache(time.Minute)
		now := time.Now()
		first := &report.Result{StartDate: "2024-01-01"}
		second := &report.Result{StartDate: "2024-02-01"}

		c.Put("u1", first, now)
		c.Put("u1", second, now)
		got, ok := c.Get("u1", now.Add(30*time.Second))
		Expect(ok).To(BeTrue())
		Expect(got).To(BeIdenticalTo(second))

		_, ok = c.Get("u2", now)
		Expect(ok).To(BeFalse())

		_, ok = c.Get("u1", now.Add(2*time.Minute))
		Expect(ok).To(BeFalse())

		Expect(c.Sweep(now.Add(2 * time.Minute))).To(Equal(1))
		Expect(c.Len()).To(BeZero())
	})
})
