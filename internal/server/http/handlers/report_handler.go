package handlers

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/report"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/server/http/dto"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/usecase"
)

// ReportHandler serves the report screen and its exports.
type ReportHandler struct {
	facade ReportFacade
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(facade ReportFacade) *ReportHandler {
	return &ReportHandler{facade: facade}
}

// Run handles POST /api/reports.
func (h *ReportHandler) Run(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.RunReport(c.Request.Context(), CurrentIdentity(c), req.Start, req.End, req.Timezone)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReportResponse(result))
}

// Current handles GET /api/reports.
func (h *ReportHandler) Current(c *gin.Context) {
	c.JSON(http.StatusOK, toReportResponse(h.facade.CurrentReport(CurrentIdentity(c))))
}

// PDF handles GET /api/reports/pdf.
func (h *ReportHandler) PDF(c *gin.Context) {
	h.export(c, usecase.FormatPDF)
}

// XLSX handles GET /api/reports/xlsx.
func (h *ReportHandler) XLSX(c *gin.Context) {
	h.export(c, usecase.FormatXLSX)
}

func (h *ReportHandler) export(c *gin.Context, format string) {
	doc, err := h.facade.ExportReport(CurrentIdentity(c), format)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

func toReportResponse(r *report.Result) dto.ReportResponse {
	resp := dto.ReportResponse{
		State:   string(r.State()),
		Rows:    []dto.ReportRow{},
		Records: []dto.WithdrawalResponse{},
	}
	if r == nil {
		return resp
	}

	generated := r.GeneratedAt
	resp.Start = r.StartDate
	resp.End = r.EndDate
	resp.Period = r.PeriodLine()
	resp.GeneratedAt = &generated
	for i, cells := range r.Rows() {
		resp.Rows = append(resp.Rows, dto.ReportRow{
			ID:          r.Records[i].ID,
			DateTime:    cells[0],
			Recipient:   cells[1],
			NFNumber:    cells[2],
			Coordinates: cells[3],
		})
		resp.Records = append(resp.Records, toWithdrawalResponse(r.Records[i]))
	}
	return resp
}
