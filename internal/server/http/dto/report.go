package dto

import "time"

// ReportRequest selects a report period.
type ReportRequest struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"timezone"`
}

// ReportRow is one formatted table row.
type ReportRow struct {
	ID          string `json:"id"`
	DateTime    string `json:"data_hora"`
	Recipient   string `json:"responsavel"`
	NFNumber    string `json:"nf"`
	Coordinates string `json:"localizacao"`
}

// ReportResponse is the current report view.
type ReportResponse struct {
	State       string               `json:"state"`
	Start       string               `json:"start,omitempty"`
	End         string               `json:"end,omitempty"`
	Period      string               `json:"period,omitempty"`
	GeneratedAt *time.Time           `json:"generated_at,omitempty"`
	Rows        []ReportRow          `json:"rows"`
	Records     []WithdrawalResponse `json:"records"`
}
