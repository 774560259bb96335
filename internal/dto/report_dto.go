package dto

import "github.com/fixmycity/fixmycity-backend/internal/models"

// SubmitReportRequest carries the image as a base64 data URL; the hosted URL
// replaces it on the persisted record.
type SubmitReportRequest struct {
	Title   string `json:"title"`
	Caption string `json:"caption"`
	Place   string `json:"place"`
	Rating  int    `json:"rating"`
	Image   string `json:"image"`
	Lat     string `json:"lat"`
	Lng     string `json:"lng"`
}

// UpdateReportRequest is an allow-list patch. Pointer fields distinguish
// "absent" from zero values; anything not listed here is ignored even when
// present in the request body. The responder is never patchable directly.
type UpdateReportRequest struct {
	Title        *string `json:"title"`
	Caption      *string `json:"caption"`
	Place        *string `json:"place"`
	Rating       *int    `json:"rating"`
	Responded    *int    `json:"responded"`
	Comment      *string `json:"comment"`
	ResponseDate *string `json:"responseDate"`
	Lat          *string `json:"lat"`
	Lng          *string `json:"lng"`
}

type SubmitReportResponse struct {
	*models.Report
	Msg string `json:"msg"`
}

type UpdateReportResponse struct {
	Msg    string         `json:"msg"`
	Report *models.Report `json:"report"`
}

// ReportPage is the common paginated listing envelope.
type ReportPage struct {
	Reports      []models.Report `json:"reports"`
	CurrentPage  int             `json:"currentPage"`
	TotalRecords int64           `json:"totalRecords"`
	TotalPages   int             `json:"totalPages"`
}
