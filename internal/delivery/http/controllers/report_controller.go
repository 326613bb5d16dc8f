package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"fieldbooking/internal/delivery/http/helpers"
	"fieldbooking/internal/domain"
)

// FieldUsageSuccessResponse is the success response envelope for GET /admin/reports/fields (200).
type FieldUsageSuccessResponse struct {
	Data  []*domain.FieldReport `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

type ReportController struct {
	Logger  *slog.Logger
	Service domain.ReportService
}

func NewReportController(logger *slog.Logger, svc domain.ReportService) *ReportController {
	return &ReportController{
		Logger:  logger,
		Service: svc,
	}
}

// FieldUsage godoc
// @Summary Field usage report
// @Description Per field: count and booked minutes of non-canceled reservations and revenue of paid ones, for reservations starting in [from, to). Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param from query string true "Period start (RFC3339)"
// @Param to query string true "Period end, exclusive (RFC3339)"
// @Success 200 {object} controllers.FieldUsageSuccessResponse "data contains one row per field"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reports/fields [get]
func (c *ReportController) FieldUsage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := time.Parse(time.RFC3339, q.Get("from"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "from must be an RFC3339 timestamp")
		return
	}
	to, err := time.Parse(time.RFC3339, q.Get("to"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "to must be an RFC3339 timestamp")
		return
	}
	rows, err := c.Service.FieldUsage(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}
