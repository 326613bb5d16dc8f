package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"fieldbooking/internal/delivery/http/helpers"
	"fieldbooking/internal/delivery/http/middleware"
	"fieldbooking/internal/domain"
)

// CreateReservationRequest is the request body for POST /reservations.
type CreateReservationRequest struct {
	FieldID   string    `json:"field_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Validate implements Validator.
func (c CreateReservationRequest) Validate() []string {
	var errs []string
	if c.FieldID == "" {
		errs = append(errs, "field_id is required")
	} else if _, ok := canonicalUUID(c.FieldID); !ok {
		errs = append(errs, "field_id must be a valid UUID")
	}
	return validateWindow(errs, c.StartTime, c.EndTime)
}

// UpdateStatusRequest is the request body for PATCH /admin/reservations/{reservationID}/status.
type UpdateStatusRequest struct {
	Status domain.ReservationStatus `json:"status"`
}

// Validate implements Validator.
func (u UpdateStatusRequest) Validate() []string {
	if u.Status == "" {
		return []string{"status is required"}
	}
	if !u.Status.Valid() {
		return []string{"status must be one of pending, confirmed, paid, canceled"}
	}
	return nil
}

// ReservationSuccessResponse is the success response envelope for a single reservation.
type ReservationSuccessResponse struct {
	Data  *domain.Reservation `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListReservationsResponse is the data payload for reservation listings.
type ListReservationsResponse struct {
	Items      []*domain.Reservation  `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListReservationsSuccessResponse is the success response envelope for reservation listings (200).
type ListReservationsSuccessResponse struct {
	Data  ListReservationsResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ReservationController serves customer bookings and admin reservation management.
type ReservationController struct {
	Logger  *slog.Logger
	Service domain.ReservationService
}

// NewReservationController creates a ReservationController with the given logger and service.
func NewReservationController(logger *slog.Logger, svc domain.ReservationService) *ReservationController {
	return &ReservationController{
		Logger:  logger,
		Service: svc,
	}
}

func callerOrUnauthorized(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	}
	return caller, ok
}

// Create godoc
// @Summary Reserve a field
// @Description Creates a pending reservation for [start_time, end_time). Times are RFC3339. A window touching an existing reservation's boundary conflicts. Pending holds older than 30 minutes are released when they overlap the request.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateReservationRequest true "Reservation window"
// @Success 201 {object} controllers.ReservationSuccessResponse "data contains the pending reservation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (field)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (overlapping reservation)"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable (inactive field or outside availability)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reservations [post]
func (c *ReservationController) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrUnauthorized(w, r)
	if !ok {
		return
	}
	var req CreateReservationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	fieldID, _ := canonicalUUID(req.FieldID)
	res, err := c.Service.Reserve(r.Context(), caller, fieldID, req.StartTime, req.EndTime)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, res)
}

// ListMine godoc
// @Summary List my reservations
// @Description Paginated, newest start time first.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListReservationsSuccessResponse "data.items and data.pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reservations/me [get]
func (c *ReservationController) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrUnauthorized(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	list, total, err := c.Service.ListMine(r.Context(), caller, params)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListReservationsResponse{
		Items:      list,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}

// Get godoc
// @Summary Get a reservation
// @Description Owner or admin only.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param reservationID path string true "Reservation ID (UUID)"
// @Success 200 {object} controllers.ReservationSuccessResponse "data contains the reservation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reservations/{reservationID} [get]
func (c *ReservationController) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "reservationID")
	if !ok {
		return
	}
	res, err := c.Service.Get(r.Context(), caller, id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// Cancel godoc
// @Summary Cancel a reservation
// @Description Owner or admin only. A canceled reservation frees its window.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param reservationID path string true "Reservation ID (UUID)"
// @Success 200 {object} controllers.ReservationSuccessResponse "data contains the canceled reservation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable (already canceled)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reservations/{reservationID}/cancel [post]
func (c *ReservationController) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "reservationID")
	if !ok {
		return
	}
	res, err := c.Service.Cancel(r.Context(), caller, id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// AdminList godoc
// @Summary List reservations
// @Description Paginated, filterable by field and status. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param field_id query string false "Field ID (UUID)"
// @Param status query string false "pending, confirmed, paid or canceled"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListReservationsSuccessResponse "data.items and data.pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reservations [get]
func (c *ReservationController) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ReservationFilter{Status: domain.ReservationStatus(q.Get("status"))}
	if raw := q.Get("field_id"); raw != "" {
		id, ok := canonicalUUID(raw)
		if !ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "field_id must be a valid UUID")
			return
		}
		filter.FieldID = id
	}
	if filter.Status != "" && !filter.Status.Valid() {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid status")
		return
	}
	params := helpers.ParsePagination(r)
	list, total, err := c.Service.List(r.Context(), filter, params)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListReservationsResponse{
		Items:      list,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}

// UpdateStatus godoc
// @Summary Change a reservation's status
// @Description Allowed: pending to confirmed, paid or canceled; confirmed to paid or canceled; paid to canceled. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reservationID path string true "Reservation ID (UUID)"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} controllers.ReservationSuccessResponse "data contains the updated reservation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable (transition not allowed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reservations/{reservationID}/status [patch]
func (c *ReservationController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "reservationID")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// Delete godoc
// @Summary Delete a reservation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param reservationID path string true "Reservation ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse "data.status is deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reservations/{reservationID} [delete]
func (c *ReservationController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "reservationID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.StatusResponse{Status: "deleted"})
}
