package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fieldbooking/internal/delivery/http/helpers"
	"fieldbooking/internal/domain"
)

// CreateFieldRequest is the request body for POST /admin/fields.
type CreateFieldRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	PricePerHour int64  `json:"price_per_hour"`
}

// Validate implements Validator.
func (c CreateFieldRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.PricePerHour < 0 {
		errs = append(errs, "price_per_hour must not be negative")
	}
	return errs
}

// UpdateFieldRequest is the request body for PATCH /admin/fields/{fieldID}. Omitted members are left unchanged.
type UpdateFieldRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
	PricePerHour *int64  `json:"price_per_hour"`
	Active       *bool   `json:"active"`
}

// Validate implements Validator.
func (u UpdateFieldRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if u.PricePerHour != nil && *u.PricePerHour < 0 {
		errs = append(errs, "price_per_hour must not be negative")
	}
	return errs
}

func (u UpdateFieldRequest) toDomain() domain.FieldUpdate {
	return domain.FieldUpdate{
		Name:         u.Name,
		Description:  u.Description,
		Location:     u.Location,
		PricePerHour: u.PricePerHour,
		Active:       u.Active,
	}
}

// AvailabilityRequest is the request body for POST /admin/fields/{fieldID}/availability.
type AvailabilityRequest struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Validate implements Validator.
func (a AvailabilityRequest) Validate() []string {
	return validateWindow(nil, a.StartTime, a.EndTime)
}

// ListFieldsResponse is the data payload for GET /fields and GET /admin/fields.
type ListFieldsResponse struct {
	Items      []*domain.Field        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListFieldsSuccessResponse is the success response envelope for field listings (200).
type ListFieldsSuccessResponse struct {
	Data  ListFieldsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// FieldSuccessResponse is the success response envelope for a single field.
type FieldSuccessResponse struct {
	Data  *domain.Field     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AvailabilitySuccessResponse is the success response envelope for a created availability window (201).
type AvailabilitySuccessResponse struct {
	Data  *domain.AvailabilityWindow `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// ListAvailabilitySuccessResponse is the success response envelope for GET /fields/{fieldID}/availability (200).
type ListAvailabilitySuccessResponse struct {
	Data  []*domain.AvailabilityWindow `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

// StatusSuccessResponse is the success response envelope for deletes (200).
type StatusSuccessResponse struct {
	Data  helpers.StatusResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// FieldController serves field browsing and admin management.
type FieldController struct {
	Logger  *slog.Logger
	Service domain.FieldService
}

// NewFieldController creates a FieldController with the given logger and service.
func NewFieldController(logger *slog.Logger, svc domain.FieldService) *FieldController {
	return &FieldController{
		Logger:  logger,
		Service: svc,
	}
}

// ListFields godoc
// @Summary List active fields
// @Description Paginated list of fields accepting reservations. Public.
// @Tags fields
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListFieldsSuccessResponse "data.items and data.pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /fields [get]
func (c *FieldController) ListFields(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, false)
}

// AdminListFields godoc
// @Summary List all fields
// @Description Paginated list of fields including inactive ones. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListFieldsSuccessResponse "data.items and data.pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/fields [get]
func (c *FieldController) AdminListFields(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, true)
}

func (c *FieldController) list(w http.ResponseWriter, r *http.Request, includeInactive bool) {
	params := helpers.ParsePagination(r)
	fields, total, err := c.Service.ListFields(r.Context(), includeInactive, params)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListFieldsResponse{
		Items:      fields,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}

// GetField godoc
// @Summary Get a field
// @Tags fields
// @Produce json
// @Param fieldID path string true "Field ID (UUID)"
// @Success 200 {object} controllers.FieldSuccessResponse "data contains the field"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /fields/{fieldID} [get]
func (c *FieldController) GetField(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "fieldID")
	if !ok {
		return
	}
	field, err := c.Service.GetField(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, field)
}

// ListAvailability godoc
// @Summary List a field's availability windows
// @Description Windows ordered by start time. A field without windows accepts any time.
// @Tags fields
// @Produce json
// @Param fieldID path string true "Field ID (UUID)"
// @Success 200 {object} controllers.ListAvailabilitySuccessResponse "data contains the windows"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /fields/{fieldID}/availability [get]
func (c *FieldController) ListAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "fieldID")
	if !ok {
		return
	}
	windows, err := c.Service.ListAvailability(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, windows)
}

// CreateField godoc
// @Summary Create a field
// @Description New fields are active. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateFieldRequest true "Field data"
// @Success 201 {object} controllers.FieldSuccessResponse "data contains the created field"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/fields [post]
func (c *FieldController) CreateField(w http.ResponseWriter, r *http.Request) {
	var req CreateFieldRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	field := domain.NewField(req.Name, req.Description, req.Location, req.PricePerHour, time.Time{}, time.Time{})
	if err := c.Service.CreateField(r.Context(), field); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, field)
}

// UpdateField godoc
// @Summary Update a field
// @Description Partial update. Set active=false to stop accepting reservations. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param fieldID path string true "Field ID (UUID)"
// @Param body body UpdateFieldRequest true "Fields to update"
// @Success 200 {object} controllers.FieldSuccessResponse "data contains the updated field"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/fields/{fieldID} [patch]
func (c *FieldController) UpdateField(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "fieldID")
	if !ok {
		return
	}
	var req UpdateFieldRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	field, err := c.Service.UpdateField(r.Context(), id, req.toDomain())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, field)
}

// DeleteField godoc
// @Summary Delete a field
// @Description Deletes the field with its availability windows and reservations. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param fieldID path string true "Field ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse "data.status is deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/fields/{fieldID} [delete]
func (c *FieldController) DeleteField(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "fieldID")
	if !ok {
		return
	}
	if err := c.Service.DeleteField(r.Context(), id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.StatusResponse{Status: "deleted"})
}

// AddAvailability godoc
// @Summary Add an availability window
// @Description Times are RFC3339 and stored in UTC. start_time must be before end_time. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param fieldID path string true "Field ID (UUID)"
// @Param body body AvailabilityRequest true "Window"
// @Success 201 {object} controllers.AvailabilitySuccessResponse "data contains the window"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/fields/{fieldID}/availability [post]
func (c *FieldController) AddAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "fieldID")
	if !ok {
		return
	}
	var req AvailabilityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	window, err := c.Service.AddAvailability(r.Context(), id, req.StartTime, req.EndTime)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, window)
}

// RemoveAvailability godoc
// @Summary Remove an availability window
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param windowID path string true "Availability window ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse "data.status is deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/availability/{windowID} [delete]
func (c *FieldController) RemoveAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "windowID")
	if !ok {
		return
	}
	if err := c.Service.RemoveAvailability(r.Context(), id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.StatusResponse{Status: "deleted"})
}
