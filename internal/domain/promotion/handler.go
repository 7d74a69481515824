package promotion

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"promoservice/internal/pkg/pagination"
	"promoservice/internal/pkg/response"
)

// Handler handles promotion HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates promotion handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /promotions
// @Summary Create promotion
// @Tags Promotions
// @Accept json
// @Produce json
// @Param request body CreatePromotionRequest true "Promotion"
// @Success 201 {object} Promotion
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /promotions [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := req.Validate(); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, p)
}

// List handles GET /promotions
// @Summary List all promotions
// @Tags Promotions
// @Produce json
// @Success 200 {array} Promotion
// @Router /promotions [get]
func (h *Handler) List(c *gin.Context) {
	promotions, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, promotions)
}

// ListActive handles GET /promotions/active
// @Summary List running promotions
// @Tags Promotions
// @Produce json
// @Param limit query int false "Limit" default(10)
// @Param skip query int false "Skip" default(0)
// @Success 200 {array} Promotion
// @Failure 422 {object} response.Response
// @Router /promotions/active [get]
func (h *Handler) ListActive(c *gin.Context) {
	page, errs := pagination.FromQuery(c)
	if errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid paging parameters", errs)
		return
	}

	promotions, err := h.service.ListActive(c.Request.Context(), page.Limit, page.Skip)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, promotions)
}

// Get handles GET /promotions/:id
// @Summary Get promotion
// @Tags Promotions
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} Promotion
// @Failure 404 {object} response.Response
// @Router /promotions/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Update handles PATCH /promotions/:id
// @Summary Update promotion
// @Tags Promotions
// @Accept json
// @Produce json
// @Param id path string true "Promotion ID"
// @Param request body UpdatePromotionRequest true "Fields to change"
// @Success 200 {object} Promotion
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /promotions/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	var req UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := req.Validate(); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Delete handles DELETE /promotions/:id
// @Summary Delete promotion
// @Tags Promotions
// @Param id path string true "Promotion ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /promotions/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPromotionNotFound):
		response.Error(c, http.StatusNotFound, "PROMOTION_NOT_FOUND", "Promotion not found")
	case errors.Is(err, ErrInvalidTimeWindow):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_TIME_WINDOW", "end_time must not be before start_time")
	default:
		response.Internal(c, "INTERNAL_ERROR", err)
	}
}
