package advertisement

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"promoservice/internal/pkg/pagination"
	"promoservice/internal/pkg/response"
)

// Handler handles advertisement HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates advertisement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /advertisements
// @Summary Create advertisement
// @Tags Advertisements
// @Accept json
// @Produce json
// @Param request body CreateAdvertisementRequest true "Advertisement"
// @Success 201 {object} Advertisement
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /advertisements [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateAdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := req.Validate(); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	ad, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, ad)
}

// ListActive handles GET /advertisements/active
// @Summary List advertisements eligible for display now
// @Tags Advertisements
// @Produce json
// @Param limit query int false "Limit" default(10)
// @Param skip query int false "Skip" default(0)
// @Success 200 {array} Advertisement
// @Failure 422 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /advertisements/active [get]
func (h *Handler) ListActive(c *gin.Context) {
	page, errs := pagination.FromQuery(c)
	if errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid paging parameters", errs)
		return
	}

	ads, err := h.service.ListActive(c.Request.Context(), page.Limit, page.Skip)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, ads)
}

// Get handles GET /advertisements/:id
// @Summary Get advertisement by ID
// @Tags Advertisements
// @Produce json
// @Param id path string true "Advertisement ID"
// @Success 200 {object} Advertisement
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /advertisements/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	ad, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, ad)
}

// Update handles PUT /advertisements/:id
// @Summary Update advertisement
// @Description Keys missing from the body keep their stored values
// @Tags Advertisements
// @Accept json
// @Produce json
// @Param id path string true "Advertisement ID"
// @Param request body Patch true "Fields to change"
// @Success 200 {object} Advertisement
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /advertisements/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var p Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := p.Validate(); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	ad, err := h.service.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, ad)
}

// Delete handles DELETE /advertisements/:id
// @Summary Delete advertisement
// @Tags Advertisements
// @Param id path string true "Advertisement ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /advertisements/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	response.NoContent(c)
}

// Landing handles GET /advertisements/:id/landing
// @Summary Resolve advertisement landing
// @Description Returns the landing URL, or the target products when no URL is set
// @Tags Advertisements
// @Produce json
// @Param id path string true "Advertisement ID"
// @Success 200 {object} Landing
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /advertisements/{id}/landing [get]
func (h *Handler) Landing(c *gin.Context) {
	landing, err := h.service.ResolveLanding(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, landing)
}

// Click handles POST /advertisements/:id/click
// @Summary Record advertisement click
// @Description The click is forwarded to the logging service; 202 does not mean it was stored
// @Tags Advertisements
// @Accept json
// @Produce json
// @Param id path string true "Advertisement ID"
// @Param request body ClickRequest false "Click context"
// @Success 202 {object} map[string]string
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /advertisements/{id}/click [post]
func (h *Handler) Click(c *gin.Context) {
	var req ClickRequest
	// body is optional; io.EOF means it was empty
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if err := h.service.RecordClick(c.Request.Context(), c.Param("id"), req); err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusAccepted, gin.H{"status": "accepted"})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAdvertisementNotFound):
		response.Error(c, http.StatusNotFound, "ADVERTISEMENT_NOT_FOUND", "Advertisement not found")
	case errors.Is(err, ErrUnresolvableLanding):
		response.Error(c, http.StatusNotFound, "LANDING_NOT_FOUND", "Advertisement has no landing destination")
	case errors.Is(err, ErrInvalidTimeWindow):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_TIME_WINDOW", "end_time must not be before start_time")
	default:
		response.Internal(c, "INTERNAL_ERROR", err)
	}
}
