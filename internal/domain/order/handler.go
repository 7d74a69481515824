package order

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"promoservice/internal/pkg/pagination"
	"promoservice/internal/pkg/response"
)

// Handler handles order HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates order handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /orders
// @Summary Place order
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Order"
// @Success 201 {object} Order
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /orders [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := req.Validate(); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	o, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, o)
}

// List handles GET /orders
// @Summary List orders
// @Tags Orders
// @Produce json
// @Param user_id query string false "Only orders of this user"
// @Param limit query int false "Limit" default(10)
// @Param skip query int false "Skip" default(0)
// @Success 200 {array} Order
// @Failure 422 {object} response.Response
// @Router /orders [get]
func (h *Handler) List(c *gin.Context) {
	page, errs := pagination.FromQuery(c)
	if errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid paging parameters", errs)
		return
	}

	orders, err := h.service.List(c.Request.Context(), ListFilter{
		UserID: c.Query("user_id"),
		Limit:  page.Limit,
		Skip:   page.Skip,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, orders)
}

// Get handles GET /orders/:id
// @Summary Get order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} Order
// @Failure 404 {object} response.Response
// @Router /orders/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	o, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, o)
}

// Update handles PATCH /orders/:id
// @Summary Update order status or items
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body UpdateOrderRequest true "Fields to change"
// @Success 200 {object} Order
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /orders/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := req.Validate(); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	o, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, o)
}

// Delete handles DELETE /orders/:id
// @Summary Delete order
// @Tags Orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /orders/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrOrderNotFound) {
		response.Error(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		return
	}
	response.Internal(c, "INTERNAL_ERROR", err)
}
