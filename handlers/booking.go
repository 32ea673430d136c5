package handlers

import (
	"net/http"

	"hirelink/models"
	"hirelink/services/booking"
	"hirelink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler returns a BookingHandler backed by the given service.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Service.CreateBooking(req)
	if err != nil {
		logger.Warn("Booking creation rejected", zap.String("providerId", req.ProviderID), zap.Error(err))
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBookingByNumberHandler handles GET /api/bookings/number/:number.
func (h *BookingHandler) GetBookingByNumberHandler(c *gin.Context) {
	b, err := h.Service.GetByNumber(c.Param("number"))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateStatusHandler handles PATCH /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req booking.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Service.UpdateStatus(id, req)
	if err != nil {
		logger.Warn("Status transition rejected",
			zap.String("bookingId", id), zap.String("to", string(req.Status)), zap.Error(err))
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateDetailsHandler handles PATCH /api/bookings/:id.
func (h *BookingHandler) UpdateDetailsHandler(c *gin.Context) {
	id := c.Param("id")

	var req booking.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Service.UpdateDetails(id, req)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListCustomerBookingsHandler handles GET /api/bookings/customer/:customerId.
func (h *BookingHandler) ListCustomerBookingsHandler(c *gin.Context) {
	out, err := h.Service.ListCustomerBookings(
		c.Param("customerId"), models.BookingStatus(c.Query("status")))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out, "count": len(out)})
}

// ListProviderBookingsHandler handles GET /api/bookings/provider/:providerId.
func (h *BookingHandler) ListProviderBookingsHandler(c *gin.Context) {
	out, err := h.Service.ListProviderBookings(
		c.Param("providerId"), models.BookingStatus(c.Query("status")))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out, "count": len(out)})
}
