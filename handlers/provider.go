package handlers

import (
	"net/http"
	"strconv"

	"hirelink/services/provider"
	"hirelink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler exposes provider self-service and listing endpoints.
type ProviderHandler struct {
	Service provider.ProviderService
}

// NewProviderHandler returns a ProviderHandler backed by the given service.
func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Service: svc}
}

// GetProviderHandler handles GET /api/providers/:id.
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	p, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfileHandler handles PATCH /api/providers/:id.
func (h *ProviderHandler) UpdateProfileHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req provider.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	p, err := h.Service.UpdateProfile(id, req)
	if err != nil {
		logger.Warn("Profile update rejected", zap.String("providerId", id), zap.Error(err))
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type availabilityRequest struct {
	Available bool   `json:"available"`
	Status    string `json:"status"`
}

// UpdateAvailabilityHandler handles PUT /api/providers/:id/availability.
func (h *ProviderHandler) UpdateAvailabilityHandler(c *gin.Context) {
	id := c.Param("id")

	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Service.UpdateAvailability(id, req.Available, req.Status); err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "availability updated"})
}

// TopRatedHandler handles GET /api/providers/top-rated.
func (h *ProviderHandler) TopRatedHandler(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil || limit < 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "limit must be a non-negative integer")
		return
	}

	out, err := h.Service.TopRated(limit)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": out, "count": len(out)})
}

// FeaturedHandler handles GET /api/providers/featured.
func (h *ProviderHandler) FeaturedHandler(c *gin.Context) {
	out, err := h.Service.Featured()
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": out, "count": len(out)})
}

// DeleteProviderHandler handles DELETE /api/providers/:id.
func (h *ProviderHandler) DeleteProviderHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	if err := h.Service.SoftDelete(id); err != nil {
		logger.Error("Failed to delete provider", zap.String("id", id), zap.Error(err))
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "provider deleted"})
}
