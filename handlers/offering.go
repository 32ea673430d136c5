package handlers

import (
	"net/http"

	"hirelink/services/offering"
	"hirelink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OfferingHandler exposes the service offering endpoints.
type OfferingHandler struct {
	Service offering.OfferingService
}

// NewOfferingHandler returns an OfferingHandler backed by the given service.
func NewOfferingHandler(svc offering.OfferingService) *OfferingHandler {
	return &OfferingHandler{Service: svc}
}

// CreateOfferingHandler handles POST /api/services.
func (h *OfferingHandler) CreateOfferingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req offering.CreateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	svc, err := h.Service.Create(req)
	if err != nil {
		logger.Warn("Offering creation rejected", zap.String("providerId", req.ProviderID), zap.Error(err))
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateOfferingHandler handles PATCH /api/services/:id.
func (h *OfferingHandler) UpdateOfferingHandler(c *gin.Context) {
	id := c.Param("id")

	var req offering.UpdateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	svc, err := h.Service.Update(id, req)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// GetOfferingHandler handles GET /api/services/:id.
func (h *OfferingHandler) GetOfferingHandler(c *gin.Context) {
	svc, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// ListProviderOfferingsHandler handles GET /api/services/provider/:providerId.
func (h *OfferingHandler) ListProviderOfferingsHandler(c *gin.Context) {
	out, err := h.Service.ListByProvider(c.Param("providerId"))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": out, "count": len(out)})
}
