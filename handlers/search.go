package handlers

import (
	"net/http"
	"strconv"

	"hirelink/services/search"
	"hirelink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler exposes the provider discovery endpoints.
type SearchHandler struct {
	Service search.SearchService
}

// NewSearchHandler returns a SearchHandler backed by the given service.
func NewSearchHandler(svc search.SearchService) *SearchHandler {
	return &SearchHandler{Service: svc}
}

// NearbyHandler handles GET /api/search/nearby.
func (h *SearchHandler) NearbyHandler(c *gin.Context) {
	logger := utils.GetLogger()

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "lon must be a number")
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radiusKm", "10"), 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "radiusKm must be a number")
		return
	}

	results, err := h.Service.FindNearby(search.NearbyQuery{
		Latitude:   lat,
		Longitude:  lon,
		RadiusKm:   radius,
		CategoryID: c.Query("categoryId"),
	})
	if err != nil {
		logger.Error("Nearby search failed", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": results, "count": len(results)})
}

// PincodeHandler handles GET /api/search/pincode/:pincode.
func (h *SearchHandler) PincodeHandler(c *gin.Context) {
	logger := utils.GetLogger()
	pincode := c.Param("pincode")

	results, err := h.Service.FindByPincode(pincode)
	if err != nil {
		logger.Error("Pincode search failed", zap.String("pincode", pincode), zap.Error(err))
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": results, "count": len(results)})
}
