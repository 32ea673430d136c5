package handlers

import (
	"net/http"
	"strconv"

	"hirelink/services/review"
	"hirelink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes the review endpoints.
type ReviewHandler struct {
	Service review.ReviewService
}

// NewReviewHandler returns a ReviewHandler backed by the given service.
func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// AddReviewHandler handles POST /api/reviews.
func (h *ReviewHandler) AddReviewHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req review.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	r, err := h.Service.AddReview(req)
	if err != nil {
		logger.Warn("Review rejected", zap.String("bookingId", req.BookingID), zap.Error(err))
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// UpdateReviewHandler handles PATCH /api/reviews/:id.
func (h *ReviewHandler) UpdateReviewHandler(c *gin.Context) {
	id := c.Param("id")

	var req review.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	r, err := h.Service.UpdateReview(id, req)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// ProviderReviewsHandler handles GET /api/reviews/provider/:providerId.
func (h *ReviewHandler) ProviderReviewsHandler(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)
	if err != nil || limit < 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "limit must be a non-negative integer")
		return
	}

	out, err := h.Service.ProviderReviews(c.Param("providerId"), limit)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": out, "count": len(out)})
}
