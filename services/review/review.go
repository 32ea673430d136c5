// Package review links customer feedback to completed bookings and keeps
// the provider rating aggregate in sync.
package review

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "hirelink/database/repository/booking"
	reviewRepo "hirelink/database/repository/review"
	"hirelink/models"
	"hirelink/services/stats"
	"hirelink/utils"
)

// AddReviewRequest creates a review against a completed booking.
type AddReviewRequest struct {
	BookingID  string  `json:"bookingId" binding:"required"`
	CustomerID string  `json:"customerId" binding:"required"`
	Rating     float64 `json:"rating" binding:"required"`
	Title      string  `json:"title"`
	Comment    string  `json:"comment"`
}

// UpdateReviewRequest edits an existing review. Nil fields keep their value.
type UpdateReviewRequest struct {
	Rating  *float64 `json:"rating"`
	Title   *string  `json:"title"`
	Comment *string  `json:"comment"`
}

// ReviewService manages per-booking reviews.
type ReviewService interface {
	AddReview(req AddReviewRequest) (*models.Review, error)
	UpdateReview(reviewID string, req UpdateReviewRequest) (*models.Review, error)
	ProviderReviews(providerID string, limit int64) ([]models.Review, error)
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	ReviewRepo   reviewRepo.ReviewRepository
	BookingRepo  bookingRepo.BookingRepository
	Recalculator stats.Recalculator
}

// AddReview creates the single review a completed booking may carry and
// refreshes the provider's rating aggregate.
func (s *DefaultReviewService) AddReview(req AddReviewRequest) (*models.Review, error) {
	booking, err := s.BookingRepo.GetByID(req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.StatusCompleted {
		return nil, models.ConflictError{Reason: "only completed bookings can be reviewed"}
	}
	if booking.CustomerID != req.CustomerID {
		return nil, models.ValidationError{Field: "customerId", Reason: "booking does not belong to this customer"}
	}

	now := time.Now()
	review := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		ProviderID: booking.ProviderID,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
		IsVisible:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}

	// The unique index on bookingId turns a racing duplicate into a
	// ConflictError from Create.
	if err := s.ReviewRepo.Create(review); err != nil {
		return nil, err
	}

	if err := s.Recalculator.OnReviewChange(booking.ProviderID); err != nil {
		utils.GetLogger().Warn("rating recalculation failed after review create",
			zap.String("providerId", booking.ProviderID), zap.Error(err))
	}
	return review, nil
}

// UpdateReview edits a review in place. The aggregate is recomputed from
// the full rating set, so repeating the same edit converges on the same
// average.
func (s *DefaultReviewService) UpdateReview(reviewID string, req UpdateReviewRequest) (*models.Review, error) {
	review, err := s.ReviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}

	review.UpdatedAt = time.Now()
	if err := s.ReviewRepo.Update(review); err != nil {
		return nil, err
	}

	if err := s.Recalculator.OnReviewChange(review.ProviderID); err != nil {
		utils.GetLogger().Warn("rating recalculation failed after review update",
			zap.String("providerId", review.ProviderID), zap.Error(err))
	}
	return review, nil
}

// ProviderReviews lists a provider's visible reviews, newest first.
func (s *DefaultReviewService) ProviderReviews(providerID string, limit int64) ([]models.Review, error) {
	return s.ReviewRepo.ListVisibleByProvider(providerID, limit)
}
