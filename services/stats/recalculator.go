// Package stats maintains a provider's rolling aggregates. Every value is
// recomputed from the source records rather than incremented in place, so a
// replayed or concurrent trigger converges on the same numbers.
package stats

import (
	"fmt"
	"math"
	"sync"
	"time"

	bookingRepo "hirelink/database/repository/booking"
	providerRepo "hirelink/database/repository/provider"
	reviewRepo "hirelink/database/repository/review"
	"hirelink/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Recalculator recomputes provider aggregates after booking or review changes.
type Recalculator interface {
	// OnBookingChange recomputes the provider's booking counters and
	// completion rate from the booking collection.
	OnBookingChange(providerID string) error
	// OnReviewChange recomputes the provider's average rating and review
	// count from the visible rating set.
	OnReviewChange(providerID string) error
}

// DefaultRecalculator implements Recalculator.
type DefaultRecalculator struct {
	ProviderRepo providerRepo.ProviderRepository
	BookingRepo  bookingRepo.BookingRepository
	ReviewRepo   reviewRepo.ReviewRepository

	// locks serializes recomputation per provider so that two completions
	// finishing together cannot interleave their read-then-write.
	locks sync.Map
}

func (r *DefaultRecalculator) providerLock(providerID string) *sync.Mutex {
	mu, _ := r.locks.LoadOrStore(providerID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (r *DefaultRecalculator) OnBookingChange(providerID string) error {
	mu := r.providerLock(providerID)
	mu.Lock()
	defer mu.Unlock()

	total, err := r.BookingRepo.CountByProvider(providerID)
	if err != nil {
		return fmt.Errorf("failed to count bookings: %w", err)
	}
	completed, err := r.BookingRepo.CountByProviderAndStatuses(providerID, []models.BookingStatus{models.StatusCompleted})
	if err != nil {
		return fmt.Errorf("failed to count completed bookings: %w", err)
	}
	cancelled, err := r.BookingRepo.CountByProviderAndStatuses(providerID, []models.BookingStatus{models.StatusCancelled})
	if err != nil {
		return fmt.Errorf("failed to count cancelled bookings: %w", err)
	}

	var rate float64
	if total > 0 {
		rate = float64(completed) / float64(total)
	}

	return r.ProviderRepo.UpdateWithDocument(providerID, bson.M{"$set": bson.M{
		"totalBookings":     total,
		"completedBookings": completed,
		"cancelledBookings": cancelled,
		"completionRate":    rate,
		"updatedAt":         time.Now(),
	}})
}

func (r *DefaultRecalculator) OnReviewChange(providerID string) error {
	mu := r.providerLock(providerID)
	mu.Lock()
	defer mu.Unlock()

	ratings, err := r.ReviewRepo.VisibleRatingsByProvider(providerID)
	if err != nil {
		return fmt.Errorf("failed to fetch ratings: %w", err)
	}

	var average float64
	if len(ratings) > 0 {
		var sum float64
		for _, rating := range ratings {
			sum += rating
		}
		average = roundRating(sum / float64(len(ratings)))
	}

	return r.ProviderRepo.UpdateWithDocument(providerID, bson.M{"$set": bson.M{
		"averageRating": average,
		"totalReviews":  len(ratings),
		"updatedAt":     time.Now(),
	}})
}

// roundRating keeps ratings at two decimal places.
func roundRating(v float64) float64 {
	return math.Round(v*100) / 100
}
