// Package memoryRepo provides map-backed implementations of the repository
// interfaces. They back the service test suites and behave like the Mongo
// repositories: typed NotFound errors, uniqueness conflicts and the same
// filtering rules.
package memoryRepo

import (
	"sort"
	"sync"

	bookingRepo "hirelink/database/repository/booking"
	providerRepo "hirelink/database/repository/provider"
	reviewRepo "hirelink/database/repository/review"
	serviceRepo "hirelink/database/repository/service"
	"hirelink/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProviderRepo is an in-memory providerRepo.ProviderRepository.
type ProviderRepo struct {
	mu        sync.RWMutex
	providers map[string]models.Provider
}

// NewProviderRepo returns an empty in-memory provider repository.
func NewProviderRepo() *ProviderRepo {
	return &ProviderRepo{providers: make(map[string]models.Provider)}
}

var _ providerRepo.ProviderRepository = (*ProviderRepo)(nil)

func (r *ProviderRepo) GetByID(id string) (*models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[id]
	if !ok || p.IsDeleted {
		return nil, models.NotFoundError{Resource: "provider", ID: id}
	}
	copy := p
	return &copy, nil
}

func (r *ProviderRepo) Create(provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.ID] = *provider
	return nil
}

func (r *ProviderRepo) Update(provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[provider.ID]; !ok {
		return models.NotFoundError{Resource: "provider", ID: provider.ID}
	}
	r.providers[provider.ID] = *provider
	return nil
}

func (r *ProviderRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return models.NotFoundError{Resource: "provider", ID: id}
	}
	if set, ok := updateDoc["$set"].(bson.M); ok {
		applyProviderSet(&p, set)
	}
	r.providers[id] = p
	return nil
}

func (r *ProviderRepo) SoftDelete(id string) error {
	return r.UpdateWithDocument(id, bson.M{"$set": bson.M{"isDeleted": true, "isAvailable": false}})
}

func (r *ProviderRepo) FindInArea(minLat, maxLat, minLon, maxLon float64, providerIDs []string) ([]models.Provider, error) {
	var idSet map[string]bool
	if providerIDs != nil {
		idSet = make(map[string]bool, len(providerIDs))
		for _, id := range providerIDs {
			idSet[id] = true
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Provider
	for _, p := range r.providers {
		if p.IsDeleted || !p.IsAvailable || !p.HasCoordinates() {
			continue
		}
		if idSet != nil && !idSet[p.ID] {
			continue
		}
		lat, lon := *p.BaseLatitude, *p.BaseLongitude
		if lat < minLat || lat > maxLat || lon < minLon || lon > maxLon {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProviderRepo) FindByPincode(pincode string) ([]models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Provider
	for _, p := range r.providers {
		if p.IsDeleted || !p.IsAvailable || p.BasePincode != pincode {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageRating != out[j].AverageRating {
			return out[i].AverageRating > out[j].AverageRating
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ProviderRepo) FindTopRated(limit int64) ([]models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Provider
	for _, p := range r.providers {
		if p.IsDeleted || !p.IsAvailable {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageRating != out[j].AverageRating {
			return out[i].AverageRating > out[j].AverageRating
		}
		return out[i].CompletedBookings > out[j].CompletedBookings
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ProviderRepo) FindFeatured() ([]models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Provider
	for _, p := range r.providers {
		if !p.IsDeleted && p.IsAvailable && p.IsFeatured {
			out = append(out, p)
		}
	}
	return out, nil
}

// BookingRepo is an in-memory bookingRepo.BookingRepository.
type BookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
	numbers  map[string]string // booking number -> id
}

// NewBookingRepo returns an empty in-memory booking repository.
func NewBookingRepo() *BookingRepo {
	return &BookingRepo{
		bookings: make(map[string]models.Booking),
		numbers:  make(map[string]string),
	}
}

var _ bookingRepo.BookingRepository = (*BookingRepo)(nil)

func (r *BookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, models.NotFoundError{Resource: "booking", ID: id}
	}
	copy := b
	return &copy, nil
}

func (r *BookingRepo) GetByNumber(number string) (*models.Booking, error) {
	r.mu.RLock()
	id, ok := r.numbers[number]
	r.mu.RUnlock()
	if !ok {
		return nil, models.NotFoundError{Resource: "booking", ID: number}
	}
	return r.GetByID(id)
}

func (r *BookingRepo) Create(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.numbers[booking.BookingNumber]; taken {
		return models.ConflictError{Reason: "booking number already exists: " + booking.BookingNumber}
	}
	r.bookings[booking.ID] = *booking
	r.numbers[booking.BookingNumber] = booking.ID
	return nil
}

func (r *BookingRepo) Update(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID]; !ok {
		return models.NotFoundError{Resource: "booking", ID: booking.ID}
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *BookingRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return models.NotFoundError{Resource: "booking", ID: id}
	}
	if set, ok := updateDoc["$set"].(bson.M); ok {
		applyBookingSet(&b, set)
	}
	r.bookings[id] = b
	return nil
}

func (r *BookingRepo) ExistsByNumber(number string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.numbers[number]
	return ok, nil
}

func (r *BookingRepo) CountByProviderAndStatuses(providerID string, statuses []models.BookingStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, b := range r.bookings {
		if b.ProviderID != providerID {
			continue
		}
		for _, s := range statuses {
			if b.Status == s {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *BookingRepo) CountByProvider(providerID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, b := range r.bookings {
		if b.ProviderID == providerID {
			count++
		}
	}
	return count, nil
}

func (r *BookingRepo) ListByCustomer(customerID string, status models.BookingStatus) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID && (status == "" || b.Status == status) {
			out = append(out, b)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *BookingRepo) ListByProvider(providerID string, status models.BookingStatus) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID && (status == "" || b.Status == status) {
			out = append(out, b)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(bookings []models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}

// ServiceRepo is an in-memory serviceRepo.ServiceRepository.
type ServiceRepo struct {
	mu       sync.RWMutex
	services map[string]models.Service
}

// NewServiceRepo returns an empty in-memory service repository.
func NewServiceRepo() *ServiceRepo {
	return &ServiceRepo{services: make(map[string]models.Service)}
}

var _ serviceRepo.ServiceRepository = (*ServiceRepo)(nil)

func (r *ServiceRepo) GetByID(id string) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.services[id]
	if !ok {
		return nil, models.NotFoundError{Resource: "service", ID: id}
	}
	copy := s
	return &copy, nil
}

func (r *ServiceRepo) Create(service *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[service.ID] = *service
	return nil
}

func (r *ServiceRepo) Update(service *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[service.ID]; !ok {
		return models.NotFoundError{Resource: "service", ID: service.ID}
	}
	r.services[service.ID] = *service
	return nil
}

func (r *ServiceRepo) ListByProvider(providerID string) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Service
	for _, s := range r.services {
		if s.ProviderID == providerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *ServiceRepo) ProviderIDsWithActiveCategory(categoryID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var ids []string
	for _, s := range r.services {
		if s.CategoryID == categoryID && s.IsActive && !seen[s.ProviderID] {
			seen[s.ProviderID] = true
			ids = append(ids, s.ProviderID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *ServiceRepo) IncrementTimesBooked(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return models.NotFoundError{Resource: "service", ID: id}
	}
	s.TimesBooked++
	r.services[id] = s
	return nil
}

// ReviewRepo is an in-memory reviewRepo.ReviewRepository.
type ReviewRepo struct {
	mu        sync.RWMutex
	reviews   map[string]models.Review
	byBooking map[string]string // booking id -> review id
}

// NewReviewRepo returns an empty in-memory review repository.
func NewReviewRepo() *ReviewRepo {
	return &ReviewRepo{
		reviews:   make(map[string]models.Review),
		byBooking: make(map[string]string),
	}
}

var _ reviewRepo.ReviewRepository = (*ReviewRepo)(nil)

func (r *ReviewRepo) GetByID(id string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rev, ok := r.reviews[id]
	if !ok {
		return nil, models.NotFoundError{Resource: "review", ID: id}
	}
	copy := rev
	return &copy, nil
}

func (r *ReviewRepo) GetByBookingID(bookingID string) (*models.Review, error) {
	r.mu.RLock()
	id, ok := r.byBooking[bookingID]
	r.mu.RUnlock()
	if !ok {
		return nil, models.NotFoundError{Resource: "review", ID: "booking " + bookingID}
	}
	return r.GetByID(id)
}

func (r *ReviewRepo) ExistsForBooking(bookingID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byBooking[bookingID]
	return ok, nil
}

func (r *ReviewRepo) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byBooking[review.BookingID]; taken {
		return models.ConflictError{Reason: "booking already has a review: " + review.BookingID}
	}
	r.reviews[review.ID] = *review
	r.byBooking[review.BookingID] = review.ID
	return nil
}

func (r *ReviewRepo) Update(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return models.NotFoundError{Resource: "review", ID: review.ID}
	}
	r.reviews[review.ID] = *review
	return nil
}

func (r *ReviewRepo) VisibleRatingsByProvider(providerID string) ([]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ratings []float64
	for _, rev := range r.reviews {
		if rev.ProviderID == providerID && rev.IsVisible {
			ratings = append(ratings, rev.Rating)
		}
	}
	return ratings, nil
}

func (r *ReviewRepo) ListVisibleByProvider(providerID string, limit int64) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Review
	for _, rev := range r.reviews {
		if rev.ProviderID == providerID && rev.IsVisible {
			out = append(out, rev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
