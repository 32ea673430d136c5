package memoryRepo

import (
	"time"

	"hirelink/models"

	"go.mongodb.org/mongo-driver/bson"
)

// The services patch documents with a small, known field set; these helpers
// interpret those $set documents against the in-memory structs.

func applyProviderSet(p *models.Provider, set bson.M) {
	for key, value := range set {
		switch key {
		case "totalBookings":
			p.TotalBookings = asInt(value)
		case "completedBookings":
			p.CompletedBookings = asInt(value)
		case "cancelledBookings":
			p.CancelledBookings = asInt(value)
		case "completionRate":
			p.CompletionRate = asFloat(value)
		case "averageRating":
			p.AverageRating = asFloat(value)
		case "totalReviews":
			p.TotalReviews = asInt(value)
		case "isAvailable":
			p.IsAvailable = value.(bool)
		case "availabilityStatus":
			p.AvailabilityStatus = value.(string)
		case "isDeleted":
			p.IsDeleted = value.(bool)
		case "profileCompletionPercentage":
			p.ProfileCompletionPercentage = asInt(value)
		case "businessName":
			p.BusinessName = value.(string)
		case "businessDescription":
			p.BusinessDescription = value.(string)
		case "tagline":
			p.Tagline = value.(string)
		case "phone":
			p.Phone = value.(string)
		case "profileImageUrl":
			p.ProfileImageURL = value.(string)
		case "experienceYears":
			p.ExperienceYears = asInt(value)
		case "specializations":
			p.Specializations = value.([]string)
		case "basePincode":
			p.BasePincode = value.(string)
		case "baseAddress":
			p.BaseAddress = value.(string)
		case "baseLatitude":
			lat := asFloat(value)
			p.BaseLatitude = &lat
		case "baseLongitude":
			lon := asFloat(value)
			p.BaseLongitude = &lon
		case "serviceRadiusKm":
			p.ServiceRadiusKm = asFloat(value)
		case "updatedAt":
			p.UpdatedAt = value.(time.Time)
		}
	}
}

func applyBookingSet(b *models.Booking, set bson.M) {
	for key, value := range set {
		switch key {
		case "status":
			b.Status = value.(models.BookingStatus)
		case "workSummary":
			b.WorkSummary = value.(string)
		case "updatedAt":
			b.UpdatedAt = value.(time.Time)
		}
	}
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
