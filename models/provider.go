package models

import (
	"time"
)

// Availability status values a provider can advertise.
const (
	AvailabilityOnline  = "ONLINE"
	AvailabilityOffline = "OFFLINE"
	AvailabilityBusy    = "BUSY"
	AvailabilityOnBreak = "ON_BREAK"
)

// KYC verification states.
const (
	KYCPending  = "PENDING"
	KYCVerified = "VERIFIED"
	KYCRejected = "REJECTED"
)

// Provider is a service provider account with its base location, service
// radius and the rolling aggregates maintained by the stats recalculator.
// Providers are never hard-deleted; IsDeleted soft-flags the record.
type Provider struct {
	ID                  string   `bson:"id" json:"id"`
	UserID              string   `bson:"userId" json:"userId,omitempty"`
	BusinessName        string   `bson:"businessName" json:"businessName"`
	BusinessDescription string   `bson:"businessDescription" json:"businessDescription,omitempty"`
	Tagline             string   `bson:"tagline" json:"tagline,omitempty"`
	Phone               string   `bson:"phone" json:"phone,omitempty"`
	Email               string   `bson:"email" json:"email,omitempty"`
	ProfileImageURL     string   `bson:"profileImageUrl" json:"profileImageUrl,omitempty"`
	ExperienceYears     int      `bson:"experienceYears" json:"experienceYears,omitempty"`
	Specializations     []string `bson:"specializations" json:"specializations,omitempty"`
	Certifications      []string `bson:"certifications" json:"certifications,omitempty"`

	// Base location. Latitude/Longitude are pointers so that a provider
	// without coordinates is distinguishable from one at (0, 0); geo
	// queries must skip providers with missing coordinates entirely.
	BasePincode     string   `bson:"basePincode" json:"basePincode,omitempty"`
	BaseAddress     string   `bson:"baseAddress" json:"baseAddress,omitempty"`
	BaseLatitude    *float64 `bson:"baseLatitude,omitempty" json:"baseLatitude,omitempty"`
	BaseLongitude   *float64 `bson:"baseLongitude,omitempty" json:"baseLongitude,omitempty"`
	ServiceRadiusKm float64  `bson:"serviceRadiusKm" json:"serviceRadiusKm"`

	KYCStatus string `bson:"kycStatus" json:"kycStatus"`

	// Rolling aggregates. Recomputed from source records, never
	// incremented in place.
	AverageRating     float64 `bson:"averageRating" json:"averageRating"`
	TotalReviews      int     `bson:"totalReviews" json:"totalReviews"`
	TotalBookings     int     `bson:"totalBookings" json:"totalBookings"`
	CompletedBookings int     `bson:"completedBookings" json:"completedBookings"`
	CancelledBookings int     `bson:"cancelledBookings" json:"cancelledBookings"`
	CompletionRate    float64 `bson:"completionRate" json:"completionRate"`

	IsAvailable        bool   `bson:"isAvailable" json:"isAvailable"`
	AvailabilityStatus string `bson:"availabilityStatus" json:"availabilityStatus"`
	IsFeatured         bool   `bson:"isFeatured" json:"isFeatured"`

	// Admission control: bookings in an active status may not exceed this.
	MaxActiveBookings int `bson:"maxActiveBookings" json:"maxActiveBookings"`

	ProfileCompletionPercentage int `bson:"profileCompletionPercentage" json:"profileCompletionPercentage"`

	IsDeleted bool      `bson:"isDeleted" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// HasCoordinates reports whether the provider has a usable base coordinate.
func (p *Provider) HasCoordinates() bool {
	return p.BaseLatitude != nil && p.BaseLongitude != nil
}

// ProviderSummary is the trimmed listing shape returned by search results.
type ProviderSummary struct {
	ProviderID         string   `json:"providerId"`
	BusinessName       string   `json:"businessName"`
	ProfileImageURL    string   `json:"profileImageUrl,omitempty"`
	Tagline            string   `json:"tagline,omitempty"`
	ExperienceYears    int      `json:"experienceYears,omitempty"`
	BasePincode        string   `json:"basePincode,omitempty"`
	ServiceRadiusKm    float64  `json:"serviceRadiusKm"`
	AverageRating      float64  `json:"averageRating"`
	TotalReviews       int      `json:"totalReviews"`
	CompletedBookings  int      `json:"completedBookings"`
	CompletionRate     float64  `json:"completionRate"`
	AvailabilityStatus string   `json:"availabilityStatus"`
	IsFeatured         bool     `json:"isFeatured"`
	DistanceKm         *float64 `json:"distanceKm,omitempty"`
}

// ToSummary converts a provider into its listing shape. DistanceKm is left
// nil; geo search fills it in.
func (p *Provider) ToSummary() ProviderSummary {
	return ProviderSummary{
		ProviderID:         p.ID,
		BusinessName:       p.BusinessName,
		ProfileImageURL:    p.ProfileImageURL,
		Tagline:            p.Tagline,
		ExperienceYears:    p.ExperienceYears,
		BasePincode:        p.BasePincode,
		ServiceRadiusKm:    p.ServiceRadiusKm,
		AverageRating:      p.AverageRating,
		TotalReviews:       p.TotalReviews,
		CompletedBookings:  p.CompletedBookings,
		CompletionRate:     p.CompletionRate,
		AvailabilityStatus: p.AvailabilityStatus,
		IsFeatured:         p.IsFeatured,
	}
}
