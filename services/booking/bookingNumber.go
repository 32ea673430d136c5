package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hirelink/models"
)

// bookingNumberAttempts bounds collision retries. The unique index on
// bookingNumber is the backstop if two processes race past this check.
const bookingNumberAttempts = 5

// numberSuffix produces the random part of a booking number: the first
// 8 hex characters of a UUID, upper-cased.
func (s *DefaultBookingService) numberSuffix() string {
	if s.suffixFn != nil {
		return s.suffixFn()
	}
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// generateBookingNumber produces HL-YYYYMMDD-XXXXXXXX. The candidate is
// checked against existing numbers and regenerated on collision.
func (s *DefaultBookingService) generateBookingNumber() (string, error) {
	datePart := time.Now().Format("20060102")
	for i := 0; i < bookingNumberAttempts; i++ {
		candidate := fmt.Sprintf("HL-%s-%s", datePart, s.numberSuffix())

		exists, err := s.BookingRepo.ExistsByNumber(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", models.ConflictError{Reason: "could not allocate a unique booking number"}
}
