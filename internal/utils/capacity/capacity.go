package capacity

import "github.com/astn-platform/space_booking_app/internal/core/domain"

// NearingThreshold is the fraction of capacity at which a day starts counting
// as "nearing" capacity.
const NearingThreshold = 0.8

// StatusFor derives the advisory capacity status for a day from its confirmed
// booking count. Bookings are never rejected for being at or over capacity;
// callers use this for calendar decoration and soft warnings only.
func StatusFor(count, cap int) domain.CapacityStatus {
	switch {
	case count >= cap:
		return domain.CapacityAtCapacity
	case float64(count) >= float64(cap)*NearingThreshold:
		return domain.CapacityNearing
	default:
		return domain.CapacityAvailable
	}
}

// WarningFor returns the non-blocking warning attached to booking creation
// responses: nil when the day is still comfortably available.
func WarningFor(count, cap int) *domain.CapacityStatus {
	status := StatusFor(count, cap)
	if status == domain.CapacityAvailable {
		return nil
	}
	return &status
}
