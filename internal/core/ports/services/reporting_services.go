package services

import (
	"context"
	"io"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
	"github.com/astn-platform/space_booking_app/internal/dto"
)

// ReportingSvcFacade provides the admin reporting and capacity views.
type ReportingSvcFacade interface {
	// TodaysBookings lists today's active bookings in the space's timezone.
	TodaysBookings(ctx context.Context, spaceID, adminUserID string) ([]domain.EnrichedBooking, error)

	// BookingsForRange pages through a space's booking history with optional
	// status and type filters.
	BookingsForRange(ctx context.Context, spaceID string, query dto.BookingHistoryQuery, adminUserID string) (*domain.BookingPage, error)

	// UtilizationStats aggregates booking volume, utilization rate, peak
	// days and the member/guest split over a date range.
	UtilizationStats(ctx context.Context, spaceID, startDate, endDate, adminUserID string) (*domain.UtilizationStats, error)

	// GuestConversionStats summarizes guest-to-member conversion for the
	// space's lifetime.
	GuestConversionStats(ctx context.Context, spaceID, adminUserID string) (*domain.GuestConversionStats, error)

	// CapacityForDateRange returns per-day confirmed counts and capacity
	// status. Available to any org member.
	CapacityForDateRange(ctx context.Context, spaceID, startDate, endDate, userID string) (*domain.CapacityRange, error)

	// ExportBookings streams the range's bookings to w as CSV or JSON.
	ExportBookings(ctx context.Context, spaceID, startDate, endDate, format, adminUserID string, w io.Writer) error
}
