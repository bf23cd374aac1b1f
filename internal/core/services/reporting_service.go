package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/astn-platform/space_booking_app/internal/apperrors"
	"github.com/astn-platform/space_booking_app/internal/core/domain"
	portsrepo "github.com/astn-platform/space_booking_app/internal/core/ports/repositories"
	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/dto"
	"github.com/astn-platform/space_booking_app/internal/utils/capacity"
	"github.com/astn-platform/space_booking_app/internal/utils/export"
	"github.com/astn-platform/space_booking_app/internal/utils/pagination"
	"github.com/astn-platform/space_booking_app/internal/utils/timeutils"
	"github.com/shopspring/decimal"
)

// maxCapacityRangeDays caps calendar capacity queries to one year.
const maxCapacityRangeDays = 366

// defaultPageLimit and maxPageLimit bound booking history pages.
const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	bookingRepo portsrepo.BookingRepositoryFacade
	spaceRepo   portsrepo.SpaceReader
	guestRepo   portsrepo.GuestProfileReader
	orgRepo     portsrepo.OrgMembershipManager
	userRepo    portsrepo.UserReader
	authorizer  portssvc.OrgAuthorizerSvc
}

// NewReportingService creates a new reporting service with the provided dependencies
func NewReportingService(
	bookingRepo portsrepo.BookingRepositoryFacade,
	spaceRepo portsrepo.SpaceReader,
	guestRepo portsrepo.GuestProfileReader,
	orgRepo portsrepo.OrgMembershipManager,
	userRepo portsrepo.UserReader,
	authorizer portssvc.OrgAuthorizerSvc,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		bookingRepo: bookingRepo,
		spaceRepo:   spaceRepo,
		guestRepo:   guestRepo,
		orgRepo:     orgRepo,
		userRepo:    userRepo,
		authorizer:  authorizer,
	}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// roundOneDecimal rounds to one decimal place using decimal arithmetic so
// stats never pick up float drift.
func roundOneDecimal(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}

// validateDateRange checks both bounds and their ordering.
func validateDateRange(startDate, endDate string) error {
	if !timeutils.IsValidDateString(startDate) || !timeutils.IsValidDateString(endDate) {
		return apperrors.NewValidationFailedError("dates must be valid YYYY-MM-DD strings")
	}
	if startDate > endDate {
		return apperrors.NewValidationFailedError("start date must not be after end date")
	}
	return nil
}

// TodaysBookings lists today's active bookings in the space's timezone
func (s *reportingService) TodaysBookings(ctx context.Context, spaceID, adminUserID string) ([]domain.EnrichedBooking, error) {
	_, space, err := s.authorizer.RequireSpaceAdmin(ctx, adminUserID, spaceID)
	if err != nil {
		return nil, err
	}

	today, err := timeutils.TodayInTimezone(space.Timezone)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	bookings, err := s.bookingRepo.ListBookingsForDate(ctx, spaceID, today, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list today's bookings", slog.String("space_id", spaceID))
		return nil, err
	}

	active := make([]domain.SpaceBooking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return s.enrichBookings(ctx, active)
}

// BookingsForRange pages through the booking history with cursor pagination.
// The cursor resolves against the materialized sorted range, so a page is
// stable even when earlier rows change status.
func (s *reportingService) BookingsForRange(ctx context.Context, spaceID string, query dto.BookingHistoryQuery, adminUserID string) (*domain.BookingPage, error) {
	if _, _, err := s.authorizer.RequireSpaceAdmin(ctx, adminUserID, spaceID); err != nil {
		return nil, err
	}
	if err := validateDateRange(query.StartDate, query.EndDate); err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := portsrepo.BookingRangeFilter{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
	}
	if query.Status != nil {
		status, ok := domain.ParseBookingStatus(*query.Status)
		if !ok {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid status filter: %s", *query.Status))
		}
		filter.Status = &status
	}
	if query.BookingType != nil {
		bt := domain.BookingType(*query.BookingType)
		if bt != domain.BookingTypeMember && bt != domain.BookingTypeGuest {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid booking type filter: %s", *query.BookingType))
		}
		filter.BookingType = &bt
	}

	bookings, err := s.bookingRepo.ListBookingsInRange(ctx, spaceID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bookings in range", slog.String("space_id", spaceID))
		return nil, err
	}

	start := 0
	if query.Cursor != nil && *query.Cursor != "" {
		_, lastID, err := pagination.DecodeBookingCursor(*query.Cursor)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("invalid pagination cursor")
		}
		found := false
		for i, b := range bookings {
			if b.BookingID == lastID {
				start = i + 1
				found = true
				break
			}
		}
		if !found {
			return nil, apperrors.NewValidationFailedError("pagination cursor no longer resolves")
		}
	}

	end := start + limit
	if end > len(bookings) {
		end = len(bookings)
	}
	pageRows := bookings[start:end]
	hasMore := end < len(bookings)

	enriched, err := s.enrichBookings(ctx, pageRows)
	if err != nil {
		return nil, err
	}

	page := &domain.BookingPage{
		Bookings: enriched,
		HasMore:  hasMore,
	}
	if hasMore && len(pageRows) > 0 {
		last := pageRows[len(pageRows)-1]
		cursor := pagination.EncodeBookingCursor(last.Date, last.BookingID)
		page.NextCursor = &cursor
	}
	return page, nil
}

// UtilizationStats aggregates confirmed bookings over a date range
func (s *reportingService) UtilizationStats(ctx context.Context, spaceID, startDate, endDate, adminUserID string) (*domain.UtilizationStats, error) {
	_, space, err := s.authorizer.RequireSpaceAdmin(ctx, adminUserID, spaceID)
	if err != nil {
		return nil, err
	}
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	confirmed := domain.BookingConfirmed
	bookings, err := s.bookingRepo.ListBookingsInRange(ctx, spaceID, portsrepo.BookingRangeFilter{
		StartDate: startDate,
		EndDate:   endDate,
		Status:    &confirmed,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list confirmed bookings", slog.String("space_id", spaceID))
		return nil, err
	}

	days, err := timeutils.DaysInRange(startDate, endDate)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	stats := &domain.UtilizationStats{
		TotalBookings: len(bookings),
		DaysInRange:   days,
		Capacity:      space.Capacity,
	}

	dayCounts := make(map[int]int)
	for _, b := range bookings {
		if b.BookingType == domain.BookingTypeGuest {
			stats.MemberVsGuest.GuestCount++
		} else {
			stats.MemberVsGuest.MemberCount++
		}
		if dow, err := timeutils.DayOfWeekFromDateString(b.Date); err == nil {
			dayCounts[dow]++
		}
	}

	stats.AverageDaily = roundOneDecimal(float64(len(bookings)) / float64(days))
	if space.Capacity > 0 {
		stats.UtilizationRate = roundOneDecimal(float64(len(bookings)) / float64(space.Capacity*days) * 100)
	}

	peaks := make([]domain.PeakDay, 0, len(dayCounts))
	for dow, count := range dayCounts {
		peaks = append(peaks, domain.PeakDay{DayOfWeek: dow, Count: count})
	}
	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].Count != peaks[j].Count {
			return peaks[i].Count > peaks[j].Count
		}
		return peaks[i].DayOfWeek < peaks[j].DayOfWeek
	})
	stats.PeakDays = peaks

	return stats, nil
}

// GuestConversionStats summarizes lifetime guest-to-member conversion
func (s *reportingService) GuestConversionStats(ctx context.Context, spaceID, adminUserID string) (*domain.GuestConversionStats, error) {
	if _, _, err := s.authorizer.RequireSpaceAdmin(ctx, adminUserID, spaceID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListGuestBookings(ctx, spaceID, []domain.BookingStatus{domain.BookingConfirmed})
	if err != nil {
		s.LogError(ctx, err, "Failed to list confirmed guest bookings", slog.String("space_id", spaceID))
		return nil, err
	}

	uniqueGuests := make(map[string]bool)
	for _, b := range bookings {
		uniqueGuests[b.UserID] = true
	}

	stats := &domain.GuestConversionStats{TotalGuests: len(uniqueGuests)}
	for userID := range uniqueGuests {
		profile, err := s.guestRepo.FindGuestProfileByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			s.LogError(ctx, err, "Failed to load guest profile", slog.String("user_id", userID))
			return nil, err
		}
		if profile.BecameMember {
			stats.ConvertedGuests++
		}
	}

	if stats.TotalGuests > 0 {
		stats.ConversionRate = roundOneDecimal(float64(stats.ConvertedGuests) / float64(stats.TotalGuests) * 100)
	}
	return stats, nil
}

// CapacityForDateRange returns per-day confirmed counts and status for the
// calendar view. Any org member may call it.
func (s *reportingService) CapacityForDateRange(ctx context.Context, spaceID, startDate, endDate, userID string) (*domain.CapacityRange, error) {
	space, err := s.spaceRepo.FindSpaceByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("space not found")
		}
		s.LogError(ctx, err, "Failed to find space", slog.String("space_id", spaceID))
		return nil, err
	}
	if _, err := s.authorizer.RequireOrgMember(ctx, userID, space.OrgID); err != nil {
		return nil, err
	}
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	days, err := timeutils.DaysInRange(startDate, endDate)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if days > maxCapacityRangeDays {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("date range must not exceed %d days", maxCapacityRangeDays))
	}

	confirmed := domain.BookingConfirmed
	bookings, err := s.bookingRepo.ListBookingsInRange(ctx, spaceID, portsrepo.BookingRangeFilter{
		StartDate: startDate,
		EndDate:   endDate,
		Status:    &confirmed,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list confirmed bookings", slog.String("space_id", spaceID))
		return nil, err
	}

	counts := make(map[string]int)
	for _, b := range bookings {
		counts[b.Date]++
	}

	dates, err := timeutils.EachDate(startDate, endDate)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	result := &domain.CapacityRange{
		Dates:    make(map[string]domain.DayCapacity, len(dates)),
		Capacity: space.Capacity,
	}
	for _, date := range dates {
		count := counts[date]
		result.Dates[date] = domain.DayCapacity{
			Count:  count,
			Status: capacity.StatusFor(count, space.Capacity),
		}
	}
	return result, nil
}

// ExportBookings streams the range's bookings to w as CSV or JSON
func (s *reportingService) ExportBookings(ctx context.Context, spaceID, startDate, endDate, format, adminUserID string, w io.Writer) error {
	if _, _, err := s.authorizer.RequireSpaceAdmin(ctx, adminUserID, spaceID); err != nil {
		return err
	}
	if err := validateDateRange(startDate, endDate); err != nil {
		return err
	}
	if format != "csv" && format != "json" {
		return apperrors.NewValidationFailedError("format must be csv or json")
	}

	bookings, err := s.bookingRepo.ListBookingsInRange(ctx, spaceID, portsrepo.BookingRangeFilter{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list bookings for export", slog.String("space_id", spaceID))
		return err
	}

	enriched, err := s.enrichBookings(ctx, bookings)
	if err != nil {
		return err
	}
	rows := export.Flatten(enriched)

	if format == "json" {
		return export.WriteJSON(w, rows)
	}
	return export.WriteCSV(w, rows)
}

// enrichBookings attaches attendee profiles, intake answers, and approver
// names to raw booking rows. Member rows resolve through the user table,
// guest rows through guest profiles.
func (s *reportingService) enrichBookings(ctx context.Context, bookings []domain.SpaceBooking) ([]domain.EnrichedBooking, error) {
	memberIDs := make([]string, 0, len(bookings))
	seen := make(map[string]bool)
	for _, b := range bookings {
		if b.BookingType == domain.BookingTypeMember && !seen[b.UserID] {
			seen[b.UserID] = true
			memberIDs = append(memberIDs, b.UserID)
		}
	}
	users := map[string]domain.User{}
	if len(memberIDs) > 0 {
		var err error
		users, err = s.userRepo.FindUsersByIDs(ctx, memberIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to resolve member users for enrichment")
			return nil, err
		}
	}

	guestProfiles := make(map[string]*domain.GuestProfile)
	approverNames := make(map[string]*string)

	enriched := make([]domain.EnrichedBooking, 0, len(bookings))
	for _, b := range bookings {
		e := domain.EnrichedBooking{SpaceBooking: b}

		if b.BookingType == domain.BookingTypeGuest {
			profile, cached := guestProfiles[b.UserID]
			if !cached {
				p, err := s.guestRepo.FindGuestProfileByUserID(ctx, b.UserID)
				if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
					return nil, err
				}
				profile = p
				guestProfiles[b.UserID] = p
			}
			if profile != nil {
				e.Profile = &domain.BookingProfile{
					Name:         profile.Name,
					Organization: profile.Organization,
					Title:        profile.Title,
					Email:        &profile.Email,
					IsGuest:      true,
				}
			}
			responses, err := s.bookingRepo.ListResponsesForBooking(ctx, b.BookingID)
			if err != nil {
				return nil, err
			}
			e.CustomFieldResponses = responses
		} else if user, ok := users[b.UserID]; ok {
			email := user.Email
			e.Profile = &domain.BookingProfile{
				Name:    user.Name,
				Email:   &email,
				IsGuest: false,
			}
		}

		if b.ApprovedBy != nil {
			name, cached := approverNames[*b.ApprovedBy]
			if !cached {
				name = s.lookupApproverName(ctx, *b.ApprovedBy)
				approverNames[*b.ApprovedBy] = name
			}
			e.ApprovedByName = name
		}

		enriched = append(enriched, e)
	}
	return enriched, nil
}

func (s *reportingService) lookupApproverName(ctx context.Context, membershipID string) *string {
	membership, err := s.orgRepo.FindMembershipByID(ctx, membershipID)
	if err != nil {
		return nil
	}
	user, err := s.userRepo.FindUserByID(ctx, membership.UserID)
	if err != nil {
		return nil
	}
	return &user.Name
}
