package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/astn-platform/space_booking_app/internal/apperrors"
	"github.com/astn-platform/space_booking_app/internal/core/domain"
	portsrepo "github.com/astn-platform/space_booking_app/internal/core/ports/repositories"
	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/dto"
	"github.com/astn-platform/space_booking_app/internal/utils/timeutils"
	"github.com/google/uuid"
)

// guestVisitService implements the GuestVisitSvcFacade interface
type guestVisitService struct {
	BaseService
	bookingRepo portsrepo.BookingRepositoryFacade
	spaceRepo   portsrepo.SpaceReader
	guestRepo   portsrepo.GuestProfileRepositoryFacade
	orgRepo     portsrepo.OrgRepositoryFacade
	userRepo    portsrepo.UserReader
	authorizer  portssvc.OrgAuthorizerSvc
	notifier    portssvc.NotificationSvcFacade
}

// NewGuestVisitService creates a new guest visit service with the provided dependencies
func NewGuestVisitService(
	bookingRepo portsrepo.BookingRepositoryFacade,
	spaceRepo portsrepo.SpaceReader,
	guestRepo portsrepo.GuestProfileRepositoryFacade,
	orgRepo portsrepo.OrgRepositoryFacade,
	userRepo portsrepo.UserReader,
	authorizer portssvc.OrgAuthorizerSvc,
	notifier portssvc.NotificationSvcFacade,
) portssvc.GuestVisitSvcFacade {
	return &guestVisitService{
		bookingRepo: bookingRepo,
		spaceRepo:   spaceRepo,
		guestRepo:   guestRepo,
		orgRepo:     orgRepo,
		userRepo:    userRepo,
		authorizer:  authorizer,
		notifier:    notifier,
	}
}

// Ensure guestVisitService implements the GuestVisitSvcFacade interface
var _ portssvc.GuestVisitSvcFacade = (*guestVisitService)(nil)

// SubmitVisitApplication creates a pending guest booking with its intake
// answers, creating or refreshing the guest's profile along the way.
// Applications are checked against the date but not the operating hours:
// admins decide off-hours requests during review.
func (s *guestVisitService) SubmitVisitApplication(ctx context.Context, spaceID string, req dto.SubmitVisitApplicationRequest, userID string) (*domain.SpaceBooking, error) {
	space, err := s.spaceRepo.FindSpaceByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("space not found")
		}
		s.LogError(ctx, err, "Failed to find space", slog.String("space_id", spaceID))
		return nil, err
	}
	if !space.GuestAccessEnabled {
		return nil, apperrors.NewForbiddenError("guest access is not enabled for this space")
	}

	// Members of the owning org book directly; the application flow is for
	// outsiders only.
	isMember, err := s.authorizer.IsOrgMember(ctx, userID, space.OrgID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperrors.NewConflictError("organization members should book directly instead of applying as a guest")
	}

	// The intake form cannot be submitted without agreeing to share the
	// profile with the hosting org.
	if !req.ConsentToProfileSharing {
		return nil, apperrors.NewValidationFailedError("consent to profile sharing is required")
	}

	if !timeutils.IsValidDateString(req.Date) {
		return nil, apperrors.NewValidationFailedError("date must be a valid YYYY-MM-DD string")
	}
	today, err := timeutils.TodayInTimezone(space.Timezone)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if req.Date < today {
		return nil, apperrors.NewValidationFailedError("cannot book a date in the past")
	}

	responses, err := buildVisitResponses(space.CustomVisitFields, req.Responses)
	if err != nil {
		return nil, err
	}

	if _, err := s.bookingRepo.FindActiveBookingForDate(ctx, spaceID, userID, req.Date); err == nil {
		return nil, apperrors.NewConflictError("you already have an application for this date")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing application",
			slog.String("space_id", spaceID),
			slog.String("date", req.Date))
		return nil, err
	}

	profile, err := s.upsertGuestProfile(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := domain.SpaceBooking{
		BookingID:               uuid.NewString(),
		SpaceID:                 spaceID,
		UserID:                  userID,
		Date:                    req.Date,
		StartMinutes:            req.StartMinutes,
		EndMinutes:              req.EndMinutes,
		BookingType:             domain.BookingTypeGuest,
		Status:                  domain.BookingPending,
		WorkingOn:               req.WorkingOn,
		InterestedInMeeting:     req.InterestedInMeeting,
		ConsentToProfileSharing: req.ConsentToProfileSharing,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	for i := range responses {
		responses[i].SpaceBookingID = booking.BookingID
	}

	if err := s.bookingRepo.SaveBooking(ctx, booking, responses); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("you already have an application for this date")
		}
		s.LogError(ctx, err, "Failed to save visit application", slog.String("space_id", spaceID))
		return nil, err
	}

	s.notifyOrgAdmins(ctx, space, &booking, profile.Name)

	s.LogInfo(ctx, "Guest visit application submitted",
		slog.String("booking_id", booking.BookingID),
		slog.String("space_id", spaceID),
		slog.String("date", req.Date))
	return &booking, nil
}

// buildVisitResponses validates answers against the intake form definition:
// unknown field ids are rejected and required fields must carry a non-empty
// answer.
func buildVisitResponses(fields []domain.CustomVisitField, answers []dto.VisitResponseRequest) ([]domain.VisitApplicationResponse, error) {
	byID := make(map[string]domain.CustomVisitField, len(fields))
	for _, f := range fields {
		byID[f.FieldID] = f
	}

	answered := make(map[string]string, len(answers))
	for _, a := range answers {
		if _, ok := byID[a.FieldID]; !ok {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown custom field: %s", a.FieldID))
		}
		answered[a.FieldID] = a.Value
	}
	for _, f := range fields {
		if f.Required && answered[f.FieldID] == "" {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("missing required field: %s", f.Label))
		}
	}

	now := time.Now()
	responses := make([]domain.VisitApplicationResponse, 0, len(answers))
	for _, a := range answers {
		responses = append(responses, domain.VisitApplicationResponse{
			ResponseID: uuid.NewString(),
			FieldID:    a.FieldID,
			Value:      a.Value,
			CreatedAt:  now,
		})
	}
	return responses, nil
}

// upsertGuestProfile creates the profile on first application and refreshes
// the contact details on every subsequent one.
func (s *guestVisitService) upsertGuestProfile(ctx context.Context, userID string, req dto.SubmitVisitApplicationRequest) (*domain.GuestProfile, error) {
	now := time.Now()
	candidate := domain.GuestProfile{
		GuestProfileID: uuid.NewString(),
		UserID:         userID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Organization:   req.Organization,
		Title:          req.Title,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	profile, err := s.guestRepo.GetOrCreateGuestProfile(ctx, candidate)
	if err != nil {
		s.LogError(ctx, err, "Failed to get or create guest profile", slog.String("user_id", userID))
		return nil, err
	}

	if profile.GuestProfileID != candidate.GuestProfileID {
		patch := portsrepo.GuestProfilePatch{
			Name:         &req.Name,
			Phone:        req.Phone,
			Organization: req.Organization,
			Title:        req.Title,
		}
		if err := s.guestRepo.UpdateGuestProfile(ctx, profile.GuestProfileID, patch); err != nil {
			s.LogError(ctx, err, "Failed to refresh guest profile", slog.String("guest_profile_id", profile.GuestProfileID))
			return nil, err
		}
		profile.Name = req.Name
		profile.Phone = req.Phone
		profile.Organization = req.Organization
		profile.Title = req.Title
	}
	return profile, nil
}

// notifyOrgAdmins fans out a pending-review notification to every org admin.
func (s *guestVisitService) notifyOrgAdmins(ctx context.Context, space *domain.CoworkingSpace, booking *domain.SpaceBooking, guestName string) {
	admins, err := s.orgRepo.ListAdminsByOrg(ctx, space.OrgID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list org admins for notification", slog.String("org_id", space.OrgID))
		return
	}
	for _, admin := range admins {
		s.notifier.Dispatch(ctx, domain.Notification{
			UserID:         admin.UserID,
			Type:           domain.NotificationGuestVisitPending,
			SpaceBookingID: &booking.BookingID,
			Title:          "New guest visit application",
			Body:           fmt.Sprintf("%s applied to visit %s on %s", guestName, space.Name, booking.Date),
		})
	}
}

// ApproveGuestVisit confirms a pending application and records the visit
func (s *guestVisitService) ApproveGuestVisit(ctx context.Context, bookingID string, message *string, adminUserID string) error {
	booking, err := s.findGuestBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	membership, space, err := s.authorizer.RequireSpaceAdmin(ctx, adminUserID, booking.SpaceID)
	if err != nil {
		return err
	}
	return s.approve(ctx, booking, space, membership, message)
}

// approve performs the state transition plus the profile visit bookkeeping.
func (s *guestVisitService) approve(ctx context.Context, booking *domain.SpaceBooking, space *domain.CoworkingSpace, membership *domain.OrgMembership, message *string) error {
	if booking.Status != domain.BookingPending {
		return apperrors.NewConflictError("Booking is not pending")
	}

	now := time.Now()
	booking.Status = domain.BookingConfirmed
	booking.ApprovedBy = &membership.MembershipID
	booking.ApprovedAt = &now
	booking.UpdatedAt = now

	if err := s.bookingRepo.UpdateBooking(ctx, *booking); err != nil {
		s.LogError(ctx, err, "Failed to approve application", slog.String("booking_id", booking.BookingID))
		return err
	}

	profile, err := s.guestRepo.FindGuestProfileByUserID(ctx, booking.UserID)
	if err != nil {
		// The booking is approved; the visit counter is best-effort.
		s.LogError(ctx, err, "Failed to find guest profile after approval", slog.String("user_id", booking.UserID))
	} else if err := s.guestRepo.RecordApprovedVisit(ctx, profile.GuestProfileID, booking.Date); err != nil {
		s.LogError(ctx, err, "Failed to record approved visit", slog.String("guest_profile_id", profile.GuestProfileID))
	}

	body := fmt.Sprintf("Your visit to %s on %s was approved", space.Name, booking.Date)
	if message != nil && *message != "" {
		body = fmt.Sprintf("%s: %s", body, *message)
	}
	s.notifier.Dispatch(ctx, domain.Notification{
		UserID:         booking.UserID,
		Type:           domain.NotificationGuestVisitApproved,
		SpaceBookingID: &booking.BookingID,
		Title:          "Visit application approved",
		Body:           body,
	})

	s.LogInfo(ctx, "Guest visit approved",
		slog.String("booking_id", booking.BookingID),
		slog.String("approved_by", membership.MembershipID))
	return nil
}

// RejectGuestVisit rejects a pending application with a reason
func (s *guestVisitService) RejectGuestVisit(ctx context.Context, bookingID, reason, adminUserID string) error {
	if reason == "" {
		return apperrors.NewValidationFailedError("rejection reason is required")
	}
	booking, err := s.findGuestBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	_, space, err := s.authorizer.RequireSpaceAdmin(ctx, adminUserID, booking.SpaceID)
	if err != nil {
		return err
	}
	if booking.Status != domain.BookingPending {
		return apperrors.NewConflictError("only pending applications can be rejected")
	}

	now := time.Now()
	booking.Status = domain.BookingRejected
	booking.RejectionReason = &reason
	booking.UpdatedAt = now

	if err := s.bookingRepo.UpdateBooking(ctx, *booking); err != nil {
		s.LogError(ctx, err, "Failed to reject application", slog.String("booking_id", bookingID))
		return err
	}

	s.notifier.Dispatch(ctx, domain.Notification{
		UserID:         booking.UserID,
		Type:           domain.NotificationGuestVisitRejected,
		SpaceBookingID: &booking.BookingID,
		Title:          "Visit application declined",
		Body:           fmt.Sprintf("Your visit to %s on %s was declined: %s", space.Name, booking.Date, reason),
	})

	s.LogInfo(ctx, "Guest visit rejected", slog.String("booking_id", bookingID))
	return nil
}

// BatchApproveGuestVisits approves many applications with per-item outcomes.
// The batch never aborts on a single failure.
func (s *guestVisitService) BatchApproveGuestVisits(ctx context.Context, spaceID string, bookingIDs []string, adminUserID string) ([]domain.BatchApprovalResult, error) {
	membership, space, err := s.authorizer.RequireSpaceAdmin(ctx, adminUserID, spaceID)
	if err != nil {
		return nil, err
	}

	results := make([]domain.BatchApprovalResult, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		results = append(results, s.approveOne(ctx, id, spaceID, space, membership))
	}
	return results, nil
}

func (s *guestVisitService) approveOne(ctx context.Context, bookingID, spaceID string, space *domain.CoworkingSpace, membership *domain.OrgMembership) domain.BatchApprovalResult {
	result := domain.BatchApprovalResult{BookingID: bookingID}
	booking, err := s.findGuestBooking(ctx, bookingID)
	if err != nil {
		result.Error = errMessage(err)
		return result
	}
	if booking.SpaceID != spaceID {
		result.Error = "booking does not belong to this space"
		return result
	}
	if err := s.approve(ctx, booking, space, membership, nil); err != nil {
		result.Error = errMessage(err)
		return result
	}
	result.Success = true
	return result
}

// errMessage strips internal wrapping so batch results stay client-safe.
func errMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}

// findGuestBooking loads a booking and ensures it is a guest application.
func (s *guestVisitService) findGuestBooking(ctx context.Context, bookingID string) (*domain.SpaceBooking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("booking not found")
		}
		s.LogError(ctx, err, "Failed to find booking", slog.String("booking_id", bookingID))
		return nil, err
	}
	if booking.BookingType != domain.BookingTypeGuest {
		return nil, apperrors.NewValidationFailedError("booking is not a guest visit application")
	}
	return booking, nil
}

// PendingApplications lists pending guest applications for admin review
func (s *guestVisitService) PendingApplications(ctx context.Context, spaceID, adminUserID string) ([]domain.EnrichedBooking, error) {
	if _, _, err := s.authorizer.RequireSpaceAdmin(ctx, adminUserID, spaceID); err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListGuestBookings(ctx, spaceID, []domain.BookingStatus{domain.BookingPending})
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending applications", slog.String("space_id", spaceID))
		return nil, err
	}
	return s.enrichGuestBookings(ctx, bookings)
}

// GuestVisitHistory lists a space's reviewed guest bookings. Pending
// applications live in the review queue, not here.
func (s *guestVisitService) GuestVisitHistory(ctx context.Context, spaceID string, guestUserID *string, adminUserID string) ([]domain.EnrichedBooking, error) {
	if _, _, err := s.authorizer.RequireSpaceAdmin(ctx, adminUserID, spaceID); err != nil {
		return nil, err
	}
	reviewed := []domain.BookingStatus{
		domain.BookingConfirmed,
		domain.BookingRejected,
	}
	bookings, err := s.bookingRepo.ListGuestBookings(ctx, spaceID, reviewed)
	if err != nil {
		s.LogError(ctx, err, "Failed to list guest bookings", slog.String("space_id", spaceID))
		return nil, err
	}
	if guestUserID != nil {
		filtered := bookings[:0]
		for _, b := range bookings {
			if b.UserID == *guestUserID {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}
	return s.enrichGuestBookings(ctx, bookings)
}

// enrichGuestBookings attaches guest profiles, intake answers, and resolved
// approver names to raw booking rows.
func (s *guestVisitService) enrichGuestBookings(ctx context.Context, bookings []domain.SpaceBooking) ([]domain.EnrichedBooking, error) {
	enriched := make([]domain.EnrichedBooking, 0, len(bookings))
	profileCache := make(map[string]*domain.GuestProfile)
	approverCache := make(map[string]*string)

	for _, b := range bookings {
		e := domain.EnrichedBooking{SpaceBooking: b}

		profile, cached := profileCache[b.UserID]
		if !cached {
			p, err := s.guestRepo.FindGuestProfileByUserID(ctx, b.UserID)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Failed to load guest profile", slog.String("user_id", b.UserID))
				return nil, err
			}
			profile = p
			profileCache[b.UserID] = p
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
			s.LogError(ctx, err, "Failed to load visit responses", slog.String("booking_id", b.BookingID))
			return nil, err
		}
		e.CustomFieldResponses = responses

		if b.ApprovedBy != nil {
			name, cached := approverCache[*b.ApprovedBy]
			if !cached {
				name = s.resolveApproverName(ctx, *b.ApprovedBy)
				approverCache[*b.ApprovedBy] = name
			}
			e.ApprovedByName = name
		}

		enriched = append(enriched, e)
	}
	return enriched, nil
}

// resolveApproverName maps a membership id to the admin's display name.
func (s *guestVisitService) resolveApproverName(ctx context.Context, membershipID string) *string {
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

// MyVisitApplications lists the calling guest's own applications with space
// and org context
func (s *guestVisitService) MyVisitApplications(ctx context.Context, userID string) ([]domain.GuestVisitSummary, error) {
	bookings, err := s.bookingRepo.ListGuestBookingsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list guest bookings for user", slog.String("user_id", userID))
		return nil, err
	}

	summaries := make([]domain.GuestVisitSummary, 0, len(bookings))
	spaceCache := make(map[string]*domain.CoworkingSpace)
	orgCache := make(map[string]*domain.Organization)

	for _, b := range bookings {
		summary := domain.GuestVisitSummary{SpaceBooking: b}

		space, cached := spaceCache[b.SpaceID]
		if !cached {
			sp, err := s.spaceRepo.FindSpaceByID(ctx, b.SpaceID)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
			space = sp
			spaceCache[b.SpaceID] = sp
		}
		if space != nil {
			summary.SpaceName = space.Name
			org, cached := orgCache[space.OrgID]
			if !cached {
				o, err := s.orgRepo.FindOrgByID(ctx, space.OrgID)
				if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
					return nil, err
				}
				org = o
				orgCache[space.OrgID] = o
			}
			if org != nil {
				summary.OrgName = org.Name
				summary.OrgSlug = org.Slug
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
