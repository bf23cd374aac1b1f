package dto

import (
	"time"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// --- Space DTOs ---

// OperatingHoursDayRequest is one weekday entry supplied by the client.
type OperatingHoursDayRequest struct {
	DayOfWeek    int  `json:"dayOfWeek" binding:"min=0,max=6"`
	OpenMinutes  int  `json:"openMinutes" binding:"min=0,max=1439"`
	CloseMinutes int  `json:"closeMinutes" binding:"min=0,max=1440"`
	IsClosed     bool `json:"isClosed"`
}

// ToDomain converts the request entry to its domain form.
func (r OperatingHoursDayRequest) ToDomain() domain.OperatingHoursDay {
	return domain.OperatingHoursDay{
		DayOfWeek:    r.DayOfWeek,
		OpenMinutes:  r.OpenMinutes,
		CloseMinutes: r.CloseMinutes,
		IsClosed:     r.IsClosed,
	}
}

// OperatingHoursToDomain converts a full weekly schedule request.
func OperatingHoursToDomain(reqs []OperatingHoursDayRequest) []domain.OperatingHoursDay {
	hours := make([]domain.OperatingHoursDay, len(reqs))
	for i, r := range reqs {
		hours[i] = r.ToDomain()
	}
	return hours
}

// CreateSpaceRequest defines data for creating an org's co-working space.
// Operating hours must cover all seven weekdays exactly once; the service
// enforces the per-day open/close ordering.
type CreateSpaceRequest struct {
	Name               string                     `json:"name" binding:"required,max=100"`
	Capacity           int                        `json:"capacity" binding:"required,min=1"`
	Timezone           string                     `json:"timezone" binding:"required,timezone"`
	OperatingHours     []OperatingHoursDayRequest `json:"operatingHours" binding:"required,len=7,dive"`
	GuestAccessEnabled bool                       `json:"guestAccessEnabled"`
}

// UpdateSpaceRequest defines the data allowed for updating a space.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateSpaceRequest struct {
	Name               *string                     `json:"name" binding:"omitempty,max=100"`
	Capacity           *int                        `json:"capacity" binding:"omitempty,min=1"`
	Timezone           *string                     `json:"timezone" binding:"omitempty,timezone"`
	OperatingHours     *[]OperatingHoursDayRequest `json:"operatingHours" binding:"omitempty,len=7,dive"`
	GuestAccessEnabled *bool                       `json:"guestAccessEnabled"`
}

// CustomVisitFieldRequest is one admin-defined intake question.
type CustomVisitFieldRequest struct {
	FieldID     string   `json:"fieldId" binding:"required,max=64"`
	Label       string   `json:"label" binding:"required,max=200"`
	Type        string   `json:"type" binding:"required,oneof=text textarea select checkbox"`
	Required    bool     `json:"required"`
	Options     []string `json:"options" binding:"omitempty,dive,max=100"`
	Placeholder string   `json:"placeholder" binding:"omitempty,max=200"`
}

// UpdateCustomVisitFieldsRequest replaces the guest intake form definition.
type UpdateCustomVisitFieldsRequest struct {
	Fields []CustomVisitFieldRequest `json:"fields" binding:"dive"`
}

// ToDomainFields converts the intake form request to domain fields.
func (r UpdateCustomVisitFieldsRequest) ToDomainFields() []domain.CustomVisitField {
	fields := make([]domain.CustomVisitField, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = domain.CustomVisitField{
			FieldID:     f.FieldID,
			Label:       f.Label,
			Type:        domain.CustomFieldType(f.Type),
			Required:    f.Required,
			Options:     f.Options,
			Placeholder: f.Placeholder,
		}
	}
	return fields
}

// SpaceResponse defines data returned for a space to org members and admins.
type SpaceResponse struct {
	SpaceID            string                     `json:"spaceID"`
	OrgID              string                     `json:"orgID"`
	Name               string                     `json:"name"`
	Capacity           int                        `json:"capacity"`
	Timezone           string                     `json:"timezone"`
	OperatingHours     []domain.OperatingHoursDay `json:"operatingHours"`
	GuestAccessEnabled bool                       `json:"guestAccessEnabled"`
	CustomVisitFields  []domain.CustomVisitField  `json:"customVisitFields"`
	CreatedAt          time.Time                  `json:"createdAt"`
	LastUpdatedAt      time.Time                  `json:"lastUpdatedAt"`
}

// ToSpaceResponse converts domain.CoworkingSpace to DTO.
func ToSpaceResponse(s *domain.CoworkingSpace) SpaceResponse {
	return SpaceResponse{
		SpaceID:            s.SpaceID,
		OrgID:              s.OrgID,
		Name:               s.Name,
		Capacity:           s.Capacity,
		Timezone:           s.Timezone,
		OperatingHours:     s.OperatingHours,
		GuestAccessEnabled: s.GuestAccessEnabled,
		CustomVisitFields:  s.CustomVisitFields,
		CreatedAt:          s.CreatedAt,
		LastUpdatedAt:      s.LastUpdatedAt,
	}
}

// PublicSpaceResponse is the guest-safe projection served on the public
// application page. Capacity and audit data are deliberately absent.
type PublicSpaceResponse struct {
	SpaceID           string                     `json:"spaceID"`
	Name              string                     `json:"name"`
	OrgName           string                     `json:"orgName"`
	OrgSlug           string                     `json:"orgSlug"`
	Timezone          string                     `json:"timezone"`
	OperatingHours    []domain.OperatingHoursDay `json:"operatingHours"`
	CustomVisitFields []domain.CustomVisitField  `json:"customVisitFields"`
}

// ToPublicSpaceResponse builds the guest-safe projection.
func ToPublicSpaceResponse(s *domain.CoworkingSpace, org *domain.Organization) PublicSpaceResponse {
	return PublicSpaceResponse{
		SpaceID:           s.SpaceID,
		Name:              s.Name,
		OrgName:           org.Name,
		OrgSlug:           org.Slug,
		Timezone:          s.Timezone,
		OperatingHours:    s.OperatingHours,
		CustomVisitFields: s.CustomVisitFields,
	}
}
