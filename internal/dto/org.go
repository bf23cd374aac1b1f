package dto

import (
	"time"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// --- Organization DTOs ---

// CreateOrgRequest defines data for creating a new organization.
type CreateOrgRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"required,min=3,max=63,lowercase,excludesall= "`
}

// OrgResponse defines data returned for an organization.
type OrgResponse struct {
	OrgID             string    `json:"orgID"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	HasCoworkingSpace bool      `json:"hasCoworkingSpace"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ToOrgResponse converts domain.Organization to DTO.
func ToOrgResponse(o *domain.Organization) OrgResponse {
	return OrgResponse{
		OrgID:             o.OrgID,
		Name:              o.Name,
		Slug:              o.Slug,
		HasCoworkingSpace: o.HasCoworkingSpace,
		CreatedAt:         o.CreatedAt,
	}
}

// ListOrgsResponse wraps a list of organizations.
type ListOrgsResponse struct {
	Orgs []OrgResponse `json:"orgs"`
}

// ToListOrgsResponse converts a slice of domain.Organization to DTO.
func ToListOrgsResponse(orgs []domain.Organization) ListOrgsResponse {
	list := make([]OrgResponse, len(orgs))
	for i, o := range orgs {
		list[i] = ToOrgResponse(&o)
	}
	return ListOrgsResponse{Orgs: list}
}

// --- Membership DTOs ---

// AddOrgMemberRequest defines data for adding a user to an organization.
type AddOrgMemberRequest struct {
	UserID string         `json:"userID" binding:"required"`
	Role   domain.OrgRole `json:"role" binding:"required,oneof=admin member"`
}
