package domain

import "time"

// Organization is a community organization that can own one co-working space.
type Organization struct {
	OrgID             string `json:"orgID"`
	Name              string `json:"name"`
	Slug              string `json:"slug"` // URL-safe unique identifier, used by the public guest page
	HasCoworkingSpace bool   `json:"hasCoworkingSpace"`
	AuditFields
}

// OrgRole defines the possible roles a user can have within an organization.
type OrgRole string

const (
	OrgRoleAdmin  OrgRole = "admin"
	OrgRoleMember OrgRole = "member"
)

// OrgMembership represents the membership of a user in an organization.
type OrgMembership struct {
	MembershipID string    `json:"membershipID"`
	OrgID        string    `json:"orgID"`
	UserID       string    `json:"userID"`
	Role         OrgRole   `json:"role"`
	JoinedAt     time.Time `json:"joinedAt"`
}

// IsAdmin reports whether the membership grants admin rights.
func (m *OrgMembership) IsAdmin() bool {
	return m.Role == OrgRoleAdmin
}
