package domain

import "time"

// InvitationStatus tracks the lifecycle of a manager invitation. Only the
// pending state is assigned here; acceptance and expiry are handled by the
// owner panel's signup flow.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

// Permission is one of the fixed, enumerated manager permission keys.
type Permission string

const (
	PermEditBusiness     Permission = "can_edit_business"
	PermManageProducts   Permission = "can_manage_products"
	PermRespondToReviews Permission = "can_respond_to_reviews"
	PermViewLeads        Permission = "can_view_leads"
	PermRespondToLeads   Permission = "can_respond_to_leads"
	PermViewAnalytics    Permission = "can_view_analytics"
	PermAccessFinancials Permission = "can_access_financials"
	PermManageStaff      Permission = "can_manage_staff"
)

// AllPermissions returns the closed set of recognized permission keys in a
// stable order.
func AllPermissions() []Permission {
	return []Permission{
		PermEditBusiness,
		PermManageProducts,
		PermRespondToReviews,
		PermViewLeads,
		PermRespondToLeads,
		PermViewAnalytics,
		PermAccessFinancials,
		PermManageStaff,
	}
}

// PermissionSet is a total mapping from every recognized permission key to
// a grant flag. Keys outside the enumerated set never appear.
type PermissionSet map[Permission]bool

// ManagerInvitation invites a user to help manage a business. The token is
// the credential embedded in the accept link.
type ManagerInvitation struct {
	ID          string           `json:"id" db:"id"`
	BusinessID  string           `json:"business_id" db:"business_id"`
	Email       string           `json:"email" db:"email"`
	Token       string           `json:"-" db:"invitation_token"`
	InvitedBy   string           `json:"invited_by" db:"invited_by"`
	Status      InvitationStatus `json:"status" db:"status"`
	Permissions PermissionSet    `json:"permissions" db:"permissions"`
	ExpiresAt   time.Time        `json:"expires_at" db:"expires_at"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}
