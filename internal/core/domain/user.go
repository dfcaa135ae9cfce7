package domain

import "time"

// StaffRole defines the tiers of staff users in a branch.
type StaffRole string

const (
	RoleFieldOfficer  StaffRole = "FIELD_OFFICER"
	RoleBranchManager StaffRole = "BRANCH_MANAGER"
	RoleAdministrator StaffRole = "ADMINISTRATOR"
)

// Capability names consumed via CapabilityChecker. First-stage decisions need a
// manager-tier, non-final capability; second-stage decisions need the final one.
const (
	CapabilityFirstApproval = "loan.approve.first"
	CapabilityFinalApproval = "loan.approve.final"
	CapabilityCreateLoan    = "loan.create"
)

// User represents a staff member of the institution.
type User struct {
	UserID       string    `json:"userID"` // Primary Key (e.g., UUID)
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         StaffRole `json:"role"`
	BranchID     string    `json:"branchID"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete

	// Refresh token fields (hash of the raw token plus its expiry)
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// Capabilities returns the capability set granted by the user's role.
func (u *User) Capabilities() []string {
	switch u.Role {
	case RoleAdministrator:
		return []string{CapabilityCreateLoan, CapabilityFirstApproval, CapabilityFinalApproval}
	case RoleBranchManager:
		return []string{CapabilityCreateLoan, CapabilityFirstApproval}
	case RoleFieldOfficer:
		return []string{CapabilityCreateLoan}
	}
	return nil
}

// HasCapability reports whether the user's role grants the named capability.
func (u *User) HasCapability(name string) bool {
	for _, c := range u.Capabilities() {
		if c == name {
			return true
		}
	}
	return false
}

// GoogleUserInfo holds the subset of profile fields returned by Google OAuth.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
