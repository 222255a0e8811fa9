package constants

// Organization permissions
const (
	// Admin permissions
	PermSuperAdminFull  = "estate-access.super-admin.full-permit"
	PermEstateAdminFull = "estate-access.estate-admin.full-permit"

	// Operational permissions
	PermResidentFull = "estate-access.resident.full-permit"
	PermGuardFull    = "estate-access.guard.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	AdminPermissions = []string{
		PermSuperAdminFull,
		PermEstateAdminFull,
	}
)
