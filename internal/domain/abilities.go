package domain

import "strings"

// Role names known to the platform.
const (
	RoleAdmin    = "admin"
	RoleEmployer = "employer"
	RoleSeeker   = "seeker"
	RoleMentor   = "mentor"
	RoleUser     = "user"
)

// Capability tokens bound into access tokens.
const (
	AbilityAll              = "*"
	AbilityAdmin            = "admin"
	AbilityManageUsers      = "manage-users"
	AbilityManageJobs       = "manage-jobs"
	AbilityManageMentors    = "manage-mentors"
	AbilityManageCompanies  = "manage-companies"
	AbilityEmployer         = "employer"
	AbilityPostJobs         = "post-jobs"
	AbilityViewApplications = "view-applications"
	AbilityMentor           = "mentor"
	AbilityViewMentees      = "view-mentees"
	AbilityPostContent      = "post-content"
	AbilityUser             = "user"
)

// AbilitiesForRole maps a role name to its fixed ability set. Unknown or
// empty names get the least-privilege {user} set. Comparison ignores case.
// A fresh slice is returned on every call.
func AbilitiesForRole(role string) []string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleAdmin:
		return []string{AbilityAdmin, AbilityManageUsers, AbilityManageJobs, AbilityManageMentors, AbilityManageCompanies, AbilityAll}
	case RoleEmployer:
		return []string{AbilityEmployer, AbilityPostJobs, AbilityViewApplications}
	case RoleMentor:
		return []string{AbilityMentor, AbilityViewMentees, AbilityPostContent}
	default:
		return []string{AbilityUser}
	}
}
