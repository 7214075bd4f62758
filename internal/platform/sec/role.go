// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

package sec

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// # Account Roles

// Roles provisioned for the two user classes. Stored values vary in case and
// separators, so always compare through [NormalizeRole].
const (
	RoleFacilityManagement = "Facility management"
	RoleStudentHousing     = "Student Housing"
)

// Principal is the verified caller exposed to protected handlers.
type Principal struct {
	ID       int64   `json:"id"`
	Role     string  `json:"role"`
	Username *string `json:"username"`
}

// # Normalization

var separatorRun = regexp.MustCompile(`[\s_-]+`)

// NormalizeIdentifier trims and case-folds value.
func NormalizeIdentifier(value string) string {
	// Casers are stateful, so one per call.
	return cases.Fold().String(strings.TrimSpace(value))
}

// NormalizeRole case-folds value and collapses runs of spaces, underscores
// and hyphens into a single space, so "STUDENT_HOUSING" equals "student housing".
func NormalizeRole(value string) string {
	folded := NormalizeIdentifier(value)
	return strings.TrimSpace(separatorRun.ReplaceAllString(folded, " "))
}

// # Access Policies

// Policy is a per-route allow-list.
//
// AllowedUsernames is matched against the caller's role (older route
// configurations used "username" to mean role). An empty list places no
// restriction, and the two lists are combined with OR, so a caller is
// refused only when both lists are non-empty and neither matches.
type Policy struct {
	AllowedRoles     []string
	AllowedUsernames []string
}

// Predefined policies for the two user classes. Both lists are filled so
// each policy excludes the other class.
var (
	FacilityManagementPolicy = Policy{
		AllowedRoles:     []string{"Facility management", "facility_management", "FACILITY_MANAGEMENT"},
		AllowedUsernames: []string{"Facility management"},
	}
	StudentHousingPolicy = Policy{
		AllowedRoles:     []string{"Student Housing", "student housing", "STUDENT_HOUSING"},
		AllowedUsernames: []string{"Student Housing"},
	}
)

// Allows reports whether a caller holding role passes the policy.
func (policy Policy) Allows(role string) bool {
	return policy.roleAllowed(role) || policy.usernameAllowed(role)
}

func (policy Policy) roleAllowed(role string) bool {
	if len(policy.AllowedRoles) == 0 {
		return true
	}
	normalized := NormalizeRole(role)
	for _, allowed := range policy.AllowedRoles {
		if NormalizeRole(allowed) == normalized {
			return true
		}
	}
	return false
}

func (policy Policy) usernameAllowed(role string) bool {
	if len(policy.AllowedUsernames) == 0 {
		return true
	}
	identifier := NormalizeIdentifier(role)
	for _, allowed := range policy.AllowedUsernames {
		if NormalizeIdentifier(allowed) == identifier {
			return true
		}
	}
	return false
}
