package docsystem

import (
	"fmt"
	"strings"
)

// PermissionLevel is the single, totally ordered capability enumeration used
// both by the sharing surface and by permission checks.
type PermissionLevel string

const (
	PermissionNone     PermissionLevel = "none"
	PermissionView     PermissionLevel = "view"
	PermissionEdit     PermissionLevel = "edit"
	PermissionDownload PermissionLevel = "download"
	PermissionAdmin    PermissionLevel = "admin"
)

// permissionRanks defines the order none < view < edit < download < admin
var permissionRanks = map[PermissionLevel]int{
	PermissionNone:     0,
	PermissionView:     1,
	PermissionEdit:     2,
	PermissionDownload: 3,
	PermissionAdmin:    4,
}

// PermissionLevels returns every level in ascending order
func PermissionLevels() []PermissionLevel {
	return []PermissionLevel{PermissionNone, PermissionView, PermissionEdit, PermissionDownload, PermissionAdmin}
}

// Rank returns the position of the level in the total order.
// Unknown levels rank below none.
func (l PermissionLevel) Rank() int {
	rank, ok := permissionRanks[l]
	if !ok {
		return -1
	}
	return rank
}

// Valid reports whether the level is part of the enumeration
func (l PermissionLevel) Valid() bool {
	_, ok := permissionRanks[l]
	return ok
}

// AtLeast reports whether l ranks greater than or equal to required
func (l PermissionLevel) AtLeast(required PermissionLevel) bool {
	return l.Valid() && l.Rank() >= required.Rank()
}

// ParsePermissionLevel normalizes and validates a level string
func ParsePermissionLevel(s string) (PermissionLevel, error) {
	level := PermissionLevel(strings.ToLower(strings.TrimSpace(s)))
	if !level.Valid() {
		supported := make([]string, 0, len(permissionRanks))
		for _, l := range PermissionLevels() {
			supported = append(supported, string(l))
		}
		return "", fmt.Errorf("unknown permission level %q (supported: %s)", s, strings.Join(supported, ", "))
	}
	return level, nil
}

// AccessControlEntry grants one user a permission level on one document.
// There is at most one entry per user per document.
type AccessControlEntry struct {
	UserID   string          `json:"user_id"`
	UserName string          `json:"user_name"`
	Level    PermissionLevel `json:"permission_level"`
}
