// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is the "role" claim of an access token.
type UserRole string

const (
	RoleViewer UserRole = "viewer"
	RoleEditor UserRole = "editor"
	RoleAdmin  UserRole = "admin"
)

// rank orders roles from least to most privileged. Unknown roles rank below
// viewer.
var rank = map[UserRole]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleAdmin:  3,
}

// AtLeast reports whether r grants everything required grants.
func (r UserRole) AtLeast(required UserRole) bool {
	return rank[r] >= rank[required]
}
