// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

package schema

// UserSessionTable represents the 'users.session' table
type UserSessionTable struct {
	Table        string
	ID           string
	UserID       string
	RefreshToken string
	ExpiresAt    string
	CreatedAt    string
}

// UserSession is the schema definition for users.session
var UserSession = UserSessionTable{
	Table:        "users.session",
	ID:           "id",
	UserID:       "userid",
	RefreshToken: "refreshtoken",
	ExpiresAt:    "expiresat",
	CreatedAt:    "createdat",
}

// Columns returns all standard column names in scan order
func (t UserSessionTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.RefreshToken, t.ExpiresAt, t.CreatedAt,
	}
}
