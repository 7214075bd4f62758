// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

// Package schema holds table and column names shared by SQL repositories and migrations.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table        string
	ID           string
	Role         string
	PasswordHash string
	Name         string
	Email        string
	Username     string
	CreatedAt    string

	// EmailKey is the unique constraint on email, reported by Postgres on 23505.
	EmailKey string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Role:         "role",
	PasswordHash: "passwordhash",
	Name:         "name",
	Email:        "email",
	Username:     "username",
	CreatedAt:    "createdat",
	EmailKey:     "account_email_key",
}

// Columns returns all standard column names in scan order
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Role, t.PasswordHash, t.Name, t.Email, t.Username, t.CreatedAt,
	}
}
