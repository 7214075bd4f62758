// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

// Package uuid generates the time-ordered identifiers used for session rows,
// token IDs (jti) and request IDs.
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string. Version 7 values sort by creation time, which
// keeps the users.session primary key index append-only.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Only fails when the system entropy source is broken.
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}
