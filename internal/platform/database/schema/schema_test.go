// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

package schema_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusfm/facility/internal/platform/database/schema"
)

/*
TestColumns_MatchMigrations guards against renaming a column in only one place.
*/
func TestColumns_MatchMigrations(t *testing.T) {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	root := filepath.Join(filepath.Dir(file), "..", "..", "..", "..")

	migration, err := os.ReadFile(filepath.Join(root, "data", "migrations", "000001_create_users_auth.up.sql"))
	require.NoError(t, err)
	sql := string(migration)

	assert.Contains(t, sql, schema.UserAccount.Table)
	assert.Contains(t, sql, schema.UserSession.Table)
	assert.Contains(t, sql, "CONSTRAINT "+schema.UserAccount.EmailKey+" UNIQUE")

	for _, column := range append(schema.UserAccount.Columns(), schema.UserSession.Columns()...) {
		assert.True(t, strings.Contains(sql, column+" "), "column %q missing from migration", column)
	}
}
