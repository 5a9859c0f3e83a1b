// Copyright (c) 2026 Shelfmark. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/sec"
)

/*
TestRequireAuthenticated verifies the authentication half of the gate.
*/
func TestRequireAuthenticated(t *testing.T) {
	t.Run("authenticated_identity_passes", func(t *testing.T) {
		identity, err := sec.RequireAuthenticated(sec.Identity("user-1"))

		require.NoError(t, err)
		assert.Equal(t, sec.Identity("user-1"), identity)
	})

	t.Run("anonymous_is_unauthorized", func(t *testing.T) {
		_, err := sec.RequireAuthenticated(sec.Anonymous)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
	})
}

/*
TestRequireOwnership verifies the ownership half of the gate.
*/
func TestRequireOwnership(t *testing.T) {
	t.Run("owner_passes", func(t *testing.T) {
		err := sec.RequireOwnership(sec.Identity("user-1"), "user-1")
		assert.NoError(t, err)
	})

	t.Run("other_identity_is_forbidden", func(t *testing.T) {
		err := sec.RequireOwnership(sec.Identity("user-1"), "user-2")

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
	})
}
