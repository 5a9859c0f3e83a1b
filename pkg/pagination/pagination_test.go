// Copyright (c) 2026 Shelfmark. All rights reserved.

package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/pkg/pagination"
)

/*
TestCursorRoundTrip ensures a token decodes back to the id it was built from.
*/
func TestCursorRoundTrip(t *testing.T) {
	token := pagination.EncodeCursor("0198f2a0-5b1c-7def-8123-456789abcdef")
	require.NotEmpty(t, token)

	afterID, err := pagination.DecodeCursor(token)

	require.NoError(t, err)
	assert.Equal(t, "0198f2a0-5b1c-7def-8123-456789abcdef", afterID)
}

func TestCursorEmpty(t *testing.T) {
	t.Run("empty_id_encodes_to_empty_token", func(t *testing.T) {
		assert.Empty(t, pagination.EncodeCursor(""))
	})

	t.Run("empty_token_decodes_to_empty_id", func(t *testing.T) {
		afterID, err := pagination.DecodeCursor("")

		require.NoError(t, err)
		assert.Empty(t, afterID)
	})
}

func TestDecodeCursor_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		token string
	}{
		{name: "not_base64", token: "!!not-a-token!!"},
		{name: "base64_but_not_json", token: "bm90IGpzb24="},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pagination.DecodeCursor(tc.token)
			assert.ErrorIs(t, err, pagination.ErrInvalidCursor)
		})
	}
}
