// Copyright (c) 2026 Shelfmark. All rights reserved.

/*
Package sec provides the authorization gate and token verification primitives.

It isolates security-sensitive code (JWT verification, ownership checks) from
the domain logic. The session provider that issues tokens is an external
collaborator; this package only verifies what it is handed.

Architecture:

  - Identity: the opaque authenticated-user identifier attached to requests.
  - Gate: RequireAuthenticated / RequireOwnership, always applied in that order.
  - TokenVerifier: RS256 signature verification plus a revocation lookup.
*/
package sec

import (
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
)

// Identity is the opaque identifier of an authenticated user.
//
// The zero value means the request is anonymous. Every privileged service
// operation takes an Identity as an explicit parameter — it is never read
// from ambient state, which keeps the services testable without a full
// request pipeline.
type Identity string

// Anonymous is the Identity of an unauthenticated request.
const Anonymous Identity = ""

// IsAnonymous reports whether the identity is absent.
func (identity Identity) IsAnonymous() bool {
	return identity == Anonymous
}

// String returns the raw identifier for storage scoping.
func (identity Identity) String() string {
	return string(identity)
}

// # Authorization Gate

// RequireAuthenticated fails with an Unauthorized error when the identity
// is absent. It returns the identity unchanged so call sites can chain it.
func RequireAuthenticated(identity Identity) (Identity, error) {
	if identity.IsAnonymous() {
		return Anonymous, apperr.Unauthorized("Must be signed in")
	}
	return identity, nil
}

// RequireOwnership fails with a Forbidden error when the acting identity does
// not own the target collection.
//
// Authentication must already have been checked — callers always apply
// [RequireAuthenticated] first so anonymous requests surface as 401, not 403.
func RequireOwnership(identity Identity, targetOwnerID string) error {
	if identity.String() != targetOwnerID {
		return apperr.Forbidden("You can only view your own book collection")
	}
	return nil
}
