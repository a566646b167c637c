package service

import "errors"

// Sentinel errors shared by the account services. Persistence failures
// surface as repository.ErrStoreUnavailable and are propagated untouched.
var (
	// ErrRoleNotFound aborts a registration referencing an unknown role id.
	ErrRoleNotFound = errors.New("role not found")

	// ErrActivationNotFound covers both a key that never existed and a key
	// already consumed; stored state cannot tell the two apart.
	ErrActivationNotFound = errors.New("activation key not found")

	// ErrAccountNotFound targets operations addressing a nonexistent account.
	ErrAccountNotFound = errors.New("account not found")
)
