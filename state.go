package discord

import (
	uuid "github.com/hashicorp/go-uuid"
)

// NewState returns a random opaque value to use as the state parameter on an
// authorization URL. Stash it somewhere tied to the user's browser before
// redirecting, and refuse the callback if the echoed state doesn't match;
// that comparison is the caller's job, not this package's.
func NewState() (string, error) {
	return uuid.GenerateUUID()
}
